/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a campaign frontend

ROUTE GROUPS:
  /api/campaign/*       Session summary, calendar, save/load
  /api/records/*        Warehouse records
  /api/ammo/*           Ammo stock by type
  /api/armor/*          Armor stock by type
  /api/units/*          Unit roster
  /api/shopping/*       Shopping list
  /api/finances         Balance and journal
  /api/events           Warehouse event log
  /api/catalog          Registered types
  /api/scenarios/*      Demo scenarios
  /                     Endpoint index

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Campaign routes
		r.Route("/campaign", func(r chi.Router) {
			r.Get("/", h.GetCampaign)
			r.Post("/days", h.AdvanceDays)
			r.Post("/save", h.SaveCampaign)
			r.Post("/load", h.LoadCampaign)
		})

		// Record routes
		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Post("/", h.BuyPart)
			r.Get("/{id}", h.GetRecord)
			r.Post("/{id}/sell", h.SellRecord)
			r.Post("/{id}/sell-all", h.SellAllRecord)
			r.Post("/{id}/depod", h.DepodRecord)
			r.Post("/{id}/refurbish", h.RefurbishRecord)
		})

		// Ammo and armor routes
		r.Route("/ammo/{type}", func(r chi.Router) {
			r.Get("/", h.GetAmmo)
			r.Post("/add", h.AddAmmo)
			r.Post("/remove", h.RemoveAmmo)
		})
		r.Route("/armor/{type}", func(r chi.Router) {
			r.Get("/", h.GetArmor)
			r.Post("/add", h.AddArmor)
			r.Post("/remove", h.RemoveArmor)
		})

		// Unit routes
		r.Route("/units", func(r chi.Router) {
			r.Get("/", h.ListUnits)
			r.Post("/", h.BuyUnit)
			r.Post("/{id}/sell", h.SellUnit)
		})

		// Shopping list routes
		r.Route("/shopping", func(r chi.Router) {
			r.Get("/", h.ListShopping)
			r.Post("/", h.RequestShopping)
			r.Delete("/{id}", h.DeleteShopping)
		})

		r.Get("/finances", h.GetFinances)
		r.Get("/events", h.ListEvents)
		r.Get("/catalog", h.GetCatalog)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetCampaign)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Quartermaster</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Quartermaster API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/campaign">/api/campaign</a> - Campaign summary</li>
<li><a href="/api/records">/api/records</a> - Warehouse records</li>
<li><a href="/api/shopping">/api/shopping</a> - Shopping list</li>
<li><a href="/api/finances">/api/finances</a> - Finances</li>
<li><a href="/api/catalog">/api/catalog</a> - Catalog</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
