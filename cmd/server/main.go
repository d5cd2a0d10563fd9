/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Quartermaster campaign logistics server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and environment
  2. Load the type catalog
  3. Initialize SQLite store
  4. Create the campaign, restoring the saved snapshot if there is one
  5. Configure HTTP router and day scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default: 8080)
  -db       SQLite database path (default: quartermaster.db)
            Use ":memory:" for in-memory database
  -catalog  Catalog JSON file (default: built-in catalog)

ENVIRONMENT:
  QM_PAY_FOR_PARTS, QM_PAY_FOR_UNITS, QM_USE_AMMO_BY_TYPE,
  QM_*_MULTIPLIER, QM_ACQUISITION_WAIT_DAYS     campaign options
  QM_STARTING_FUNDS, QM_CAMPAIGN_START          new campaigns
  QM_DAY_INTERVAL, QM_AUTOSAVE                  day scheduler
  QM_ACQUISITION_TARGET, QM_BASE_TRANSIT_DAYS   shopping list rolls
  QM_CATALOG                                    same as -catalog

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the day scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with in-memory database
  ./server -db=":memory:"

  # One campaign day per minute, with ammo substitution
  QM_DAY_INTERVAL=1m QM_USE_AMMO_BY_TYPE=true ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/campaign.go: The campaign session
  - config/config.go: Environment configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/quartermaster/api"
	"github.com/warp/quartermaster/config"
	"github.com/warp/quartermaster/factory"
	"github.com/warp/quartermaster/store/sqlite"
	"github.com/warp/quartermaster/supply"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "quartermaster.db", "SQLite database path")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "Catalog JSON file (default: built-in)")
	flag.Parse()

	// Load catalog
	catalog := factory.NewCatalogFactory(nil)
	if err := loadCatalog(catalog, *catalogPath); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()
	store.UseCatalog(catalog)

	// Initialize campaign
	start, _ := cfg.Start()
	campaign := api.NewCampaign(api.CampaignConfig{
		Options:       cfg.Options,
		StartingFunds: cfg.StartingFunds,
		Start:         start,
		Roller:        cfg.Roller(),
		Sink:          supply.MultiSink{supply.LogSink{Logger: log.Default()}, store.EventLog()},
	})

	// Resume the saved campaign
	snap, err := store.LoadSnapshot(context.Background())
	switch {
	case err == nil:
		campaign.Do(func(c *api.Campaign) error {
			c.Restore(snap)
			return nil
		})
		log.Printf("Resumed campaign at day %d (%s)", snap.Day, snap.Date.Format("2006-01-02"))
	case errors.Is(err, sqlite.ErrNoSnapshot):
		log.Printf("Starting new campaign on %s", start.Format("2006-01-02"))
	default:
		log.Printf("Warning: Failed to load saved campaign: %v", err)
	}

	handler := api.NewHandler(campaign, store, catalog)
	router := api.NewRouter(handler)

	// Day scheduler
	scheduler := api.NewDayScheduler(campaign, store)
	scheduler.Interval = cfg.DayInterval
	scheduler.Enabled = cfg.DayInterval > 0
	scheduler.AutoSave = cfg.AutoSave
	scheduler.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if cfg.AutoSave {
		err := campaign.Do(func(c *api.Campaign) error {
			return store.SaveSnapshot(ctx, c.Snapshot())
		})
		if err != nil {
			log.Printf("Warning: Failed to save campaign: %v", err)
		}
	}

	log.Println("Server stopped")
}

func loadCatalog(catalog *factory.CatalogFactory, path string) error {
	data := factory.DefaultCatalogJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		data = string(b)
	}
	_, err := catalog.ParseCatalog(data)
	return err
}
