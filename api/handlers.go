/*
handlers.go - HTTP API handlers for the campaign logistics engine

PURPOSE:
  Exposes one campaign session via REST API. Handles HTTP request and
  response, JSON serialization, and delegates to the supply engine
  through Campaign.Do.

ENDPOINTS:
  Campaign:
    GET    /api/campaign                 Session summary
    POST   /api/campaign/days            Advance the calendar
    POST   /api/campaign/save            Save a snapshot
    POST   /api/campaign/load            Load the saved snapshot

  Records:
    GET    /api/records                  List records (?spares=true)
    GET    /api/records/{id}             Get one record
    POST   /api/records                  Buy or acquire a record
    POST   /api/records/{id}/sell        Sell part of a stack
    POST   /api/records/{id}/sell-all    Sell the whole stack
    POST   /api/records/{id}/depod       Take pieces out of omnipods
    POST   /api/records/{id}/refurbish   Pay for refurbishment

  Ammo and armor:
    GET    /api/ammo/{type}              Shots available and compatible types (?weapon=)
    POST   /api/ammo/{type}/add          Add shots
    POST   /api/ammo/{type}/remove       Consume shots
    GET    /api/armor/{type}             Points available
    POST   /api/armor/{type}/add         Add points
    POST   /api/armor/{type}/remove      Consume points

  Units:
    GET    /api/units                    List units
    POST   /api/units                    Buy a unit
    POST   /api/units/{id}/sell          Sell a unit

  Shopping list:
    GET    /api/shopping                 List queued items
    POST   /api/shopping                 Request an acquisition
    DELETE /api/shopping/{id}            Drop a queued item

  Other:
    GET    /api/finances                 Balance and journal
    GET    /api/events                   Warehouse event log (?limit=)
    GET    /api/catalog                  Registered types

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 402: Insufficient funds
  - 404: Record, unit, type or snapshot not found
  - 500: Internal errors
  - 503: Persistence not configured

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - campaign.go: the serialized session
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/factory"
	"github.com/warp/quartermaster/store/sqlite"
	"github.com/warp/quartermaster/supply"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Campaign *Campaign
	Store    *sqlite.Store // nil disables save, load and the event log
	Catalog  *factory.CatalogFactory

	// Track currently loaded scenario; guarded by the campaign lock
	currentScenario string

	// Configuration scenarios and resets start from
	base CampaignConfig
}

// NewHandler creates a new handler. store may be nil.
func NewHandler(campaign *Campaign, store *sqlite.Store, catalog *factory.CatalogFactory) *Handler {
	if catalog == nil {
		catalog = factory.NewCatalogFactory(nil)
	}
	return &Handler{
		Campaign: campaign,
		Store:    store,
		Catalog:  catalog,
		base:     campaign.Config(),
	}
}

// =============================================================================
// CAMPAIGN HANDLERS
// =============================================================================

// GetCampaign returns the session summary.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	var dto CampaignDTO
	h.Campaign.Do(func(c *Campaign) error {
		dto = CampaignDTO{
			Day:           c.Day,
			Date:          c.Date.Format("2006-01-02"),
			Balance:       c.Account.Balance(),
			Records:       c.Warehouse.Len(),
			Units:         len(c.Roster.Units()),
			ShoppingItems: len(c.Shopping.Items()),
			Options:       c.Quartermaster.Options,
			Scenario:      h.currentScenario,
		}
		return nil
	})
	writeJSON(w, http.StatusOK, dto)
}

// AdvanceDays runs one or more days.
func (h *Handler) AdvanceDays(w http.ResponseWriter, r *http.Request) {
	req := AdvanceDaysRequest{Days: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}
	if req.Days < 1 || req.Days > 366 {
		writeError(w, http.StatusBadRequest, "days must be between 1 and 366", nil)
		return
	}

	var reports []DayReport
	h.Campaign.Do(func(c *Campaign) error {
		reports = c.AdvanceDays(req.Days)
		return nil
	})
	writeJSON(w, http.StatusOK, reports)
}

// SaveCampaign writes a snapshot of the session.
func (h *Handler) SaveCampaign(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}

	var day int
	err := h.Campaign.Do(func(c *Campaign) error {
		day = c.Day
		return h.Store.SaveSnapshot(r.Context(), c.Snapshot())
	})
	if err != nil {
		writeDomainError(w, "Failed to save campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, SavedDTO{Status: "saved", Day: day, At: time.Now().UTC()})
}

// LoadCampaign replaces the session with the saved snapshot.
func (h *Handler) LoadCampaign(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}

	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to load campaign", err)
		return
	}
	h.Campaign.Do(func(c *Campaign) error {
		c.Restore(snap)
		h.currentScenario = ""
		return nil
	})
	writeJSON(w, http.StatusOK, SavedDTO{Status: "loaded", Day: snap.Day, At: time.Now().UTC()})
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns every record, or only spares with ?spares=true.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	sparesOnly := r.URL.Query().Get("spares") == "true"
	kind := r.URL.Query().Get("kind")

	dtos := []factory.RecordJSON{}
	h.Campaign.Do(func(c *Campaign) error {
		records := c.Warehouse.All()
		if sparesOnly {
			records = c.Warehouse.Spares()
		}
		for _, rec := range records {
			if kind != "" && string(rec.Kind) != kind {
				continue
			}
			dtos = append(dtos, h.Catalog.ToJSON(rec))
		}
		return nil
	})
	writeJSON(w, http.StatusOK, dtos)
}

// GetRecord returns a single record.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	var dto factory.RecordJSON
	err := h.Campaign.Do(func(c *Campaign) error {
		rec, err := recordByID(c, chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		dto = h.Catalog.ToJSON(rec)
		return nil
	})
	if err != nil {
		writeDomainError(w, "Failed to get record", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// BuyPart pays for a record and puts it in transit, or with free=true
// acquires it without payment.
func (h *Handler) BuyPart(w http.ResponseWriter, r *http.Request) {
	var req BuyPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.newRecord(req.Record, req.PartSignature, req.Quantity)
	if err != nil {
		writeDomainError(w, "Invalid record", err)
		return
	}
	multiplier := req.CostMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}

	var dto PurchaseDTO
	err = h.Campaign.Do(func(c *Campaign) error {
		qm := c.Quartermaster
		if req.Free {
			qm.Acquire(rec, req.TransitDays)
			dto = PurchaseDTO{Status: "acquired", Cost: decimal.Zero, Balance: c.Account.Balance()}
			return nil
		}
		cost := decimal.Zero
		if qm.Options.PayForParts {
			cost = qm.PartCost(rec).Mul(decimal.NewFromFloat(multiplier))
		}
		if !qm.BuyPart(rec, multiplier, req.TransitDays) {
			return &supply.InsufficientFundsError{Category: supply.CategoryEquipmentPurchase, Amount: cost}
		}
		dto = PurchaseDTO{Status: "purchased", Cost: cost, Balance: c.Account.Balance()}
		return nil
	})
	if err != nil {
		writeDomainError(w, "Purchase refused", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// SellRecord sells up to quantity pieces, shots or points of a record.
func (h *Handler) SellRecord(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.sell(w, r, func(qm *supply.Quartermaster, rec *supply.Record) int {
		return qm.SellPart(rec, req.Quantity)
	})
}

// SellAllRecord sells the whole stack.
func (h *Handler) SellAllRecord(w http.ResponseWriter, r *http.Request) {
	h.sell(w, r, func(qm *supply.Quartermaster, rec *supply.Record) int {
		return qm.SellAll(rec)
	})
}

func (h *Handler) sell(w http.ResponseWriter, r *http.Request, fn func(*supply.Quartermaster, *supply.Record) int) {
	var dto SaleDTO
	err := h.Campaign.Do(func(c *Campaign) error {
		rec, err := recordByID(c, chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		dto.Sold = fn(c.Quartermaster, rec)
		dto.Balance = c.Account.Balance()
		return nil
	})
	if err != nil {
		writeDomainError(w, "Failed to sell record", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// DepodRecord takes pieces of a podded stack out of their omnipods.
func (h *Handler) DepodRecord(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Campaign.Do(func(c *Campaign) error {
		rec, err := recordByID(c, chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		if !rec.Podded {
			return fmt.Errorf("record %d is not podded: %w", rec.ID, supply.ErrInvalidRecord)
		}
		c.Quartermaster.DepodPart(rec, req.Quantity)
		return nil
	})
	if err != nil {
		writeDomainError(w, "Failed to depod record", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RefurbishRecord pays for refurbishing a record.
func (h *Handler) RefurbishRecord(w http.ResponseWriter, r *http.Request) {
	var dto PurchaseDTO
	err := h.Campaign.Do(func(c *Campaign) error {
		rec, err := recordByID(c, chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		qm := c.Quartermaster
		cost := decimal.Zero
		if qm.Options.PayForParts {
			cost = qm.PartCost(rec)
		}
		if !qm.BuyRefurbishment(rec) {
			return &supply.InsufficientFundsError{Category: supply.CategoryRefurbishment, Amount: cost}
		}
		dto = PurchaseDTO{Status: "refurbished", Cost: cost, Balance: c.Account.Balance()}
		return nil
	})
	if err != nil {
		writeDomainError(w, "Refurbishment refused", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// AMMO AND ARMOR HANDLERS
// =============================================================================

// GetAmmo returns the shots available of a type.
func (h *Handler) GetAmmo(w http.ResponseWriter, r *http.Request) {
	t, err := h.Catalog.Catalog().LookupAmmoType(chi.URLParam(r, "type"))
	if err != nil {
		writeDomainError(w, "Unknown ammo type", err)
		return
	}
	weapon := r.URL.Query().Get("weapon")

	dto := StockDTO{Type: t.Name, Weapon: weapon}
	for _, o := range h.Catalog.Catalog().CompatibleAmmoTypes(t) {
		dto.Compatible = append(dto.Compatible, o.Name)
	}
	h.Campaign.Do(func(c *Campaign) error {
		dto.Available = ammoAvailable(c.Quartermaster, t, weapon)
		return nil
	})
	writeJSON(w, http.StatusOK, dto)
}

// AddAmmo adds shots of a type.
func (h *Handler) AddAmmo(w http.ResponseWriter, r *http.Request) {
	h.changeAmmo(w, r, func(qm *supply.Quartermaster, t *supply.AmmoType, req StockRequest) int {
		if req.Weapon != "" {
			qm.AddInfantryAmmo(t, req.Weapon, req.Amount)
		} else {
			qm.AddAmmo(t, req.Amount)
		}
		return 0
	})
}

// RemoveAmmo consumes shots of a type, substituting compatible ammo when
// the campaign allows it.
func (h *Handler) RemoveAmmo(w http.ResponseWriter, r *http.Request) {
	h.changeAmmo(w, r, func(qm *supply.Quartermaster, t *supply.AmmoType, req StockRequest) int {
		if req.Weapon != "" {
			return qm.RemoveInfantryAmmo(t, req.Weapon, req.Amount)
		}
		return qm.RemoveAmmo(t, req.Amount)
	})
}

func (h *Handler) changeAmmo(w http.ResponseWriter, r *http.Request, fn func(*supply.Quartermaster, *supply.AmmoType, StockRequest) int) {
	t, err := h.Catalog.Catalog().LookupAmmoType(chi.URLParam(r, "type"))
	if err != nil {
		writeDomainError(w, "Unknown ammo type", err)
		return
	}
	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dto := StockDTO{Type: t.Name, Weapon: req.Weapon}
	h.Campaign.Do(func(c *Campaign) error {
		dto.Removed = fn(c.Quartermaster, t, req)
		dto.Available = ammoAvailable(c.Quartermaster, t, req.Weapon)
		return nil
	})
	writeJSON(w, http.StatusOK, dto)
}

func ammoAvailable(qm *supply.Quartermaster, t *supply.AmmoType, weapon string) int {
	if weapon != "" {
		return qm.InfantryAmmoAvailable(t, weapon)
	}
	return qm.AmmoAvailable(t)
}

// GetArmor returns the points available of a type.
func (h *Handler) GetArmor(w http.ResponseWriter, r *http.Request) {
	t, err := h.Catalog.Catalog().LookupArmorType(chi.URLParam(r, "type"))
	if err != nil {
		writeDomainError(w, "Unknown armor type", err)
		return
	}
	dto := StockDTO{Type: t.Name}
	h.Campaign.Do(func(c *Campaign) error {
		dto.Available = c.Quartermaster.ArmorAvailable(t)
		return nil
	})
	writeJSON(w, http.StatusOK, dto)
}

// AddArmor adds points of a type.
func (h *Handler) AddArmor(w http.ResponseWriter, r *http.Request) {
	h.changeArmor(w, r, func(qm *supply.Quartermaster, t *supply.ArmorType, n int) int {
		qm.AddArmor(t, n)
		return 0
	})
}

// RemoveArmor consumes points of a type.
func (h *Handler) RemoveArmor(w http.ResponseWriter, r *http.Request) {
	h.changeArmor(w, r, func(qm *supply.Quartermaster, t *supply.ArmorType, n int) int {
		return qm.RemoveArmor(t, n)
	})
}

func (h *Handler) changeArmor(w http.ResponseWriter, r *http.Request, fn func(*supply.Quartermaster, *supply.ArmorType, int) int) {
	t, err := h.Catalog.Catalog().LookupArmorType(chi.URLParam(r, "type"))
	if err != nil {
		writeDomainError(w, "Unknown armor type", err)
		return
	}
	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dto := StockDTO{Type: t.Name}
	h.Campaign.Do(func(c *Campaign) error {
		dto.Removed = fn(c.Quartermaster, t, req.Amount)
		dto.Available = c.Quartermaster.ArmorAvailable(t)
		return nil
	})
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

// ListUnits returns the roster.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	dtos := []UnitDTO{}
	h.Campaign.Do(func(c *Campaign) error {
		for _, u := range c.Roster.Units() {
			dtos = append(dtos, toUnitDTO(u))
		}
		return nil
	})
	writeJSON(w, http.StatusOK, dtos)
}

// BuyUnit pays for and adds a unit.
func (h *Handler) BuyUnit(w http.ResponseWriter, r *http.Request) {
	var req BuyUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Unit.Name == "" {
		writeError(w, http.StatusBadRequest, "unit name is required", nil)
		return
	}

	var dto PurchaseDTO
	err := h.Campaign.Do(func(c *Campaign) error {
		qm := c.Quartermaster
		cost := decimal.Zero
		if qm.Options.PayForUnits {
			cost = qm.UnitCost(req.Unit)
		}
		if !qm.BuyUnit(req.Unit, req.TransitDays) {
			return &supply.InsufficientFundsError{Category: supply.CategoryUnitPurchase, Amount: cost}
		}
		dto = PurchaseDTO{Status: "purchased", Cost: cost, Balance: c.Account.Balance()}
		return nil
	})
	if err != nil {
		writeDomainError(w, "Purchase refused", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// SellUnit sells a unit.
func (h *Handler) SellUnit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto SaleDTO
	err := h.Campaign.Do(func(c *Campaign) error {
		u, ok := c.Roster.Get(id)
		if !ok {
			return fmt.Errorf("unit %s: %w", id, supply.ErrUnitNotFound)
		}
		c.Quartermaster.SellUnit(u)
		dto = SaleDTO{Sold: 1, Balance: c.Account.Balance()}
		return nil
	})
	if err != nil {
		writeDomainError(w, "Failed to sell unit", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SHOPPING LIST HANDLERS
// =============================================================================

// ListShopping returns the queued items.
func (h *Handler) ListShopping(w http.ResponseWriter, r *http.Request) {
	var dtos []ShoppingItemDTO
	h.Campaign.Do(func(c *Campaign) error {
		dtos = h.shoppingDTOs(c)
		return nil
	})
	writeJSON(w, http.StatusOK, dtos)
}

// RequestShopping asks for an acquisition. Whatever cannot be bought
// right away is queued.
func (h *Handler) RequestShopping(w http.ResponseWriter, r *http.Request) {
	var req ShoppingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be positive", nil)
		return
	}

	var item *supply.ShoppingItem
	switch {
	case req.Unit != nil:
		if req.Unit.Name == "" {
			writeError(w, http.StatusBadRequest, "unit name is required", nil)
			return
		}
		item = supply.NewUnitItem(*req.Unit)
	case req.Part != nil || req.PartSignature != "":
		var rj factory.RecordJSON
		if req.Part != nil {
			rj = *req.Part
		}
		rec, err := h.newRecord(rj, req.PartSignature, 0)
		if err != nil {
			writeDomainError(w, "Invalid record", err)
			return
		}
		item = supply.NewPartItem(rec)
	default:
		writeError(w, http.StatusBadRequest, "part, part_signature or unit is required", nil)
		return
	}

	var dtos []ShoppingItemDTO
	h.Campaign.Do(func(c *Campaign) error {
		c.Shopping.Request(item, req.Quantity)
		dtos = h.shoppingDTOs(c)
		return nil
	})
	writeJSON(w, http.StatusCreated, dtos)
}

// DeleteShopping drops a queued item.
func (h *Handler) DeleteShopping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removed bool
	h.Campaign.Do(func(c *Campaign) error {
		removed = c.Shopping.Remove(id)
		return nil
	})
	if !removed {
		writeError(w, http.StatusNotFound, "Shopping item not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) shoppingDTOs(c *Campaign) []ShoppingItemDTO {
	dtos := []ShoppingItemDTO{}
	for _, item := range c.Shopping.Items() {
		dto := ShoppingItemDTO{
			ID:         item.ID,
			Name:       item.Name(),
			Quantity:   item.Quantity,
			DaysToWait: item.DaysToWait,
			Unit:       item.Unit,
		}
		if item.Part != nil {
			rj := h.Catalog.ToJSON(item.Part)
			dto.Part = &rj
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// =============================================================================
// FINANCE, EVENT AND CATALOG HANDLERS
// =============================================================================

// GetFinances returns the balance and the journal.
func (h *Handler) GetFinances(w http.ResponseWriter, r *http.Request) {
	dto := FinancesDTO{Transactions: []TransactionDTO{}}
	h.Campaign.Do(func(c *Campaign) error {
		dto.Balance = c.Account.Balance()
		for _, tx := range c.Account.Transactions() {
			dto.Transactions = append(dto.Transactions, toTransactionDTO(tx))
		}
		return nil
	})
	writeJSON(w, http.StatusOK, dto)
}

// ListEvents returns the most recent warehouse events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, []sqlite.EventRecord{})
		return
	}
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	events, err := h.Store.Events(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	if events == nil {
		events = []sqlite.EventRecord{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetCatalog returns the registered types.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := h.Catalog.Catalog()
	writeJSON(w, http.StatusOK, CatalogDTO{
		AmmoTypes:  catalog.AmmoTypes(),
		ArmorTypes: catalog.ArmorTypes(),
		Parts:      h.Catalog.Parts(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// newRecord builds an unregistered record from a catalog signature or a
// record specification. A zero amount means one piece, one ton of ammo or
// one ton of armor.
func (h *Handler) newRecord(rj factory.RecordJSON, signature string, quantity int) (*supply.Record, error) {
	var rec *supply.Record
	if signature != "" {
		spec, err := h.Catalog.LookupPart(signature)
		if err != nil {
			return nil, err
		}
		rec = supply.NewPart(spec, max(1, quantity))
	} else {
		var err error
		if rec, err = h.Catalog.FromJSON(rj); err != nil {
			return nil, err
		}
	}

	rec.ID = supply.NoID
	rec.ParentID = supply.NoID
	if rec.Amount == 0 && !rec.IsKit() {
		switch {
		case rec.Ammo != nil:
			rec.Amount = rec.Ammo.ShotsPerTon
		case rec.Armor != nil:
			rec.Amount = rec.Armor.PointsPerTon
		default:
			rec.Amount = 1
		}
	}
	return rec, nil
}

func recordByID(c *Campaign, raw string) (*supply.Record, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("record id %q: %w", raw, supply.ErrInvalidRecord)
	}
	rec := c.Warehouse.ByID(supply.RecordID(id))
	if rec == nil {
		return nil, fmt.Errorf("record %d: %w", id, supply.ErrRecordNotFound)
	}
	return rec, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine and persistence errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	var funds *supply.InsufficientFundsError
	switch {
	case errors.As(err, &funds):
		writeError(w, http.StatusPaymentRequired, message, err)
	case supply.IsNotFound(err), errors.Is(err, sqlite.ErrNoSnapshot):
		writeError(w, http.StatusNotFound, message, err)
	case supply.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
