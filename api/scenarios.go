/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built campaign states for demos and integration tests.
	Each scenario resets the session and stocks the warehouse, roster and
	shopping list to show off specific engine features.

AVAILABLE SCENARIOS:

	basic-warehouse:  Spare parts, ammo, armor, omnipods and a delivery
	lrm-fungibility:  Mixed LRM racks with ammo substitution enabled
	tight-budget:     Low funds, so most of a shopping request is queued

HOW SCENARIOS WORK:
 1. Reset the campaign (and the saved snapshot, when persisted)
 2. Adjust options and starting funds for the scenario
 3. Acquire stock for free through the quartermaster
 4. Optionally place shopping list requests

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "lrm-fungibility"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(c)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the campaign. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: the endpoints the loaded state is explored through
  - factory/presets.go: the catalog scenario stock is looked up in
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/supply"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "basic-warehouse",
		Name:        "Basic Warehouse",
		Description: "Spare parts, ammo and armor, podded actuators and a laser in transit",
	},
	{
		ID:          "lrm-fungibility",
		Name:        "LRM Fungibility",
		Description: "LRM5, LRM15 and LRM20 stocks with ammo substitution by type enabled",
	},
	{
		ID:          "tight-budget",
		Name:        "Tight Budget",
		Description: "A shopping request larger than the treasury; the rest waits in the queue",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	var current string
	h.Campaign.Do(func(c *Campaign) error {
		current = h.currentScenario
		return nil
	})
	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var load func(c *Campaign) error
	switch req.ScenarioID {
	case "basic-warehouse":
		load = h.loadBasicWarehouseScenario
	case "lrm-fungibility":
		load = h.loadLRMFungibilityScenario
	case "tight-budget":
		load = h.loadTightBudgetScenario
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if h.Store != nil {
		if err := h.Store.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
			return
		}
	}

	err := h.Campaign.Do(func(c *Campaign) error {
		h.currentScenario = ""
		if err := load(c); err != nil {
			return err
		}
		h.currentScenario = req.ScenarioID
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetCampaign starts a fresh session from the server configuration.
func (h *Handler) ResetCampaign(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		if err := h.Store.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
			return
		}
	}
	h.Campaign.Do(func(c *Campaign) error {
		c.Reset(h.base)
		h.currentScenario = ""
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadBasicWarehouseScenario(c *Campaign) error {
	cfg := h.base
	cfg.StartingFunds = decimal.NewFromInt(1_000_000)
	c.Reset(cfg)
	qm := c.Quartermaster

	doubleHS, err := h.Catalog.LookupPart("heat_sink:double")
	if err != nil {
		return err
	}
	leftArm, err := h.Catalog.LookupPart("actuator:left_arm")
	if err != nil {
		return err
	}
	laser, err := h.Catalog.LookupPart("medium_laser")
	if err != nil {
		return err
	}
	lrm10, err := h.Catalog.Catalog().LookupAmmoType("LRM10")
	if err != nil {
		return err
	}
	standard, err := h.Catalog.Catalog().LookupArmorType("Standard")
	if err != nil {
		return err
	}

	qm.AcquirePart(supply.NewPart(doubleHS, 4), 0)

	// Two actuators still in their omnipods
	podded := supply.NewPart(leftArm, 2)
	podded.Podded = true
	qm.AcquirePart(podded, 0)

	qm.AddAmmo(lrm10, 24)
	qm.AddArmor(standard, 32)

	// A laser on its way
	qm.AcquirePart(supply.NewPart(laser, 1), 3)

	c.Roster.AddUnit(supply.UnitSpec{Name: "Locust LCT-1V", BaseCost: decimal.NewFromInt(1_512_000)}, 0)
	return nil
}

func (h *Handler) loadLRMFungibilityScenario(c *Campaign) error {
	cfg := h.base
	cfg.Options.UseAmmoByType = true
	cfg.StartingFunds = decimal.NewFromInt(250_000)
	c.Reset(cfg)
	qm := c.Quartermaster

	stock := []struct {
		name  string
		shots int
	}{
		{"LRM5", 48},
		{"LRM15", 8},
		{"LRM20", 6},
		{"SRM2", 50},
	}
	for _, s := range stock {
		t, err := h.Catalog.Catalog().LookupAmmoType(s.name)
		if err != nil {
			return err
		}
		qm.AddAmmo(t, s.shots)
	}
	return nil
}

func (h *Handler) loadTightBudgetScenario(c *Campaign) error {
	cfg := h.base
	cfg.StartingFunds = decimal.NewFromInt(50_000)
	c.Reset(cfg)

	laser, err := h.Catalog.LookupPart("medium_laser")
	if err != nil {
		return err
	}
	c.Shopping.Request(supply.NewPartItem(supply.NewPart(laser, 1)), 3)
	return nil
}
