/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Records travel in
  their factory.RecordJSON form so the API, the catalog and the sqlite
  snapshot all agree on one shape.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/catalog.go: RecordJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/factory"
	"github.com/warp/quartermaster/supply"
	"github.com/warp/quartermaster/supply/finance"
)

// =============================================================================
// CAMPAIGN
// =============================================================================

// CampaignDTO is the session summary.
type CampaignDTO struct {
	Day           int             `json:"day"`
	Date          string          `json:"date"`
	Balance       decimal.Decimal `json:"balance"`
	Records       int             `json:"records"`
	Units         int             `json:"units"`
	ShoppingItems int             `json:"shopping_items"`
	Options       supply.Options  `json:"options"`
	Scenario      string          `json:"scenario,omitempty"`
}

// AdvanceDaysRequest advances the calendar.
type AdvanceDaysRequest struct {
	Days int `json:"days"`
}

// =============================================================================
// RECORDS
// =============================================================================

// BuyPartRequest buys (or, with Free, just acquires) a record.
type BuyPartRequest struct {
	Record         factory.RecordJSON `json:"record"`
	PartSignature  string             `json:"part_signature,omitempty"` // catalog part instead of Record
	Quantity       int                `json:"quantity,omitempty"`
	CostMultiplier float64            `json:"cost_multiplier,omitempty"`
	TransitDays    int                `json:"transit_days"`
	Free           bool               `json:"free,omitempty"`
}

// PurchaseDTO reports a purchase.
type PurchaseDTO struct {
	Status  string          `json:"status"`
	Cost    decimal.Decimal `json:"cost"`
	Balance decimal.Decimal `json:"balance"`
}

// QuantityRequest is the body of sell and depod calls.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SaleDTO reports a sale.
type SaleDTO struct {
	Sold    int             `json:"sold"`
	Balance decimal.Decimal `json:"balance"`
}

// =============================================================================
// AMMO / ARMOR
// =============================================================================

// StockRequest adds or removes ammo shots or armor points.
type StockRequest struct {
	Amount int    `json:"amount"`
	Weapon string `json:"weapon,omitempty"` // infantry ammo only
}

// StockDTO reports stock of one type.
type StockDTO struct {
	Type       string   `json:"type"`
	Weapon     string   `json:"weapon,omitempty"`
	Available  int      `json:"available"`
	Removed    int      `json:"removed,omitempty"`
	Compatible []string `json:"compatible,omitempty"`
}

// =============================================================================
// UNITS
// =============================================================================

// UnitDTO represents a unit in API responses.
type UnitDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SellValue     decimal.Decimal `json:"sell_value"`
	DaysToArrival int             `json:"days_to_arrival"`
	Clan          bool            `json:"clan,omitempty"`
	Infantry      bool            `json:"infantry,omitempty"`
}

// BuyUnitRequest buys a unit.
type BuyUnitRequest struct {
	Unit        supply.UnitSpec `json:"unit"`
	TransitDays int             `json:"transit_days"`
}

func toUnitDTO(u supply.Unit) UnitDTO {
	return UnitDTO{
		ID:            u.ID,
		Name:          u.Spec.Name,
		SellValue:     u.SellValue,
		DaysToArrival: u.DaysToArrival,
		Clan:          u.Spec.Clan,
		Infantry:      u.Spec.Infantry,
	}
}

// =============================================================================
// SHOPPING LIST
// =============================================================================

// ShoppingRequest queues an acquisition. Exactly one of Part,
// PartSignature and Unit is used.
type ShoppingRequest struct {
	Part          *factory.RecordJSON `json:"part,omitempty"`
	PartSignature string              `json:"part_signature,omitempty"`
	Unit          *supply.UnitSpec    `json:"unit,omitempty"`
	Quantity      int                 `json:"quantity"`
}

// ShoppingItemDTO represents a queued acquisition.
type ShoppingItemDTO struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Quantity   int                 `json:"quantity"`
	DaysToWait int                 `json:"days_to_wait"`
	Part       *factory.RecordJSON `json:"part,omitempty"`
	Unit       *supply.UnitSpec    `json:"unit,omitempty"`
}

// =============================================================================
// FINANCES
// =============================================================================

// TransactionDTO represents a finance journal entry.
type TransactionDTO struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Memo     string          `json:"memo"`
}

func toTransactionDTO(tx finance.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:       tx.ID,
		Date:     tx.Date.Format("2006-01-02"),
		Category: string(tx.Category),
		Amount:   tx.Amount,
		Memo:     tx.Memo,
	}
}

// FinancesDTO is the balance plus the journal.
type FinancesDTO struct {
	Balance      decimal.Decimal  `json:"balance"`
	Transactions []TransactionDTO `json:"transactions"`
}

// =============================================================================
// CATALOG
// =============================================================================

// CatalogDTO lists the registered types.
type CatalogDTO struct {
	AmmoTypes  []*supply.AmmoType  `json:"ammo_types"`
	ArmorTypes []*supply.ArmorType `json:"armor_types"`
	Parts      []supply.PartSpec   `json:"parts"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest loads a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// COMMON
// =============================================================================

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SavedDTO reports a save or load.
type SavedDTO struct {
	Status string    `json:"status"`
	Day    int       `json:"day"`
	At     time.Time `json:"at"`
}
