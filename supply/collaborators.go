/*
collaborators.go - Contracts the engine consumes from the rest of the campaign

PURPOSE:
  The quartermaster needs money, a unit roster, configuration and an
  acquisition roll. None of these belong to the engine; it only requires
  the small contracts below. Default implementations live in
  supply/finance, supply/roster and roller.go.

EXTENSION INTERFACES:
  Finance is deliberately minimal (Debit/Credit). A finance implementation
  that can answer "can I afford this?" without committing also implements
  AffordabilityChecker; the shopping list uses it to skip a roll it could
  never pay for. Without it, affordability is discovered by the debit.

SEE ALSO:
  - options.go: configuration flags and multipliers
  - supply/finance/account.go: in-memory Finance
  - supply/roster/roster.go: in-memory Roster
*/
package supply

import "github.com/shopspring/decimal"

// =============================================================================
// FINANCE
// =============================================================================

type Category string

const (
	CategoryUnitPurchase      Category = "unit_purchase"
	CategoryUnitSale          Category = "unit_sale"
	CategoryEquipmentPurchase Category = "equipment_purchase"
	CategoryEquipmentSale     Category = "equipment_sale"
	CategoryRefurbishment     Category = "refurbishment"
)

// Finance is the campaign's money ledger.
type Finance interface {
	// Debit commits the payment and returns true, or returns false and
	// changes nothing when funds are insufficient.
	Debit(amount decimal.Decimal, category Category, memo string) bool

	// Credit always succeeds.
	Credit(amount decimal.Decimal, category Category, memo string)
}

// AffordabilityChecker is an optional Finance extension.
type AffordabilityChecker interface {
	CanAfford(amount decimal.Decimal) bool
}

// =============================================================================
// UNITS
// =============================================================================

// UnitSpec describes a unit that can be bought.
type UnitSpec struct {
	Name          string          `json:"name"`
	BaseCost      decimal.Decimal `json:"base_cost"`
	AlternateCost decimal.Decimal `json:"alternate_cost"` // used for infantry
	Infantry      bool            `json:"infantry"`
	Clan          bool            `json:"clan"`
}

// Unit is a unit in the campaign's roster.
type Unit struct {
	ID            string
	Spec          UnitSpec
	SellValue     decimal.Decimal
	DaysToArrival int
}

// Roster owns the campaign's units.
type Roster interface {
	AddUnit(spec UnitSpec, transitDays int) Unit
	RemoveUnit(id string) bool
}

// =============================================================================
// ACQUISITION ROLL
// =============================================================================

// AcquisitionResult is the outcome of one acquisition roll.
type AcquisitionResult struct {
	Success     bool
	TransitDays int
}

// AcquisitionRoller decides whether a single item can be found and how long
// it takes to deliver. Who rolls and with what skill is up to the implementation.
type AcquisitionRoller interface {
	Roll(item *ShoppingItem) AcquisitionResult
}
