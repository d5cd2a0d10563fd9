/*
errors.go - Centralized error types for the supply engine

PURPOSE:
  The engine itself never fails: funds and stock shortages are reported
  as booleans and clamped amounts. These errors are for the layers around
  it (catalog lookups, persistence, the HTTP API), which wrap them with
  context and classify them with errors.Is.

ERROR CATEGORIES:
  1. Lookup errors - unknown record ids and catalog types
  2. Validation errors - malformed record specifications
  3. Funds errors - an explicit purchase the caller wants to report

SEE ALSO:
  - registry.go: returns ErrUnknownAmmoType / ErrUnknownArmorType
  - api/handlers.go: maps these errors to HTTP statuses
*/
package supply

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRecordNotFound is returned when a record id is not in the Store.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownAmmoType is returned when an ammo type name is not registered.
	ErrUnknownAmmoType = errors.New("unknown ammo type")

	// ErrUnknownArmorType is returned when an armor type name is not registered.
	ErrUnknownArmorType = errors.New("unknown armor type")

	// ErrInvalidRecord is returned when a record specification is malformed.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInsufficientFunds is returned by outer layers when a purchase was refused.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnitNotFound is returned when a unit id is not on the roster.
	ErrUnitNotFound = errors.New("unit not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InsufficientFundsError carries the refused amount.
type InsufficientFundsError struct {
	Category Category
	Amount   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for %s: %s", e.Category, e.Amount.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record, unit or type.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrUnitNotFound) ||
		errors.Is(err, ErrUnknownAmmoType) ||
		errors.Is(err, ErrUnknownArmorType)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRecord) ||
		errors.Is(err, ErrInsufficientFunds)
}
