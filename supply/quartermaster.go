/*
quartermaster.go - Buy, sell, acquire and convert operations

PURPOSE:
  The Quartermaster is the only component that combines a Store mutation
  with a debit or credit. Every operation is synchronous and total: it
  either completes, or refuses without changing anything.

FAILURE MODES (none of them are errors):
  - Rejected by policy: a placeholder record with no owning unit carries
    no inventory meaning and is silently dropped.
  - Insufficient funds: the debit fails, the operation returns false and
    neither the Store nor the finances change.
  - Insufficient stock: sales and removals clamp to what is on hand and
    return the clamped amount.

PAYMENT GATING:
  Options.PayForParts gates parts, armor, ammo and refurbishment.
  Options.PayForUnits gates unit purchases. With payment disabled the
  purchase always succeeds and nothing is debited. Sales always credit.

AMMO SUBSTITUTION:
  With Options.UseAmmoByType, removing or counting ammo also looks at
  present spare stock of compatible types (same family, different rack
  size) through Convert/ConvertNeeded. A compatible stack either covers
  the whole remaining shortfall or is skipped; there is no partial
  conversion.

SEE ALSO:
  - store.go: merge and removal rules
  - fungibility.go: conversion arithmetic
  - shopping.go: AcquireEquipment callers
*/
package supply

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// =============================================================================
// QUARTERMASTER
// =============================================================================

type Quartermaster struct {
	Store   *Store
	Finance Finance
	Roster  Roster
	Options Options
	Logger  *log.Logger
}

// NewQuartermaster wires a quartermaster. roster may be nil when the caller
// never buys or sells units.
func NewQuartermaster(store *Store, finance Finance, roster Roster, opts Options) *Quartermaster {
	return &Quartermaster{
		Store:   store,
		Finance: finance,
		Roster:  roster,
		Options: opts,
		Logger:  log.Default(),
	}
}

func (q *Quartermaster) logf(format string, args ...any) {
	if q.Logger == nil {
		return
	}
	q.Logger.Printf("[Quartermaster] "+format, args...)
}

// =============================================================================
// ACQUISITION AND ARRIVAL
// =============================================================================

// AcquirePart puts r into the warehouse with the given transit time.
// A placeholder without an owning unit is dropped.
func (q *Quartermaster) AcquirePart(r *Record, transitDays int) {
	if r.Placeholder && r.UnitID == "" {
		q.logf("dropping placeholder %s: no owning unit", r.Identity())
		return
	}
	r.DaysToArrival = max(0, transitDays)
	q.Store.InsertMerging(r)
}

// PartArrives marks r present and merges it into matching spare stock.
// Records that belong to a unit are left to the unit's own bookkeeping.
func (q *Quartermaster) PartArrives(r *Record) {
	if r.UnitID != "" {
		return
	}
	r.DaysToArrival = 0
	q.Store.emit(EventArrived, r)
	q.Store.InsertMerging(r)
}

// AdvanceTransit counts every in-transit spare down by one day and delivers
// the ones that reach zero. It returns how many records arrived.
func (q *Quartermaster) AdvanceTransit() int {
	arrived := 0
	for _, r := range q.Store.All() {
		if !q.Store.Contains(r) || r.UnitID != "" || r.DaysToArrival <= 0 {
			continue
		}
		r.DaysToArrival--
		if r.DaysToArrival == 0 {
			q.PartArrives(r)
			arrived++
		}
	}
	return arrived
}

// =============================================================================
// UNITS
// =============================================================================

// UnitCost is the purchase price of spec: base cost (alternate cost for
// infantry) times the clan or inner sphere multiplier.
func (q *Quartermaster) UnitCost(spec UnitSpec) decimal.Decimal {
	base := spec.BaseCost
	if spec.Infantry {
		base = spec.AlternateCost
	}
	if spec.Clan {
		return base.Mul(q.Options.clanMultiplier())
	}
	return base.Mul(q.Options.innerSphereMultiplier())
}

// BuyUnit pays for and adds a unit. Returns false, changing nothing, when
// the campaign cannot afford it.
func (q *Quartermaster) BuyUnit(spec UnitSpec, transitDays int) bool {
	if q.Options.PayForUnits {
		cost := q.UnitCost(spec)
		if !q.Finance.Debit(cost, CategoryUnitPurchase, "Purchased "+spec.Name) {
			q.logf("cannot afford unit %s (%s)", spec.Name, cost.StringFixed(2))
			return false
		}
	}
	q.Roster.AddUnit(spec, transitDays)
	return true
}

// SellUnit credits the unit's sale value and removes it from the roster.
func (q *Quartermaster) SellUnit(u Unit) {
	q.Finance.Credit(u.SellValue, CategoryUnitSale, "Sold "+u.Spec.Name)
	q.Roster.RemoveUnit(u.ID)
}

// =============================================================================
// PARTS
// =============================================================================

// PartCost is the purchase price of the whole record before any per-call
// multiplier. A kit costs the sum of its components' costs.
func (q *Quartermaster) PartCost(r *Record) decimal.Decimal {
	if r.IsKit() {
		total := decimal.Zero
		for _, c := range r.Components {
			total = total.Add(q.PartCost(c))
		}
		return total
	}
	value := r.Value()
	if r.Part != nil && r.Part.Common {
		value = value.Mul(q.Options.commonMultiplier())
	}
	return value
}

// BuyPart pays value * costMultiplier and acquires r. A kit is not stored
// itself; its components are acquired with the same transit time.
func (q *Quartermaster) BuyPart(r *Record, costMultiplier float64, transitDays int) bool {
	if q.Options.PayForParts {
		cost := q.PartCost(r).Mul(decimal.NewFromFloat(costMultiplier))
		if !q.Finance.Debit(cost, CategoryEquipmentPurchase, "Purchase of "+describe(r)) {
			q.logf("cannot afford %s (%s)", describe(r), cost.StringFixed(2))
			return false
		}
	}
	q.Acquire(r, transitDays)
	return true
}

// Acquire takes r in without payment. A kit is unpacked into its components.
func (q *Quartermaster) Acquire(r *Record, transitDays int) {
	if !r.IsKit() {
		q.AcquirePart(r, transitDays)
		return
	}
	for _, c := range r.Components {
		q.AcquirePart(c, transitDays)
	}
}

// BuyRefurbishment pays for refurbishing r. The Store is not touched.
func (q *Quartermaster) BuyRefurbishment(r *Record) bool {
	if !q.Options.PayForParts {
		return true
	}
	return q.Finance.Debit(q.PartCost(r), CategoryRefurbishment, "Refurbishment of "+describe(r))
}

// SellPart sells up to quantity pieces of r and returns how many were sold.
// Ammo and armor are routed to SellAmmo and SellArmor.
func (q *Quartermaster) SellPart(r *Record, quantity int) int {
	switch r.Kind {
	case KindAmmo, KindInfantryAmmo:
		return q.SellAmmo(r, quantity)
	case KindArmor:
		return q.SellArmor(r, quantity)
	}
	quantity = clamp(quantity, r.Amount)
	if quantity == 0 {
		return 0
	}
	credit := q.unitSaleValue(r).Mul(decimal.NewFromInt(int64(quantity)))
	q.Finance.Credit(credit, CategoryEquipmentSale, fmt.Sprintf("Sale of %d %s", quantity, describe(r)))
	q.consume(r, quantity)
	return quantity
}

// SellAll sells the whole stack.
func (q *Quartermaster) SellAll(r *Record) int {
	return q.SellPart(r, r.Amount)
}

func (q *Quartermaster) unitSaleValue(r *Record) decimal.Decimal {
	if r.Amount <= 0 {
		return decimal.Zero
	}
	value := r.Value().Div(decimal.NewFromInt(int64(r.Amount)))
	if r.Damaged {
		value = value.Mul(q.Options.damagedMultiplier())
	}
	return value
}

// SellAmmo sells up to shots shots of r, credited pro rata to the stack value.
func (q *Quartermaster) SellAmmo(r *Record, shots int) int {
	return q.sellProRata(r, shots)
}

// SellArmor sells up to points points of r, credited pro rata to the stack value.
func (q *Quartermaster) SellArmor(r *Record, points int) int {
	return q.sellProRata(r, points)
}

func (q *Quartermaster) sellProRata(r *Record, amount int) int {
	amount = clamp(amount, r.Amount)
	if amount == 0 {
		return 0
	}
	credit := r.Value().
		Mul(decimal.NewFromInt(int64(amount))).
		Div(decimal.NewFromInt(int64(r.Amount)))
	q.Finance.Credit(credit, CategoryEquipmentSale, fmt.Sprintf("Sale of %d %s", amount, describe(r)))
	q.consume(r, amount)
	return amount
}

// consume lowers r's magnitude; a stack drained to zero leaves the Store.
func (q *Quartermaster) consume(r *Record, n int) {
	r.Amount -= n
	if r.Amount <= 0 {
		r.Amount = 0
		q.Store.Remove(r)
		return
	}
	if q.Store.Contains(r) {
		q.Store.emit(EventChanged, r)
	}
}

// DepodPart takes up to quantity pieces of a podded stack out of their pods.
// Each piece becomes a new unpodded spare plus an omnipod priced at a fifth
// of the original piece. A source drained to zero leaves the Store.
func (q *Quartermaster) DepodPart(r *Record, quantity int) {
	if !r.Podded || r.Kind != KindPart || r.Part == nil {
		return
	}
	n := min(quantity, r.Amount)
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		piece := r.Clone()
		piece.Podded = false
		piece.Amount = 1
		piece.State = StateSpare
		piece.UnitID = ""
		piece.ParentID = NoID
		q.Store.Register(piece)

		pod := NewPart(PartSpec{
			Kind:  "omnipod",
			Spec:  r.Part.Signature(),
			Price: r.Part.Price.Div(decimal.NewFromInt(5)),
		}, 1)
		pod.DaysToArrival = r.DaysToArrival
		q.Store.Register(pod)

		r.Amount--
	}
	if r.Amount > 0 {
		q.Store.emit(EventChanged, r)
		return
	}
	q.Store.Remove(r)
}

// =============================================================================
// STOCK - Ammo and armor by type
// =============================================================================

// AddAmmo adds shots to the present spare stock of t, creating it if needed.
func (q *Quartermaster) AddAmmo(t *AmmoType, shots int) {
	q.addStock(NewAmmo(t, shots))
}

// AddInfantryAmmo adds shots to the present spare stock of (t, weapon).
func (q *Quartermaster) AddInfantryAmmo(t *AmmoType, weapon string, shots int) {
	q.addStock(NewInfantryAmmo(t, weapon, shots))
}

// AddArmor adds points to the present spare stock of t.
func (q *Quartermaster) AddArmor(t *ArmorType, points int) {
	q.addStock(NewArmor(t, points))
}

func (q *Quartermaster) addStock(fresh *Record) {
	if fresh.Amount <= 0 {
		return
	}
	identity := fresh.Identity()
	existing := q.Store.FindSpare(func(r *Record) bool {
		return isPresentSpare(r) && r.Identity() == identity
	})
	if existing != nil {
		existing.AddMagnitude(fresh.Amount)
		q.Store.emit(EventChanged, existing)
		return
	}
	q.Store.Register(fresh)
}

// RemoveAmmo consumes up to shotsWanted shots of t and returns how many were
// satisfied. Exact stock goes first; with UseAmmoByType, a compatible stack
// that can cover the rest is converted. The result can exceed shotsWanted by
// the conversion rounding.
func (q *Quartermaster) RemoveAmmo(t *AmmoType, shotsWanted int) int {
	return q.removeAmmo(NewAmmo(t, 0), shotsWanted)
}

// RemoveInfantryAmmo is RemoveAmmo for (t, weapon) stock.
func (q *Quartermaster) RemoveInfantryAmmo(t *AmmoType, weapon string, shotsWanted int) int {
	return q.removeAmmo(NewInfantryAmmo(t, weapon, 0), shotsWanted)
}

// RemoveArmor consumes up to points points of t and returns how many were
// removed.
func (q *Quartermaster) RemoveArmor(t *ArmorType, points int) int {
	if points <= 0 {
		return 0
	}
	return q.drainExact(NewArmor(t, 0).Identity(), points)
}

func (q *Quartermaster) removeAmmo(want *Record, shotsWanted int) int {
	if shotsWanted <= 0 {
		return 0
	}
	removed := q.drainExact(want.Identity(), shotsWanted)
	if removed >= shotsWanted || !q.Options.UseAmmoByType {
		return removed
	}
	for _, stock := range q.compatibleStock(want) {
		needed := ConvertNeeded(want.Ammo, shotsWanted-removed, stock.Ammo)
		if stock.Amount < needed {
			continue
		}
		q.consume(stock, needed)
		removed += Convert(want.Ammo, needed, stock.Ammo)
		if removed >= shotsWanted {
			break
		}
	}
	return removed
}

func (q *Quartermaster) drainExact(identity Identity, wanted int) int {
	removed := 0
	for _, r := range q.Store.Spares() {
		if removed >= wanted {
			break
		}
		if !isPresentSpare(r) || r.Identity() != identity {
			continue
		}
		take := min(r.Amount, wanted-removed)
		q.consume(r, take)
		removed += take
	}
	return removed
}

// AmmoAvailable returns the present spare shots of t, plus what compatible
// stock converts to when UseAmmoByType is on.
func (q *Quartermaster) AmmoAvailable(t *AmmoType) int {
	return q.available(NewAmmo(t, 0))
}

// InfantryAmmoAvailable is AmmoAvailable for (t, weapon) stock.
func (q *Quartermaster) InfantryAmmoAvailable(t *AmmoType, weapon string) int {
	return q.available(NewInfantryAmmo(t, weapon, 0))
}

// ArmorAvailable returns the present spare points of t.
func (q *Quartermaster) ArmorAvailable(t *ArmorType) int {
	return q.available(NewArmor(t, 0))
}

func (q *Quartermaster) available(want *Record) int {
	identity := want.Identity()
	total := 0
	for _, r := range q.Store.Spares() {
		if isPresentSpare(r) && r.Identity() == identity {
			total += r.Amount
		}
	}
	if !q.Options.UseAmmoByType || !want.IsAmmo() {
		return total
	}
	for _, stock := range q.compatibleStock(want) {
		total += Convert(want.Ammo, stock.Amount, stock.Ammo)
	}
	return total
}

func (q *Quartermaster) compatibleStock(want *Record) []*Record {
	var out []*Record
	for _, r := range q.Store.Spares() {
		if !isPresentSpare(r) || r.Kind != want.Kind || r.Podded {
			continue
		}
		if r.Weapon != want.Weapon || !want.Ammo.IsCompatibleWith(r.Ammo) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// =============================================================================
// SHOPPING LIST ENTRY POINT
// =============================================================================

// CanAfford asks the finance ledger when it can answer without committing.
func (q *Quartermaster) CanAfford(amount decimal.Decimal) bool {
	if checker, ok := q.Finance.(AffordabilityChecker); ok {
		return checker.CanAfford(amount)
	}
	return true
}

// ItemCost is what one lot of item costs, or zero when payment is disabled.
func (q *Quartermaster) ItemCost(item *ShoppingItem) decimal.Decimal {
	if item.IsUnit() {
		if !q.Options.PayForUnits {
			return decimal.Zero
		}
		return q.UnitCost(*item.Unit)
	}
	if !q.Options.PayForParts {
		return decimal.Zero
	}
	return q.PartCost(item.Part)
}

// AcquireEquipment tries to obtain one lot of item: affordability check,
// acquisition roll, then the purchase. Returns false on any failure.
func (q *Quartermaster) AcquireEquipment(item *ShoppingItem, roller AcquisitionRoller) bool {
	if !q.CanAfford(q.ItemCost(item)) {
		return false
	}
	result := roller.Roll(item)
	if !result.Success {
		return false
	}
	if item.IsUnit() {
		return q.BuyUnit(*item.Unit, result.TransitDays)
	}
	return q.BuyPart(item.Part.Clone(), 1.0, result.TransitDays)
}

// =============================================================================
// HELPERS
// =============================================================================

func isPresentSpare(r *Record) bool {
	return r.State.IsSpare() && r.UnitID == "" && r.IsPresent()
}

func clamp(n, upper int) int {
	return max(0, min(n, upper))
}

func describe(r *Record) string {
	return r.Identity().String()
}
