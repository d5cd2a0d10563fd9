/*
shopping.go - Daily-retried acquisition backlog

PURPOSE:
  Requests the quartermaster could not fill right away wait here. Once per
  simulated day every item counts down; items that reach zero roll again.

REQUEST FLOW:
  1. An equivalent queued item (same part identity, or same unit name)
     just grows by the requested quantity. No roll happens.
  2. Otherwise the list tries to acquire one lot at a time until the first
     failure, whether the roll failed or the money ran out.
  3. Whatever is left is queued with a fresh wait countdown.

DAILY TICK:
  Countdowns drop by one. Due items retry exactly like step 2. Items with
  quantity left stay queued with a reset countdown; satisfied items go.

SEE ALSO:
  - quartermaster.go: AcquireEquipment
  - roller.go: default AcquisitionRoller implementations
*/
package supply

import (
	"log"

	"github.com/google/uuid"
)

// =============================================================================
// SHOPPING ITEM
// =============================================================================

// ShoppingItem is one queued acquisition. Exactly one of Part and Unit is
// set. Part is the template for a single lot; it is cloned per purchase.
type ShoppingItem struct {
	ID         string
	Part       *Record
	Unit       *UnitSpec
	Quantity   int
	DaysToWait int
}

// NewPartItem creates a request for lots of template.
func NewPartItem(template *Record) *ShoppingItem {
	return &ShoppingItem{ID: uuid.NewString(), Part: template}
}

// NewUnitItem creates a request for units of spec.
func NewUnitItem(spec UnitSpec) *ShoppingItem {
	return &ShoppingItem{ID: uuid.NewString(), Unit: &spec}
}

func (i *ShoppingItem) IsUnit() bool { return i.Unit != nil }

func (i *ShoppingItem) Name() string {
	if i.IsUnit() {
		return i.Unit.Name
	}
	return describe(i.Part)
}

// SameAs reports whether o asks for the same thing as i.
func (i *ShoppingItem) SameAs(o *ShoppingItem) bool {
	if i.IsUnit() != o.IsUnit() {
		return false
	}
	if i.IsUnit() {
		return i.Unit.Name == o.Unit.Name
	}
	return i.Part.Kind == o.Part.Kind && i.Part.Identity() == o.Part.Identity()
}

// =============================================================================
// SHOPPING LIST
// =============================================================================

type ShoppingList struct {
	qm     *Quartermaster
	roller AcquisitionRoller
	items  []*ShoppingItem
	Logger *log.Logger
}

func NewShoppingList(qm *Quartermaster, roller AcquisitionRoller) *ShoppingList {
	return &ShoppingList{qm: qm, roller: roller, Logger: log.Default()}
}

func (l *ShoppingList) logf(format string, args ...any) {
	if l.Logger == nil {
		return
	}
	l.Logger.Printf("[Shopping] "+format, args...)
}

// Request asks for quantity lots of item.
func (l *ShoppingList) Request(item *ShoppingItem, quantity int) {
	if quantity <= 0 {
		return
	}
	if existing := l.find(item); existing != nil {
		existing.Quantity += quantity
		l.logf("%s: %d more queued (%d outstanding)", existing.Name(), quantity, existing.Quantity)
		return
	}
	remaining := l.attempt(item, quantity)
	if remaining <= 0 {
		return
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Quantity = remaining
	item.DaysToWait = l.qm.Options.waitDays()
	l.items = append(l.items, item)
	l.logf("%s: %d queued, retry in %d days", item.Name(), remaining, item.DaysToWait)
}

// Tick advances the list by one day and returns how many lots were acquired.
func (l *ShoppingList) Tick() int {
	acquired := 0
	kept := l.items[:0]
	for _, item := range l.items {
		item.DaysToWait--
		if item.DaysToWait <= 0 {
			before := item.Quantity
			item.Quantity = l.attempt(item, item.Quantity)
			acquired += before - item.Quantity
			if item.Quantity <= 0 {
				l.logf("%s: satisfied", item.Name())
				continue
			}
			item.DaysToWait = l.qm.Options.waitDays()
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = nil
	}
	l.items = kept
	return acquired
}

// attempt acquires lots one at a time until the first failure and returns
// the quantity still missing.
func (l *ShoppingList) attempt(item *ShoppingItem, quantity int) int {
	for quantity > 0 && l.qm.AcquireEquipment(item, l.roller) {
		quantity--
	}
	return quantity
}

func (l *ShoppingList) find(item *ShoppingItem) *ShoppingItem {
	for _, existing := range l.items {
		if existing.SameAs(item) {
			return existing
		}
	}
	return nil
}

// Items returns the queued items in request order.
func (l *ShoppingList) Items() []*ShoppingItem {
	out := make([]*ShoppingItem, len(l.items))
	copy(out, l.items)
	return out
}

// Remove drops a queued item by id.
func (l *ShoppingList) Remove(id string) bool {
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Restore replaces the queue with items loaded from a snapshot.
func (l *ShoppingList) Restore(items []*ShoppingItem) {
	l.items = append([]*ShoppingItem(nil), items...)
}
