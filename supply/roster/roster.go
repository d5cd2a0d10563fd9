// Package roster provides an in-memory unit roster implementing supply.Roster.
package roster

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/supply"
)

type Roster struct {
	mu    sync.RWMutex
	units map[string]supply.Unit

	// SaleFraction is the share of the base cost a unit sells for.
	SaleFraction decimal.Decimal
}

func New() *Roster {
	return &Roster{
		units:        make(map[string]supply.Unit),
		SaleFraction: decimal.NewFromFloat(0.5),
	}
}

// AddUnit implements supply.Roster.
func (r *Roster) AddUnit(spec supply.UnitSpec, transitDays int) supply.Unit {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := spec.BaseCost
	if spec.Infantry {
		base = spec.AlternateCost
	}
	u := supply.Unit{
		ID:            uuid.NewString(),
		Spec:          spec,
		SellValue:     base.Mul(r.SaleFraction),
		DaysToArrival: transitDays,
	}
	r.units[u.ID] = u
	return u
}

// RemoveUnit implements supply.Roster.
func (r *Roster) RemoveUnit(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[id]; !ok {
		return false
	}
	delete(r.units, id)
	return true
}

func (r *Roster) Get(id string) (supply.Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	return u, ok
}

// Units returns the roster sorted by name, then id.
func (r *Roster) Units() []supply.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]supply.Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spec.Name != out[j].Spec.Name {
			return out[i].Spec.Name < out[j].Spec.Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AdvanceTransit counts in-transit units down by one day.
func (r *Roster) AdvanceTransit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.units {
		if u.DaysToArrival > 0 {
			u.DaysToArrival--
			r.units[id] = u
		}
	}
}

// Restore replaces the roster with units loaded from a snapshot.
func (r *Roster) Restore(units []supply.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units = make(map[string]supply.Unit, len(units))
	for _, u := range units {
		r.units[u.ID] = u
	}
}

var _ supply.Roster = (*Roster)(nil)
