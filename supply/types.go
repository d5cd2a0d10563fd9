/*
Package supply provides the logistics engine of a campaign: spare parts,
armor and ammunition stock, the quartermaster that buys and sells them
against the campaign finances, and the shopping list that retries
purchases that could not be made right away.

PURPOSE:
  Everything a campaign owns that is not a unit or a person is a Record.
  Records live in a Store, which decides what counts as "the same spare"
  and merges stacks together. The Quartermaster is the only component
  that moves money; the ShoppingList calls the Quartermaster once per day.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: one stack of parts, armor points or ammo shots
  - Kind: which variant a Record is (tagged union, not a class tree)
  - Identity: the comparable type identity used for merging
  - State: where the record is (spare, on a unit, reserved, under repair)

INVARIANTS:
  1. Merge identity: two records merge only when they have the same
     Identity, the incoming one is Spare, the existing one is Spare or
     UnderRepair, and both have the same arrival countdown.
  2. Conservation: a merge adds the incoming magnitude to the existing
     record and the incoming record is never registered.
  3. No empty ghosts: a record sold or consumed down to zero leaves the Store.

SEE ALSO:
  - store.go: the Store arena
  - fungibility.go: caliber conversion arithmetic
  - quartermaster.go: buy/sell/acquire operations
  - shopping.go: the daily-retried acquisition backlog
*/
package supply

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// RecordID identifies a record inside a Store. Allocated ids start at 1;
// zero or NoID marks a record that was never registered or has been discarded.
type RecordID int

const NoID RecordID = -1

// =============================================================================
// STATE - Ownership / reservation
// =============================================================================

type State int

const (
	StateSpare State = iota
	StateOnUnit
	StateReservedForRefit
	StateReservedForTask
	StateUnderRepair
)

func (s State) String() string {
	switch s {
	case StateSpare:
		return "spare"
	case StateOnUnit:
		return "on_unit"
	case StateReservedForRefit:
		return "reserved_for_refit"
	case StateReservedForTask:
		return "reserved_for_task"
	case StateUnderRepair:
		return "under_repair"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for st := StateSpare; st <= StateUnderRepair; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return StateSpare, fmt.Errorf("unknown state %q: %w", s, ErrInvalidRecord)
}

// IsSpare reports whether records in this state take part in merging and
// spare enumeration.
func (s State) IsSpare() bool {
	return s == StateSpare || s == StateUnderRepair
}

// =============================================================================
// KIND - Record variants
// =============================================================================

type Kind string

const (
	KindPart         Kind = "part"
	KindArmor        Kind = "armor"
	KindAmmo         Kind = "ammo"
	KindInfantryAmmo Kind = "infantry_ammo"
)

// =============================================================================
// TYPE DEFINITIONS
// =============================================================================

// PartSpec is the structural signature of a generic part.
type PartSpec struct {
	Kind   string          `json:"kind"`   // e.g. "heat_sink", "actuator", "omnipod"
	Spec   string          `json:"spec"`   // e.g. "double", "left_arm", tonnage class
	Price  decimal.Decimal `json:"price"`  // per piece
	Common bool            `json:"common"` // priced with CommonPartPriceMultiplier
}

// Signature is the merge identity of the part.
func (p PartSpec) Signature() string {
	if p.Spec == "" {
		return p.Kind
	}
	return p.Kind + ":" + p.Spec
}

// ArmorType is an armor material.
type ArmorType struct {
	Name         string          `json:"name"`
	PointsPerTon int             `json:"points_per_ton"`
	PricePerTon  decimal.Decimal `json:"price_per_ton"`
}

// AmmoType is an ammunition type. RackSize is the per-shot submunition count
// and is the conversion ratio between calibers of the same Family.
type AmmoType struct {
	Name        string          `json:"name"`
	Family      string          `json:"family"`
	RackSize    int             `json:"rack_size"`
	ShotsPerTon int             `json:"shots_per_ton"`
	PricePerTon decimal.Decimal `json:"price_per_ton"`
}

// IsCompatibleWith reports whether o can substitute for a through a rack size
// conversion: same family, different rack size.
func (a *AmmoType) IsCompatibleWith(o *AmmoType) bool {
	if a == nil || o == nil {
		return false
	}
	return a.Family != "" && a.Family == o.Family && a.RackSize != o.RackSize
}

// =============================================================================
// IDENTITY - Comparable merge key
// =============================================================================

// Identity is the type identity of a record, ignoring magnitude.
type Identity struct {
	Kind   Kind
	Type   string
	Weapon string
	Podded bool
}

func (id Identity) String() string {
	s := string(id.Kind) + "/" + id.Type
	if id.Weapon != "" {
		s += "/" + id.Weapon
	}
	if id.Podded {
		s += "/podded"
	}
	return s
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one stack of a storable resource. Exactly one of Part, Armor and
// Ammo is set, matching Kind. Amount is the magnitude: quantity for parts,
// points for armor, shots for ammo.
type Record struct {
	ID            RecordID
	Kind          Kind
	Part          *PartSpec
	Armor         *ArmorType
	Ammo          *AmmoType
	Weapon        string // infantry ammo only
	Amount        int
	DaysToArrival int
	State         State
	ParentID      RecordID
	UnitID        string

	Podded      bool // mounted in an omnipod
	Placeholder bool // stands for a missing part; no inventory meaning on its own
	Damaged     bool

	// Components makes the record a bill of materials (e.g. a refit kit).
	Components []*Record
}

// NewPart creates an unregistered spare part stack.
func NewPart(spec PartSpec, quantity int) *Record {
	return &Record{ID: NoID, ParentID: NoID, Kind: KindPart, Part: &spec, Amount: quantity}
}

// NewArmor creates an unregistered spare armor stock.
func NewArmor(t *ArmorType, points int) *Record {
	return &Record{ID: NoID, ParentID: NoID, Kind: KindArmor, Armor: t, Amount: points}
}

// NewAmmo creates an unregistered spare ammo stock.
func NewAmmo(t *AmmoType, shots int) *Record {
	return &Record{ID: NoID, ParentID: NoID, Kind: KindAmmo, Ammo: t, Amount: shots}
}

// NewInfantryAmmo creates an unregistered spare infantry ammo stock.
func NewInfantryAmmo(t *AmmoType, weapon string, shots int) *Record {
	return &Record{ID: NoID, ParentID: NoID, Kind: KindInfantryAmmo, Ammo: t, Weapon: weapon, Amount: shots}
}

// NewKit creates a bill-of-materials record.
func NewKit(name string, components ...*Record) *Record {
	return &Record{
		ID:         NoID,
		ParentID:   NoID,
		Kind:       KindPart,
		Part:       &PartSpec{Kind: "refit_kit", Spec: name},
		Amount:     1,
		Components: components,
	}
}

// Identity returns the merge identity.
func (r *Record) Identity() Identity {
	id := Identity{Kind: r.Kind, Podded: r.Podded}
	switch r.Kind {
	case KindPart:
		if r.Part != nil {
			id.Type = r.Part.Signature()
		}
	case KindArmor:
		if r.Armor != nil {
			id.Type = r.Armor.Name
		}
	case KindAmmo:
		if r.Ammo != nil {
			id.Type = r.Ammo.Name
		}
	case KindInfantryAmmo:
		if r.Ammo != nil {
			id.Type = r.Ammo.Name
		}
		id.Weapon = r.Weapon
	}
	return id
}

func (r *Record) Magnitude() int      { return r.Amount }
func (r *Record) AddMagnitude(n int)  { r.Amount += n }
func (r *Record) IsPresent() bool     { return r.DaysToArrival <= 0 }
func (r *Record) IsRegistered() bool  { return r.ID > 0 }
func (r *Record) IsKit() bool         { return len(r.Components) > 0 }
func (r *Record) IsAmmo() bool        { return r.Kind == KindAmmo || r.Kind == KindInfantryAmmo }
func (r *Record) IsSpare() bool       { return r.State.IsSpare() && r.UnitID == "" }
func (r *Record) String() string      { return fmt.Sprintf("#%d %s x%d", r.ID, r.Identity(), r.Amount) }

// Value returns the undiscounted value of the whole stack.
// Kits are valued at the sum of their components.
func (r *Record) Value() decimal.Decimal {
	if r.IsKit() {
		total := decimal.Zero
		for _, c := range r.Components {
			total = total.Add(c.Value())
		}
		return total
	}
	switch r.Kind {
	case KindPart:
		if r.Part == nil {
			return decimal.Zero
		}
		return r.Part.Price.Mul(decimal.NewFromInt(int64(r.Amount)))
	case KindArmor:
		if r.Armor == nil || r.Armor.PointsPerTon <= 0 {
			return decimal.Zero
		}
		return r.Armor.PricePerTon.Mul(decimal.NewFromInt(int64(r.Amount))).
			Div(decimal.NewFromInt(int64(r.Armor.PointsPerTon)))
	case KindAmmo, KindInfantryAmmo:
		if r.Ammo == nil || r.Ammo.ShotsPerTon <= 0 {
			return decimal.Zero
		}
		return r.Ammo.PricePerTon.Mul(decimal.NewFromInt(int64(r.Amount))).
			Div(decimal.NewFromInt(int64(r.Ammo.ShotsPerTon)))
	}
	return decimal.Zero
}

// Clone returns an unregistered copy. Components are cloned too.
func (r *Record) Clone() *Record {
	c := *r
	c.ID = NoID
	if r.Part != nil {
		p := *r.Part
		c.Part = &p
	}
	if len(r.Components) > 0 {
		c.Components = make([]*Record, len(r.Components))
		for i, comp := range r.Components {
			c.Components[i] = comp.Clone()
		}
	}
	return &c
}
