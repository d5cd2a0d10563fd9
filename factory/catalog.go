/*
Package factory provides JSON to Go conversion for the supply catalog and
for record specifications.

PURPOSE:
  Ammo types, armor types and the purchasable parts list are data, not
  code. The factory reads them from JSON and registers them with a
  supply.Catalog. It also converts records to and from their JSON form,
  resolving type names through the same catalog; the HTTP API and the
  sqlite snapshot both use that form.

CATALOG SCHEMA:
  {
    "ammo_types": [
      {"name": "LRM5", "family": "LRM", "rack_size": 5,
       "shots_per_ton": 24, "price_per_ton": "30000"}
    ],
    "armor_types": [
      {"name": "Standard", "points_per_ton": 16, "price_per_ton": "10000"}
    ],
    "parts": [
      {"kind": "heat_sink", "spec": "double", "price": "6000"}
    ]
  }

RECORD SCHEMA:
  {"kind": "ammo", "ammo_type": "LRM5", "amount": 24}
  {"kind": "part", "part": {"kind": "heat_sink", "spec": "double", "price": "6000"},
   "amount": 3, "podded": true}
  {"kind": "part", "part": {"kind": "refit_kit", "spec": "Atlas AS7-K"},
   "components": [ ...records... ]}

USAGE:
  f := factory.NewCatalogFactory(supply.Default)
  if _, err := f.ParseCatalog(factory.DefaultCatalogJSON); err != nil { ... }
  r, err := f.ParseRecord(`{"kind": "ammo", "ammo_type": "LRM5", "amount": 24}`)

SEE ALSO:
  - supply/registry.go: Catalog type definition
  - store/sqlite/sqlite.go: stores records in their JSON form
  - api/dto.go: request and response shapes built on RecordJSON
*/
package factory

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/supply"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of a catalog.
type CatalogJSON struct {
	AmmoTypes  []supply.AmmoType  `json:"ammo_types"`
	ArmorTypes []supply.ArmorType `json:"armor_types"`
	Parts      []supply.PartSpec  `json:"parts,omitempty"`
}

// RecordJSON is the JSON representation of a record. Types are referenced
// by name.
type RecordJSON struct {
	ID            int              `json:"id,omitempty"`
	Kind          string           `json:"kind"`
	Part          *supply.PartSpec `json:"part,omitempty"`
	ArmorType     string           `json:"armor_type,omitempty"`
	AmmoType      string           `json:"ammo_type,omitempty"`
	Weapon        string           `json:"weapon,omitempty"`
	Amount        int              `json:"amount"`
	DaysToArrival int              `json:"days_to_arrival,omitempty"`
	State         string           `json:"state,omitempty"`
	ParentID      int              `json:"parent_id,omitempty"`
	UnitID        string           `json:"unit_id,omitempty"`
	Podded        bool             `json:"podded,omitempty"`
	Placeholder   bool             `json:"placeholder,omitempty"`
	Damaged       bool             `json:"damaged,omitempty"`
	Components    []RecordJSON     `json:"components,omitempty"`

	// Value is filled by ToJSON and ignored on input.
	Value *decimal.Decimal `json:"value,omitempty"`
}

// =============================================================================
// CATALOG FACTORY
// =============================================================================

// CatalogFactory converts JSON catalogs and records to Go structs.
type CatalogFactory struct {
	catalog *supply.Catalog

	mu    sync.RWMutex
	parts map[string]supply.PartSpec
}

// NewCatalogFactory creates a factory registering into catalog. A nil
// catalog means supply.Default.
func NewCatalogFactory(catalog *supply.Catalog) *CatalogFactory {
	if catalog == nil {
		catalog = supply.Default
	}
	return &CatalogFactory{catalog: catalog, parts: make(map[string]supply.PartSpec)}
}

func (f *CatalogFactory) Catalog() *supply.Catalog {
	return f.catalog
}

// ParseCatalog parses a JSON catalog and registers every type in it.
func (f *CatalogFactory) ParseCatalog(jsonStr string) (*CatalogJSON, error) {
	var cj CatalogJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	if err := f.Register(cj); err != nil {
		return nil, err
	}
	return &cj, nil
}

// Register validates cj and registers its types. Nothing is registered
// when any entry is invalid.
func (f *CatalogFactory) Register(cj CatalogJSON) error {
	for _, t := range cj.AmmoTypes {
		if err := validateAmmoType(t); err != nil {
			return err
		}
	}
	for _, t := range cj.ArmorTypes {
		if t.Name == "" || t.PointsPerTon <= 0 {
			return fmt.Errorf("armor type %q: points_per_ton must be positive: %w", t.Name, supply.ErrInvalidRecord)
		}
	}
	for _, p := range cj.Parts {
		if p.Kind == "" {
			return fmt.Errorf("part without kind: %w", supply.ErrInvalidRecord)
		}
	}

	for i := range cj.AmmoTypes {
		t := cj.AmmoTypes[i]
		f.catalog.RegisterAmmoType(&t)
	}
	for i := range cj.ArmorTypes {
		t := cj.ArmorTypes[i]
		f.catalog.RegisterArmorType(&t)
	}
	f.mu.Lock()
	for _, p := range cj.Parts {
		f.parts[p.Signature()] = p
	}
	f.mu.Unlock()
	return nil
}

func validateAmmoType(t supply.AmmoType) error {
	switch {
	case t.Name == "":
		return fmt.Errorf("ammo type without name: %w", supply.ErrInvalidRecord)
	case t.RackSize < 1:
		return fmt.Errorf("ammo type %q: rack_size must be at least 1: %w", t.Name, supply.ErrInvalidRecord)
	case t.ShotsPerTon <= 0:
		return fmt.Errorf("ammo type %q: shots_per_ton must be positive: %w", t.Name, supply.ErrInvalidRecord)
	}
	return nil
}

// LookupPart finds a catalog part by signature ("kind:spec").
func (f *CatalogFactory) LookupPart(signature string) (supply.PartSpec, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.parts[signature]
	if !ok {
		return supply.PartSpec{}, fmt.Errorf("part %q: %w", signature, supply.ErrRecordNotFound)
	}
	return p, nil
}

// Parts returns the catalog parts sorted by signature.
func (f *CatalogFactory) Parts() []supply.PartSpec {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]supply.PartSpec, 0, len(f.parts))
	for _, p := range f.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signature() < out[j].Signature() })
	return out
}

// =============================================================================
// RECORDS
// =============================================================================

// ParseRecord parses a JSON record specification.
func (f *CatalogFactory) ParseRecord(jsonStr string) (*supply.Record, error) {
	var rj RecordJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("failed to parse record JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON converts RecordJSON to an unregistered record, unless rj carries
// an id (snapshots), which is kept.
func (f *CatalogFactory) FromJSON(rj RecordJSON) (*supply.Record, error) {
	if rj.Amount < 0 {
		return nil, fmt.Errorf("negative amount %d: %w", rj.Amount, supply.ErrInvalidRecord)
	}

	var r *supply.Record
	switch supply.Kind(rj.Kind) {
	case supply.KindPart:
		if rj.Part == nil || rj.Part.Kind == "" {
			return nil, fmt.Errorf("part record without part spec: %w", supply.ErrInvalidRecord)
		}
		r = supply.NewPart(*rj.Part, rj.Amount)
	case supply.KindArmor:
		t, err := f.catalog.LookupArmorType(rj.ArmorType)
		if err != nil {
			return nil, err
		}
		r = supply.NewArmor(t, rj.Amount)
	case supply.KindAmmo:
		t, err := f.catalog.LookupAmmoType(rj.AmmoType)
		if err != nil {
			return nil, err
		}
		r = supply.NewAmmo(t, rj.Amount)
	case supply.KindInfantryAmmo:
		t, err := f.catalog.LookupAmmoType(rj.AmmoType)
		if err != nil {
			return nil, err
		}
		if rj.Weapon == "" {
			return nil, fmt.Errorf("infantry ammo without weapon: %w", supply.ErrInvalidRecord)
		}
		r = supply.NewInfantryAmmo(t, rj.Weapon, rj.Amount)
	default:
		return nil, fmt.Errorf("unknown record kind %q: %w", rj.Kind, supply.ErrInvalidRecord)
	}

	if rj.State != "" {
		st, err := supply.ParseState(rj.State)
		if err != nil {
			return nil, err
		}
		r.State = st
	}
	if rj.ID > 0 {
		r.ID = supply.RecordID(rj.ID)
	}
	if rj.ParentID > 0 {
		r.ParentID = supply.RecordID(rj.ParentID)
	}
	r.DaysToArrival = max(0, rj.DaysToArrival)
	r.UnitID = rj.UnitID
	r.Podded = rj.Podded
	r.Placeholder = rj.Placeholder
	r.Damaged = rj.Damaged

	for _, cj := range rj.Components {
		c, err := f.FromJSON(cj)
		if err != nil {
			return nil, fmt.Errorf("component: %w", err)
		}
		r.Components = append(r.Components, c)
	}
	return r, nil
}

// ToJSON converts a record to RecordJSON.
func (f *CatalogFactory) ToJSON(r *supply.Record) RecordJSON {
	value := r.Value()
	rj := RecordJSON{
		Kind:          string(r.Kind),
		Weapon:        r.Weapon,
		Amount:        r.Amount,
		DaysToArrival: r.DaysToArrival,
		State:         r.State.String(),
		UnitID:        r.UnitID,
		Podded:        r.Podded,
		Placeholder:   r.Placeholder,
		Damaged:       r.Damaged,
		Value:         &value,
	}
	if r.IsRegistered() {
		rj.ID = int(r.ID)
	}
	if r.ParentID > 0 {
		rj.ParentID = int(r.ParentID)
	}
	if r.Part != nil {
		p := *r.Part
		rj.Part = &p
	}
	if r.Armor != nil {
		rj.ArmorType = r.Armor.Name
	}
	if r.Ammo != nil {
		rj.AmmoType = r.Ammo.Name
	}
	for _, c := range r.Components {
		rj.Components = append(rj.Components, f.ToJSON(c))
	}
	return rj
}
