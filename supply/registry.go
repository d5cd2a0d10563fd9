/*
registry.go - Ammo and armor type registration and lookup

PURPOSE:
  Records reference their type by pointer, but snapshots, JSON requests
  and the HTTP API reference it by name. The catalog maps names back to
  the concrete types, and answers "which types are compatible with X".

HOW IT WORKS:
  1. factory.ParseCatalog reads the JSON catalog
  2. it registers every type with a Catalog (Default unless one is given)
  3. persistence and the API resolve names through Lookup*

USAGE:
  catalog := supply.NewCatalog()
  catalog.RegisterAmmoType(&supply.AmmoType{Name: "LRM5", Family: "LRM", RackSize: 5})
  lrm5, err := catalog.LookupAmmoType("LRM5")

SEE ALSO:
  - factory/catalog.go: JSON catalog loading
  - store/sqlite/sqlite.go: resolves type names on load
*/
package supply

import (
	"fmt"
	"sort"
	"sync"
)

// =============================================================================
// CATALOG
// =============================================================================

type Catalog struct {
	mu    sync.RWMutex
	ammo  map[string]*AmmoType
	armor map[string]*ArmorType
}

func NewCatalog() *Catalog {
	return &Catalog{
		ammo:  make(map[string]*AmmoType),
		armor: make(map[string]*ArmorType),
	}
}

// Default is the process-wide catalog, used when no other is supplied.
var Default = NewCatalog()

func (c *Catalog) RegisterAmmoType(t *AmmoType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ammo[t.Name] = t
}

func (c *Catalog) RegisterArmorType(t *ArmorType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armor[t.Name] = t
}

// LookupAmmoType finds a registered ammo type by name.
func (c *Catalog) LookupAmmoType(name string) (*AmmoType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.ammo[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownAmmoType)
	}
	return t, nil
}

// LookupArmorType finds a registered armor type by name.
func (c *Catalog) LookupArmorType(name string) (*ArmorType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.armor[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownArmorType)
	}
	return t, nil
}

// AmmoTypes returns all registered ammo types sorted by name.
func (c *Catalog) AmmoTypes() []*AmmoType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*AmmoType, 0, len(c.ammo))
	for _, t := range c.ammo {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ArmorTypes returns all registered armor types sorted by name.
func (c *Catalog) ArmorTypes() []*ArmorType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*ArmorType, 0, len(c.armor))
	for _, t := range c.armor {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CompatibleAmmoTypes returns the registered types that can substitute for t.
func (c *Catalog) CompatibleAmmoTypes(t *AmmoType) []*AmmoType {
	var out []*AmmoType
	for _, o := range c.AmmoTypes() {
		if t.IsCompatibleWith(o) {
			out = append(out, o)
		}
	}
	return out
}
