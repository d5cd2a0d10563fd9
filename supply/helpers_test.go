package supply_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/supply"
	"github.com/warp/quartermaster/supply/finance"
	"github.com/warp/quartermaster/supply/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var (
	lrm5  = &supply.AmmoType{Name: "LRM5", Family: "LRM", RackSize: 5, ShotsPerTon: 24, PricePerTon: decimal.NewFromInt(30000)}
	lrm20 = &supply.AmmoType{Name: "LRM20", Family: "LRM", RackSize: 20, ShotsPerTon: 6, PricePerTon: decimal.NewFromInt(30000)}
	srm2  = &supply.AmmoType{Name: "SRM2", Family: "SRM", RackSize: 2, ShotsPerTon: 50, PricePerTon: decimal.NewFromInt(27000)}
	srm6  = &supply.AmmoType{Name: "SRM6", Family: "SRM", RackSize: 6, ShotsPerTon: 15, PricePerTon: decimal.NewFromInt(27000)}
	ac10  = &supply.AmmoType{Name: "AC10", Family: "AC10", RackSize: 10, ShotsPerTon: 10, PricePerTon: decimal.NewFromInt(12000)}

	ferro = &supply.ArmorType{Name: "Ferro-Fibrous", PointsPerTon: 18, PricePerTon: decimal.NewFromInt(20000)}
)

func heatSinks(n int) *supply.Record {
	return supply.NewPart(supply.PartSpec{Kind: "heat_sink", Spec: "double", Price: decimal.NewFromInt(6000)}, n)
}

func actuators(n int) *supply.Record {
	return supply.NewPart(supply.PartSpec{Kind: "actuator", Spec: "left_arm", Price: decimal.NewFromInt(1000)}, n)
}

func money(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

type fixture struct {
	qm      *supply.Quartermaster
	store   *supply.Store
	account *finance.Account
	roster  *roster.Roster
	events  *supply.Recorder
}

func newFixture(t *testing.T, balance int64, opts supply.Options) *fixture {
	t.Helper()
	events := &supply.Recorder{}
	store := supply.NewStore(events)
	account := finance.NewAccount(money(balance))
	units := roster.New()
	qm := supply.NewQuartermaster(store, account, units, opts)
	qm.Logger = nil
	return &fixture{qm: qm, store: store, account: account, roster: units, events: events}
}

func defaultFixture(t *testing.T, balance int64) *fixture {
	return newFixture(t, balance, supply.DefaultOptions())
}

func substitutionFixture(t *testing.T) *fixture {
	opts := supply.DefaultOptions()
	opts.UseAmmoByType = true
	return newFixture(t, 0, opts)
}

// present registers r as present spare stock.
func present(s *supply.Store, r *supply.Record) *supply.Record {
	s.Register(r)
	return r
}

// assertNoGhosts fails when any enumerable record has no magnitude left.
func assertNoGhosts(t *testing.T, s *supply.Store) {
	t.Helper()
	for _, r := range s.All() {
		if r.Amount <= 0 {
			t.Errorf("record %s is still in the store with magnitude %d", r, r.Amount)
		}
	}
}
