package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quartermaster/supply"
)

// countingRoller succeeds until failAfter rolls have been made (never fails
// when failAfter is negative) and counts every roll.
type countingRoller struct {
	rolls     int
	failAfter int
	transit   int
}

func (c *countingRoller) Roll(*supply.ShoppingItem) supply.AcquisitionResult {
	c.rolls++
	if c.failAfter >= 0 && c.rolls > c.failAfter {
		return supply.AcquisitionResult{}
	}
	return supply.AcquisitionResult{Success: true, TransitDays: c.transit}
}

func newShoppingList(f *fixture, roller supply.AcquisitionRoller) *supply.ShoppingList {
	list := supply.NewShoppingList(f.qm, roller)
	list.Logger = nil
	return list
}

func TestShoppingList_BuysWhileFundsAllow(t *testing.T) {
	// GIVEN: 18000 in the bank and heat sinks at 6000 each
	// WHEN: 5 are requested
	// THEN: 3 are bought now and 2 wait for the next attempt

	f := defaultFixture(t, 18000)
	list := newShoppingList(f, supply.FixedRoller{})

	list.Request(supply.NewPartItem(heatSinks(1)), 5)

	assert.True(t, f.account.Balance().IsZero())
	spares := f.store.Spares()
	require.Len(t, spares, 1)
	assert.Equal(t, 3, spares[0].Amount)

	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 7, items[0].DaysToWait)
}

func TestShoppingList_FullySatisfiedRequestIsNotQueued(t *testing.T) {
	f := defaultFixture(t, 100000)
	list := newShoppingList(f, supply.FixedRoller{TransitDays: 3})

	list.Request(supply.NewPartItem(heatSinks(1)), 2)

	assert.Empty(t, list.Items())
	spares := f.store.Spares()
	require.Len(t, spares, 1, "lots with the same transit merge")
	assert.Equal(t, 2, spares[0].Amount)
	assert.Equal(t, 3, spares[0].DaysToArrival)
}

func TestShoppingList_EquivalentRequestOnlyAddsQuantity(t *testing.T) {
	f := defaultFixture(t, 0)
	roller := &countingRoller{failAfter: -1}
	list := newShoppingList(f, roller)

	list.Request(supply.NewPartItem(heatSinks(1)), 2)
	require.Len(t, list.Items(), 1)
	rolls := roller.rolls

	list.Request(supply.NewPartItem(heatSinks(1)), 4)

	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
	assert.Equal(t, rolls, roller.rolls, "no attempt for an equivalent request")
}

func TestShoppingList_DifferentPartsQueueSeparately(t *testing.T) {
	f := defaultFixture(t, 0)
	list := newShoppingList(f, supply.FixedRoller{})

	list.Request(supply.NewPartItem(heatSinks(1)), 1)
	list.Request(supply.NewPartItem(actuators(1)), 1)
	list.Request(supply.NewPartItem(supply.NewAmmo(lrm5, 24)), 1)

	assert.Len(t, list.Items(), 3)
}

func TestShoppingList_UnitEquivalenceByName(t *testing.T) {
	f := defaultFixture(t, 0)
	list := newShoppingList(f, supply.FixedRoller{})

	list.Request(supply.NewUnitItem(supply.UnitSpec{Name: "Locust", BaseCost: money(100)}), 1)
	list.Request(supply.NewUnitItem(supply.UnitSpec{Name: "Locust", BaseCost: money(120)}), 2)
	list.Request(supply.NewUnitItem(supply.UnitSpec{Name: "Atlas", BaseCost: money(900)}), 1)

	items := list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Locust", items[0].Name())
	assert.Equal(t, 3, items[0].Quantity)
}

func TestShoppingList_TickRetriesWhenDue(t *testing.T) {
	// GIVEN: 2 heat sinks queued for lack of money
	// WHEN: money arrives and days pass
	// THEN: nothing happens until day 7, then both are bought

	f := defaultFixture(t, 0)
	list := newShoppingList(f, supply.FixedRoller{})
	list.Request(supply.NewPartItem(heatSinks(1)), 2)
	f.account.Credit(money(50000), supply.CategoryEquipmentSale, "windfall")

	for day := 1; day < 7; day++ {
		assert.Equal(t, 0, list.Tick(), "day %d", day)
	}
	assert.Equal(t, 0, f.store.Len())

	assert.Equal(t, 2, list.Tick())
	assert.Empty(t, list.Items())
	assert.Equal(t, 2, f.store.Spares()[0].Amount)
	assert.True(t, f.account.Balance().Equal(money(38000)))
}

func TestShoppingList_FailedRollResetsCountdown(t *testing.T) {
	f := defaultFixture(t, 100000)
	list := newShoppingList(f, supply.FixedRoller{Fail: true})
	list.Request(supply.NewPartItem(heatSinks(1)), 3)
	require.Len(t, list.Items(), 1)

	for day := 0; day < 7; day++ {
		list.Tick()
	}

	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 7, items[0].DaysToWait)
	assert.True(t, f.account.Balance().Equal(money(100000)))
}

func TestShoppingList_PartialSuccessOnTick(t *testing.T) {
	f := defaultFixture(t, 100000)
	roller := &countingRoller{failAfter: 0}
	list := newShoppingList(f, roller)
	list.Request(supply.NewPartItem(heatSinks(1)), 3)

	roller.rolls = 0
	roller.failAfter = 1
	for day := 0; day < 7; day++ {
		list.Tick()
	}

	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 7, items[0].DaysToWait)
}

func TestShoppingList_UnitPurchase(t *testing.T) {
	f := defaultFixture(t, 250)
	list := newShoppingList(f, supply.FixedRoller{TransitDays: 2})

	list.Request(supply.NewUnitItem(supply.UnitSpec{Name: "Locust", BaseCost: money(100)}), 3)

	assert.Len(t, f.roster.Units(), 2)
	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestShoppingList_RemoveAndRestore(t *testing.T) {
	f := defaultFixture(t, 0)
	list := newShoppingList(f, supply.FixedRoller{})
	list.Request(supply.NewPartItem(heatSinks(1)), 1)
	list.Request(supply.NewPartItem(actuators(1)), 1)

	items := list.Items()
	require.Len(t, items, 2)
	assert.True(t, list.Remove(items[0].ID))
	assert.False(t, list.Remove(items[0].ID))
	assert.Len(t, list.Items(), 1)

	list.Restore(items)
	assert.Len(t, list.Items(), 2)
}

func TestShoppingList_NonPositiveRequestIgnored(t *testing.T) {
	f := defaultFixture(t, 0)
	roller := &countingRoller{failAfter: -1}
	list := newShoppingList(f, roller)

	list.Request(supply.NewPartItem(heatSinks(1)), 0)

	assert.Empty(t, list.Items())
	assert.Equal(t, 0, roller.rolls)
}

func TestShoppingList_UnaffordableSkipsRoll(t *testing.T) {
	f := defaultFixture(t, 100)
	roller := &countingRoller{failAfter: -1}
	list := newShoppingList(f, roller)

	list.Request(supply.NewPartItem(heatSinks(1)), 1)

	assert.Equal(t, 0, roller.rolls)
	assert.Len(t, list.Items(), 1)
}
