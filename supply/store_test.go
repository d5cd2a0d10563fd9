package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quartermaster/supply"
)

// =============================================================================
// MERGE TESTS
// =============================================================================

func TestStore_InsertMerging_ConservesMagnitude(t *testing.T) {
	// GIVEN: 3 double heat sinks in the warehouse
	// WHEN: 2 more arrive
	// THEN: one stack of 5 remains and the incoming record is never registered

	events := &supply.Recorder{}
	store := supply.NewStore(events)

	existing := heatSinks(3)
	store.Register(existing)

	incoming := heatSinks(2)
	result := store.InsertMerging(incoming)

	assert.Same(t, existing, result)
	assert.Equal(t, 5, existing.Amount)
	assert.Equal(t, supply.NoID, incoming.ID)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, events.Count(supply.EventCreated, existing.ID))
	assert.Equal(t, 1, events.Count(supply.EventChanged, existing.ID))
}

func TestStore_InsertMerging_NoMatchRegisters(t *testing.T) {
	events := &supply.Recorder{}
	store := supply.NewStore(events)
	store.Register(heatSinks(3))

	incoming := actuators(1)
	result := store.InsertMerging(incoming)

	assert.Same(t, incoming, result)
	assert.True(t, incoming.IsRegistered())
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, events.Count(supply.EventCreated, incoming.ID))
}

func TestStore_InsertMerging_ReservedNeverMerges(t *testing.T) {
	for _, state := range []supply.State{supply.StateReservedForRefit, supply.StateReservedForTask, supply.StateOnUnit} {
		t.Run(state.String(), func(t *testing.T) {
			store := supply.NewStore(nil)
			spare := heatSinks(3)
			store.Register(spare)

			reserved := heatSinks(2)
			reserved.State = state
			result := store.InsertMerging(reserved)

			assert.Same(t, reserved, result)
			assert.Equal(t, 3, spare.Amount, "existing spare must not change")
			assert.True(t, reserved.IsRegistered())
			assert.Equal(t, 2, store.Len())
		})
	}
}

func TestStore_InsertMerging_SpareMergesIntoUnderRepair(t *testing.T) {
	store := supply.NewStore(nil)
	repairing := heatSinks(1)
	repairing.State = supply.StateUnderRepair
	store.Register(repairing)

	result := store.InsertMerging(heatSinks(2))

	assert.Same(t, repairing, result)
	assert.Equal(t, 3, repairing.Amount)
}

func TestStore_InsertMerging_UnderRepairIsNotMergedIntoSpare(t *testing.T) {
	store := supply.NewStore(nil)
	spare := heatSinks(1)
	store.Register(spare)

	repairing := heatSinks(2)
	repairing.State = supply.StateUnderRepair
	store.InsertMerging(repairing)

	assert.Equal(t, 1, spare.Amount)
	assert.Equal(t, 2, store.Len())
}

func TestStore_InsertMerging_DifferentIdentityDoesNotMerge(t *testing.T) {
	store := supply.NewStore(nil)
	store.Register(supply.NewAmmo(lrm5, 24))

	store.InsertMerging(supply.NewAmmo(lrm20, 6))
	podded := heatSinks(1)
	podded.Podded = true
	store.InsertMerging(podded)
	store.InsertMerging(heatSinks(1))

	assert.Equal(t, 4, store.Len())
}

func TestStore_InsertMerging_InTransitStaysSeparate(t *testing.T) {
	// GIVEN: present stock of 3
	// WHEN: 2 are acquired with 5 days of transit
	// THEN: they stay a separate record until they arrive

	store := supply.NewStore(nil)
	store.Register(heatSinks(3))

	shipped := heatSinks(2)
	shipped.DaysToArrival = 5
	store.InsertMerging(shipped)

	assert.Equal(t, 2, store.Len())
	assert.True(t, shipped.IsRegistered())
}

func TestStore_InsertMerging_RegisteredRecordMergedAwayIsRemoved(t *testing.T) {
	events := &supply.Recorder{}
	store := supply.NewStore(events)
	stock := heatSinks(3)
	store.Register(stock)

	shipped := heatSinks(2)
	shipped.DaysToArrival = 1
	store.Register(shipped)
	shippedID := shipped.ID

	shipped.DaysToArrival = 0
	result := store.InsertMerging(shipped)

	assert.Same(t, stock, result)
	assert.Equal(t, 5, stock.Amount)
	assert.Equal(t, supply.NoID, shipped.ID)
	assert.Nil(t, store.ByID(shippedID))
	assert.Equal(t, 1, events.Count(supply.EventRemoved, shippedID))
}

// =============================================================================
// REGISTRATION TESTS
// =============================================================================

func TestStore_Register_Idempotent(t *testing.T) {
	events := &supply.Recorder{}
	store := supply.NewStore(events)

	r := heatSinks(1)
	id1 := store.Register(r)
	id2 := store.Register(r)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, events.Count(supply.EventCreated, id1))
}

func TestStore_Register_AllocatesFreshIDOnCollision(t *testing.T) {
	store := supply.NewStore(nil)
	a := heatSinks(1)
	store.Register(a)

	b := actuators(1)
	b.ID = a.ID
	store.Register(b)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Same(t, a, store.ByID(a.ID))
	assert.Same(t, b, store.ByID(b.ID))
}

func TestStore_Register_KeepsPreassignedID(t *testing.T) {
	store := supply.NewStore(nil)
	r := heatSinks(1)
	r.ID = 42

	store.Register(r)
	next := actuators(1)
	store.Register(next)

	assert.Equal(t, supply.RecordID(42), r.ID)
	assert.Equal(t, supply.RecordID(43), next.ID)
}

// =============================================================================
// REMOVAL TESTS
// =============================================================================

func TestStore_Remove_Cascades(t *testing.T) {
	// GIVEN: a parent with a child, which has its own child
	// WHEN: the parent is removed
	// THEN: all three are gone and each emitted a Removed event

	events := &supply.Recorder{}
	store := supply.NewStore(events)

	parent := heatSinks(1)
	store.Register(parent)
	child := actuators(1)
	child.ParentID = parent.ID
	store.Register(child)
	grandchild := supply.NewAmmo(lrm5, 24)
	grandchild.ParentID = child.ID
	store.Register(grandchild)
	unrelated := supply.NewArmor(ferro, 18)
	store.Register(unrelated)

	ids := []supply.RecordID{parent.ID, child.ID, grandchild.ID}
	require.True(t, store.Remove(parent))

	for _, id := range ids {
		assert.Nil(t, store.ByID(id))
		assert.Equal(t, 1, events.Count(supply.EventRemoved, id))
	}
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, supply.NoID, parent.ID)
}

func TestStore_Remove_AbsentRecord(t *testing.T) {
	store := supply.NewStore(nil)
	r := heatSinks(1)

	assert.False(t, store.Remove(r))

	store.Register(r)
	require.True(t, store.Remove(r))
	assert.False(t, store.Remove(r), "second removal must fail")
}

// =============================================================================
// ENUMERATION TESTS
// =============================================================================

func TestStore_Spares_FiltersByState(t *testing.T) {
	store := supply.NewStore(nil)
	states := []supply.State{
		supply.StateSpare,
		supply.StateOnUnit,
		supply.StateReservedForRefit,
		supply.StateReservedForTask,
		supply.StateUnderRepair,
	}
	for _, st := range states {
		r := heatSinks(1)
		r.State = st
		store.Register(r)
	}

	spares := store.Spares()
	require.Len(t, spares, 2)
	assert.Equal(t, supply.StateSpare, spares[0].State)
	assert.Equal(t, supply.StateUnderRepair, spares[1].State)
	assert.Len(t, store.All(), 5)

	visited := 0
	store.ForEachSpare(func(*supply.Record) { visited++ })
	assert.Equal(t, 2, visited)

	found := store.FindSpare(func(r *supply.Record) bool { return r.State == supply.StateUnderRepair })
	require.NotNil(t, found)
	assert.Nil(t, store.FindSpare(func(r *supply.Record) bool { return r.State == supply.StateOnUnit }))
}

func TestStore_Restore_KeepsIDs(t *testing.T) {
	events := &supply.Recorder{}
	store := supply.NewStore(events)

	a := heatSinks(2)
	a.ID = 7
	b := actuators(1)
	b.ID = 3
	store.Restore([]*supply.Record{a, b})

	assert.Same(t, a, store.ByID(7))
	assert.Same(t, b, store.ByID(3))
	assert.Empty(t, events.Events(), "restoring emits nothing")

	c := heatSinks(1)
	c.State = supply.StateReservedForTask
	store.Register(c)
	assert.Equal(t, supply.RecordID(8), c.ID)
}
