package supply_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/quartermaster/supply"
)

func TestDiceRoller_ThresholdAndTransit(t *testing.T) {
	// GIVEN: a dice roller and a twin generator with the same seed
	// WHEN: it rolls many times
	// THEN: 2d6 at or above Target succeeds, and transit is base plus one die

	const seed = 42
	roller := supply.DiceRoller{Target: 8, BaseTransitDays: 2, Rand: rand.New(rand.NewSource(seed))}
	twin := rand.New(rand.NewSource(seed))
	die := func() int { return twin.Intn(6) + 1 }

	successes, failures := 0, 0
	for i := 0; i < 200; i++ {
		result := roller.Roll(nil)

		if die()+die() < 8 {
			assert.False(t, result.Success, "roll %d", i)
			assert.Equal(t, 0, result.TransitDays)
			failures++
			continue
		}
		assert.True(t, result.Success, "roll %d", i)
		assert.Equal(t, 2+die(), result.TransitDays)
		successes++
	}
	assert.Positive(t, successes)
	assert.Positive(t, failures)
}

func TestDiceRoller_Bounds(t *testing.T) {
	always := supply.DiceRoller{Target: 2, BaseTransitDays: 1, Rand: rand.New(rand.NewSource(7))}
	never := supply.DiceRoller{Target: 13, Rand: rand.New(rand.NewSource(7))}

	for i := 0; i < 50; i++ {
		got := always.Roll(nil)
		assert.True(t, got.Success)
		assert.GreaterOrEqual(t, got.TransitDays, 2)
		assert.LessOrEqual(t, got.TransitDays, 7)

		assert.False(t, never.Roll(nil).Success)
	}
}
