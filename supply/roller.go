package supply

import (
	"math/rand"
)

// FixedRoller always returns the same result. Used when acquisitions are
// automatic and in tests.
type FixedRoller struct {
	Fail        bool
	TransitDays int
}

func (f FixedRoller) Roll(*ShoppingItem) AcquisitionResult {
	return AcquisitionResult{Success: !f.Fail, TransitDays: f.TransitDays}
}

// DiceRoller rolls 2d6 against Target. Transit time is BaseTransitDays plus
// one die.
type DiceRoller struct {
	Target          int
	BaseTransitDays int
	Rand            *rand.Rand
}

func (d DiceRoller) Roll(*ShoppingItem) AcquisitionResult {
	roll := d.die() + d.die()
	if roll < d.Target {
		return AcquisitionResult{}
	}
	return AcquisitionResult{Success: true, TransitDays: d.BaseTransitDays + d.die()}
}

func (d DiceRoller) die() int {
	if d.Rand != nil {
		return d.Rand.Intn(6) + 1
	}
	return rand.Intn(6) + 1
}
