package supply

import "github.com/shopspring/decimal"

// Options are the campaign settings the quartermaster reads. The env tags are
// consumed by cmd/server through caarlos0/env.
type Options struct {
	PayForParts   bool `json:"pay_for_parts" env:"QM_PAY_FOR_PARTS" envDefault:"true"`
	PayForUnits   bool `json:"pay_for_units" env:"QM_PAY_FOR_UNITS" envDefault:"true"`
	UseAmmoByType bool `json:"use_ammo_by_type" env:"QM_USE_AMMO_BY_TYPE" envDefault:"false"`

	ClanPriceMultiplier         float64 `json:"clan_price_multiplier" env:"QM_CLAN_PRICE_MULTIPLIER" envDefault:"1.0"`
	InnerSphereMultiplier       float64 `json:"inner_sphere_multiplier" env:"QM_INNER_SPHERE_MULTIPLIER" envDefault:"1.0"`
	DamagedPartsValueMultiplier float64 `json:"damaged_parts_value_multiplier" env:"QM_DAMAGED_PARTS_VALUE_MULTIPLIER" envDefault:"0.33"`
	CommonPartPriceMultiplier   float64 `json:"common_part_price_multiplier" env:"QM_COMMON_PART_PRICE_MULTIPLIER" envDefault:"1.0"`

	// AcquisitionWaitDays is how long a shopping list item waits between rolls.
	AcquisitionWaitDays int `json:"acquisition_wait_days" env:"QM_ACQUISITION_WAIT_DAYS" envDefault:"7"`
}

// DefaultOptions mirrors the envDefault tags.
func DefaultOptions() Options {
	return Options{
		PayForParts:                 true,
		PayForUnits:                 true,
		ClanPriceMultiplier:         1.0,
		InnerSphereMultiplier:       1.0,
		DamagedPartsValueMultiplier: 0.33,
		CommonPartPriceMultiplier:   1.0,
		AcquisitionWaitDays:         7,
	}
}

func (o Options) clanMultiplier() decimal.Decimal {
	return decimal.NewFromFloat(o.ClanPriceMultiplier)
}

func (o Options) innerSphereMultiplier() decimal.Decimal {
	return decimal.NewFromFloat(o.InnerSphereMultiplier)
}

func (o Options) damagedMultiplier() decimal.Decimal {
	return decimal.NewFromFloat(o.DamagedPartsValueMultiplier)
}

func (o Options) commonMultiplier() decimal.Decimal {
	return decimal.NewFromFloat(o.CommonPartPriceMultiplier)
}

func (o Options) waitDays() int {
	if o.AcquisitionWaitDays < 1 {
		return 1
	}
	return o.AcquisitionWaitDays
}
