package factory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quartermaster/factory"
	"github.com/warp/quartermaster/supply"
)

func newFactory(t *testing.T) *factory.CatalogFactory {
	t.Helper()
	f := factory.NewCatalogFactory(supply.NewCatalog())
	_, err := f.ParseCatalog(factory.DefaultCatalogJSON)
	require.NoError(t, err)
	return f
}

func TestParseCatalog_DefaultPreset(t *testing.T) {
	f := newFactory(t)

	lrm5, err := f.Catalog().LookupAmmoType("LRM5")
	require.NoError(t, err)
	assert.Equal(t, 5, lrm5.RackSize)
	assert.True(t, lrm5.PricePerTon.Equal(decimal.NewFromInt(30000)))

	compatible := f.Catalog().CompatibleAmmoTypes(lrm5)
	require.Len(t, compatible, 3)
	assert.Equal(t, "LRM10", compatible[0].Name)

	ferro, err := f.Catalog().LookupArmorType("Ferro-Fibrous")
	require.NoError(t, err)
	assert.Equal(t, 18, ferro.PointsPerTon)

	hs, err := f.LookupPart("heat_sink:double")
	require.NoError(t, err)
	assert.True(t, hs.Price.Equal(decimal.NewFromInt(6000)))
	_, err = f.LookupPart("medium_laser")
	assert.NoError(t, err)
	assert.Len(t, f.Parts(), 6)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"ammo_types": [`},
		{"zero rack size", `{"ammo_types": [{"name": "X", "family": "X", "rack_size": 0, "shots_per_ton": 1}]}`},
		{"no shots per ton", `{"ammo_types": [{"name": "X", "family": "X", "rack_size": 1}]}`},
		{"armor without points", `{"armor_types": [{"name": "Paper"}]}`},
		{"part without kind", `{"parts": [{"spec": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := supply.NewCatalog()
			f := factory.NewCatalogFactory(catalog)
			_, err := f.ParseCatalog(tt.json)
			assert.Error(t, err)
			assert.Empty(t, catalog.AmmoTypes(), "nothing registered on error")
		})
	}
}

func TestParseRecord_Ammo(t *testing.T) {
	f := newFactory(t)

	r, err := f.ParseRecord(`{"kind": "ammo", "ammo_type": "LRM20", "amount": 12, "days_to_arrival": 3}`)

	require.NoError(t, err)
	assert.Equal(t, supply.KindAmmo, r.Kind)
	assert.Equal(t, "LRM20", r.Ammo.Name)
	assert.Equal(t, 12, r.Amount)
	assert.Equal(t, 3, r.DaysToArrival)
	assert.Equal(t, supply.NoID, r.ID)
	assert.False(t, r.IsRegistered())
}

func TestParseRecord_Errors(t *testing.T) {
	f := newFactory(t)

	_, err := f.ParseRecord(`{"kind": "ammo", "ammo_type": "Gauss", "amount": 8}`)
	assert.True(t, errors.Is(err, supply.ErrUnknownAmmoType))

	_, err = f.ParseRecord(`{"kind": "armor", "armor_type": "Reactive", "amount": 8}`)
	assert.True(t, errors.Is(err, supply.ErrUnknownArmorType))

	_, err = f.ParseRecord(`{"kind": "part", "amount": 1}`)
	assert.True(t, errors.Is(err, supply.ErrInvalidRecord))

	_, err = f.ParseRecord(`{"kind": "ammo", "ammo_type": "LRM5", "amount": -1}`)
	assert.True(t, errors.Is(err, supply.ErrInvalidRecord))

	_, err = f.ParseRecord(`{"kind": "infantry_ammo", "ammo_type": "MG", "amount": 10}`)
	assert.True(t, errors.Is(err, supply.ErrInvalidRecord))

	_, err = f.ParseRecord(`{"kind": "mech", "amount": 1}`)
	assert.True(t, errors.Is(err, supply.ErrInvalidRecord))

	_, err = f.ParseRecord(`{"kind": "part", "part": {"kind": "x"}, "amount": 1, "state": "lost"}`)
	assert.True(t, errors.Is(err, supply.ErrInvalidRecord))
}

func TestRecordJSON_KitRoundTrip(t *testing.T) {
	// GIVEN: a registered refit kit with two components
	// WHEN: it goes to JSON and back
	// THEN: ids, state, flags and components survive

	f := newFactory(t)
	kit, err := f.ParseRecord(`{
		"kind": "part", "part": {"kind": "refit_kit", "spec": "AS7-K"}, "amount": 1,
		"components": [
			{"kind": "part", "part": {"kind": "heat_sink", "spec": "double", "price": "6000"}, "amount": 2},
			{"kind": "ammo", "ammo_type": "SRM6", "amount": 15}
		]
	}`)
	require.NoError(t, err)
	require.True(t, kit.IsKit())
	kit.ID = 9
	kit.State = supply.StateReservedForRefit
	kit.Podded = true

	rj := f.ToJSON(kit)
	require.NotNil(t, rj.Value)
	assert.True(t, rj.Value.Equal(decimal.NewFromInt(12000+27000)))

	back, err := f.FromJSON(rj)
	require.NoError(t, err)
	assert.Equal(t, supply.RecordID(9), back.ID)
	assert.Equal(t, supply.StateReservedForRefit, back.State)
	assert.True(t, back.Podded)
	require.Len(t, back.Components, 2)
	assert.Equal(t, kit.Components[0].Identity(), back.Components[0].Identity())
	assert.Equal(t, 15, back.Components[1].Amount)
}
