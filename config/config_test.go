package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quartermaster/supply"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, supply.DefaultOptions(), cfg.Options)
	assert.True(t, cfg.StartingFunds.Equal(decimal.NewFromInt(5_000_000)))
	assert.Equal(t, time.Duration(0), cfg.DayInterval)
	assert.True(t, cfg.AutoSave)

	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(3025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, supply.FixedRoller{}, cfg.Roller())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("QM_USE_AMMO_BY_TYPE", "true")
	t.Setenv("QM_CLAN_PRICE_MULTIPLIER", "2")
	t.Setenv("QM_ACQUISITION_WAIT_DAYS", "3")
	t.Setenv("QM_STARTING_FUNDS", "1250.50")
	t.Setenv("QM_DAY_INTERVAL", "30s")
	t.Setenv("QM_ACQUISITION_TARGET", "8")
	t.Setenv("QM_BASE_TRANSIT_DAYS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Options.UseAmmoByType)
	assert.Equal(t, 2.0, cfg.Options.ClanPriceMultiplier)
	assert.Equal(t, 3, cfg.Options.AcquisitionWaitDays)
	assert.True(t, cfg.Options.PayForParts)
	assert.True(t, cfg.StartingFunds.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, 30*time.Second, cfg.DayInterval)

	roller, ok := cfg.Roller().(supply.DiceRoller)
	require.True(t, ok)
	assert.Equal(t, 8, roller.Target)
	assert.Equal(t, 2, roller.BaseTransitDays)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad bool", "QM_PAY_FOR_PARTS", "maybe"},
		{"bad date", "QM_CAMPAIGN_START", "3025-13-40"},
		{"negative funds", "QM_STARTING_FUNDS", "-1"},
		{"bad funds", "QM_STARTING_FUNDS", "lots"},
		{"target too high", "QM_ACQUISITION_TARGET", "13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
