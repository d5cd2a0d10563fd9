// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/supply"
)

// Config is the server configuration. Campaign options are read from the
// env tags on supply.Options.
type Config struct {
	Options supply.Options

	StartingFunds decimal.Decimal `env:"QM_STARTING_FUNDS" envDefault:"5000000"`
	CampaignStart string          `env:"QM_CAMPAIGN_START" envDefault:"3025-01-01"`
	CatalogPath   string          `env:"QM_CATALOG"`

	// DayInterval is the wall-clock length of a campaign day; 0 disables
	// the scheduler.
	DayInterval time.Duration `env:"QM_DAY_INTERVAL" envDefault:"0s"`
	AutoSave    bool          `env:"QM_AUTOSAVE" envDefault:"true"`

	// AcquisitionTarget is the 2d6 target for shopping list rolls; 0 makes
	// every roll succeed.
	AcquisitionTarget int `env:"QM_ACQUISITION_TARGET" envDefault:"0"`
	BaseTransitDays   int `env:"QM_BASE_TRANSIT_DAYS" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Start(); err != nil {
		return Config{}, err
	}
	if cfg.StartingFunds.IsNegative() {
		return Config{}, fmt.Errorf("QM_STARTING_FUNDS must not be negative: %s", cfg.StartingFunds)
	}
	if cfg.AcquisitionTarget < 0 || cfg.AcquisitionTarget > 12 {
		return Config{}, fmt.Errorf("QM_ACQUISITION_TARGET must be between 0 and 12: %d", cfg.AcquisitionTarget)
	}
	return cfg, nil
}

// Start returns the first campaign day.
func (c Config) Start() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.CampaignStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("QM_CAMPAIGN_START: %w", err)
	}
	return t, nil
}

// Roller returns the acquisition roller the shopping list uses.
func (c Config) Roller() supply.AcquisitionRoller {
	if c.AcquisitionTarget <= 0 {
		return supply.FixedRoller{TransitDays: c.BaseTransitDays}
	}
	return supply.DiceRoller{
		Target:          c.AcquisitionTarget,
		BaseTransitDays: c.BaseTransitDays,
		Rand:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}
