/*
campaign.go - One campaign session behind one lock

PURPOSE:
  The supply engine (Store, Quartermaster, ShoppingList) is single-owner
  and unsynchronized. A Campaign owns one instance of each, plus the
  default finance account and unit roster, and serializes every access
  through Do. HTTP handlers and the day scheduler both go through it.

DAY CYCLE:
  NewDay advances the calendar, then:
  1. counts in-transit records and units down (arrivals merge into stock)
  2. ticks the shopping list (due items roll again)

SNAPSHOTS:
  Snapshot and Restore convert the session to and from sqlite.Snapshot.
  Both must be called inside Do.

SEE ALSO:
  - supply/quartermaster.go: the operations handlers call
  - scheduler.go: automatic NewDay
  - store/sqlite/sqlite.go: snapshot persistence
*/
package api

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/store/sqlite"
	"github.com/warp/quartermaster/supply"
	"github.com/warp/quartermaster/supply/finance"
	"github.com/warp/quartermaster/supply/roster"
)

// =============================================================================
// CAMPAIGN
// =============================================================================

// CampaignConfig is what a session is built from.
type CampaignConfig struct {
	Options       supply.Options
	StartingFunds decimal.Decimal
	Start         time.Time
	Roller        supply.AcquisitionRoller
	Sink          supply.Sink
}

// Campaign is one serialized campaign session.
type Campaign struct {
	mu sync.Mutex

	Day  int
	Date time.Time

	Warehouse     *supply.Store
	Account       *finance.Account
	Roster        *roster.Roster
	Quartermaster *supply.Quartermaster
	Shopping      *supply.ShoppingList

	config CampaignConfig
}

// DayReport summarizes one NewDay.
type DayReport struct {
	Day      int       `json:"day"`
	Date     time.Time `json:"date"`
	Arrived  int       `json:"arrived"`
	Acquired int       `json:"acquired"`
}

// NewCampaign creates a session from cfg. A nil roller succeeds every
// roll with no transit time.
func NewCampaign(cfg CampaignConfig) *Campaign {
	c := &Campaign{}
	c.reset(cfg)
	return c
}

func (c *Campaign) reset(cfg CampaignConfig) {
	if cfg.Roller == nil {
		cfg.Roller = supply.FixedRoller{}
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Date(3025, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	c.config = cfg
	c.Day = 0
	c.Date = cfg.Start

	c.Warehouse = supply.NewStore(cfg.Sink)
	c.Account = finance.NewAccount(cfg.StartingFunds)
	c.Account.SetClock(func() time.Time { return c.Date })
	c.Roster = roster.New()
	c.Quartermaster = supply.NewQuartermaster(c.Warehouse, c.Account, c.Roster, cfg.Options)
	c.Shopping = supply.NewShoppingList(c.Quartermaster, cfg.Roller)
}

// Do runs fn with exclusive access to the session.
func (c *Campaign) Do(fn func(c *Campaign) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c)
}

// Reset replaces the session with a fresh one built from cfg. Must be
// called inside Do.
func (c *Campaign) Reset(cfg CampaignConfig) {
	c.reset(cfg)
}

// Config returns the configuration the session was built from.
func (c *Campaign) Config() CampaignConfig {
	return c.config
}

// NewDay advances the session by one day.
func (c *Campaign) NewDay() DayReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.newDay()
}

func (c *Campaign) newDay() DayReport {
	c.Day++
	c.Date = c.Date.AddDate(0, 0, 1)

	report := DayReport{Day: c.Day, Date: c.Date}
	report.Arrived = c.Quartermaster.AdvanceTransit()
	c.Roster.AdvanceTransit()
	report.Acquired = c.Shopping.Tick()
	return report
}

// AdvanceDays runs n days and returns one report per day. Must be called
// inside Do.
func (c *Campaign) AdvanceDays(n int) []DayReport {
	reports := make([]DayReport, 0, n)
	for i := 0; i < n; i++ {
		reports = append(reports, c.newDay())
	}
	return reports
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Snapshot captures the session. Must be called inside Do.
func (c *Campaign) Snapshot() *sqlite.Snapshot {
	return &sqlite.Snapshot{
		Day:          c.Day,
		Date:         c.Date,
		Records:      c.Warehouse.All(),
		Shopping:     c.Shopping.Items(),
		Units:        c.Roster.Units(),
		Transactions: c.Account.Transactions(),
	}
}

// Restore replaces the session state with snap. Must be called inside Do.
func (c *Campaign) Restore(snap *sqlite.Snapshot) {
	c.reset(c.config)
	c.Day = snap.Day
	if !snap.Date.IsZero() {
		c.Date = snap.Date
	}
	c.Warehouse.Restore(snap.Records)
	c.Shopping.Restore(snap.Shopping)
	c.Roster.Restore(snap.Units)
	c.Account.Restore(snap.Transactions)
}
