/*
scheduler.go - Automated day scheduler

PURPOSE:
  Advances the campaign calendar on a wall-clock interval, so in-transit
  deliveries arrive and queued shopping list items roll without anyone
  calling the API. Optionally saves a snapshot after every day.

DESIGN:
  - Runs a background goroutine with configurable interval
  - Each tick runs one Campaign.NewDay under the campaign lock
  - AutoSave writes a snapshot through the sqlite store after the day

CONFIGURATION:
  - Interval: How often a day passes (default: 1 hour)
  - Enabled:  Whether scheduler is active (default: true)
  - AutoSave: Save after each day (needs a store)

USAGE:
  scheduler := NewDayScheduler(campaign, store)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: AdvanceDays endpoint (manual days)
  - campaign.go: NewDay
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/quartermaster/store/sqlite"
)

// DayScheduler advances the campaign one day per interval.
type DayScheduler struct {
	Campaign *Campaign
	Store    *sqlite.Store
	Interval time.Duration
	Enabled  bool
	AutoSave bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDayScheduler creates a new scheduler. store may be nil.
func NewDayScheduler(campaign *Campaign, store *sqlite.Store) *DayScheduler {
	return &DayScheduler{
		Campaign: campaign,
		Store:    store,
		Interval: 1 * time.Hour,
		Enabled:  true,
		stop:     make(chan bool),
	}
}

// Start begins the scheduler.
func (ds *DayScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled || ds.Interval <= 0 {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}
	if ds.ticker != nil {
		return
	}

	ds.ticker = time.NewTicker(ds.Interval)
	ds.wg.Add(1)

	go ds.run()

	log.Printf("[Scheduler] Started with day interval: %v", ds.Interval)
}

// Stop stops the scheduler.
func (ds *DayScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker != nil {
		ds.ticker.Stop()
		close(ds.stop)
		ds.wg.Wait()
		ds.ticker = nil
		log.Println("[Scheduler] Stopped")
	}
}

func (ds *DayScheduler) run() {
	defer ds.wg.Done()

	for {
		select {
		case <-ds.ticker.C:
			ds.RunNow()
		case <-ds.stop:
			return
		}
	}
}

// RunNow advances one day immediately and returns its report.
func (ds *DayScheduler) RunNow() DayReport {
	var report DayReport
	ds.Campaign.Do(func(c *Campaign) error {
		report = c.newDay()
		if ds.AutoSave && ds.Store != nil {
			if err := ds.Store.SaveSnapshot(context.Background(), c.Snapshot()); err != nil {
				log.Printf("[Scheduler] Error saving day %d: %v", c.Day, err)
			}
		}
		return nil
	})

	if report.Arrived > 0 || report.Acquired > 0 {
		log.Printf("[Scheduler] Day %d: %d arrived, %d acquired", report.Day, report.Arrived, report.Acquired)
	}
	return report
}
