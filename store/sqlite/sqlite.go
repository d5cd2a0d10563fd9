/*
Package sqlite provides SQLite-backed persistence for a campaign session.

PURPOSE:
  The supply engine keeps everything in memory. This package saves and
  loads a snapshot of one session (warehouse records, shopping list,
  unit roster, finance journal, calendar) and keeps an append-only log
  of warehouse events.

APPEND-ONLY ENFORCEMENT:
  - finance_transactions: rows are only ever inserted. Saving a snapshot
    inserts the journal entries the table does not have yet.
  - events: written by EventLog, never updated or deleted except by Reset.
  Every other table is replaced wholesale by SaveSnapshot.

KEY TABLES:
  records:              Warehouse records in their JSON form
  shopping_items:       Queued acquisitions, in request order
  units:                The unit roster
  finance_transactions: Immutable finance journal
  events:               Warehouse event log
  campaign:             Calendar and other session metadata

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory database is pinned
  to one connection so every query sees the same data.

USAGE:
  store, err := sqlite.New("./data/quartermaster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  err = store.SaveSnapshot(ctx, snap)
  snap, err := store.LoadSnapshot(ctx)

SEE ALSO:
  - factory/catalog.go: record JSON form and type name resolution
  - api/campaign.go: builds and applies snapshots
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/factory"
	"github.com/warp/quartermaster/supply"
	"github.com/warp/quartermaster/supply/finance"
)

// ErrNoSnapshot is returned by LoadSnapshot when nothing was saved yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Store persists campaign snapshots using SQLite.
type Store struct {
	db    *sql.DB
	mu    sync.RWMutex
	codec *factory.CatalogFactory
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database. Record types are resolved
// through supply.Default until UseCatalog is called.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, codec: factory.NewCatalogFactory(nil)}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// UseCatalog makes the store resolve type names through f.
func (s *Store) UseCatalog(f *factory.CatalogFactory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codec = f
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Warehouse records
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		identity TEXT NOT NULL,
		state TEXT NOT NULL,
		unit_id TEXT,
		amount INTEGER NOT NULL,
		days_to_arrival INTEGER NOT NULL DEFAULT 0,
		record_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_identity
		ON records(identity);
	CREATE INDEX IF NOT EXISTS idx_records_state
		ON records(state);

	-- Shopping list (position keeps request order)
	CREATE TABLE IF NOT EXISTS shopping_items (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		days_to_wait INTEGER NOT NULL,
		item_json TEXT NOT NULL
	);

	-- Unit roster
	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		spec_json TEXT NOT NULL,
		sell_value TEXT NOT NULL,
		days_to_arrival INTEGER NOT NULL DEFAULT 0
	);

	-- Finance journal (append-only)
	CREATE TABLE IF NOT EXISTS finance_transactions (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		memo TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_finance_transactions_category
		ON finance_transactions(category);

	-- Warehouse event log (append-only)
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		record_id INTEGER NOT NULL,
		identity TEXT NOT NULL,
		amount INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_record
		ON events(record_id);

	-- Session metadata
	CREATE TABLE IF NOT EXISTS campaign (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is everything needed to resume a campaign session.
type Snapshot struct {
	Day          int
	Date         time.Time
	Records      []*supply.Record
	Shopping     []*supply.ShoppingItem
	Units        []supply.Unit
	Transactions []finance.Transaction
}

// shoppingPayload is the JSON form of a shopping item's target.
type shoppingPayload struct {
	Part *factory.RecordJSON `json:"part,omitempty"`
	Unit *supply.UnitSpec    `json:"unit,omitempty"`
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveSnapshot replaces the stored session with snap in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, table := range []string{"records", "shopping_items", "units"} {
		if _, err := sqlTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, r := range snap.Records {
		if err := s.insertRecord(ctx, sqlTx, r); err != nil {
			return err
		}
	}
	for i, item := range snap.Shopping {
		if err := s.insertShoppingItem(ctx, sqlTx, i, item); err != nil {
			return err
		}
	}
	for _, u := range snap.Units {
		if err := insertUnit(ctx, sqlTx, u); err != nil {
			return err
		}
	}
	for i, tx := range snap.Transactions {
		if err := appendTransaction(ctx, sqlTx, i, tx); err != nil {
			return err
		}
	}

	meta := map[string]string{
		"day":  strconv.Itoa(snap.Day),
		"date": snap.Date.UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		_, err := sqlTx.ExecContext(ctx,
			`INSERT INTO campaign (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v)
		if err != nil {
			return fmt.Errorf("failed to save campaign %s: %w", k, err)
		}
	}

	return sqlTx.Commit()
}

func (s *Store) insertRecord(ctx context.Context, db execer, r *supply.Record) error {
	if !r.IsRegistered() {
		return fmt.Errorf("record %s has no id: %w", r.Identity(), supply.ErrInvalidRecord)
	}
	payload, err := json.Marshal(s.codec.ToJSON(r))
	if err != nil {
		return fmt.Errorf("failed to encode record %d: %w", r.ID, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO records (id, kind, identity, state, unit_id, amount, days_to_arrival, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int(r.ID), string(r.Kind), r.Identity().String(), r.State.String(),
		nullString(r.UnitID), r.Amount, r.DaysToArrival, string(payload),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("duplicate record id %d: %w", r.ID, supply.ErrInvalidRecord)
		}
		return fmt.Errorf("failed to save record %d: %w", r.ID, err)
	}
	return nil
}

func (s *Store) insertShoppingItem(ctx context.Context, db execer, pos int, item *supply.ShoppingItem) error {
	var p shoppingPayload
	if item.IsUnit() {
		p.Unit = item.Unit
	} else {
		rj := s.codec.ToJSON(item.Part)
		rj.ID, rj.Value = 0, nil
		p.Part = &rj
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode shopping item %s: %w", item.ID, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO shopping_items (id, position, quantity, days_to_wait, item_json)
		VALUES (?, ?, ?, ?, ?)`,
		item.ID, pos, item.Quantity, item.DaysToWait, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save shopping item %s: %w", item.ID, err)
	}
	return nil
}

func insertUnit(ctx context.Context, db execer, u supply.Unit) error {
	spec, err := json.Marshal(u.Spec)
	if err != nil {
		return fmt.Errorf("failed to encode unit %s: %w", u.ID, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO units (id, name, spec_json, sell_value, days_to_arrival)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Spec.Name, string(spec), u.SellValue.String(), u.DaysToArrival,
	)
	if err != nil {
		return fmt.Errorf("failed to save unit %s: %w", u.ID, err)
	}
	return nil
}

// appendTransaction inserts a journal entry unless it is already stored.
func appendTransaction(ctx context.Context, db execer, seq int, tx finance.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO finance_transactions (id, seq, date, category, amount, memo)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		tx.ID, seq, tx.Date.UTC().Format(time.RFC3339), string(tx.Category),
		tx.Amount.String(), nullString(tx.Memo),
	)
	if err != nil {
		return fmt.Errorf("failed to append finance transaction %s: %w", tx.ID, err)
	}
	return nil
}

// LoadSnapshot reads the stored session. Returns ErrNoSnapshot when
// SaveSnapshot was never called.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := meta["day"]; !ok {
		return nil, ErrNoSnapshot
	}

	snap := &Snapshot{}
	snap.Day, _ = strconv.Atoi(meta["day"])
	snap.Date, _ = time.Parse(time.RFC3339, meta["date"])

	if snap.Records, err = s.loadRecords(ctx); err != nil {
		return nil, err
	}
	if snap.Shopping, err = s.loadShopping(ctx); err != nil {
		return nil, err
	}
	if snap.Units, err = s.loadUnits(ctx); err != nil {
		return nil, err
	}
	if snap.Transactions, err = s.loadTransactions(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM campaign")
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func (s *Store) loadRecords(ctx context.Context) ([]*supply.Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, record_json FROM records ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []*supply.Record
	for rows.Next() {
		var (
			id      int
			payload string
			rj      factory.RecordJSON
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rj); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", id, err)
		}
		rj.ID = id
		r, err := s.codec.FromJSON(rj)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", id, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) loadShopping(ctx context.Context) ([]*supply.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, quantity, days_to_wait, item_json FROM shopping_items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	var out []*supply.ShoppingItem
	for rows.Next() {
		var (
			item    supply.ShoppingItem
			payload string
			p       shoppingPayload
		)
		if err := rows.Scan(&item.ID, &item.Quantity, &item.DaysToWait, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("failed to decode shopping item %s: %w", item.ID, err)
		}
		switch {
		case p.Unit != nil:
			item.Unit = p.Unit
		case p.Part != nil:
			r, err := s.codec.FromJSON(*p.Part)
			if err != nil {
				return nil, fmt.Errorf("shopping item %s: %w", item.ID, err)
			}
			item.Part = r
		default:
			return nil, fmt.Errorf("shopping item %s is empty: %w", item.ID, supply.ErrInvalidRecord)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (s *Store) loadUnits(ctx context.Context) ([]supply.Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, spec_json, sell_value, days_to_arrival FROM units ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var out []supply.Unit
	for rows.Next() {
		var (
			u         supply.Unit
			spec      string
			sellValue string
		)
		if err := rows.Scan(&u.ID, &spec, &sellValue, &u.DaysToArrival); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		if err := json.Unmarshal([]byte(spec), &u.Spec); err != nil {
			return nil, fmt.Errorf("failed to decode unit %s: %w", u.ID, err)
		}
		if u.SellValue, err = decimal.NewFromString(sellValue); err != nil {
			return nil, fmt.Errorf("unit %s sell value: %w", u.ID, err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) loadTransactions(ctx context.Context) ([]finance.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, category, amount, memo FROM finance_transactions ORDER BY seq, date")
	if err != nil {
		return nil, fmt.Errorf("failed to query finance transactions: %w", err)
	}
	defer rows.Close()

	var out []finance.Transaction
	for rows.Next() {
		var (
			tx       finance.Transaction
			date     string
			category string
			amount   string
			memo     sql.NullString
		)
		if err := rows.Scan(&tx.ID, &date, &category, &amount, &memo); err != nil {
			return nil, fmt.Errorf("failed to scan finance transaction: %w", err)
		}
		tx.Date, _ = time.Parse(time.RFC3339, date)
		tx.Category = supply.Category(category)
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("finance transaction %s amount: %w", tx.ID, err)
		}
		tx.Memo = memo.String
		out = append(out, tx)
	}
	return out, rows.Err()
}

// =============================================================================
// EVENT LOG
// =============================================================================

// EventRecord is a stored warehouse event.
type EventRecord struct {
	Seq       int64     `json:"seq"`
	Type      string    `json:"type"`
	RecordID  int       `json:"record_id"`
	Identity  string    `json:"identity"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// EventLog is a supply.Sink that appends every event to the events table.
// Logger defaults to log.Default().
type EventLog struct {
	store  *Store
	Logger *log.Logger
}

// EventLog returns a sink writing to this store.
func (s *Store) EventLog() *EventLog {
	return &EventLog{store: s}
}

// Publish implements supply.Sink. Write failures are logged, not returned.
func (l *EventLog) Publish(e supply.Event) {
	err := l.store.AppendEvent(context.Background(), e)
	if err == nil {
		return
	}
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[EventLog] %s #%d: %v", e.Type, e.RecordID, err)
}

var _ supply.Sink = (*EventLog)(nil)

// AppendEvent stores one event.
func (s *Store) AppendEvent(ctx context.Context, e supply.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (event_type, record_id, identity, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(e.Type), int(e.RecordID), e.Record.Identity().String(), e.Record.Amount,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// Events returns the most recent events, newest first.
func (s *Store) Events(ctx context.Context, limit int) ([]EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, event_type, record_id, identity, amount, created_at
		FROM events
		ORDER BY seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var (
			e         EventRecord
			createdAt string
		)
		if err := rows.Scan(&e.Seq, &e.Type, &e.RecordID, &e.Identity, &e.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"records", "shopping_items", "units", "finance_transactions", "events", "campaign"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
