/*
store.go - The canonical collection of resource records

PURPOSE:
  The Store is the single source of truth for every record of one campaign
  session. It owns id allocation, merge-on-insert and cascading removal,
  and is the only place that emits Created/Changed/Removed events.

ARENA MODEL:
  Records are kept in a map keyed by id. A child points at its parent
  through ParentID; Remove walks the arena for matching ParentIDs instead
  of following object references.

  Enumeration is always in id order, so reports and snapshots are stable.

CONCURRENCY:
  The Store is not synchronized. A campaign session serializes all access
  behind one lock (see api.Campaign); merges and removals are therefore
  never interleaved.

SEE ALSO:
  - types.go: Record, Identity, State
  - quartermaster.go: the only caller that mutates magnitudes
*/
package supply

import "sort"

// =============================================================================
// STORE
// =============================================================================

type Store struct {
	records map[RecordID]*Record
	nextID  RecordID
	sink    Sink
}

// NewStore creates an empty store. A nil sink discards events.
func NewStore(sink Sink) *Store {
	if sink == nil {
		sink = discardSink{}
	}
	return &Store{
		records: make(map[RecordID]*Record),
		nextID:  1,
		sink:    sink,
	}
}

func (s *Store) emit(t EventType, r *Record) {
	s.sink.Publish(Event{Type: t, RecordID: r.ID, Record: r})
}

// Contains reports whether r itself (not just its id) is registered here.
func (s *Store) Contains(r *Record) bool {
	if r == nil || !r.IsRegistered() {
		return false
	}
	return s.records[r.ID] == r
}

// Register indexes r and returns its id. An unset id, or an id already taken
// by another record, gets a fresh one. Registering a record that is already
// indexed is a no-op and emits nothing.
func (s *Store) Register(r *Record) RecordID {
	if s.Contains(r) {
		return r.ID
	}
	if !r.IsRegistered() || s.records[r.ID] != nil {
		r.ID = s.nextID
	}
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
	s.records[r.ID] = r
	s.emit(EventCreated, r)
	return r.ID
}

// InsertMerging adds r, merging it into an existing matching spare when
// there is one. It returns the record that now holds r's magnitude.
//
// When r merges and had already been registered (an in-transit record that
// just arrived), r is removed from the Store.
func (s *Store) InsertMerging(r *Record) *Record {
	if target := s.findMergeTarget(r); target != nil {
		target.AddMagnitude(r.Magnitude())
		if s.Contains(r) {
			s.Remove(r)
		}
		r.ID = NoID
		s.emit(EventChanged, target)
		return target
	}
	s.Register(r)
	return r
}

func (s *Store) findMergeTarget(r *Record) *Record {
	if r.State != StateSpare || r.UnitID != "" || r.IsKit() {
		return nil
	}
	identity := r.Identity()
	for _, existing := range s.sorted() {
		if existing == r {
			continue
		}
		if !existing.IsSpare() || existing.DaysToArrival != r.DaysToArrival {
			continue
		}
		if existing.Kind != r.Kind || existing.Identity() != identity {
			continue
		}
		return existing
	}
	return nil
}

// Remove deletes r and, recursively, every record whose ParentID is r's id.
// Returns false if r is not in the Store.
func (s *Store) Remove(r *Record) bool {
	if !s.Contains(r) {
		return false
	}
	id := r.ID
	delete(s.records, id)
	for _, child := range s.sorted() {
		if child.ParentID == id {
			s.Remove(child)
		}
	}
	s.sink.Publish(Event{Type: EventRemoved, RecordID: id, Record: r})
	r.ID = NoID
	return true
}

// =============================================================================
// QUERIES
// =============================================================================

func (s *Store) ByID(id RecordID) *Record {
	return s.records[id]
}

// All returns every record in id order, regardless of state.
func (s *Store) All() []*Record {
	return s.sorted()
}

func (s *Store) Len() int {
	return len(s.records)
}

// Spares returns records that are Spare or UnderRepair, in id order.
func (s *Store) Spares() []*Record {
	var out []*Record
	for _, r := range s.sorted() {
		if r.State.IsSpare() {
			out = append(out, r)
		}
	}
	return out
}

// ForEachSpare calls fn for every spare. It iterates over a snapshot, so fn
// may remove the record it is given.
func (s *Store) ForEachSpare(fn func(r *Record)) {
	for _, r := range s.Spares() {
		fn(r)
	}
}

// FindSpare returns the first spare (in id order) matching pred, or nil.
func (s *Store) FindSpare(pred func(r *Record) bool) *Record {
	for _, r := range s.sorted() {
		if r.State.IsSpare() && pred(r) {
			return r
		}
	}
	return nil
}

// Restore replaces the contents with records loaded from a snapshot. Ids
// are kept; records without an id get a fresh one. No events are emitted.
func (s *Store) Restore(records []*Record) {
	s.records = make(map[RecordID]*Record, len(records))
	s.nextID = 1
	for _, r := range records {
		if r.IsRegistered() && r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	for _, r := range records {
		if !r.IsRegistered() || s.records[r.ID] != nil {
			r.ID = s.nextID
			s.nextID++
		}
		s.records[r.ID] = r
	}
}

func (s *Store) sorted() []*Record {
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
