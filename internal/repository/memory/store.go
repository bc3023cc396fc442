// Package memory keeps events, rosters and slots in process memory. It
// mirrors the postgres repositories, including cascades and foreign keys,
// and backs local runs without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
)

type txKey struct{}

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	events  map[uuid.UUID]domain.Event
	bands   map[uuid.UUID]domain.Band
	songs   map[uuid.UUID]domain.Song
	members map[uuid.UUID]domain.BandMember
	slots   map[uuid.UUID]domain.Slot

	// insertion sequence, used as the roster tie-break
	seq     int64
	bandSeq map[uuid.UUID]int64
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		events:  make(map[uuid.UUID]domain.Event),
		bands:   make(map[uuid.UUID]domain.Band),
		songs:   make(map[uuid.UUID]domain.Song),
		members: make(map[uuid.UUID]domain.BandMember),
		slots:   make(map[uuid.UUID]domain.Slot),
		bandSeq: make(map[uuid.UUID]int64),
	}
}

// lock takes the store mutex unless ctx already runs inside RunTx.
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// RunTx runs fn with the store locked. When fn fails every change it made
// is rolled back.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}

	return nil
}

type snapshot struct {
	events  map[uuid.UUID]domain.Event
	bands   map[uuid.UUID]domain.Band
	songs   map[uuid.UUID]domain.Song
	members map[uuid.UUID]domain.BandMember
	slots   map[uuid.UUID]domain.Slot
	seq     int64
	bandSeq map[uuid.UUID]int64
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		events:  copyMap(s.events),
		bands:   copyMap(s.bands),
		songs:   copyMap(s.songs),
		members: copyMap(s.members),
		slots:   copyMap(s.slots),
		seq:     s.seq,
		bandSeq: copyMap(s.bandSeq),
	}
}

func (s *Store) restore(snap snapshot) {
	s.events = snap.events
	s.bands = snap.bands
	s.songs = snap.songs
	s.members = snap.members
	s.slots = snap.slots
	s.seq = snap.seq
	s.bandSeq = snap.bandSeq
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) Events() *EventRepo  { return &EventRepo{s: s} }
func (s *Store) Roster() *RosterRepo { return &RosterRepo{s: s} }
func (s *Store) Slots() *SlotRepo    { return &SlotRepo{s: s} }
