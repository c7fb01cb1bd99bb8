// Package store owns the authoritative in-memory list of asset records.
//
// Every mutation is written through to the configured storage before it is
// returned: if the write fails the in-memory list is left untouched, so the
// persisted copy and the list returned by Records never diverge.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/service"
)

// Store is a write-through record store. It is safe for concurrent use, but
// callers sharing one slot across processes get last-writer-wins semantics.
type Store struct {
	storage service.Storage
	clock   func() time.Time
	logger  *slog.Logger
	records []model.Record
	mu      sync.Mutex
	strict  bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithStrictLookup makes Update, Delete and ToggleActive return
// common.ErrNotFound for unknown ids. The unchanged list is still persisted.
func WithStrictLookup() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New loads the current list from storage and returns a ready store.
func New(ctx context.Context, storage service.Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is required", common.ErrMissingConfig)
	}

	s := &Store{
		storage: storage,
		clock:   time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	if records == nil {
		records = []model.Record{}
	}
	s.records = records

	s.logger.Debug("Loaded assets", "count", len(records))
	return s, nil
}

// Records returns a copy of the current list.
func (s *Store) Records() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Find returns the record with the given id.
func (s *Store) Find(id int64) (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return model.Record{}, false
}

// Create appends a new record built from the default template overlaid with
// fields. Missing fields take their defaults; Create never rejects input.
func (s *Store) Create(ctx context.Context, fields model.Fields) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record := model.NewRecord(s.nextID(now), now, fields)

	next := make([]model.Record, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, record)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Debug("Created asset", "id", record.ID, "name", record.Name)
	return slices.Clone(next), nil
}

// Update merges fields over the record with the given id and stamps UpdatedAt.
func (s *Store) Update(ctx context.Context, id int64, fields model.Fields) ([]model.Record, error) {
	return s.mutate(ctx, "update", id, func(r model.Record, now time.Time) model.Record {
		return r.Apply(fields).Touch(now)
	})
}

// ToggleActive flips the active flag of the record with the given id.
func (s *Store) ToggleActive(ctx context.Context, id int64) ([]model.Record, error) {
	return s.mutate(ctx, "toggle", id, func(r model.Record, now time.Time) model.Record {
		r.Active = !r.Active
		return r.Touch(now)
	})
}

// Delete removes the record with the given id, preserving the order of the rest.
func (s *Store) Delete(ctx context.Context, id int64) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.indexOf(id) >= 0
	next := slices.DeleteFunc(slices.Clone(s.records), func(r model.Record) bool {
		return r.ID == id
	})

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	if err := s.notFound("delete", id, found); err != nil {
		return slices.Clone(next), err
	}
	return slices.Clone(next), nil
}

// ClearInactive removes every inactive record, keeping active ones in order.
func (s *Store) ClearInactive(ctx context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.records), func(r model.Record) bool {
		return !r.Active
	})

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Debug("Cleared inactive assets", "removed", len(s.records)-len(next))
	return slices.Clone(next), nil
}

// mutate replaces the record matching id with fn's result and persists.
func (s *Store) mutate(ctx context.Context, op string, id int64, fn func(model.Record, time.Time) model.Record) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.records)
	found := false
	if i := s.indexOf(id); i >= 0 {
		next[i] = fn(next[i], s.now())
		found = true
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	if err := s.notFound(op, id, found); err != nil {
		return slices.Clone(next), err
	}
	return slices.Clone(next), nil
}

// commit persists next and, only on success, makes it the current list.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, next []model.Record) error {
	if next == nil {
		next = []model.Record{}
	}
	if err := s.storage.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist records: %w", err)
	}
	s.records = next
	return nil
}

func (s *Store) notFound(op string, id int64, found bool) error {
	if found {
		return nil
	}
	s.logger.Debug("Asset not found", "op", op, "id", id)
	if s.strict {
		return fmt.Errorf("asset %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// nextID derives an id from the creation time in milliseconds, bumping past
// the largest existing id so ids stay unique. Callers must hold s.mu.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, r := range s.records {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return id
}

// indexOf returns the position of id or -1. Callers must hold s.mu.
func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.records, func(r model.Record) bool {
		return r.ID == id
	})
}

// now returns the clock's time in UTC at millisecond precision, matching what
// survives a JSON round trip.
func (s *Store) now() time.Time {
	return s.clock().UTC().Truncate(time.Millisecond)
}

var _ service.RecordStore = (*Store)(nil)
