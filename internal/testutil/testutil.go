// Package testutil provides shared fixtures for asset-ledger tests: a
// deterministic clock, an in-memory store and a storage that can be told
// to fail.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/storage"
	"github.com/Veraticus/asset-ledger/internal/store"
)

// BaseTime is the first instant handed out by a Clock.
var BaseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// ErrDiskFull is returned by FailingStorage once it starts failing.
var ErrDiskFull = errors.New("disk full")

// Clock advances one second per call.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

// NewClock returns a clock starting at BaseTime.
func NewClock() *Clock {
	return &Clock{now: BaseTime}
}

// Now returns the next instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// FailingStorage fails every save after the first FailAfter calls.
type FailingStorage struct {
	*storage.MemoryStorage
	FailAfter int
	calls     int
	mu        sync.Mutex
}

// NewFailingStorage wraps a fresh memory storage.
func NewFailingStorage(failAfter int) *FailingStorage {
	return &FailingStorage{MemoryStorage: storage.NewMemoryStorage(), FailAfter: failAfter}
}

// Save delegates until the budget is spent, then returns ErrDiskFull.
func (f *FailingStorage) Save(ctx context.Context, records []model.Record) error {
	f.mu.Lock()
	f.calls++
	failing := f.calls > f.FailAfter
	f.mu.Unlock()

	if failing {
		return ErrDiskFull
	}
	return f.MemoryStorage.Save(ctx, records)
}

// TestStore is a store over in-memory storage with a deterministic clock.
type TestStore struct {
	Store   *store.Store
	Storage *storage.MemoryStorage
}

// SetupTestStore creates an empty store.
//
// Example:
//
//	ts := testutil.SetupTestStore(t)
//	records := ts.Seed(t, testutil.ScenarioFields()...)
func SetupTestStore(t *testing.T, opts ...store.Option) *TestStore {
	t.Helper()

	mem := storage.NewMemoryStorage()
	st, err := store.New(context.Background(), mem, append([]store.Option{store.WithClock(NewClock().Now)}, opts...)...)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	return &TestStore{Store: st, Storage: mem}
}

// Seed creates one record per entry and returns the resulting list.
func (ts *TestStore) Seed(t *testing.T, fields ...model.Fields) []model.Record {
	t.Helper()

	records := ts.Store.Records()
	for _, f := range fields {
		var err error
		records, err = ts.Store.Create(context.Background(), f)
		if err != nil {
			t.Fatalf("failed to seed record: %v", err)
		}
	}
	return records
}

// Persisted loads what the storage currently holds.
func (ts *TestStore) Persisted(t *testing.T) []model.Record {
	t.Helper()

	records, err := ts.Storage.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load persisted records: %v", err)
	}
	return records
}

// ScenarioFields describes a small portfolio: an active crypto holding, an
// inactive loan and an active stock.
func ScenarioFields() []model.Fields {
	return []model.Fields{
		{
			Name:     model.Ptr("BTC"),
			Category: model.Ptr(model.CategoryCrypto),
			Priority: model.Ptr(model.PriorityHigh),
			Amount:   model.Ptr(100.0),
			Yield:    model.Ptr(4.5),
		},
		{
			Name:        model.Ptr("Treasury Bond"),
			Description: model.Ptr("10 year"),
			Category:    model.Ptr(model.CategoryLoan),
			Priority:    model.Ptr(model.PriorityLow),
			Amount:      model.Ptr(50.0),
			Active:      model.Ptr(false),
		},
		{
			Name:     model.Ptr("Vanguard S&P 500"),
			Category: model.Ptr(model.CategoryStock),
			Amount:   model.Ptr(1000.0),
		},
	}
}
