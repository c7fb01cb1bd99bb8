package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/model"
)

// MemoryStorage holds the serialized slot in process memory. Records still go
// through Encode/Decode so it behaves like the persistent backends.
type MemoryStorage struct {
	payload []byte
	saves   int
	mu      sync.Mutex
	closed  bool
}

// NewMemoryStorage returns an empty memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// NewMemoryStorageWithPayload seeds the slot with a raw payload.
func NewMemoryStorageWithPayload(payload []byte) *MemoryStorage {
	return &MemoryStorage{payload: append([]byte(nil), payload...)}
}

// Load decodes the current payload.
func (s *MemoryStorage) Load(ctx context.Context) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, common.ErrStorageClosed
	}
	if s.payload == nil {
		return []model.Record{}, nil
	}

	records, ok := Decode(s.payload)
	if !ok {
		slog.Warn("Stored assets are unreadable, starting empty", "backend", BackendMemory)
	}
	return records, nil
}

// Save replaces the payload.
func (s *MemoryStorage) Save(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := Encode(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrStorageClosed
	}
	s.payload = data
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Payload returns a copy of the raw slot contents.
func (s *MemoryStorage) Payload() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.payload...)
}

// Close releases the slot. Later loads and saves fail with
// common.ErrStorageClosed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
