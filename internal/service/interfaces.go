// Package service defines the interfaces shared between the core and the
// presentation layers.
package service

import (
	"context"

	"github.com/Veraticus/asset-ledger/internal/model"
)

// Storage persists the full record list under a single named slot.
type Storage interface {
	// Load returns the persisted list. A missing or unparsable slot yields an
	// empty list and no error; only I/O failures are returned.
	Load(ctx context.Context) ([]model.Record, error)
	// Save overwrites the slot with records.
	Save(ctx context.Context, records []model.Record) error
	Close() error
}

// RecordStore is what the presentation layer consumes. Every mutator persists
// the full list before returning it.
type RecordStore interface {
	Records() []model.Record
	Find(id int64) (model.Record, bool)
	Create(ctx context.Context, fields model.Fields) ([]model.Record, error)
	Update(ctx context.Context, id int64, fields model.Fields) ([]model.Record, error)
	Delete(ctx context.Context, id int64) ([]model.Record, error)
	ToggleActive(ctx context.Context, id int64) ([]model.Record, error)
	ClearInactive(ctx context.Context) ([]model.Record, error)
}
