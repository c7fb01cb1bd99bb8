package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Veraticus/asset-ledger/internal/service"
	"github.com/spf13/afero"
)

// DefaultSlot is the slot name used when none is configured.
const DefaultSlot = "fintech_assets"

// Supported backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config selects and parameterizes a backend. Path is a directory for the
// file backend and a database file for sqlite; it is ignored for memory.
type Config struct {
	Backend string
	Path    string
	Slot    string
}

// Open creates the configured storage backend, running migrations where needed.
func Open(ctx context.Context, cfg Config) (service.Storage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if cfg.Slot == "" {
		cfg.Slot = DefaultSlot
	}

	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStorage(afero.NewOsFs(), cfg.Path, cfg.Slot)

	case BackendSQLite:
		store, err := NewSQLiteStorage(cfg.Path, cfg.Slot)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	case BackendMemory:
		return NewMemoryStorage(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// DefaultPath returns the default location for a backend under dataDir.
func DefaultPath(backend, dataDir string) string {
	if backend == BackendSQLite {
		return filepath.Join(dataDir, "assets.db")
	}
	return dataDir
}
