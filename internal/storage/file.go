package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/spf13/afero"
)

// FileStorage keeps a slot as a JSON file named <slot>.json inside dir.
type FileStorage struct {
	fs   afero.Fs
	dir  string
	slot string
	mu   sync.Mutex
}

// NewFileStorage creates a file-backed storage, creating dir if needed.
func NewFileStorage(fsys afero.Fs, dir, slot string) (*FileStorage, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	if err := fsys.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStorage{
		fs:   fsys,
		dir:  dir,
		slot: slot,
	}, nil
}

// Path returns the file holding the slot.
func (s *FileStorage) Path() string {
	return filepath.Join(s.dir, s.slot+".json")
}

// Load reads the slot file.
func (s *FileStorage) Load(ctx context.Context) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path(), err)
	}

	records, ok := Decode(data)
	if !ok {
		slog.Warn("Stored assets are unreadable, starting empty", "path", s.Path())
	}
	return records, nil
}

// Save writes the full list to a temporary file and renames it over the slot
// file, so readers never observe a partial write.
func (s *FileStorage) Save(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := Encode(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := afero.TempFile(s.fs, s.dir, s.slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := s.fs.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			slog.Error("failed to remove temp file", "path", tmpName, "error", rmErr)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := s.fs.Rename(tmpName, s.Path()); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", s.Path(), err)
	}

	slog.Debug("Saved assets", "path", s.Path(), "count", len(records))
	return nil
}

// Close is a no-op for file storage.
func (s *FileStorage) Close() error {
	return nil
}
