package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/mattn/go-sqlite3"
)

const memoryDSN = ":memory:"

// SQLiteStorage implements service.Storage as a key-value slot in SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	slot   string
	retry  common.RetryOptions
}

// NewSQLiteStorage creates a new SQLite storage instance. Call Migrate before use.
func NewSQLiteStorage(dbPath, slot string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	if dbPath != memoryDSN {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and :memory: needs a
	// single one to keep its data.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		slot:   slot,
		retry:  common.DefaultRetryOptions(),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Load reads the slot row.
func (s *SQLiteStorage) Load(ctx context.Context) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %q: %w", s.slot, classifySQLiteError(err))
	}

	records, ok := Decode([]byte(payload))
	if !ok {
		slog.Warn("Stored assets are unreadable, starting empty", "db", s.dbPath, "slot", s.slot)
	}
	return records, nil
}

// Save upserts the slot row with the full list. A single statement keeps the
// write atomic; busy databases are retried with backoff.
func (s *SQLiteStorage) Save(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := Encode(records)
	if err != nil {
		return err
	}

	err = common.WithRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `
			INSERT INTO slots (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, s.slot, string(data))
		return classifySQLiteError(execErr)
	}, s.retry)
	if err != nil {
		return fmt.Errorf("failed to save slot %q: %w", s.slot, err)
	}

	slog.Debug("Saved assets", "db", s.dbPath, "slot", s.slot, "count", len(records))
	return nil
}

// classifySQLiteError marks lock contention as common.ErrStorageBusy so it is retried.
func classifySQLiteError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %w", common.ErrStorageBusy, err)
	}
	return err
}
