package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/storage"
	"github.com/spf13/viper"
)

// Viper keys for the storage section.
const (
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyStorageSlot    = "storage.slot"
)

// EnvKeyReplacer maps nested keys to env names, e.g. storage.slot to ASSETS_STORAGE_SLOT.
var EnvKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// DefaultDataDir is where asset data lives unless configured otherwise.
const DefaultDataDir = "$HOME/.local/share/assets"

// Dir returns the directory holding config.yaml.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "assets"), nil
}

// LoadStorageConfig builds the storage configuration from v.
// It follows this precedence:
// 1. Viper configuration (flags, ASSETS_ env vars, config file)
// 2. Default values
func LoadStorageConfig(v *viper.Viper) (storage.Config, error) {
	cfg := storage.Config{
		Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
		Path:    strings.TrimSpace(v.GetString(KeyStoragePath)),
		Slot:    strings.TrimSpace(v.GetString(KeyStorageSlot)),
	}

	if cfg.Backend == "" {
		cfg.Backend = storage.BackendFile
	}
	if cfg.Slot == "" {
		cfg.Slot = storage.DefaultSlot
	}

	switch cfg.Backend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return storage.Config{}, fmt.Errorf("%w: unknown storage backend %q (use file, sqlite or memory)",
			common.ErrInvalidConfig, cfg.Backend)
	}

	if cfg.Path == "" && cfg.Backend != storage.BackendMemory {
		cfg.Path = storage.DefaultPath(cfg.Backend, ExpandPath(DefaultDataDir))
	}
	cfg.Path = ExpandPath(cfg.Path)

	return cfg, nil
}
