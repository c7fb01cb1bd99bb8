// Package storage provides the data persistence layer for asset-ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidSlot    = errors.New("invalid slot name")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSlot ensures a slot name can be used as a key and as a file name.
func validateSlot(slot string) error {
	if err := validateString(slot, "slot"); err != nil {
		return err
	}
	if strings.Contains(slot, "/") || strings.Contains(slot, "\\") || strings.Contains(slot, "..") {
		return fmt.Errorf("%w: %q cannot contain path separators", ErrInvalidSlot, slot)
	}
	return nil
}
