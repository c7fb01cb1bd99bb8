package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/config"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/storage"
	"github.com/Veraticus/asset-ledger/internal/store"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStore opens the configured storage and loads the record store on top
// of it. The returned func closes the storage.
func initStore(ctx context.Context, opts ...store.Option) (*store.Store, func(), error) {
	cfg, err := config.LoadStorageConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	closeFn := func() {
		if closeErr := backend.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", common.Fields{"backend": cfg.Backend})
		}
	}

	st, err := store.New(ctx, backend, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	common.LogDebug("Opened asset store", common.Fields{
		"backend": cfg.Backend,
		"path":    cfg.Path,
		"slot":    cfg.Slot,
		"count":   len(st.Records()),
	})

	return st, closeFn, nil
}

// parseID parses a record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid asset ID %q", arg), nil)
	}
	return id, nil
}

// addRecordFlags registers the flags shared by add and edit.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "asset name")
	cmd.Flags().StringP("description", "d", "", "free-form description")
	cmd.Flags().StringP("category", "c", "", "category (crypto, stock, loan, saving, other)")
	cmd.Flags().StringP("priority", "p", "", "risk level (high, medium, low)")
	cmd.Flags().StringP("amount", "a", "", "amount held")
	cmd.Flags().StringP("yield", "y", "", "expected yield in percent")
}

// fieldsFromFlags builds a partial record from the flags the user actually set.
// Text is trimmed; numbers must parse.
func fieldsFromFlags(cmd *cobra.Command) (model.Fields, error) {
	var fields model.Fields
	flags := cmd.Flags()

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		name = strings.TrimSpace(name)
		if name == "" {
			return model.Fields{}, common.NewUserError("asset name is required", nil)
		}
		fields.Name = &name
	}

	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		fields.Description = model.Ptr(strings.TrimSpace(description))
	}

	if flags.Changed("category") {
		raw, _ := flags.GetString("category")
		category := model.Category(strings.ToLower(strings.TrimSpace(raw)))
		if !category.IsKnown() {
			return model.Fields{}, common.NewUserError(
				fmt.Sprintf("unknown category %q (use crypto, stock, loan, saving or other)", raw), nil)
		}
		fields.Category = &category
	}

	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		priority := model.Priority(strings.ToLower(strings.TrimSpace(raw)))
		if !priority.IsKnown() {
			return model.Fields{}, common.NewUserError(
				fmt.Sprintf("unknown priority %q (use high, medium or low)", raw), nil)
		}
		fields.Priority = &priority
	}

	for _, name := range []string{"amount", "yield"} {
		if !flags.Changed(name) {
			continue
		}
		raw, _ := flags.GetString(name)
		value, err := parseNumber(raw)
		if err != nil {
			return model.Fields{}, common.NewUserError(fmt.Sprintf("invalid %s %q", name, raw), err)
		}
		if name == "amount" {
			fields.Amount = &value
		} else {
			fields.Yield = &value
		}
	}

	return fields, nil
}

// parseNumber accepts the same textual numbers the stored payload does, but
// rejects anything that would silently become zero.
func parseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New("not a finite number")
	}
	return value, nil
}

// outputFormat validates the --format flag.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format = strings.ToLower(strings.TrimSpace(format)); format {
	case "", "table":
		return "table", nil
	case "json":
		return format, nil
	default:
		return "", common.NewUserError(fmt.Sprintf("invalid format %q (use table or json)", format), nil)
	}
}

func notFoundError(id int64) error {
	return common.NewUserError(fmt.Sprintf("asset %d", id), common.ErrNotFound)
}
