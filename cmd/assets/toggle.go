package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/store"
	"github.com/spf13/cobra"
)

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <asset-id>",
		Short: "Flip an asset between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle,
	}
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	st, closeStore, err := initStore(ctx, store.WithStrictLookup())
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	if _, err := st.ToggleActive(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return notFoundError(id)
		}
		return fmt.Errorf("failed to toggle asset: %w", err)
	}

	record, _ := st.Find(id)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Asset %q is now %s", record.Name, cli.FormatStatus(record.Active))))
	return nil
}
