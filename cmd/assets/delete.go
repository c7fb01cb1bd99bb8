package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/store"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <asset-id>",
		Short: "Delete an asset",
		Long: `Delete an asset permanently.

The asset is removed from the ledger and cannot be recovered.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")

	st, closeStore, err := initStore(ctx, store.WithStrictLookup())
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	record, ok := st.Find(id)
	if !ok {
		return notFoundError(id)
	}

	out := cmd.OutOrStdout()
	if err := cli.RenderRecord(out, record); err != nil {
		return err
	}

	// Confirm deletion
	if !force {
		reader := cli.NewNonBlockingReader(cmd.InOrStdin())
		confirmed, err := cli.Confirm(ctx, reader, out, fmt.Sprintf("Delete %q?", record.Name))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Operation canceled.")
			return nil
		}
	}

	if _, err := st.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return notFoundError(id)
		}
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Asset %d deleted", id)))
	return nil
}
