package main

import (
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/spf13/cobra"
)

func clearInactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-inactive",
		Short: "Delete every inactive asset",
		Args:  cobra.NoArgs,
		RunE:  runClearInactive,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runClearInactive(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	st, closeStore, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	inactive := query.Filter(st.Records(), query.Criteria{Status: query.StatusInactive})
	if len(inactive) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No inactive assets to clear"))
		return nil
	}

	if !force {
		if err := cli.RenderRecords(out, inactive); err != nil {
			return err
		}
		reader := cli.NewNonBlockingReader(cmd.InOrStdin())
		confirmed, err := cli.Confirm(ctx, reader, out, fmt.Sprintf("Delete %d inactive assets?", len(inactive)))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Operation canceled.")
			return nil
		}
	}

	records, err := st.ClearInactive(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear inactive assets: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Cleared %d inactive assets, %d remaining", len(inactive), len(records))))
	return nil
}
