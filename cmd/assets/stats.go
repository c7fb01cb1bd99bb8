package main

import (
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show portfolio statistics",
		Long: `Show totals for the whole ledger: number of assets, how many are
active, the count per category and the total capital.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().StringP("format", "o", "table", "output format (table, json)")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	st, closeStore, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	stats := query.Aggregate(st.Records())

	if format == "json" {
		return cli.RenderJSON(cmd.OutOrStdout(), stats)
	}
	return cli.RenderStats(cmd.OutOrStdout(), stats)
}
