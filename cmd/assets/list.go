package main

import (
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assets",
		Long: `List assets in the order they were added.

Filters combine: only assets matching every filter are shown. The search
term matches the name or description, ignoring case.`,
		Example: `  assets list --status active --category crypto
  assets list --search bond --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("status", "s", "all", "filter by status (all, active, inactive)")
	cmd.Flags().StringP("category", "c", "all", "filter by category")
	cmd.Flags().StringP("priority", "p", "all", "filter by priority")
	cmd.Flags().StringP("search", "q", "", "search name and description")
	cmd.Flags().StringP("format", "o", "table", "output format (table, json)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	rawStatus, _ := cmd.Flags().GetString("status")
	status, err := query.ParseStatus(rawStatus)
	if err != nil {
		return common.NewUserError(err.Error(), nil)
	}
	category, _ := cmd.Flags().GetString("category")
	priority, _ := cmd.Flags().GetString("priority")
	search, _ := cmd.Flags().GetString("search")

	st, closeStore, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	records := query.Filter(st.Records(), query.Criteria{
		Status:   status,
		Category: category,
		Priority: priority,
		Search:   search,
	})

	out := cmd.OutOrStdout()
	if format == "json" {
		return cli.RenderJSON(out, records)
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Assets (%d)", len(records))))
	return cli.RenderRecords(out, records)
}
