package main

import (
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new asset",
		Long: `Add a new asset to the ledger.

Only the name is required. New assets are active, medium risk and
categorized as "other" unless told otherwise.`,
		Example: `  assets add --name BTC --category crypto --priority high --amount 100 --yield 4.5`,
		Args:    cobra.NoArgs,
		RunE:    runAdd,
	}

	addRecordFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if !cmd.Flags().Changed("name") {
		return common.NewUserError("asset name is required (--name)", nil)
	}
	fields, err := fieldsFromFlags(cmd)
	if err != nil {
		return err
	}

	st, closeStore, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	records, err := st.Create(ctx, fields)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	created := records[len(records)-1]

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Asset created: %q (ID %d)", created.Name, created.ID)))
	fmt.Fprintf(out, "  %s  %s  %s\n",
		cli.CategoryLabel(created.Category),
		cli.FormatAmount(created.Amount.Float64()),
		cli.PriorityLabel(created.Priority))

	return nil
}
