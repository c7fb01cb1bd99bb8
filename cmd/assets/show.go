package main

import (
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <asset-id>",
		Short: "Show a single asset",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().StringP("format", "o", "table", "output format (table, json)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	st, closeStore, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	record, ok := st.Find(id)
	if !ok {
		return notFoundError(id)
	}

	if format == "json" {
		return cli.RenderJSON(cmd.OutOrStdout(), record)
	}
	return cli.RenderRecord(cmd.OutOrStdout(), record)
}
