package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/store"
	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <asset-id>",
		Short: "Edit an existing asset",
		Long: `Edit an existing asset.

Only the flags you pass are changed; everything else is kept.`,
		Example: `  assets edit 1718000000000 --amount 150 --priority medium
  assets edit 1718000000000 --inactive`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	addRecordFlags(cmd)
	cmd.Flags().Bool("active", false, "mark the asset as active")
	cmd.Flags().Bool("inactive", false, "mark the asset as inactive")
	cmd.MarkFlagsMutuallyExclusive("active", "inactive")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fields, err := fieldsFromFlags(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("active") {
		fields.Active = model.Ptr(true)
	}
	if cmd.Flags().Changed("inactive") {
		fields.Active = model.Ptr(false)
	}
	if fields.IsEmpty() {
		return common.NewUserError("nothing to change: pass at least one field flag", nil)
	}

	st, closeStore, err := initStore(ctx, store.WithStrictLookup())
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	if _, err := st.Update(ctx, id, fields); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return notFoundError(id)
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	updated, _ := st.Find(id)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Asset %d updated: %q", id, updated.Name)))

	return nil
}
