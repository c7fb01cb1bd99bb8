package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/asset-ledger/internal/store"
	"github.com/Veraticus/asset-ledger/internal/tui"
	"github.com/Veraticus/asset-ledger/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive asset manager",
		Long: `Open a full-screen terminal UI to browse, filter, add and edit assets.

Press ? inside the UI for the list of keys.`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("no-stats", false, "start with the stats panel hidden")
	cmd.Flags().Bool("inline", false, "render below the prompt instead of full screen")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	noStats, _ := cmd.Flags().GetBool("no-stats")
	inline, _ := cmd.Flags().GetBool("inline")

	// The UI owns the terminal while it runs.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, closeStore, err := initStore(ctx, store.WithLogger(quiet))
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	return tui.Run(ctx, st,
		tui.WithTheme(themes.ByName(viper.GetString("ui.theme"))),
		tui.WithStats(!noStats),
		tui.WithAltScreen(!inline),
		tui.WithInput(cmd.InOrStdin()),
		tui.WithOutput(cmd.OutOrStdout()),
	)
}
