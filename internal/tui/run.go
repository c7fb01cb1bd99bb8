package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive asset manager on top of st and blocks until
// the user quits or ctx is canceled.
func Run(ctx context.Context, st service.RecordStore, opts ...Option) error {
	if st == nil {
		return fmt.Errorf("%w: record store is required", common.ErrMissingConfig)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(newModel(ctx, st, cfg), programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			slog.Debug("TUI stopped by interrupt")
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if m, ok := final.(Model); ok && m.lastError != nil {
		slog.Debug("TUI exited with a pending error", "error", m.lastError)
	}
	return nil
}
