package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/rolodex/internal/directory"
)

// RunOptions configures Run.
type RunOptions struct {
	// WatchDir, when set, is watched for changes to files starting with
	// WatchPrefix. Each change reloads the directory.
	WatchDir    string
	WatchPrefix string

	Input  io.Reader
	Output io.Writer
	Logger *slog.Logger
}

// Run browses dir until the user quits. The workspace is saved on quit.
func Run(ctx context.Context, dir *directory.Directory, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(New(ctx, dir, logger), popts...)

	eg, egctx := errgroup.WithContext(ctx)
	if opts.WatchDir != "" {
		eg.Go(func() error {
			err := Watch(egctx, opts.WatchDir, opts.WatchPrefix, logger, func() { p.Send(ReloadMsg{}) })
			if err != nil {
				logger.Warn("watch store, live reload disabled", "dir", opts.WatchDir, "error", err)
			}
			return nil
		})
	}

	var final tea.Model
	eg.Go(func() error {
		defer cancel()
		var err error
		final, err = p.Run()
		if err != nil {
			return fmt.Errorf("run browser: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
