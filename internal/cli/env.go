package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/internal/paths"
	"github.com/mesh-intelligence/rolodex/internal/render"
	"github.com/mesh-intelligence/rolodex/pkg/sqlite"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// resolveConfigDir follows flag > ROLODEX_CONFIG_DIR > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// resolveDataDir follows flag > ROLODEX_DATA_DIR > config.yaml > platform
// default.
func resolveDataDir(configValue string) (string, error) {
	return paths.ResolveDataDir(flags.dataDir, configValue)
}

// env is the configuration, logger and attached store of one command run.
type env struct {
	settings settings
	logger   *slog.Logger
	store    types.Store
}

// openEnv resolves settings and attaches the store. The caller must call
// close.
func openEnv(cmd *cobra.Command) (*env, error) {
	s, err := resolveSettings()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), s.LogLevel)
	store, err := sqlite.Open(types.Config{Backend: s.Backend, DataDir: s.DataDir}, logger)
	if err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return &env{settings: s, logger: logger, store: store}, nil
}

func (e *env) close() {
	if err := e.store.Detach(); err != nil {
		e.logger.Warn("detach store", "error", err)
	}
}

// directory opens the directory named by entityArg.
func (e *env) directory(ctx context.Context, entityArg string) (*directory.Directory, error) {
	entity, err := types.ParseEntity(entityArg)
	if err != nil {
		return nil, userError(err)
	}
	d, err := directory.Open(ctx, directory.Options{
		Store:        e.store,
		Entity:       entity,
		Locale:       e.settings.Locale,
		PageSize:     e.settings.PageSize,
		HeaderLayout: e.settings.HeaderLayout,
		Logger:       e.logger,
	})
	if err != nil {
		return nil, sysError(fmt.Errorf("open %s: %w", entity, err))
	}
	return d, nil
}

// withEnv runs fn against an attached store.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	return fn(cmd.Context(), e)
}

// withDirectory opens entityArg's directory, runs fn, saves the workspace
// and prints the current page. A failing fn leaves the workspace as it was.
func withDirectory(cmd *cobra.Command, entityArg string, fn func(ctx context.Context, d *directory.Directory) error) error {
	return editDirectory(cmd, entityArg, fn, func(d *directory.Directory) error {
		return printPage(cmd, d)
	})
}

// editDirectory opens entityArg's directory, runs fn and saves the
// workspace. report, if set, runs after the save.
func editDirectory(cmd *cobra.Command, entityArg string, fn func(ctx context.Context, d *directory.Directory) error, report func(d *directory.Directory) error) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		d, err := e.directory(ctx, entityArg)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(ctx, d); err != nil {
				return err
			}
		}
		if err := d.Save(ctx); err != nil {
			return sysError(err)
		}
		if report == nil {
			return nil
		}
		return report(d)
	})
}

func printPage(cmd *cobra.Command, d *directory.Directory) error {
	s := d.Session()
	st := render.Status{Dirty: s.IsDirty(), HeaderLayout: s.HeaderLayout()}
	if a := s.Active(); a != nil {
		st.ViewName = a.Name
	}
	if flags.jsonMode {
		return render.JSON(cmd.OutOrStdout(), d.Table(), st)
	}
	return render.Page(cmd.OutOrStdout(), d.Table(), st)
}

// printValue prints v as JSON in --json mode and otherwise runs text.
func printValue(cmd *cobra.Command, v any, text func() error) error {
	if flags.jsonMode {
		return render.Value(cmd.OutOrStdout(), v)
	}
	return text()
}
