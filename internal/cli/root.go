// Package cli implements the rolodex command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

var flags rootFlags

// NewRootCmd creates the top-level "rolodex" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rolodex",
		Short: "Browse and curate CRM entity directories",
		Long: "Rolodex keeps leads, contacts, deals and organizations in a local store\n" +
			"and pages through them with search, filters, sorting, selections,\n" +
			"column layouts and saved views that persist between runs.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/rolodex)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/rolodex)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newEntitiesCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newFilterCmd())
	root.AddCommand(newSortCmd())
	root.AddCommand(newPageCmd())
	root.AddCommand(newSelectCmd())
	root.AddCommand(newColumnsCmd())
	root.AddCommand(newViewsCmd())
	root.AddCommand(newFieldsCmd())
	root.AddCommand(newRecordsCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newBrowseCmd())

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError(err)
	})
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		os.Exit(exitSuccess)
	}
	fmt.Fprintln(os.Stderr, "rolodex:", err)
	os.Exit(exitCode(err))
}

// exitErr carries the process exit code of a failed command.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }

func (e *exitErr) Unwrap() error { return e.err }

func userError(err error) error { return &exitErr{code: exitUserError, err: err} }

func sysError(err error) error { return &exitErr{code: exitSysError, err: err} }

// exitCode maps an error to an exit code. Errors not marked otherwise are
// user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var e *exitErr
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}

// newLogger builds the stderr text logger. An unknown level falls back to
// info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
