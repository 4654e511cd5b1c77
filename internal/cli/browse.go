package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mesh-intelligence/rolodex/internal/tui"
	"github.com/mesh-intelligence/rolodex/pkg/sqlite"
)

func newBrowseCmd() *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "browse <entity>",
		Short: "Browse an entity directory interactively",
		Long: "Open a full-screen browser with search, column filters, sorting, row\n" +
			"selection and saved views. Press ? for key bindings. Changes made to the\n" +
			"store by other rolodex commands are picked up while browsing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return userError(fmt.Errorf("browse needs a terminal; use show, search and filter instead"))
			}
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				d, err := e.directory(ctx, args[0])
				if err != nil {
					return err
				}
				opts := tui.RunOptions{Logger: e.logger}
				if !noWatch {
					opts.WatchDir = e.settings.DataDir
					opts.WatchPrefix = sqlite.DatabaseFile
				}
				return tui.Run(ctx, d, opts)
			})
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when the store changes")
	return cmd
}
