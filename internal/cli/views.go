package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/internal/render"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newViewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved views",
		Long: "Saved views store a search, filters, a sort and a column layout under a\n" +
			"name. Selecting one applies it; edits after that mark the view as changed\n" +
			"until they are saved with \"views update\" or discarded with \"views use\".",
	}
	cmd.AddCommand(newViewsListCmd())
	cmd.AddCommand(newViewsStatusCmd())
	cmd.AddCommand(newViewsUseCmd())
	cmd.AddCommand(newViewsDefaultCmd())
	cmd.AddCommand(newViewsResetCmd())
	cmd.AddCommand(newViewsSaveCmd())
	cmd.AddCommand(newViewsUpdateCmd())
	cmd.AddCommand(newViewsRenameCmd())
	cmd.AddCommand(newViewsMarkDefaultCmd())
	cmd.AddCommand(newViewsDeleteCmd())
	cmd.AddCommand(newViewsExportCmd())
	cmd.AddCommand(newViewsImportCmd())
	return cmd
}

func newViewsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <entity>",
		Short: "List saved views",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				d, err := e.directory(ctx, args[0])
				if err != nil {
					return err
				}
				vs, err := d.Session().List(ctx)
				if err != nil {
					return sysError(err)
				}
				activeID := ""
				if a := d.Session().Active(); a != nil {
					activeID = a.ID
				}
				return printValue(cmd, vs, func() error {
					return render.Views(cmd.OutOrStdout(), vs, activeID, time.Now())
				})
			})
		},
	}
}

// viewStatus is the JSON form of "views status".
type viewStatus struct {
	Entity     types.EntityKey      `json:"entity"`
	Active     *types.SavedView     `json:"active,omitempty"`
	Dirty      bool                 `json:"dirty"`
	Definition types.ViewDefinition `json:"definition"`
}

func newViewsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <entity>",
		Short: "Show the active view and whether it has unsaved changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				d, err := e.directory(ctx, args[0])
				if err != nil {
					return err
				}
				s := d.Session()
				st := viewStatus{Entity: d.Entity(), Active: s.Active(), Dirty: s.IsDirty(), Definition: s.CurrentDefinition()}
				return printValue(cmd, st, func() error {
					name := "Default"
					if st.Active != nil {
						name = st.Active.Name
					}
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "%s: %s", d.Entity().Plural(), name)
					if st.Dirty {
						fmt.Fprint(out, " (modified)")
					}
					fmt.Fprintln(out)
					return nil
				})
			})
		},
	}
}

func newViewsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <entity> <view>",
		Short: "Apply a saved view by ID or name",
		Long: "Apply a saved view. Selecting the active view again discards unsaved\n" +
			"changes. Leaving Default for a view remembers the Default state so that\n" +
			"\"views default\" can bring it back.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				v, err := d.Session().Find(ctx, args[1])
				if err != nil {
					return err
				}
				d.Session().SelectView(ctx, v)
				return nil
			})
		},
	}
}

func newViewsDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <entity>",
		Short: "Leave the active view and return to Default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				d.Session().ReturnToDefault(ctx)
				return nil
			})
		},
	}
}

func newViewsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <entity>",
		Short: "Discard every customization and show all columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				d.Session().ResetToDefault(ctx)
				return nil
			})
		},
	}
}

func newViewsSaveCmd() *cobra.Command {
	var (
		shared    bool
		isDefault bool
	)
	cmd := &cobra.Command{
		Use:   "save <entity> <name>",
		Short: "Save the current table state as a new view",
		Example: `  rolodex views save leads "Hot leads"
  rolodex views save deals Pipeline --shared --default`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := types.ScopePersonal
			if shared {
				scope = types.ScopeShared
			}
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				_, err := d.Session().SaveAsNew(ctx, args[1], scope, isDefault)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&shared, "shared", false, "share the view with the team")
	cmd.Flags().BoolVar(&isDefault, "default", false, "open this view by default")
	return cmd
}

func newViewsUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <entity>",
		Short: "Store the current table state in the active view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				_, err := d.Session().UpdateActive(ctx)
				return err
			})
		},
	}
}

func newViewsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <entity> <name>",
		Short: "Rename the active view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				_, err := d.Session().RenameActive(ctx, args[1])
				return err
			})
		},
	}
}

func newViewsMarkDefaultCmd() *cobra.Command {
	var unset bool
	cmd := &cobra.Command{
		Use:   "mark-default <entity>",
		Short: "Open the active view by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				_, err := d.Session().MarkActiveDefault(ctx, !unset)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&unset, "unset", false, "clear the default flag instead")
	return cmd
}

func newViewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity>",
		Short: "Delete the active view and return to Default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				return d.Session().DeleteActive(ctx)
			})
		},
	}
}

func newViewsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Write every saved view to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				n, err := e.store.Archive().ExportViews(ctx, args[0])
				if err != nil {
					return sysError(err)
				}
				return printCount(cmd, "exported", n, args[0])
			})
		},
	}
}

func newViewsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Load saved views from a JSONL file",
		Long: "Load saved views from a JSONL file. Views with a known ID are replaced;\n" +
			"lines that fail to parse or whose name is taken are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				n, err := e.store.Archive().ImportViews(ctx, args[0])
				if err != nil {
					return sysError(err)
				}
				return printCount(cmd, "imported", n, args[0])
			})
		},
	}
}

func printCount(cmd *cobra.Command, verb string, n int, path string) error {
	v := map[string]any{verb: n, "file": path}
	return printValue(cmd, v, func() error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %d views (%s)\n", verb, n, path)
		return err
	})
}
