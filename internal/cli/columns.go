package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show, hide and reorder columns",
	}
	cmd.AddCommand(newColumnVisibilityCmd("show", true))
	cmd.AddCommand(newColumnVisibilityCmd("hide", false))
	cmd.AddCommand(newColumnMoveCmd())
	cmd.AddCommand(newColumnLayoutCmd())
	return cmd
}

func newColumnVisibilityCmd(use string, visible bool) *cobra.Command {
	short := "Show a hidden column"
	if !visible {
		short = "Hide a column; the last visible column cannot be hidden"
	}
	return &cobra.Command{
		Use:   use + " <entity> <column...>",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				tv := d.Table()
				for _, ref := range args[1:] {
					id, err := d.ResolveColumn(ref)
					if err != nil {
						return err
					}
					if tv.SetVisible(id, visible) || tv.Layout().IsVisible(id) == visible {
						continue
					}
					return types.ErrNoVisibleColumns
				}
				return nil
			})
		},
	}
}

func newColumnMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <entity> <column> <delta>",
		Short: "Move a column left (negative delta) or right",
		Example: `  rolodex columns move leads email -1
  rolodex columns move deals amount 2`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[2])
			if err != nil {
				return userError(fmt.Errorf("not a column offset: %q", args[2]))
			}
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				id, err := d.ResolveColumn(args[1])
				if err != nil {
					return err
				}
				d.Table().MoveColumn(id, delta)
				return nil
			})
		},
	}
}

func newColumnLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <entity> <split|popover>",
		Short: "Choose how filter controls appear in column headers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				return d.Session().SetHeaderLayout(ctx, types.HeaderLayout(args[1]))
			})
		},
	}
}
