package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newShowCmd() *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "show <entity>",
		Short: "Print the current page of an entity directory",
		Example: `  rolodex show leads
  rolodex show deals --page-size 50
  rolodex show contacts --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				if pageSize < 0 {
					return types.ErrInvalidPageSize
				}
				if pageSize > 0 {
					d.Table().SetPageSize(pageSize)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page")
	return cmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <entity> [text...]",
		Short: "Search every column; no text clears the search",
		Example: `  rolodex search leads acme
  rolodex search leads`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				d.Table().SetFreeText(strings.Join(args[1:], " "))
				return nil
			})
		},
	}
}

func newFilterCmd() *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "filter <entity> [column=value...]",
		Short: "Set column filters; an empty value removes one",
		Long: "Set per-column filters. Columns are named by ID or label. Each filter keeps\n" +
			"rows whose column contains the value, ignoring case. An empty value\n" +
			"removes the filter of that column.",
		Example: `  rolodex filter leads company=acme
  rolodex filter leads "Owner=Avery Stone" email=
  rolodex filter leads --clear`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				pairs, err := parseAssignments(d, args[1:])
				if err != nil {
					return err
				}
				if clearAll {
					d.Table().ClearFilters()
				}
				for _, p := range pairs {
					d.Table().SetFilter(p.column, p.value)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every filter first")
	return cmd
}

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <entity> [column [asc|desc|none]]",
		Short: "Sort by a column",
		Long: "Sort by a column. Without a direction the column cycles ascending,\n" +
			"descending, unsorted. Without a column the sort is removed.",
		Example: `  rolodex sort leads company
  rolodex sort deals amount desc
  rolodex sort leads`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				tv := d.Table()
				if len(args) == 1 {
					tv.SetSort(types.SortState{})
					return nil
				}
				id, err := d.ResolveColumn(args[1])
				if err != nil {
					return err
				}
				if len(args) == 2 {
					tv.ToggleSort(id)
					return nil
				}
				switch dir := strings.ToLower(args[2]); dir {
				case "none", "off":
					tv.SetSort(types.SortState{})
				case string(types.SortAsc), string(types.SortDesc):
					tv.SetSort(types.SortState{ColumnID: id, Direction: types.SortDirection(dir)})
				default:
					return fmt.Errorf("%w: %q", types.ErrInvalidSort, args[2])
				}
				return nil
			})
		},
	}
}

func newPageCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "page <entity> [next|prev|first|last|N]",
		Short: "Move between pages",
		Example: `  rolodex page leads next
  rolodex page leads 5
  rolodex page leads --size 50`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				tv := d.Table()
				if size < 0 {
					return types.ErrInvalidPageSize
				}
				if size > 0 {
					tv.SetPageSize(size)
				}
				if len(args) == 1 {
					return nil
				}
				switch args[1] {
				case "next":
					tv.NextPage()
				case "prev":
					tv.PrevPage()
				case "first":
					tv.GoToPage(1)
				case "last":
					tv.GoToPage(tv.Page().Count)
				default:
					n, err := strconv.Atoi(args[1])
					if err != nil {
						return fmt.Errorf("not a page: %q", args[1])
					}
					tv.GoToPage(n)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "change the page size")
	return cmd
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <entity> <toggle ID...|page|all|clear>",
		Short: "Change the row selection",
		Long: "toggle flips the listed record IDs, page toggles every row on the current\n" +
			"page, all adds every matching row and clear empties the selection.",
		Example: `  rolodex select leads toggle 3 7
  rolodex select leads page
  rolodex select leads all`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, args[0], func(_ context.Context, d *directory.Directory) error {
				tv := d.Table()
				switch args[1] {
				case "toggle":
					if len(args) < 3 {
						return fmt.Errorf("toggle needs at least one record ID")
					}
					known := make(map[string]bool)
					for _, id := range tv.MatchingRowIDs() {
						known[id] = true
					}
					for _, id := range args[2:] {
						if !known[id] {
							return fmt.Errorf("%w: %s", types.ErrRecordNotFound, id)
						}
					}
					for _, id := range args[2:] {
						tv.ToggleOne(id)
					}
				case "page":
					tv.ToggleAllOnPage()
				case "all":
					tv.SelectAllMatching()
				case "clear":
					tv.ClearSelection()
				default:
					return fmt.Errorf("unknown selection action %q", args[1])
				}
				return nil
			})
		},
	}
}

type assignment struct {
	column string
	value  string
}

// parseAssignments reads column=value arguments, resolving columns by ID
// or label.
func parseAssignments(d *directory.Directory, args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		col, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q (expected column=value)", arg)
		}
		id, err := d.ResolveColumn(col)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment{column: id, value: strings.TrimSpace(value)})
	}
	return out, nil
}
