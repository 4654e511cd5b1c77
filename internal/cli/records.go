package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/internal/transfer"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Add records to an entity directory",
	}
	cmd.AddCommand(newRecordsAddCmd())
	return cmd
}

func newRecordsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <entity> <field=value...>",
		Short: "Add one record",
		Long: "Add one record. Fields are named by ID or label. Owners can be given by\n" +
			"name, email or #ID. Required fields must have a value.",
		Example: `  rolodex records add leads firstname=Jamie lastname=Doe company=Acme email=jamie@acme.com
  rolodex records add deals "Deal name=Renewal" amount=1500 "Owner=Avery Stone"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec types.Record
			return editDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				pairs, err := parseAssignments(d, args[1:])
				if err != nil {
					return err
				}
				raw := make(map[string]any, len(pairs))
				for _, p := range pairs {
					raw[p.column] = p.value
				}
				transfer.ResolveOwners(raw, d.Fields(), d.Users())
				rec, err = d.AddRecord(ctx, raw)
				return err
			}, func(*directory.Directory) error {
				return printValue(cmd, rec, func() error {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "added %s #%d\n", rec.Entity.Singular(), rec.ID)
					return err
				})
			})
		},
	}
}
