package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/internal/render"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Manage the fields of an entity",
	}
	cmd.AddCommand(newFieldsListCmd())
	cmd.AddCommand(newFieldsAddCmd())
	cmd.AddCommand(newFieldsRenameCmd())
	cmd.AddCommand(newFieldsRemoveCmd())
	cmd.AddCommand(newFieldsRequireCmd())
	return cmd
}

// fieldList is the JSON form of "fields list".
type fieldList struct {
	Fields   []types.FieldDefinition `json:"fields"`
	Required []string                `json:"required"`
}

func newFieldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <entity>",
		Short: "List fields and whether each one is required",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				d, err := e.directory(ctx, args[0])
				if err != nil {
					return err
				}
				return printFields(cmd, d)
			})
		},
	}
}

func printFields(cmd *cobra.Command, d *directory.Directory) error {
	v := fieldList{Fields: d.Fields(), Required: d.Required()}
	return printValue(cmd, v, func() error {
		return render.Fields(cmd.OutOrStdout(), v.Fields, v.Required)
	})
}

func newFieldsAddCmd() *cobra.Command {
	var (
		dataType    string
		description string
		placeholder string
	)
	cmd := &cobra.Command{
		Use:   "add <entity> <label>",
		Short: "Add a custom field",
		Long: "Add a custom field. Its ID is derived from the label: email fields end in\n" +
			"\"_email\", other fields start with \"custom_\". The new column is shown.",
		Example: `  rolodex fields add leads "Lead source"
  rolodex fields add deals "Close probability" --type number
  rolodex fields add contacts "Assistant" --type email`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt := types.DataType(dataType)
			if !dt.Valid() {
				return userError(fmt.Errorf("%w: %q", types.ErrFieldDataType, dataType))
			}
			var def types.FieldDefinition
			return editDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				var err error
				def, err = d.AddField(ctx, types.CreateFieldInput{
					Label:       args[1],
					Description: description,
					Placeholder: placeholder,
					DataType:    dt,
				})
				return err
			}, func(*directory.Directory) error {
				return printValue(cmd, def, func() error {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "added field %s (%s)\n", def.ID, def.DataType)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&dataType, "type", string(types.DataText), "data type: text, email, number, user")
	cmd.Flags().StringVar(&description, "description", "", "help text shown with the field")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "example value")
	return cmd
}

func newFieldsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <entity> <field> <label>",
		Short: "Change the label of a custom field",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				id, err := d.ResolveColumn(args[1])
				if err != nil {
					return err
				}
				_, err = d.RenameField(ctx, id, args[2])
				return err
			}, func(d *directory.Directory) error { return printFields(cmd, d) })
		},
	}
}

func newFieldsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entity> <field>",
		Short: "Remove a custom field and its column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				id, err := d.ResolveColumn(args[1])
				if err != nil {
					return err
				}
				return d.RemoveField(ctx, id)
			}, func(d *directory.Directory) error { return printFields(cmd, d) })
		},
	}
}

func newFieldsRequireCmd() *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "require <entity> <field>",
		Short: "Make a field required when adding records",
		Long: "Make a field required when adding or importing records. With --off the\n" +
			"field becomes optional; at least one field stays required.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				id, err := d.ResolveColumn(args[1])
				if err != nil {
					return err
				}
				_, err = d.SetRequired(ctx, id, !off)
				return err
			}, func(d *directory.Directory) error { return printFields(cmd, d) })
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "make the field optional instead")
	return cmd
}
