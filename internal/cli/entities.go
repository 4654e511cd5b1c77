package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/render"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List entity directories with record, field and view counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				out := make([]render.Entity, 0, len(types.Entities))
				for _, entity := range types.Entities {
					row, err := countEntity(ctx, e.store, entity)
					if err != nil {
						return sysError(err)
					}
					out = append(out, row)
				}
				return printValue(cmd, out, func() error {
					return render.Entities(cmd.OutOrStdout(), out)
				})
			})
		},
	}
}

func countEntity(ctx context.Context, store types.Store, entity types.EntityKey) (render.Entity, error) {
	records, err := store.Records().List(ctx, entity)
	if err != nil {
		return render.Entity{}, fmt.Errorf("list %s records: %w", entity, err)
	}
	defs, err := store.Fields().List(ctx, entity)
	if err != nil {
		return render.Entity{}, fmt.Errorf("list %s fields: %w", entity, err)
	}
	vs, err := store.SavedViews().List(ctx, entity)
	if err != nil {
		return render.Entity{}, fmt.Errorf("list %s views: %w", entity, err)
	}
	return render.Entity{Key: entity, Records: len(records), Fields: len(defs), Views: len(vs)}, nil
}
