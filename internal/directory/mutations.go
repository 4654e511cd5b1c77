package directory

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/rolodex/pkg/fields"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// AddRecord validates raw against the schema, stores it and shows it in the
// table.
func (d *Directory) AddRecord(ctx context.Context, raw map[string]any) (types.Record, error) {
	values, err := fields.Clean(d.defs, d.required, raw)
	if err != nil {
		return types.Record{}, err
	}
	r, err := d.store.Records().Create(ctx, d.entity, values)
	if err != nil {
		return types.Record{}, err
	}
	d.records = append(d.records, r)
	d.table.SetRows(d.records)
	return r, nil
}

// RowError reports a rejected import row; Row is one-based.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// ImportResult summarizes an import.
type ImportResult struct {
	Imported int
	Rejected []RowError
}

// ImportRecords validates every row and stores the valid ones in a single
// batch. Invalid rows are reported, not stored.
func (d *Directory) ImportRecords(ctx context.Context, rows []map[string]any) (ImportResult, error) {
	var (
		res   ImportResult
		valid []map[string]any
	)
	for i, raw := range rows {
		values, err := fields.Clean(d.defs, d.required, raw)
		if err != nil {
			res.Rejected = append(res.Rejected, RowError{Row: i + 1, Err: err})
			continue
		}
		valid = append(valid, values)
	}
	if len(valid) == 0 {
		return res, nil
	}
	n, err := d.store.Records().Import(ctx, d.entity, valid)
	if err != nil {
		return res, err
	}
	res.Imported = n
	return res, d.Refresh(ctx)
}

// AddField creates a custom field. The new column becomes visible.
func (d *Directory) AddField(ctx context.Context, in types.CreateFieldInput) (types.FieldDefinition, error) {
	def, err := d.store.Fields().Create(ctx, d.entity, in)
	if err != nil {
		return types.FieldDefinition{}, err
	}
	return def, d.Refresh(ctx)
}

// RenameField changes the label of a custom field.
func (d *Directory) RenameField(ctx context.Context, id, label string) (types.FieldDefinition, error) {
	def, err := d.store.Fields().Update(ctx, d.entity, id, types.UpdateFieldInput{Label: &label})
	if err != nil {
		return types.FieldDefinition{}, err
	}
	return def, d.Refresh(ctx)
}

// RemoveField deletes a custom field; its column leaves the layout.
func (d *Directory) RemoveField(ctx context.Context, id string) error {
	if err := d.store.Fields().Remove(ctx, d.entity, id); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// SetRequired marks a field required or optional. The last required field
// cannot be made optional.
func (d *Directory) SetRequired(ctx context.Context, id string, required bool) ([]string, error) {
	if _, ok := d.Field(id); !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrFieldNotFound, id)
	}
	next, err := fields.ToggleRequired(d.required, id, required)
	if err != nil {
		return d.required, err
	}
	cfg, err := d.store.FieldConfigs().Update(ctx, d.entity, next)
	if err != nil {
		return d.required, err
	}
	d.required = fields.ResolveRequired(cfg.RequiredFieldIDs, d.defs)
	return d.required, nil
}
