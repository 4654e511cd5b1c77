package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/rolodex/pkg/fields"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const fieldColumns = `field_id, label, description, placeholder, data_type, auto_complete, kind,
	required_by_system, default_required, default_visible, created_at`

// fieldDefs implements types.FieldService.
type fieldDefs struct {
	b *Backend
}

func (s *fieldDefs) List(ctx context.Context, entity types.EntityKey) ([]types.FieldDefinition, error) {
	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	var out []types.FieldDefinition
	err := s.b.withDB(func(db *sql.DB) error {
		var err error
		out, err = listFields(ctx, db, entity)
		return err
	})
	return out, err
}

func (s *fieldDefs) Create(ctx context.Context, entity types.EntityKey, in types.CreateFieldInput) (types.FieldDefinition, error) {
	if err := checkEntity(entity); err != nil {
		return types.FieldDefinition{}, err
	}
	if !in.DataType.Valid() {
		return types.FieldDefinition{}, fmt.Errorf("%w: %q", types.ErrFieldDataType, in.DataType)
	}
	def := types.FieldDefinition{
		Label:          strings.TrimSpace(in.Label),
		Description:    strings.TrimSpace(in.Description),
		Placeholder:    strings.TrimSpace(in.Placeholder),
		DataType:       in.DataType,
		Kind:           types.FieldCustom,
		DefaultVisible: true,
		CreatedAt:      s.b.now(),
	}
	err := s.b.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := listFields(ctx, tx, entity)
		if err != nil {
			return err
		}
		def.ID, err = fields.DeriveID(def.Label, def.DataType, existing)
		if err != nil {
			return err
		}
		return insertField(ctx, tx, entity, def, len(existing))
	})
	if err != nil {
		return types.FieldDefinition{}, fmt.Errorf("create field: %w", err)
	}
	return def, nil
}

func (s *fieldDefs) Update(ctx context.Context, entity types.EntityKey, id string, patch types.UpdateFieldInput) (types.FieldDefinition, error) {
	if err := checkEntity(entity); err != nil {
		return types.FieldDefinition{}, err
	}
	var def types.FieldDefinition
	err := s.b.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		def, err = getField(ctx, tx, entity, id)
		if err != nil {
			return err
		}
		if def.RequiredBySystem {
			return types.ErrSystemField
		}
		if patch.Label != nil {
			label := strings.TrimSpace(*patch.Label)
			if label == "" {
				return types.ErrFieldLabelRequired
			}
			def.Label = label
		}
		if patch.Description != nil {
			def.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Placeholder != nil {
			def.Placeholder = strings.TrimSpace(*patch.Placeholder)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE entity_fields SET label = ?, description = ?, placeholder = ? WHERE entity = ? AND field_id = ?`,
			def.Label, def.Description, def.Placeholder, string(entity), id)
		return err
	})
	if err != nil {
		return types.FieldDefinition{}, fmt.Errorf("update field: %w", err)
	}
	return def, nil
}

// Remove deletes a custom field and drops it from the entity's required
// configuration.
func (s *fieldDefs) Remove(ctx context.Context, entity types.EntityKey, id string) error {
	if err := checkEntity(entity); err != nil {
		return err
	}
	err := s.b.withTx(ctx, func(tx *sql.Tx) error {
		def, err := getField(ctx, tx, entity, id)
		if err != nil {
			return err
		}
		if def.RequiredBySystem {
			return types.ErrSystemField
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM entity_fields WHERE entity = ? AND field_id = ?`, string(entity), id); err != nil {
			return err
		}
		cfg, err := getFieldConfig(ctx, tx, entity)
		if err != nil || cfg == nil || !slices.Contains(cfg.RequiredFieldIDs, id) {
			return err
		}
		required := slices.DeleteFunc(cfg.RequiredFieldIDs, func(v string) bool { return v == id })
		_, err = putFieldConfig(ctx, tx, entity, required, s.b.now())
		return err
	})
	if err != nil {
		return fmt.Errorf("remove field: %w", err)
	}
	return nil
}

func listFields(ctx context.Context, q queryer, entity types.EntityKey) ([]types.FieldDefinition, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM entity_fields WHERE entity = ? ORDER BY ordinal, field_id`, string(entity))
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()
	var out []types.FieldDefinition
	for rows.Next() {
		d, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func getField(ctx context.Context, q queryer, entity types.EntityKey, id string) (types.FieldDefinition, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM entity_fields WHERE entity = ? AND field_id = ?`, string(entity), id)
	if err != nil {
		return types.FieldDefinition{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return types.FieldDefinition{}, err
		}
		return types.FieldDefinition{}, fmt.Errorf("%w: %s", types.ErrFieldNotFound, id)
	}
	return scanField(rows)
}

func scanField(rows *sql.Rows) (types.FieldDefinition, error) {
	var (
		d                  types.FieldDefinition
		dataType, kind, ts string
	)
	err := rows.Scan(&d.ID, &d.Label, &d.Description, &d.Placeholder, &dataType, &d.AutoComplete, &kind,
		&d.RequiredBySystem, &d.DefaultRequired, &d.DefaultVisible, &ts)
	if err != nil {
		return types.FieldDefinition{}, fmt.Errorf("scan field: %w", err)
	}
	d.DataType = types.DataType(dataType)
	d.Kind = types.FieldKind(kind)
	d.CreatedAt = parseTime(ts)
	return d, nil
}

func insertField(ctx context.Context, q queryer, entity types.EntityKey, d types.FieldDefinition, ordinal int) error {
	_, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO entity_fields (entity, `+fieldColumns+`, ordinal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(entity), d.ID, d.Label, d.Description, d.Placeholder, string(d.DataType), d.AutoComplete,
		string(d.Kind), d.RequiredBySystem, d.DefaultRequired, d.DefaultVisible, formatTime(d.CreatedAt), ordinal)
	return err
}

// fieldConfigs implements types.FieldConfigService.
type fieldConfigs struct {
	b *Backend
}

func (s *fieldConfigs) Get(ctx context.Context, entity types.EntityKey) (*types.FieldConfig, error) {
	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	var out *types.FieldConfig
	err := s.b.withDB(func(db *sql.DB) error {
		var err error
		out, err = getFieldConfig(ctx, db, entity)
		return err
	})
	return out, err
}

func (s *fieldConfigs) Update(ctx context.Context, entity types.EntityKey, requiredFieldIDs []string) (types.FieldConfig, error) {
	if err := checkEntity(entity); err != nil {
		return types.FieldConfig{}, err
	}
	ids := fields.NormalizeRequired(requiredFieldIDs)
	if len(ids) == 0 {
		return types.FieldConfig{}, types.ErrNoRequiredFields
	}
	var out types.FieldConfig
	err := s.b.withDB(func(db *sql.DB) error {
		var err error
		out, err = putFieldConfig(ctx, db, entity, ids, s.b.now())
		return err
	})
	if err != nil {
		return types.FieldConfig{}, fmt.Errorf("update field config: %w", err)
	}
	return out, nil
}

func getFieldConfig(ctx context.Context, q queryer, entity types.EntityKey) (*types.FieldConfig, error) {
	var ids, ts string
	err := q.QueryRowContext(ctx,
		`SELECT required_field_ids, updated_at FROM field_configs WHERE entity = ?`, string(entity)).Scan(&ids, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get field config: %w", err)
	}
	cfg := &types.FieldConfig{Entity: entity, UpdatedAt: parseTime(ts)}
	if err := json.Unmarshal([]byte(ids), &cfg.RequiredFieldIDs); err != nil {
		return nil, fmt.Errorf("decode field config: %w", err)
	}
	return cfg, nil
}

func putFieldConfig(ctx context.Context, q queryer, entity types.EntityKey, ids []string, now time.Time) (types.FieldConfig, error) {
	data, err := json.Marshal(ids)
	if err != nil {
		return types.FieldConfig{}, err
	}
	_, err = q.ExecContext(ctx, `INSERT INTO field_configs (entity, required_field_ids, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (entity) DO UPDATE SET required_field_ids = excluded.required_field_ids, updated_at = excluded.updated_at`,
		string(entity), string(data), formatTime(now))
	if err != nil {
		return types.FieldConfig{}, err
	}
	return types.FieldConfig{Entity: entity, RequiredFieldIDs: ids, UpdatedAt: now}, nil
}
