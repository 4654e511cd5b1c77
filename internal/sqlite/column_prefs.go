package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// columnPrefs implements types.ColumnPrefStore. A NULL column means the
// entity has no override for it.
type columnPrefs struct {
	b *Backend
}

func (s *columnPrefs) Get(ctx context.Context, entity types.EntityKey) (*types.ColumnPrefs, error) {
	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	var out *types.ColumnPrefs
	err := s.b.withDB(func(db *sql.DB) error {
		var (
			visible, order sql.NullString
			layout         string
		)
		err := db.QueryRowContext(ctx,
			`SELECT visible_columns, column_order, header_layout FROM column_prefs WHERE entity = ?`,
			string(entity)).Scan(&visible, &order, &layout)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get column prefs: %w", err)
		}
		p := types.ColumnPrefs{HeaderLayout: types.HeaderLayout(layout)}
		if p.VisibleColumns, err = decodeIDs(visible); err != nil {
			return err
		}
		if p.ColumnOrder, err = decodeIDs(order); err != nil {
			return err
		}
		out = &p
		return nil
	})
	return out, err
}

func (s *columnPrefs) Set(ctx context.Context, entity types.EntityKey, patch types.ColumnPrefsPatch) error {
	if err := checkEntity(entity); err != nil {
		return err
	}
	if patch.HeaderLayout != "" && !patch.HeaderLayout.Valid() {
		return types.ErrInvalidHeaderLayout
	}
	if patch.IsEmpty() {
		return nil
	}
	visible, err := encodeIDs(patch.VisibleColumns)
	if err != nil {
		return err
	}
	order, err := encodeIDs(patch.ColumnOrder)
	if err != nil {
		return err
	}
	return s.b.withDB(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO column_prefs (entity, visible_columns, column_order, header_layout)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (entity) DO UPDATE SET
				visible_columns = COALESCE(excluded.visible_columns, column_prefs.visible_columns),
				column_order = COALESCE(excluded.column_order, column_prefs.column_order),
				header_layout = CASE WHEN excluded.header_layout = '' THEN column_prefs.header_layout
					ELSE excluded.header_layout END`,
			string(entity), visible, order, string(patch.HeaderLayout))
		if err != nil {
			return fmt.Errorf("set column prefs: %w", err)
		}
		return nil
	})
}

func (s *columnPrefs) Clear(ctx context.Context, entity types.EntityKey) error {
	if err := checkEntity(entity); err != nil {
		return err
	}
	return s.b.withDB(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`UPDATE column_prefs SET visible_columns = NULL, column_order = NULL WHERE entity = ?`, string(entity))
		if err != nil {
			return fmt.Errorf("clear column prefs: %w", err)
		}
		return nil
	})
}

func encodeIDs(ids []string) (sql.NullString, error) {
	if ids == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode column ids: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeIDs(s sql.NullString) ([]string, error) {
	if !s.Valid {
		return nil, nil
	}
	ids := []string{}
	if err := json.Unmarshal([]byte(s.String), &ids); err != nil {
		return nil, fmt.Errorf("decode column ids: %w", err)
	}
	return ids, nil
}
