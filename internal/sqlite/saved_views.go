package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const viewColumns = `view_id, entity, name, scope, is_default, definition, version, created_at, updated_at`

// savedViews implements types.SavedViewService.
type savedViews struct {
	b *Backend
}

// queryer is the subset of *sql.DB and *sql.Tx the scanners need.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *savedViews) List(ctx context.Context, entity types.EntityKey) ([]types.SavedView, error) {
	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	var out []types.SavedView
	err := s.b.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT `+viewColumns+` FROM saved_views WHERE entity = ? ORDER BY name`, string(entity))
		if err != nil {
			return fmt.Errorf("list views: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			v, err := scanView(rows)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return rows.Err()
	})
	return out, err
}

func (s *savedViews) Create(ctx context.Context, in types.CreateViewInput) (types.SavedView, error) {
	if err := checkEntity(in.Entity); err != nil {
		return types.SavedView{}, err
	}
	now := s.b.now()
	v := types.SavedView{
		ID:         generateUUID(),
		Entity:     in.Entity,
		Name:       strings.TrimSpace(in.Name),
		Scope:      in.Scope,
		IsDefault:  in.IsDefault,
		Definition: in.Definition.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}
	if v.Scope == "" {
		v.Scope = types.ScopePersonal
	}
	if err := validateView(v); err != nil {
		return types.SavedView{}, err
	}

	err := s.b.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkNameFree(ctx, tx, v.Entity, v.Name, ""); err != nil {
			return err
		}
		if v.IsDefault {
			if err := clearDefault(ctx, tx, v.Entity); err != nil {
				return err
			}
		}
		return insertView(ctx, tx, v)
	})
	if err != nil {
		return types.SavedView{}, fmt.Errorf("create view: %w", err)
	}
	return v, nil
}

func (s *savedViews) Update(ctx context.Context, id string, patch types.ViewPatch) (types.SavedView, error) {
	var v types.SavedView
	err := s.b.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		v, err = getView(ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			v.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Scope != nil {
			v.Scope = *patch.Scope
		}
		if patch.IsDefault != nil {
			v.IsDefault = *patch.IsDefault
		}
		if patch.Definition != nil {
			v.Definition = patch.Definition.Clone()
		}
		if err := validateView(v); err != nil {
			return err
		}
		if err := checkNameFree(ctx, tx, v.Entity, v.Name, v.ID); err != nil {
			return err
		}
		if v.IsDefault {
			if err := clearDefault(ctx, tx, v.Entity); err != nil {
				return err
			}
		}
		v.Version++
		v.UpdatedAt = s.b.now()
		def, err := json.Marshal(v.Definition)
		if err != nil {
			return fmt.Errorf("encode definition: %w", err)
		}
		_, err = tx.ExecContext(ctx, `UPDATE saved_views
			SET name = ?, scope = ?, is_default = ?, definition = ?, version = ?, updated_at = ?
			WHERE view_id = ?`,
			v.Name, string(v.Scope), v.IsDefault, string(def), v.Version, formatTime(v.UpdatedAt), v.ID)
		return err
	})
	if err != nil {
		return types.SavedView{}, fmt.Errorf("update view: %w", err)
	}
	return v, nil
}

func (s *savedViews) Remove(ctx context.Context, id string) error {
	return s.b.withDB(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, `DELETE FROM saved_views WHERE view_id = ?`, id); err != nil {
			return fmt.Errorf("remove view: %w", err)
		}
		return nil
	})
}

func validateView(v types.SavedView) error {
	if v.Name == "" {
		return types.ErrViewNameRequired
	}
	if v.Scope != types.ScopePersonal && v.Scope != types.ScopeShared {
		return types.ErrInvalidScope
	}
	return v.Definition.Validate()
}

func checkNameFree(ctx context.Context, q queryer, entity types.EntityKey, name, selfID string) error {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_views WHERE entity = ? AND name = ? AND view_id <> ?`,
		string(entity), name, selfID).Scan(&n)
	if err != nil {
		return fmt.Errorf("check view name: %w", err)
	}
	if n > 0 {
		return types.ErrViewNameTaken
	}
	return nil
}

func clearDefault(ctx context.Context, q queryer, entity types.EntityKey) error {
	_, err := q.ExecContext(ctx,
		`UPDATE saved_views SET is_default = 0 WHERE entity = ? AND is_default = 1`, string(entity))
	if err != nil {
		return fmt.Errorf("clear default view: %w", err)
	}
	return nil
}

func insertView(ctx context.Context, q queryer, v types.SavedView) error {
	def, err := json.Marshal(v.Definition)
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	_, err = q.ExecContext(ctx, `INSERT INTO saved_views (`+viewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, string(v.Entity), v.Name, string(v.Scope), v.IsDefault, string(def), v.Version,
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	return err
}

func getView(ctx context.Context, q queryer, id string) (types.SavedView, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+viewColumns+` FROM saved_views WHERE view_id = ?`, id)
	if err != nil {
		return types.SavedView{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return types.SavedView{}, err
		}
		return types.SavedView{}, types.ErrViewNotFound
	}
	return scanView(rows)
}

func scanView(rows *sql.Rows) (types.SavedView, error) {
	var (
		v                    types.SavedView
		entity, scope, def   string
		createdAt, updatedAt string
	)
	if err := rows.Scan(&v.ID, &entity, &v.Name, &scope, &v.IsDefault, &def, &v.Version, &createdAt, &updatedAt); err != nil {
		return types.SavedView{}, fmt.Errorf("scan view: %w", err)
	}
	v.Entity = types.EntityKey(entity)
	v.Scope = types.Scope(scope)
	v.CreatedAt = parseTime(createdAt)
	v.UpdatedAt = parseTime(updatedAt)
	if err := json.Unmarshal([]byte(def), &v.Definition); err != nil {
		return types.SavedView{}, fmt.Errorf("decode view %s: %w", v.ID, err)
	}
	return v, nil
}

