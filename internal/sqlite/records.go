package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// records implements types.RecordStore. Values are stored as one JSON
// object per row.
type records struct {
	b *Backend
}

func (s *records) List(ctx context.Context, entity types.EntityKey) ([]types.Record, error) {
	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	var out []types.Record
	err := s.b.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT record_id, field_values, favorite, created_at, updated_at
			FROM records WHERE entity = ? ORDER BY record_id`, string(entity))
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var (
				r                    = types.Record{Entity: entity}
				values               string
				createdAt, updatedAt string
			)
			if err := rows.Scan(&r.ID, &values, &r.Favorite, &createdAt, &updatedAt); err != nil {
				return fmt.Errorf("scan record: %w", err)
			}
			if r.Values, err = decodeValues(values); err != nil {
				return fmt.Errorf("decode record %d: %w", r.ID, err)
			}
			r.CreatedAt = parseTime(createdAt)
			r.UpdatedAt = parseTime(updatedAt)
			out = append(out, r)
		}
		return rows.Err()
	})
	return out, err
}

func (s *records) Create(ctx context.Context, entity types.EntityKey, values map[string]any) (types.Record, error) {
	if err := checkEntity(entity); err != nil {
		return types.Record{}, err
	}
	r := types.Record{Entity: entity, Values: values, CreatedAt: s.b.now()}
	r.UpdatedAt = r.CreatedAt
	err := s.b.withDB(func(db *sql.DB) error {
		var err error
		r.ID, err = insertRecord(ctx, db, entity, values, r.CreatedAt)
		return err
	})
	if err != nil {
		return types.Record{}, fmt.Errorf("create record: %w", err)
	}
	return r, nil
}

func (s *records) Import(ctx context.Context, entity types.EntityKey, rows []map[string]any) (int, error) {
	if err := checkEntity(entity); err != nil {
		return 0, err
	}
	now := s.b.now()
	err := s.b.withTx(ctx, func(tx *sql.Tx) error {
		for i, values := range rows {
			if _, err := insertRecord(ctx, tx, entity, values, now); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import records: %w", err)
	}
	return len(rows), nil
}

func (s *records) SetFavorite(ctx context.Context, entity types.EntityKey, id int64, favorite bool) error {
	if err := checkEntity(entity); err != nil {
		return err
	}
	return s.b.withDB(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `UPDATE records SET favorite = ?, updated_at = ? WHERE entity = ? AND record_id = ?`,
			favorite, formatTime(s.b.now()), string(entity), id)
		if err != nil {
			return fmt.Errorf("set favorite: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("set favorite: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %d", types.ErrRecordNotFound, id)
		}
		return nil
	})
}

func insertRecord(ctx context.Context, q queryer, entity types.EntityKey, values map[string]any, now time.Time) (int64, error) {
	if values == nil {
		values = map[string]any{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return 0, fmt.Errorf("encode values: %w", err)
	}
	ts := formatTime(now)
	res, err := q.ExecContext(ctx,
		`INSERT INTO records (entity, field_values, favorite, created_at, updated_at) VALUES (?, ?, 0, ?, ?)`,
		string(entity), string(data), ts, ts)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// decodeValues restores stored values, keeping whole numbers as int64 so
// user IDs survive the round trip.
func decodeValues(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			raw[k] = i
			continue
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		raw[k] = f
	}
	return raw, nil
}
