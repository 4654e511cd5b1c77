package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// workspaces implements types.WorkspaceStore. Each entity keeps one
// workspace, stored as a JSON document.
type workspaces struct {
	b *Backend
}

func (s *workspaces) Load(ctx context.Context, entity types.EntityKey) (*types.Workspace, error) {
	if err := checkEntity(entity); err != nil {
		return nil, err
	}
	var out *types.Workspace
	err := s.b.withDB(func(db *sql.DB) error {
		var state string
		err := db.QueryRowContext(ctx, `SELECT state FROM workspaces WHERE entity = ?`, string(entity)).Scan(&state)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load workspace: %w", err)
		}
		ws := &types.Workspace{}
		if err := json.Unmarshal([]byte(state), ws); err != nil {
			s.b.logger.Warn("discarding unreadable workspace", "entity", entity, "error", err)
			return nil
		}
		ws.Entity = entity
		out = ws
		return nil
	})
	return out, err
}

func (s *workspaces) Save(ctx context.Context, ws types.Workspace) error {
	if err := checkEntity(ws.Entity); err != nil {
		return err
	}
	ws.UpdatedAt = s.b.now()
	state, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("encode workspace: %w", err)
	}
	return s.b.withDB(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO workspaces (entity, state, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (entity) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
			string(ws.Entity), string(state), formatTime(ws.UpdatedAt))
		if err != nil {
			return fmt.Errorf("save workspace: %w", err)
		}
		return nil
	})
}
