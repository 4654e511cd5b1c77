package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// users implements types.UserDirectory.
type users struct {
	b *Backend
}

func (s *users) List(ctx context.Context) ([]types.User, error) {
	var out []types.User
	err := s.b.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT user_id, first_name, last_name, email FROM users ORDER BY last_name, first_name, user_id`)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var u types.User
			if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email); err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			out = append(out, u)
		}
		return rows.Err()
	})
	return out, err
}

func insertUser(ctx context.Context, q queryer, u types.User) (int64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email) VALUES (?, ?, ?)`, u.FirstName, u.LastName, u.Email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
