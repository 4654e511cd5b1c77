// Package sqlite exposes the SQLite implementation of types.Store while
// keeping its internals private.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/rolodex/internal/sqlite"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// DatabaseFile is the name of the database file inside the data directory.
const DatabaseFile = sqlite.DatabaseFile

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend(slog.Default())
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".rolodex-db",
//	})
//	defer store.Detach()
func NewBackend(logger *slog.Logger) types.Store {
	return sqlite.NewBackend(logger)
}

// Open creates a backend and attaches it to config in one step.
func Open(config types.Config, logger *slog.Logger) (types.Store, error) {
	store := sqlite.NewBackend(logger)
	if err := store.Attach(config); err != nil {
		return nil, err
	}
	return store, nil
}
