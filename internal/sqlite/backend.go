// Package sqlite implements the SQLite storage backend for rolodex. One
// database file in the data directory holds users, records, field
// definitions, saved views, column preferences and workspaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// DatabaseFile is the name of the SQLite file inside the data directory.
const DatabaseFile = "rolodex.db"

// Backend implements types.Store on top of SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
	now      func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		logger: logger,
		now:    time.Now,
	}
}

// Attach opens the database in DataDir, creating the directory if needed,
// runs pending migrations and seeds the built-in fields. With Seed set, an
// empty store also receives demo users and records.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One writer keeps SQLite from reporting SQLITE_BUSY between our own
	// connections.
	db.SetMaxOpenConns(1)

	if err := b.open(db, config); err != nil {
		db.Close()
		return err
	}
	b.logger.Debug("store attached", "path", dbPath)
	return nil
}

// open prepares db and marks the backend attached. Callers hold b.mu.
func (b *Backend) open(db *sql.DB, config types.Config) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := migrate(db); err != nil {
		return err
	}

	ctx := context.Background()
	if err := seedCoreFields(ctx, db, b.now()); err != nil {
		return fmt.Errorf("seed fields: %w", err)
	}
	if config.Seed {
		n, err := seedDemoData(ctx, db, b.now())
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if n > 0 {
			b.logger.Info("seeded demo data", "records", n)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// withDB runs fn against the open database while holding the read lock.
func (b *Backend) withDB(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	return fn(b.db)
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (b *Backend) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return b.withDB(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if err := fn(tx); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// SavedViews returns the saved view service.
func (b *Backend) SavedViews() types.SavedViewService { return &savedViews{b: b} }

// ColumnPrefs returns the column preference store.
func (b *Backend) ColumnPrefs() types.ColumnPrefStore { return &columnPrefs{b: b} }

// Fields returns the field definition service.
func (b *Backend) Fields() types.FieldService { return &fieldDefs{b: b} }

// FieldConfigs returns the required-field configuration service.
func (b *Backend) FieldConfigs() types.FieldConfigService { return &fieldConfigs{b: b} }

// Records returns the record store.
func (b *Backend) Records() types.RecordStore { return &records{b: b} }

// Users returns the user directory.
func (b *Backend) Users() types.UserDirectory { return &users{b: b} }

// Workspaces returns the workspace store.
func (b *Backend) Workspaces() types.WorkspaceStore { return &workspaces{b: b} }

// Archive returns the JSONL import/export of saved views.
func (b *Backend) Archive() types.ViewArchive { return &viewArchive{b: b} }

// generateUUID generates a new UUID v7 for saved view IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func checkEntity(entity types.EntityKey) error {
	if !entity.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownEntity, entity)
	}
	return nil
}
