package types

import (
	"context"
	"errors"
)

// Store is the backend-agnostic entry point to rolodex data. Callers attach
// to a backend, use the service accessors, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist; returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Multiple calls succeed.
	Detach() error

	SavedViews() SavedViewService
	ColumnPrefs() ColumnPrefStore
	Fields() FieldService
	FieldConfigs() FieldConfigService
	Records() RecordStore
	Users() UserDirectory
	Workspaces() WorkspaceStore
	Archive() ViewArchive
}

// SavedViewService persists named view definitions.
type SavedViewService interface {
	List(ctx context.Context, entity EntityKey) ([]SavedView, error)
	Create(ctx context.Context, in CreateViewInput) (SavedView, error)
	Update(ctx context.Context, id string, patch ViewPatch) (SavedView, error)

	// Remove deletes the view. Removing an unknown ID is not an error.
	Remove(ctx context.Context, id string) error
}

// ColumnPrefStore persists per-entity column layout overrides. Writes are
// last-write-wins.
type ColumnPrefStore interface {
	// Get returns the stored prefs, or nil when nothing is stored.
	Get(ctx context.Context, entity EntityKey) (*ColumnPrefs, error)
	Set(ctx context.Context, entity EntityKey, patch ColumnPrefsPatch) error

	// Clear drops the visible-column and order overrides.
	Clear(ctx context.Context, entity EntityKey) error
}

// FieldService manages entity field definitions.
type FieldService interface {
	List(ctx context.Context, entity EntityKey) ([]FieldDefinition, error)
	Create(ctx context.Context, entity EntityKey, in CreateFieldInput) (FieldDefinition, error)
	Update(ctx context.Context, entity EntityKey, id string, patch UpdateFieldInput) (FieldDefinition, error)
	Remove(ctx context.Context, entity EntityKey, id string) error
}

// FieldConfigService stores the required-field configuration per entity.
type FieldConfigService interface {
	// Get returns nil when the entity has no stored configuration.
	Get(ctx context.Context, entity EntityKey) (*FieldConfig, error)
	Update(ctx context.Context, entity EntityKey, requiredFieldIDs []string) (FieldConfig, error)
}

// RecordStore holds the rows of every entity directory.
type RecordStore interface {
	List(ctx context.Context, entity EntityKey) ([]Record, error)
	Create(ctx context.Context, entity EntityKey, values map[string]any) (Record, error)

	// Import creates records in one transaction and returns how many were written.
	Import(ctx context.Context, entity EntityKey, rows []map[string]any) (int, error)
	SetFavorite(ctx context.Context, entity EntityKey, id int64, favorite bool) error
}

// UserDirectory lists the teammates records can be assigned to.
type UserDirectory interface {
	List(ctx context.Context) ([]User, error)
}

// WorkspaceStore persists the working session of each entity directory.
type WorkspaceStore interface {
	// Load returns nil when no workspace was saved for the entity.
	Load(ctx context.Context, entity EntityKey) (*Workspace, error)
	Save(ctx context.Context, ws Workspace) error
}

// ViewArchive copies saved views to and from JSONL files, one view per line.
type ViewArchive interface {
	// ExportViews writes every saved view to path and returns the count.
	ExportViews(ctx context.Context, path string) (int, error)

	// ImportViews loads views from path. Lines that fail to parse or whose
	// name clashes with another view of the same entity are skipped.
	ImportViews(ctx context.Context, path string) (int, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrUnknownEntity   = errors.New("unknown entity")
)
