package types

import (
	"errors"
	"maps"
	"slices"
	"time"
)

// SortDirection orders a sorted column.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState names the sorted column. The zero value means unsorted.
type SortState struct {
	ColumnID  string        `json:"columnId"`
	Direction SortDirection `json:"dir"`
}

// IsZero reports whether no column is sorted.
func (s SortState) IsZero() bool { return s.ColumnID == "" }

// HeaderLayout selects how column headers expose their filter controls.
type HeaderLayout string

// Header layouts.
const (
	HeaderSplit   HeaderLayout = "split"
	HeaderPopover HeaderLayout = "popover"
)

// Valid reports whether h is a known layout.
func (h HeaderLayout) Valid() bool {
	return h == HeaderSplit || h == HeaderPopover
}

// ViewDefinition is the serializable snapshot a saved view stores. A nil
// member means "use the default" for that part of the table state.
type ViewDefinition struct {
	FreeText       string            `json:"q,omitempty"`
	Filters        map[string]string `json:"filters,omitempty"`
	Sort           *SortState        `json:"sort,omitempty"`
	VisibleColumns []string          `json:"visibleColumns,omitempty"`
	ColumnOrder    []string          `json:"columnOrder,omitempty"`
	HeaderLayout   HeaderLayout      `json:"headerLayout,omitempty"`
	PageSize       int               `json:"pageSize,omitempty"`
}

// Clone returns a deep copy of d.
func (d ViewDefinition) Clone() ViewDefinition {
	out := d
	if d.Sort != nil {
		s := *d.Sort
		out.Sort = &s
	}
	out.Filters = maps.Clone(d.Filters)
	out.VisibleColumns = slices.Clone(d.VisibleColumns)
	out.ColumnOrder = slices.Clone(d.ColumnOrder)
	return out
}

// Validate rejects definitions that would hide every column.
func (d ViewDefinition) Validate() error {
	if d.VisibleColumns != nil && len(d.VisibleColumns) == 0 {
		return ErrNoVisibleColumns
	}
	if d.Sort != nil && d.Sort.ColumnID != "" && d.Sort.Direction != SortAsc && d.Sort.Direction != SortDesc {
		return ErrInvalidSort
	}
	if d.HeaderLayout != "" && !d.HeaderLayout.Valid() {
		return ErrInvalidHeaderLayout
	}
	if d.PageSize < 0 {
		return ErrInvalidPageSize
	}
	return nil
}

// Scope controls who can see a saved view.
type Scope string

// Saved view scopes.
const (
	ScopePersonal Scope = "personal"
	ScopeShared   Scope = "shared"
)

// SavedView is a named, persisted ViewDefinition for one entity.
type SavedView struct {
	ID         string         `json:"id"`
	Entity     EntityKey      `json:"entity"`
	Name       string         `json:"name"`
	Scope      Scope          `json:"scope"`
	IsDefault  bool           `json:"isDefault"`
	Definition ViewDefinition `json:"definition"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Version    int            `json:"version"`
}

// CreateViewInput carries a new saved view.
type CreateViewInput struct {
	Entity     EntityKey
	Name       string
	Scope      Scope
	IsDefault  bool
	Definition ViewDefinition
}

// ViewPatch is a partial update; nil members are left unchanged.
type ViewPatch struct {
	Name       *string
	Scope      *Scope
	IsDefault  *bool
	Definition *ViewDefinition
}

// Saved view errors.
var (
	ErrViewNotFound        = errors.New("view not found")
	ErrViewNameRequired    = errors.New("view name is required")
	ErrViewNameTaken       = errors.New("a view with this name already exists for this entity")
	ErrNoVisibleColumns    = errors.New("at least one visible column is required")
	ErrInvalidSort         = errors.New("invalid sort direction")
	ErrInvalidHeaderLayout = errors.New("invalid header layout")
	ErrInvalidPageSize     = errors.New("page size must be positive")
	ErrInvalidScope        = errors.New("invalid view scope")
)
