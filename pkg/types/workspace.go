package types

import "time"

// Workspace is the persisted working session of one entity directory, so a
// later invocation resumes where the previous one stopped.
type Workspace struct {
	Entity          EntityKey       `json:"entity"`
	ActiveViewID    string          `json:"activeViewId,omitempty"`
	Working         ViewDefinition  `json:"working"`
	DefaultSnapshot *ViewDefinition `json:"defaultSnapshot,omitempty"`
	Revision        uint64          `json:"revision"`
	PageIndex       int             `json:"pageIndex"`
	Selected        []string        `json:"selected,omitempty"`
	KnownColumns    []string        `json:"knownColumns,omitempty"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
