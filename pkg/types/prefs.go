package types

// ColumnPrefs is the persisted per-entity column layout override. Nil
// VisibleColumns or ColumnOrder means no override is stored.
type ColumnPrefs struct {
	VisibleColumns []string     `json:"visibleColumns"`
	ColumnOrder    []string     `json:"columnOrder"`
	HeaderLayout   HeaderLayout `json:"headerLayout"`
}

// ColumnPrefsPatch updates only its non-nil members.
type ColumnPrefsPatch struct {
	VisibleColumns []string
	ColumnOrder    []string
	HeaderLayout   HeaderLayout
}

// IsEmpty reports whether the patch changes nothing.
func (p ColumnPrefsPatch) IsEmpty() bool {
	return p.VisibleColumns == nil && p.ColumnOrder == nil && p.HeaderLayout == ""
}
