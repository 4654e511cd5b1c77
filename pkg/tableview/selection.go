package tableview

import "slices"

// Selection is a set of row IDs that survives paging, sorting and
// filtering. Rows leaving the matching set stay selected.
type Selection struct {
	ids      map[RowID]struct{}
	onChange func([]RowID)
}

// NewSelection returns a selection holding initial.
func NewSelection(initial []RowID, onChange func([]RowID)) *Selection {
	s := &Selection{ids: make(map[RowID]struct{}, len(initial)), onChange: onChange}
	for _, id := range initial {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s *Selection) Has(id RowID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected rows.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected IDs in sorted order.
func (s *Selection) IDs() []RowID {
	out := make([]RowID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// ToggleOne flips the selection of id.
func (s *Selection) ToggleOne(id RowID) {
	if s.Has(id) {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.changed()
}

// ToggleAllOnPage deselects the page when every row on it is selected and
// selects the whole page otherwise.
func (s *Selection) ToggleAllOnPage(pageIDs []RowID) {
	if s.AllSelected(pageIDs) {
		for _, id := range pageIDs {
			delete(s.ids, id)
		}
	} else {
		for _, id := range pageIDs {
			s.ids[id] = struct{}{}
		}
	}
	s.changed()
}

// SelectAll adds ids to the selection. Nothing is removed.
func (s *Selection) SelectAll(ids []RowID) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.changed()
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.ids)
	s.changed()
}

// Replace sets the selection to ids.
func (s *Selection) Replace(ids []RowID) {
	clear(s.ids)
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.changed()
}

// CountIn returns how many of ids are selected.
func (s *Selection) CountIn(ids []RowID) int {
	n := 0
	for _, id := range ids {
		if s.Has(id) {
			n++
		}
	}
	return n
}

// AllSelected reports whether ids is non-empty and fully selected.
func (s *Selection) AllSelected(ids []RowID) bool {
	return len(ids) > 0 && s.CountIn(ids) == len(ids)
}

// SomeSelected reports the indeterminate state: some but not all of ids
// are selected.
func (s *Selection) SomeSelected(ids []RowID) bool {
	n := s.CountIn(ids)
	return n > 0 && n < len(ids)
}

func (s *Selection) changed() {
	if s.onChange != nil {
		s.onChange(s.IDs())
	}
}
