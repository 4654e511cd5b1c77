package tableview

import "slices"

// Layout tracks which columns are visible and in what order. Order is
// always a permutation of the known schema IDs. Visible may still name
// columns the schema dropped; those never render.
type Layout struct {
	known   []string
	visible []string
	order   []string

	onVisible func([]string)
	onOrder   func([]string)
}

// NewLayout builds a layout for schema. A nil visible shows every column;
// a nil order uses schema order. The order is reconciled against schema
// immediately.
func NewLayout(schema, visible, order []string) *Layout {
	l := &Layout{}
	l.init(schema, visible, order)
	return l
}

func (l *Layout) init(schema, visible, order []string) {
	l.known = slices.Clone(schema)
	if visible == nil {
		l.visible = slices.Clone(schema)
	} else {
		l.visible = dedupe(visible)
	}
	if order == nil {
		l.order = slices.Clone(schema)
	} else {
		l.order = reconcileOrder(order, schema)
	}
	if len(l.Effective()) == 0 && len(schema) > 0 {
		// Every requested column is stale; show the whole schema.
		l.visible = slices.Clone(schema)
	}
}

// OnChange registers the callbacks fired after visibility or order changes.
func (l *Layout) OnChange(visible, order func([]string)) {
	l.onVisible = visible
	l.onOrder = order
}

// Known returns the schema IDs the layout was last reconciled against.
func (l *Layout) Known() []string { return slices.Clone(l.known) }

// Visible returns the visible set in insertion order.
func (l *Layout) Visible() []string { return slices.Clone(l.visible) }

// Order returns the column order.
func (l *Layout) Order() []string { return slices.Clone(l.order) }

// IsVisible reports whether id is in the visible set.
func (l *Layout) IsVisible(id string) bool { return slices.Contains(l.visible, id) }

// Effective returns the IDs that render: order filtered by visibility.
func (l *Layout) Effective() []string {
	out := make([]string, 0, len(l.order))
	for _, id := range l.order {
		if l.IsVisible(id) {
			out = append(out, id)
		}
	}
	return out
}

// Reset replaces the layout state without reconciling visibility, then
// fires both callbacks.
func (l *Layout) Reset(visible, order []string) {
	l.init(l.known, visible, order)
	l.fireVisible()
	l.fireOrder()
}

// Reconcile adapts the layout to a new schema. IDs new since the last
// schema become visible and are appended to the order in schema order;
// IDs that left the schema are dropped from the order only. If no visible
// column is left, the whole schema becomes visible. It reports whether
// anything changed.
func (l *Layout) Reconcile(schema []string) bool {
	var added []string
	for _, id := range schema {
		if !slices.Contains(l.known, id) {
			added = append(added, id)
		}
	}
	l.known = slices.Clone(schema)

	visChanged := false
	for _, id := range added {
		if !l.IsVisible(id) {
			l.visible = append(l.visible, id)
			visChanged = true
		}
	}
	next := reconcileOrder(l.order, schema)
	orderChanged := !slices.Equal(next, l.order)
	l.order = next
	if len(l.Effective()) == 0 && len(schema) > 0 {
		// The schema dropped every visible column; show the rest of it.
		l.visible = append(l.visible, schema...)
		visChanged = true
	}

	if visChanged {
		l.fireVisible()
	}
	if orderChanged {
		l.fireOrder()
	}
	return visChanged || orderChanged
}

// SetVisible shows or hides id. Unknown IDs are ignored and hiding the last
// rendered column is refused. It reports whether the layout changed.
func (l *Layout) SetVisible(id string, visible bool) bool {
	if !slices.Contains(l.known, id) {
		return false
	}
	if visible {
		if l.IsVisible(id) {
			return false
		}
		l.visible = append(l.visible, id)
		l.fireVisible()
		return true
	}
	if !l.IsVisible(id) {
		return false
	}
	if eff := l.Effective(); len(eff) <= 1 && slices.Contains(eff, id) {
		return false
	}
	l.visible = slices.DeleteFunc(l.visible, func(v string) bool { return v == id })
	l.fireVisible()
	return true
}

// Move shifts id by delta positions in the order. Moves that would leave
// the bounds of the order, and unknown IDs, are ignored.
func (l *Layout) Move(id string, delta int) bool {
	idx := slices.Index(l.order, id)
	if idx < 0 || delta == 0 {
		return false
	}
	to := idx + delta
	if to < 0 || to >= len(l.order) {
		return false
	}
	next := slices.Delete(slices.Clone(l.order), idx, idx+1)
	l.order = slices.Insert(next, to, id)
	l.fireOrder()
	return true
}

func (l *Layout) fireVisible() {
	if l.onVisible != nil {
		l.onVisible(l.Visible())
	}
}

func (l *Layout) fireOrder() {
	if l.onOrder != nil {
		l.onOrder(l.Order())
	}
}

// reconcileOrder keeps the IDs of order still in schema and appends the
// missing schema IDs in schema order.
func reconcileOrder(order, schema []string) []string {
	out := make([]string, 0, len(schema))
	for _, id := range order {
		if slices.Contains(schema, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, id := range schema {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
