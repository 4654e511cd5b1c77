package tableview

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLayoutDefaults(t *testing.T) {
	l := NewLayout([]string{"a", "b", "c"}, nil, nil)
	assert.Equal(t, []string{"a", "b", "c"}, l.Visible())
	assert.Equal(t, []string{"a", "b", "c"}, l.Order())
	assert.Equal(t, []string{"a", "b", "c"}, l.Effective())
}

func TestNewLayoutReconcilesProvidedOrder(t *testing.T) {
	l := NewLayout([]string{"a", "b", "c"}, []string{"c", "a"}, []string{"c", "zz", "a"})
	assert.Equal(t, []string{"c", "a", "b"}, l.Order())
	assert.Equal(t, []string{"c", "a"}, l.Effective())
}

func TestNewLayoutAllStaleShowsSchema(t *testing.T) {
	l := NewLayout([]string{"a", "b"}, []string{"gone"}, nil)
	assert.Equal(t, []string{"a", "b"}, l.Effective())
}

func TestLayoutReconcileSchemaChange(t *testing.T) {
	var visCalls, orderCalls [][]string
	l := NewLayout([]string{"a", "b", "c"}, nil, nil)
	l.OnChange(
		func(v []string) { visCalls = append(visCalls, v) },
		func(o []string) { orderCalls = append(orderCalls, o) },
	)

	changed := l.Reconcile([]string{"a", "c", "d"})

	assert.True(t, changed)
	assert.Equal(t, []string{"a", "c", "d"}, l.Order())
	assert.True(t, l.IsVisible("b"), "stale id stays in the visible set")
	assert.Equal(t, []string{"a", "c", "d"}, l.Effective())
	assert.Len(t, visCalls, 1)
	assert.Len(t, orderCalls, 1)
}

func TestLayoutReconcileDoesNotUnhide(t *testing.T) {
	l := NewLayout([]string{"a", "b"}, []string{"a"}, nil)
	l.Reconcile([]string{"a", "b", "c"})
	assert.False(t, l.IsVisible("b"), "intentionally hidden column stays hidden")
	assert.True(t, l.IsVisible("c"))
}

func TestLayoutReconcileNoChange(t *testing.T) {
	fired := false
	l := NewLayout([]string{"a", "b"}, nil, nil)
	l.OnChange(func([]string) { fired = true }, func([]string) { fired = true })
	assert.False(t, l.Reconcile([]string{"a", "b"}))
	assert.False(t, fired)
}

func TestLayoutReconcileDroppingEveryVisibleColumn(t *testing.T) {
	var visCalls [][]string
	l := NewLayout([]string{"a", "b", "c"}, []string{"b"}, nil)
	l.OnChange(func(v []string) { visCalls = append(visCalls, v) }, nil)

	assert.True(t, l.Reconcile([]string{"a", "c"}))

	assert.Equal(t, []string{"a", "c"}, l.Effective())
	assert.True(t, l.IsVisible("b"), "stale id stays in the visible set")
	assert.Equal(t, [][]string{{"b", "a", "c"}}, visCalls)
}

func TestLayoutSetVisible(t *testing.T) {
	l := NewLayout([]string{"a", "b"}, nil, nil)

	assert.True(t, l.SetVisible("a", false))
	assert.False(t, l.SetVisible("b", false), "last visible column cannot be hidden")
	assert.Equal(t, []string{"b"}, l.Effective())

	assert.False(t, l.SetVisible("zz", true), "unknown ids are ignored")
	assert.True(t, l.SetVisible("a", true))
	assert.Equal(t, []string{"a", "b"}, l.Effective())
}

func TestLayoutSetVisibleCountsRenderedColumns(t *testing.T) {
	l := NewLayout([]string{"a", "b"}, []string{"a", "b"}, nil)
	l.Reconcile([]string{"a"})
	assert.False(t, l.SetVisible("a", false), "stale b does not count as visible")
}

func TestLayoutAlwaysKeepsOneColumn(t *testing.T) {
	schema := []string{"a", "b", "c", "d"}
	l := NewLayout(schema, nil, nil)
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		l.SetVisible(schema[r.IntN(len(schema))], r.IntN(3) == 0)
		assert.GreaterOrEqual(t, len(l.Effective()), 1)
	}
}

func TestLayoutMove(t *testing.T) {
	var orders [][]string
	l := NewLayout([]string{"a", "b", "c"}, nil, nil)
	l.OnChange(nil, func(o []string) { orders = append(orders, o) })

	assert.True(t, l.Move("a", 1))
	assert.Equal(t, []string{"b", "a", "c"}, l.Order())
	assert.True(t, l.Move("c", -2))
	assert.Equal(t, []string{"c", "b", "a"}, l.Order())

	assert.False(t, l.Move("c", -1), "out of bounds")
	assert.False(t, l.Move("a", 1), "out of bounds")
	assert.False(t, l.Move("zz", 1), "unknown id")
	assert.Len(t, orders, 2)
}
