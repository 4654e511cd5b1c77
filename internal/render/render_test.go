package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

type person struct {
	id   int
	name string
	city string
}

func newTable(t *testing.T, n int, st tableview.State) *tableview.TableView[person] {
	t.Helper()
	rows := make([]person, n)
	for i := range rows {
		rows[i] = person{id: i + 1, name: fmt.Sprintf("Person %04d", i+1), city: []string{"Oslo", "Lima"}[i%2]}
	}
	return tableview.New(tableview.Options[person]{
		Columns: []tableview.Column[person]{
			{ID: "name", Header: "Name", Accessor: func(p person) any { return p.name }, Filter: tableview.TextFilter{}},
			{ID: "city", Header: "City", Accessor: func(p person) any { return p.city }, Filter: tableview.TextFilter{}},
		},
		Rows:     rows,
		GetRowID: func(p person) tableview.RowID { return strconv.Itoa(p.id) },
		Locale:   language.English,
		Initial:  st,
	})
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		state  tableview.State
		setup  func(tv *tableview.TableView[person])
		status Status
		want   string
	}{
		{
			name:  "middle page with thousands",
			rows:  1234,
			state: tableview.State{PageSize: 5, PageIndex: 4},
			want:  "21 to 25 of 1,234 · page 5 of 247 · view: Default",
		},
		{
			name:   "selection and dirty view",
			rows:   12,
			state:  tableview.State{PageSize: 5, Selected: []tableview.RowID{"1", "2", "3"}},
			status: Status{ViewName: "Hot leads", Dirty: true},
			want:   "1 to 5 of 12 · page 1 of 3 · 3 selected · view: Hot leads *",
		},
		{
			name:  "all matching selected",
			rows:  12,
			state: tableview.State{PageSize: 5},
			setup: func(tv *tableview.TableView[person]) {
				tv.SetFilter("city", "oslo")
				tv.SelectAllMatching()
			},
			want: "1 to 5 of 6 · page 1 of 2 · all 6 matching selected · view: Default",
		},
		{
			name:  "empty",
			rows:  0,
			state: tableview.State{PageSize: 5},
			want:  "no records · page 1 of 1 · view: Default",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := newTable(t, tt.rows, tt.state)
			if tt.setup != nil {
				tt.setup(tv)
			}
			assert.Equal(t, tt.want, Summary(tv, tt.status))
		})
	}
}

func TestPage(t *testing.T) {
	tv := newTable(t, 8, tableview.State{PageSize: 3, Selected: []tableview.RowID{"2"}})
	tv.ToggleSort("name")

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, tv, Status{HeaderLayout: types.HeaderSplit}))
	out := buf.String()

	assert.Contains(t, out, "Name ▲")
	assert.Contains(t, out, "[-]")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Person 0001")
	assert.NotContains(t, out, "Person 0004")
	assert.Contains(t, out, "·")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "view: Default"))
}

func TestPageHiddenColumnAndNoMatches(t *testing.T) {
	tv := newTable(t, 4, tableview.State{PageSize: 3})
	require.True(t, tv.SetVisible("city", false))
	tv.SetFreeText("nobody")

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, tv, Status{HeaderLayout: types.HeaderPopover}))
	out := buf.String()
	assert.NotContains(t, out, "City")
	assert.Contains(t, out, "(no matching records)")
	assert.Contains(t, out, "no records")
}

func TestJSON(t *testing.T) {
	tv := newTable(t, 8, tableview.State{PageSize: 3, PageIndex: 1})
	tv.SetSort(types.SortState{ColumnID: "name", Direction: types.SortDesc})
	tv.SetFilter("city", "lima")

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, tv, Status{ViewName: "West"}))

	var got PageJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "West", got.View)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, []string{"name", "city"}, got.Columns)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, "8", got.Rows[0]["id"])
	assert.Equal(t, "Lima", got.Rows[0]["city"])
	require.NotNil(t, got.Query.Sort)
	assert.Equal(t, types.SortDesc, got.Query.Sort.Direction)
	assert.Equal(t, map[string]string{"city": "lima"}, got.Query.Filters)
}

func TestViewsAndFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	vs := []types.SavedView{
		{ID: "v1", Name: "Hot leads", Scope: types.ScopePersonal, IsDefault: true, Version: 2, UpdatedAt: now.Add(-3 * time.Hour)},
		{ID: "v2", Name: "Mine", Scope: types.ScopeShared, Version: 1, UpdatedAt: now.Add(-48 * time.Hour)},
	}
	var buf bytes.Buffer
	require.NoError(t, Views(&buf, vs, "v2", now))
	out := buf.String()
	assert.Contains(t, out, "Hot leads")
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "2 days ago")

	buf.Reset()
	require.NoError(t, Views(&buf, nil, "", now))
	assert.Equal(t, "(no saved views)\n", buf.String())

	buf.Reset()
	defs := []types.FieldDefinition{
		{ID: "email", Label: "Email", DataType: types.DataEmail, Kind: types.FieldCore},
		{ID: "custom_tier", Label: "Tier", DataType: types.DataText, Kind: types.FieldCustom},
	}
	require.NoError(t, Fields(&buf, defs, []string{"email"}))
	assert.Contains(t, buf.String(), "custom_tier")
	assert.Contains(t, buf.String(), "yes")
}
