package transfer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/fields"
	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var testUsers = []types.User{
	{ID: 1, FirstName: "Avery", LastName: "Stone", Email: "avery@rolodex.test"},
	{ID: 2, FirstName: "Blake", LastName: "Moreno", Email: "blake@rolodex.test"},
}

func TestParseCSV(t *testing.T) {
	defs := fields.Core(types.EntityLeads)

	tests := []struct {
		name      string
		input     string
		wantSep   string
		wantRows  []map[string]any
		wantIgnor []string
	}{
		{
			name:    "comma separated with labels",
			input:   "First name,Last name,Company,Email,Owner\nAda,Lovelace,Acme,ada@acme.example,Avery Stone\n",
			wantSep: ",",
			wantRows: []map[string]any{
				{"firstname": "Ada", "lastname": "Lovelace", "company": "Acme", "email": "ada@acme.example", "assigned_user_id": int64(1)},
			},
		},
		{
			name:    "semicolons with ids and unknown header",
			input:   "firstname;lastname;shoe size;assigned_user_id\r\nGrace;Hopper;9;blake@rolodex.test\r\nAlan;Turing;10;#7\r\n",
			wantSep: ";",
			wantRows: []map[string]any{
				{"firstname": "Grace", "lastname": "Hopper", "assigned_user_id": int64(2)},
				{"firstname": "Alan", "lastname": "Turing", "assigned_user_id": int64(7)},
			},
			wantIgnor: []string{"shoe size"},
		},
		{
			name:    "blank cells and rows are skipped",
			input:   "First name,Company\n\nAda,\n,,\n",
			wantSep: ",",
			wantRows: []map[string]any{
				{"firstname": "Ada"},
			},
		},
		{
			name:    "unknown owner kept for validation",
			input:   "Company,Owner\nAcme,Nobody Here\n",
			wantSep: ",",
			wantRows: []map[string]any{
				{"company": "Acme", "assigned_user_id": "Nobody Here"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV([]byte(tt.input), defs, testUsers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSep, got.Separator)
			assert.Equal(t, "UTF-8", got.Encoding)
			assert.Equal(t, tt.wantRows, got.Rows)
			assert.Equal(t, tt.wantIgnor, got.Ignored)
		})
	}
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(nil, fields.Core(types.EntityLeads), nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseCSVFeedsValidation(t *testing.T) {
	defs := fields.Core(types.EntityLeads)
	got, err := ParseCSV([]byte("First name,Last name,Company,Email,Owner\nAda,Lovelace,Acme,ada@acme.example,2\n"), defs, testUsers)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)

	values, err := fields.Clean(defs, []string{"firstname", "lastname", "company", "email"}, got.Rows[0])
	require.NoError(t, err)
	assert.Equal(t, int64(2), values["assigned_user_id"])
}

func TestWriteCSV(t *testing.T) {
	type row struct {
		name   string
		amount float64
	}
	cols := []tableview.Column[row]{
		{ID: "name", Header: "Deal name", Accessor: func(r row) any { return r.name }},
		{ID: "amount", Header: "Amount", Accessor: func(r row) any { return r.amount }},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cols, []row{{"Acme, renewal", 1500}, {"Globex pilot", 42.5}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Deal name,Amount", lines[0])
	assert.Equal(t, `"Acme, renewal",1500`, lines[1])
	assert.Equal(t, "Globex pilot,42.5", lines[2])
}

func TestWriteThenParse(t *testing.T) {
	defs := fields.Core(types.EntityDeals)
	type deal = map[string]any
	cols := []tableview.Column[deal]{
		{ID: "dealname", Header: "Deal name", Accessor: func(d deal) any { return d["dealname"] }},
		{ID: "stage", Header: "Stage", Accessor: func(d deal) any { return d["stage"] }},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cols, []deal{{"dealname": "Acme renewal", "stage": "Proposal"}}))

	got, err := ParseCSV(buf.Bytes(), defs, nil)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"dealname": "Acme renewal", "stage": "Proposal"}}, got.Rows)
	assert.Empty(t, got.Ignored)
}

func TestResolveOwners(t *testing.T) {
	defs := fields.Core(types.EntityLeads)
	users := []types.User{{ID: 7, FirstName: "Avery", LastName: "Stone", Email: "avery@example.com"}}

	raw := map[string]any{"assigned_user_id": "AVERY@example.com", "company": "Acme"}
	ResolveOwners(raw, defs, users)
	assert.Equal(t, int64(7), raw["assigned_user_id"])
	assert.Equal(t, "Acme", raw["company"])

	raw = map[string]any{"assigned_user_id": "#12"}
	ResolveOwners(raw, defs, users)
	assert.Equal(t, int64(12), raw["assigned_user_id"])

	raw = map[string]any{"assigned_user_id": "nobody"}
	ResolveOwners(raw, defs, users)
	assert.Equal(t, "nobody", raw["assigned_user_id"])
}

func TestParseCSVLineNumbers(t *testing.T) {
	data := "\nfirstname,lastname\nAda,Lovelace\n\n\nGrace,Hopper\n,\nAlan,Turing\n"
	got, err := ParseCSV([]byte(data), fields.Core(types.EntityLeads), nil)
	require.NoError(t, err)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, []int{3, 6, 8}, got.Lines)
	assert.Equal(t, "Grace", got.Rows[1]["firstname"])
}
