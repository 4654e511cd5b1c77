package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "dynamodb", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "sqlite with seed",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/data", Seed: true},
		},
		{
			name:   "sqlite with empty DataDir is valid at config level",
			config: Config{Backend: BackendSQLite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseEntity(t *testing.T) {
	tests := []struct {
		in      string
		want    EntityKey
		wantErr bool
	}{
		{in: "leads", want: EntityLeads},
		{in: " Contacts ", want: EntityContacts},
		{in: "deal", want: EntityDeals},
		{in: "Organization", want: EntityOrganizations},
		{in: "tickets", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEntity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownEntity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestViewDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     ViewDefinition
		wantErr error
	}{
		{name: "zero definition is valid", def: ViewDefinition{}},
		{
			name:    "empty visible columns rejected",
			def:     ViewDefinition{VisibleColumns: []string{}},
			wantErr: ErrNoVisibleColumns,
		},
		{
			name: "absent visible columns accepted",
			def:  ViewDefinition{ColumnOrder: []string{"email"}},
		},
		{
			name:    "bad sort direction",
			def:     ViewDefinition{Sort: &SortState{ColumnID: "email", Direction: "up"}},
			wantErr: ErrInvalidSort,
		},
		{
			name:    "bad header layout",
			def:     ViewDefinition{HeaderLayout: "grid"},
			wantErr: ErrInvalidHeaderLayout,
		},
		{
			name:    "negative page size",
			def:     ViewDefinition{PageSize: -1},
			wantErr: ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestViewDefinitionCloneIsDeep(t *testing.T) {
	orig := ViewDefinition{
		Filters:        map[string]string{"company": "acme"},
		Sort:           &SortState{ColumnID: "email", Direction: SortAsc},
		VisibleColumns: []string{"email"},
	}
	cp := orig.Clone()
	cp.Filters["company"] = "globex"
	cp.Sort.Direction = SortDesc
	cp.VisibleColumns[0] = "company"

	assert.Equal(t, "acme", orig.Filters["company"])
	assert.Equal(t, SortAsc, orig.Sort.Direction)
	assert.Equal(t, []string{"email"}, orig.VisibleColumns)
	assert.Nil(t, cp.ColumnOrder)
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.DisplayName())
	assert.Equal(t, "ada@example.com", User{Email: "ada@example.com"}.DisplayName())
}
