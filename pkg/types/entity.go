package types

import (
	"fmt"
	"strings"
)

// EntityKey names one entity directory.
type EntityKey string

// Entity directories known to rolodex.
const (
	EntityLeads         EntityKey = "leads"
	EntityContacts      EntityKey = "contacts"
	EntityDeals         EntityKey = "deals"
	EntityOrganizations EntityKey = "organizations"
)

// Entities lists every entity key in menu order.
var Entities = []EntityKey{
	EntityLeads,
	EntityContacts,
	EntityDeals,
	EntityOrganizations,
}

var entityLabels = map[EntityKey][2]string{
	EntityLeads:         {"Lead", "Leads"},
	EntityContacts:      {"Contact", "Contacts"},
	EntityDeals:         {"Deal", "Deals"},
	EntityOrganizations: {"Organization", "Organizations"},
}

// ParseEntity accepts an entity key in any case, singular or plural.
func ParseEntity(s string) (EntityKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range Entities {
		if s == string(e) || s == strings.ToLower(entityLabels[e][0]) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
}

// Valid reports whether e is a known entity key.
func (e EntityKey) Valid() bool {
	_, ok := entityLabels[e]
	return ok
}

// Singular returns the display label for one record, e.g. "Lead".
func (e EntityKey) Singular() string { return entityLabels[e][0] }

// Plural returns the display label for the directory, e.g. "Leads".
func (e EntityKey) Plural() string { return entityLabels[e][1] }

func (e EntityKey) String() string { return string(e) }
