// Package fields holds the built-in field catalog of every entity and the
// rules that derive, sanitize and validate field IDs and record values.
package fields

import "github.com/mesh-intelligence/rolodex/pkg/types"

func core(id, label, placeholder string, dt types.DataType, autoComplete string, required bool) types.FieldDefinition {
	return types.FieldDefinition{
		ID:               id,
		Label:            label,
		Placeholder:      placeholder,
		DataType:         dt,
		AutoComplete:     autoComplete,
		Kind:             types.FieldCore,
		RequiredBySystem: true,
		DefaultRequired:  required,
		DefaultVisible:   true,
	}
}

func owner(description string) types.FieldDefinition {
	f := core("assigned_user_id", "Owner", "", types.DataUser, "", false)
	f.Description = description
	return f
}

var catalog = map[types.EntityKey][]types.FieldDefinition{
	types.EntityLeads: {
		core("firstname", "First name", "Jamie", types.DataText, "given-name", true),
		core("lastname", "Last name", "Doe", types.DataText, "family-name", true),
		core("company", "Company", "Acme Inc.", types.DataText, "organization", true),
		core("email", "Email", "jamie@acme.com", types.DataEmail, "email", true),
		owner("Assign a teammate to follow up"),
	},
	types.EntityContacts: {
		core("firstname", "First name", "Jamie", types.DataText, "given-name", true),
		core("lastname", "Last name", "Doe", types.DataText, "family-name", true),
		core("title", "Title", "VP of Operations", types.DataText, "organization-title", false),
		core("email", "Email", "jamie@acme.com", types.DataEmail, "email", true),
		core("phone", "Phone", "(555) 555-1234", types.DataText, "tel", false),
		func() types.FieldDefinition {
			f := core("account_id", "Account", "", types.DataNumber, "", false)
			f.Description = "Link this contact to an account"
			return f
		}(),
		owner("Assign a teammate"),
	},
	types.EntityDeals: {
		core("dealname", "Deal name", "Acme renewal", types.DataText, "", true),
		core("amount", "Amount", "12000", types.DataNumber, "", false),
		core("stage", "Stage", "Qualification", types.DataText, "", false),
		owner("Assign a teammate"),
	},
	types.EntityOrganizations: {
		core("accountname", "Account name", "Acme Inc.", types.DataText, "organization", true),
		core("website", "Website", "acme.com", types.DataText, "url", false),
		core("phone", "Phone", "(555) 555-1234", types.DataText, "tel", false),
		owner("Assign a teammate"),
	},
}

// Core returns the built-in fields of entity. The slice is a fresh copy.
func Core(entity types.EntityKey) []types.FieldDefinition {
	return append([]types.FieldDefinition(nil), catalog[entity]...)
}
