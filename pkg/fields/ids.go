package fields

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases label and collapses every run of other characters to a
// single underscore.
func Slug(label string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(label), "_"), "_")
}

// DeriveID builds the ID of a new custom field: email fields get an
// "_email" suffix, others a "custom_" prefix, and a numeric suffix keeps
// the ID unique among existing.
func DeriveID(label string, dt types.DataType, existing []types.FieldDefinition) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", types.ErrFieldLabelRequired
	}
	slug := Slug(label)
	if slug == "" {
		return "", types.ErrFieldLabelInvalid
	}
	base := "custom_" + slug
	if dt == types.DataEmail {
		base = slug + "_email"
	}
	taken := func(id string) bool {
		return slices.ContainsFunc(existing, func(f types.FieldDefinition) bool { return f.ID == id })
	}
	id := base
	for i := 1; taken(id); i++ {
		id = fmt.Sprintf("%s_%d", base, i)
	}
	return id, nil
}

// IDs returns the IDs of defs in order.
func IDs(defs []types.FieldDefinition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}

// DefaultRequiredIDs returns the IDs of fields required by default.
func DefaultRequiredIDs(defs []types.FieldDefinition) []string {
	var out []string
	for _, d := range defs {
		if d.DefaultRequired {
			out = append(out, d.ID)
		}
	}
	return out
}

// DefaultVisibleIDs returns the IDs of fields shown by default.
func DefaultVisibleIDs(defs []types.FieldDefinition) []string {
	var out []string
	for _, d := range defs {
		if d.DefaultVisible {
			out = append(out, d.ID)
		}
	}
	return out
}

// Sanitize keeps the IDs that name a field of defs, dropping duplicates.
func Sanitize(ids []string, defs []types.FieldDefinition) []string {
	out := []string{}
	for _, id := range ids {
		if slices.Contains(out, id) {
			continue
		}
		if slices.ContainsFunc(defs, func(d types.FieldDefinition) bool { return d.ID == id }) {
			out = append(out, id)
		}
	}
	return out
}

// ResolveRequired sanitizes candidate and merges in the default required
// fields. An empty result falls back to the defaults.
func ResolveRequired(candidate []string, defs []types.FieldDefinition) []string {
	fallback := DefaultRequiredIDs(defs)
	out := Sanitize(candidate, defs)
	if len(out) == 0 {
		return fallback
	}
	for _, id := range fallback {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// ResolveVisible sanitizes candidate, falling back to the default visible
// fields when nothing remains.
func ResolveVisible(candidate []string, defs []types.FieldDefinition) []string {
	out := Sanitize(candidate, defs)
	if len(out) == 0 {
		return DefaultVisibleIDs(defs)
	}
	return out
}

// NormalizeRequired trims ids and drops blanks and duplicates.
func NormalizeRequired(ids []string) []string {
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// ToggleRequired adds or removes id from required. Removing the last
// required field is refused with ErrNoRequiredFields.
func ToggleRequired(required []string, id string, on bool) ([]string, error) {
	out := slices.Clone(required)
	if on {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
		return out, nil
	}
	out = slices.DeleteFunc(out, func(v string) bool { return v == id })
	if len(out) == 0 {
		return required, types.ErrNoRequiredFields
	}
	return out, nil
}
