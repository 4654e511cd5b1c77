package fields

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// FieldError reports an invalid value for one field.
type FieldError struct {
	FieldID string
	Message string
}

func (e *FieldError) Error() string { return e.FieldID + ": " + e.Message }

// Unwrap lets callers test for types.ErrInvalidRecord.
func (e *FieldError) Unwrap() error { return types.ErrInvalidRecord }

// Clean validates raw values against defs and returns them coerced to
// their stored form: trimmed strings, float64 numbers and int64 user IDs.
// Blank optional values are dropped and keys with no field are ignored.
// All field errors are joined into the returned error.
func Clean(defs []types.FieldDefinition, required []string, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	var errs []error
	for _, d := range defs {
		v, err := cleanValue(d, raw[d.ID], slices.Contains(required, d.ID))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if v != nil {
			out[d.ID] = v
		}
	}
	return out, errors.Join(errs...)
}

func cleanValue(d types.FieldDefinition, raw any, required bool) (any, error) {
	blank := isBlank(raw)
	if blank {
		if required {
			return nil, &FieldError{FieldID: d.ID, Message: d.Label + " is required"}
		}
		return nil, nil
	}

	switch d.DataType {
	case types.DataText:
		return strings.TrimSpace(fmt.Sprint(raw)), nil
	case types.DataEmail:
		s := strings.TrimSpace(fmt.Sprint(raw))
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			return nil, &FieldError{FieldID: d.ID, Message: "enter a valid email"}
		}
		return s, nil
	case types.DataNumber:
		f, ok := toFloat(raw)
		if !ok {
			return nil, &FieldError{FieldID: d.ID, Message: d.Label + " must be a number"}
		}
		return f, nil
	case types.DataUser:
		f, ok := toFloat(raw)
		if !ok || f <= 0 || f != math.Trunc(f) {
			return nil, &FieldError{FieldID: d.ID, Message: d.Label + " must be a user ID"}
		}
		return int64(f), nil
	}
	return nil, &FieldError{FieldID: d.ID, Message: types.ErrFieldDataType.Error()}
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}
