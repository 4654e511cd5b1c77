package types

import (
	"errors"
	"time"
)

// DataType is the closed set of value kinds a field can hold.
type DataType string

// Field data types.
const (
	DataText   DataType = "text"
	DataEmail  DataType = "email"
	DataNumber DataType = "number"
	DataUser   DataType = "user"
)

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool {
	switch d {
	case DataText, DataEmail, DataNumber, DataUser:
		return true
	}
	return false
}

// FieldKind distinguishes built-in fields from user-defined ones.
type FieldKind string

// Field kinds.
const (
	FieldCore   FieldKind = "core"
	FieldCustom FieldKind = "custom"
)

// FieldDefinition describes one column of an entity directory.
type FieldDefinition struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	Description      string    `json:"description,omitempty"`
	Placeholder      string    `json:"placeholder,omitempty"`
	DataType         DataType  `json:"dataType"`
	AutoComplete     string    `json:"autoComplete,omitempty"`
	Kind             FieldKind `json:"kind"`
	RequiredBySystem bool      `json:"requiredBySystem"`
	DefaultRequired  bool      `json:"defaultRequired"`
	DefaultVisible   bool      `json:"defaultVisible"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
}

// CreateFieldInput carries the user-supplied part of a new custom field.
type CreateFieldInput struct {
	Label       string
	Description string
	Placeholder string
	DataType    DataType
}

// UpdateFieldInput is a partial update; nil members are left unchanged.
type UpdateFieldInput struct {
	Label       *string
	Description *string
	Placeholder *string
}

// FieldConfig records which fields are required when creating a record.
type FieldConfig struct {
	Entity           EntityKey `json:"entity"`
	RequiredFieldIDs []string  `json:"requiredFieldIds"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Field errors.
var (
	ErrFieldNotFound      = errors.New("field not found")
	ErrFieldLabelRequired = errors.New("label is required")
	ErrFieldLabelInvalid  = errors.New("label must contain alphanumeric characters")
	ErrFieldDataType      = errors.New("unknown field data type")
	ErrSystemField        = errors.New("system fields cannot be edited or removed")
	ErrNoRequiredFields   = errors.New("select at least one required field")
)
