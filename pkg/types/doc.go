// Package types defines the entity, field, record and saved-view types of
// rolodex, the storage service interfaces the backends implement, and the
// sentinel errors shared by every layer.
package types
