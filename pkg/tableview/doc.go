// Package tableview holds the state of one entity table: free-text and
// per-column filtering, tri-state single-column sorting, pagination,
// multi-row selection and the visible column layout.
//
// A TableView is owned by a single goroutine. Every mutation recomputes the
// matching rows synchronously and fires the registered callbacks before it
// returns, so renderers can read the new state immediately.
package tableview
