// Package views reconciles an entity table's working state with its saved
// views. A Session is either on the Default view or viewing one saved view.
// Leaving Default snapshots the working state so that returning restores
// it; selecting a view adopts its definition wholesale. Every transition
// bumps a revision and resets the bound table.
package views
