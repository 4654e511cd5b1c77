package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// List returns the saved views of the session's entity.
func (s *Session) List(ctx context.Context) ([]types.SavedView, error) {
	vs, err := s.views.List(ctx, s.entity)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	return vs, nil
}

// Find returns the saved view with the given ID or, failing that, the one
// whose name matches case-insensitively.
func (s *Session) Find(ctx context.Context, idOrName string) (types.SavedView, error) {
	vs, err := s.List(ctx)
	if err != nil {
		return types.SavedView{}, err
	}
	for _, v := range vs {
		if v.ID == idOrName {
			return v, nil
		}
	}
	want := strings.ToLower(strings.TrimSpace(idOrName))
	for _, v := range vs {
		if strings.ToLower(v.Name) == want {
			return v, nil
		}
	}
	return types.SavedView{}, fmt.Errorf("%w: %q", types.ErrViewNotFound, idOrName)
}

// SelectDefaultView selects the entity's view marked as default, if any.
// It reports whether a view was selected.
func (s *Session) SelectDefaultView(ctx context.Context) (bool, error) {
	vs, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, v := range vs {
		if v.IsDefault {
			s.SelectView(ctx, v)
			return true, nil
		}
	}
	return false, nil
}

// SaveAsNew stores the working state as a new saved view and selects it.
// On failure the session is left unchanged.
func (s *Session) SaveAsNew(ctx context.Context, name string, scope types.Scope, isDefault bool) (types.SavedView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.SavedView{}, types.ErrViewNameRequired
	}
	v, err := s.views.Create(ctx, types.CreateViewInput{
		Entity:     s.entity,
		Name:       name,
		Scope:      scope,
		IsDefault:  isDefault,
		Definition: s.CurrentDefinition(),
	})
	if err != nil {
		return types.SavedView{}, fmt.Errorf("create view: %w", err)
	}
	s.SelectView(ctx, v)
	return v, nil
}

// UpdateActive overwrites the active view's definition with the working
// state and reselects it.
func (s *Session) UpdateActive(ctx context.Context) (types.SavedView, error) {
	if s.active == nil {
		return types.SavedView{}, ErrNoActiveView
	}
	def := s.CurrentDefinition()
	v, err := s.views.Update(ctx, s.active.ID, types.ViewPatch{Definition: &def})
	if err != nil {
		return types.SavedView{}, fmt.Errorf("update view: %w", err)
	}
	s.SelectView(ctx, v)
	return v, nil
}

// RenameActive renames the active view. An empty name or the current name
// is a no-op.
func (s *Session) RenameActive(ctx context.Context, name string) (types.SavedView, error) {
	if s.active == nil {
		return types.SavedView{}, ErrNoActiveView
	}
	name = strings.TrimSpace(name)
	if name == "" || name == s.active.Name {
		return *s.Active(), nil
	}
	v, err := s.views.Update(ctx, s.active.ID, types.ViewPatch{Name: &name})
	if err != nil {
		return types.SavedView{}, fmt.Errorf("rename view: %w", err)
	}
	s.SelectView(ctx, v)
	return v, nil
}

// MarkActiveDefault sets or clears the default flag of the active view
// without touching the working state.
func (s *Session) MarkActiveDefault(ctx context.Context, isDefault bool) (types.SavedView, error) {
	if s.active == nil {
		return types.SavedView{}, ErrNoActiveView
	}
	v, err := s.views.Update(ctx, s.active.ID, types.ViewPatch{IsDefault: &isDefault})
	if err != nil {
		return types.SavedView{}, fmt.Errorf("update view: %w", err)
	}
	s.active.IsDefault = v.IsDefault
	s.active.Version = v.Version
	s.active.UpdatedAt = v.UpdatedAt
	return v, nil
}

// DeleteActive removes the active view and returns to Default.
func (s *Session) DeleteActive(ctx context.Context) error {
	if s.active == nil {
		return ErrNoActiveView
	}
	if err := s.views.Remove(ctx, s.active.ID); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	s.ReturnToDefault(ctx)
	return nil
}
