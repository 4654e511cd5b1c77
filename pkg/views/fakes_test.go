package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var errBoom = errors.New("boom")

type fakeViews struct {
	views []types.SavedView
	next  int
	fail  error
}

func (f *fakeViews) List(_ context.Context, entity types.EntityKey) ([]types.SavedView, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	var out []types.SavedView
	for _, v := range f.views {
		if v.Entity == entity {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeViews) Create(_ context.Context, in types.CreateViewInput) (types.SavedView, error) {
	if f.fail != nil {
		return types.SavedView{}, f.fail
	}
	for _, v := range f.views {
		if v.Entity == in.Entity && strings.EqualFold(v.Name, in.Name) {
			return types.SavedView{}, types.ErrViewNameTaken
		}
	}
	f.next++
	now := time.Now()
	v := types.SavedView{
		ID:         fmt.Sprintf("v%d", f.next),
		Entity:     in.Entity,
		Name:       in.Name,
		Scope:      in.Scope,
		IsDefault:  in.IsDefault,
		Definition: in.Definition.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}
	f.views = append(f.views, v)
	return v, nil
}

func (f *fakeViews) Update(_ context.Context, id string, patch types.ViewPatch) (types.SavedView, error) {
	if f.fail != nil {
		return types.SavedView{}, f.fail
	}
	for i, v := range f.views {
		if v.ID != id {
			continue
		}
		if patch.Name != nil {
			v.Name = *patch.Name
		}
		if patch.IsDefault != nil {
			v.IsDefault = *patch.IsDefault
		}
		if patch.Definition != nil {
			v.Definition = patch.Definition.Clone()
		}
		v.Version++
		f.views[i] = v
		return v, nil
	}
	return types.SavedView{}, types.ErrViewNotFound
}

func (f *fakeViews) Remove(_ context.Context, id string) error {
	if f.fail != nil {
		return f.fail
	}
	f.views = slices.DeleteFunc(f.views, func(v types.SavedView) bool { return v.ID == id })
	return nil
}

type fakePrefs struct {
	prefs   map[types.EntityKey]types.ColumnPrefs
	sets    int
	clears  int
	failGet error
	failSet error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{prefs: make(map[types.EntityKey]types.ColumnPrefs)}
}

func (f *fakePrefs) Get(_ context.Context, e types.EntityKey) (*types.ColumnPrefs, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	p, ok := f.prefs[e]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePrefs) Set(_ context.Context, e types.EntityKey, patch types.ColumnPrefsPatch) error {
	if f.failSet != nil {
		return f.failSet
	}
	f.sets++
	p := f.prefs[e]
	if patch.VisibleColumns != nil {
		p.VisibleColumns = slices.Clone(patch.VisibleColumns)
	}
	if patch.ColumnOrder != nil {
		p.ColumnOrder = slices.Clone(patch.ColumnOrder)
	}
	if patch.HeaderLayout != "" {
		p.HeaderLayout = patch.HeaderLayout
	}
	f.prefs[e] = p
	return nil
}

func (f *fakePrefs) Clear(_ context.Context, e types.EntityKey) error {
	f.clears++
	p := f.prefs[e]
	p.VisibleColumns = nil
	p.ColumnOrder = nil
	f.prefs[e] = p
	return nil
}

type resetCall struct {
	revision uint64
	state    tableview.State
}

type fakeTable struct {
	resets []resetCall
}

func (f *fakeTable) Reset(rev uint64, st tableview.State) {
	f.resets = append(f.resets, resetCall{revision: rev, state: st})
}

func (f *fakeTable) last() resetCall { return f.resets[len(f.resets)-1] }
