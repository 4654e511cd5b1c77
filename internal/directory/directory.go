package directory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/fields"
	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
	"github.com/mesh-intelligence/rolodex/pkg/views"
)

// Options configures Open.
type Options struct {
	Store        types.Store
	Entity       types.EntityKey
	Locale       language.Tag
	PageSize     int
	HeaderLayout types.HeaderLayout
	Logger       *slog.Logger

	// Extra callbacks run after the session has seen each table change.
	Callbacks tableview.Callbacks
}

// Directory is one entity's table, its view session and the data behind
// them.
type Directory struct {
	store  types.Store
	entity types.EntityKey
	logger *slog.Logger

	defs     []types.FieldDefinition
	required []string
	users    []types.User
	records  []types.Record

	session *views.Session
	table   *tableview.TableView[types.Record]
}

// Open loads the entity's schema and rows and restores its workspace. An
// entity without a saved workspace starts on its default saved view, if
// one is marked.
func Open(ctx context.Context, opts Options) (*Directory, error) {
	if !opts.Entity.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownEntity, opts.Entity)
	}
	d := &Directory{
		store:  opts.Store,
		entity: opts.Entity,
		logger: opts.Logger,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if err := d.load(ctx); err != nil {
		return nil, err
	}
	cols := Columns(d.defs, d.users)

	d.session = views.NewSession(ctx, views.Options{
		Entity:       d.entity,
		ColumnIDs:    tableview.ColumnIDs(cols),
		Views:        d.store.SavedViews(),
		Prefs:        d.store.ColumnPrefs(),
		Logger:       d.logger,
		PageSize:     opts.PageSize,
		HeaderLayout: opts.HeaderLayout,
	})

	ws, err := d.store.Workspaces().Load(ctx, d.entity)
	if err != nil {
		d.logger.Warn("load workspace", "entity", d.entity, "error", err)
		ws = nil
	}
	if ws != nil {
		d.session.Import(*ws, d.findActive(ctx, ws.ActiveViewID))
	}

	initial := d.session.TableState()
	if ws != nil {
		initial.PageIndex = ws.PageIndex
		initial.Selected = ws.Selected
	}
	d.table = tableview.New(tableview.Options[types.Record]{
		Columns:   cols,
		Rows:      d.records,
		GetRowID:  RowID,
		Locale:    opts.Locale,
		Initial:   initial,
		Callbacks: d.session.Callbacks(opts.Callbacks),
	})
	d.session.Bind(d.table)

	if ws == nil {
		if _, err := d.session.SelectDefaultView(ctx); err != nil {
			d.logger.Warn("select default view", "entity", d.entity, "error", err)
		}
	}
	return d, nil
}

func (d *Directory) findActive(ctx context.Context, id string) *types.SavedView {
	if id == "" {
		return nil
	}
	vs, err := d.store.SavedViews().List(ctx, d.entity)
	if err != nil {
		d.logger.Warn("list views", "entity", d.entity, "error", err)
		return nil
	}
	for _, v := range vs {
		if v.ID == id {
			return &v
		}
	}
	d.logger.Info("active view no longer exists", "entity", d.entity, "view", id)
	return nil
}

// load reads fields, required configuration, users and records.
func (d *Directory) load(ctx context.Context) error {
	defs, err := d.store.Fields().List(ctx, d.entity)
	if err != nil {
		return fmt.Errorf("load fields: %w", err)
	}
	if len(defs) == 0 {
		defs = fields.Core(d.entity)
	}
	cfg, err := d.store.FieldConfigs().Get(ctx, d.entity)
	if err != nil {
		return fmt.Errorf("load field config: %w", err)
	}
	var candidate []string
	if cfg != nil {
		candidate = cfg.RequiredFieldIDs
	}
	users, err := d.store.Users().List(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	records, err := d.store.Records().List(ctx, d.entity)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	d.defs = defs
	d.required = fields.ResolveRequired(candidate, defs)
	d.users = users
	d.records = records
	return nil
}

// Refresh reloads the schema and rows, reconciling the column layout with
// any field added or removed since the last load.
func (d *Directory) Refresh(ctx context.Context) error {
	if err := d.load(ctx); err != nil {
		return err
	}
	cols := Columns(d.defs, d.users)
	d.session.SetColumns(tableview.ColumnIDs(cols))
	d.table.SetColumns(cols)
	d.table.SetRows(d.records)
	return nil
}

// Save persists the workspace so the next Open resumes here.
func (d *Directory) Save(ctx context.Context) error {
	ws := d.session.Export()
	ws.PageIndex = d.table.Page().Index
	ws.Selected = d.table.Selection().IDs()
	if err := d.store.Workspaces().Save(ctx, ws); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

// Entity returns the entity key.
func (d *Directory) Entity() types.EntityKey { return d.entity }

// Table returns the record table.
func (d *Directory) Table() *tableview.TableView[types.Record] { return d.table }

// Session returns the view session.
func (d *Directory) Session() *views.Session { return d.session }

// Fields returns the field definitions in schema order.
func (d *Directory) Fields() []types.FieldDefinition { return d.defs }

// Required returns the resolved required field IDs.
func (d *Directory) Required() []string { return d.required }

// Records returns every record of the entity in storage order.
func (d *Directory) Records() []types.Record { return slices.Clone(d.records) }

// Users returns the owners records can be assigned to.
func (d *Directory) Users() []types.User { return d.users }

// Field returns the definition of a field by ID.
func (d *Directory) Field(id string) (types.FieldDefinition, bool) {
	for _, def := range d.defs {
		if def.ID == id {
			return def, true
		}
	}
	return types.FieldDefinition{}, false
}

// ResolveColumn maps a user-typed column reference, an ID or a label in any
// case, to a column ID.
func (d *Directory) ResolveColumn(ref string) (string, error) {
	for _, def := range d.defs {
		if def.ID == ref {
			return def.ID, nil
		}
	}
	for _, def := range d.defs {
		if strings.EqualFold(def.Label, strings.TrimSpace(ref)) {
			return def.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrFieldNotFound, ref)
}
