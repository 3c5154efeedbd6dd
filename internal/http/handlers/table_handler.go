package handlers

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"pizzadmin/internal/domain"
	applog "pizzadmin/internal/log"
	"pizzadmin/internal/resource"
	"pizzadmin/internal/ui"
	"pizzadmin/internal/validate"
)

// Table serves one resource page: the list, its modal and the actions that
// drive the resource controller of the caller's workspace.
type Table[T resource.Record] struct {
	Name string // "categories"
	Base string // "/admin/categories"
	Page string // page template
	Form string // modal body template

	CreateTitle string
	UpdateTitle string
	DetailTitle string

	WS    *Workspaces
	Views fiber.Views

	controller func(*Workspace) *resource.Controller[T]
	// readDraft pulls the submitted form values; nil for read-only tables.
	readDraft func(c *fiber.Ctx) (map[string]string, *domain.Upload, error)
	// mount refreshes what the page shows; defaults to the table's controller.
	mount func(ctx context.Context, ws *Workspace)
	// extra adds page data beyond the table state.
	extra func(ws *Workspace, data fiber.Map)
}

func (t *Table[T]) refresh(ctx context.Context, ws *Workspace) {
	if t.mount != nil {
		t.mount(ctx, ws)
		return
	}
	t.controller(ws).Refresh(ctx)
}

// ensureLoaded fetches once when the page is entered on a modal route. A
// fetch already in flight is not awaited; the table shows skeleton rows.
func (t *Table[T]) ensureLoaded(ctx context.Context, ws *Workspace) {
	if s := t.controller(ws).Snapshot(); !s.HasLoaded && !s.IsLoading {
		t.refresh(ctx, ws)
	}
}

func (t *Table[T]) modalTitle(s resource.State[T]) string {
	switch {
	case s.Detail != nil:
		return t.DetailTitle
	case s.Target != nil:
		return t.UpdateTitle
	}
	return t.CreateTitle
}

func (t *Table[T]) page(c *fiber.Ctx, ws *Workspace) error {
	s := t.controller(ws).Snapshot()
	data := fiber.Map{
		"Title":    t.Name,
		"Base":     t.Base,
		"State":    s,
		"ReadOnly": t.readDraft == nil,
		"Skeleton": make([]struct{}, resource.SkeletonRows),
	}
	if t.extra != nil {
		t.extra(ws, data)
	}
	m := ui.Modal{
		Open:      s.ModalOpen,
		Title:     t.modalTitle(s),
		CloseURL:  t.Base + "/close",
		CSRFToken: csrfToken(c),
	}
	if m.Open {
		body := fiber.Map{"State": s, "Base": t.Base}
		for k, v := range data {
			if _, ok := body[k]; !ok {
				body[k] = v
			}
		}
		m.Body = partial(c, t.Views, t.Form, body)
	}
	data["Modal"] = m.HTML()
	return render(c, t.Page, data)
}

// GET {base}
func (t *Table[T]) List(c *fiber.Ctx) error {
	ws := t.WS.For(c)
	t.refresh(c.UserContext(), ws)
	return t.page(c, ws)
}

// GET {base}/new
func (t *Table[T]) New(c *fiber.Ctx) error {
	ws := t.WS.For(c)
	t.ensureLoaded(c.UserContext(), ws)
	if out := t.controller(ws).OpenCreate(); out.Kind == resource.KindReadOnly {
		return c.Status(fiber.StatusMethodNotAllowed).Render("notfound", fiber.Map{"Message": "This list is read-only"})
	}
	return t.page(c, ws)
}

// GET {base}/:id/edit
func (t *Table[T]) Edit(c *fiber.Ctx) error {
	ws := t.WS.For(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Record not found"})
	}
	t.ensureLoaded(c.UserContext(), ws)
	switch out := t.controller(ws).OpenEdit(id); out.Kind {
	case resource.KindReadOnly:
		return c.Status(fiber.StatusMethodNotAllowed).Render("notfound", fiber.Map{"Message": "This list is read-only"})
	case resource.KindNotFound:
		c.Status(fiber.StatusNotFound)
	}
	return t.page(c, ws)
}

// GET {base}/:id
func (t *Table[T]) Show(c *fiber.Ctx) error {
	ws := t.WS.For(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Record not found"})
	}
	t.ensureLoaded(c.UserContext(), ws)
	if out := t.controller(ws).OpenDetail(id); out.Kind == resource.KindNotFound {
		c.Status(fiber.StatusNotFound)
	}
	return t.page(c, ws)
}

// POST {base}/close
func (t *Table[T]) Close(c *fiber.Ctx) error {
	t.controller(t.WS.For(c)).Close()
	return c.Redirect(t.Base)
}

// POST {base}
func (t *Table[T]) Submit(c *fiber.Ctx) error {
	if t.readDraft == nil {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}
	ctl := t.controller(t.WS.For(c))
	// The edit form names its record; an empty id is a create form.
	id := c.FormValue("id")
	if id != "" {
		if _, ok := validate.ID(id); !ok {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Record not found"})
		}
	}
	fields, file, err := t.readDraft(c)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"resource": t.Name, "err": err.Error()})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Could not read the form. Please try again."})
	}
	ctl.SetDraft(fields, file)
	out := ctl.Submit(c.UserContext(), id)
	t.audit(c, out, id)
	return c.Redirect(t.Base)
}

// POST {base}/:id/delete
func (t *Table[T]) Delete(c *fiber.Ctx) error {
	if t.readDraft == nil {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Record not found"})
	}
	out := t.controller(t.WS.For(c)).Delete(c.UserContext(), id)
	t.audit(c, out, id)
	return c.Redirect(t.Base)
}

func (t *Table[T]) audit(c *fiber.Ctx, out resource.Outcome, id string) {
	fields := map[string]any{"resource": t.Name, "op": string(out.Op), "kind": string(out.Kind)}
	if id != "" {
		fields["id"] = id
	}
	if out.OK() {
		applog.Audit(c, "admin."+t.Name+"."+string(out.Op), fields)
		return
	}
	applog.Info(c, "admin."+t.Name+"."+string(out.Op)+".settled", fields)
}

// Register mounts the table routes on r.
func (t *Table[T]) Register(r fiber.Router) {
	g := r.Group(t.Base)
	g.Get("/", t.List)
	g.Post("/close", t.Close)
	if t.readDraft != nil {
		g.Get("/new", t.New)
		g.Post("/", t.Submit)
		g.Get("/:id/edit", t.Edit)
		g.Post("/:id/delete", t.Delete)
		return
	}
	g.Get("/:id", t.Show)
}

func readUpload(c *fiber.Ctx, field string) (*domain.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &domain.Upload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}
