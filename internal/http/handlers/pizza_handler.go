package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"pizzadmin/internal/domain"
	"pizzadmin/internal/resource"
)

func NewPizzaTable(ws *Workspaces, views fiber.Views) *Table[domain.Pizza] {
	return &Table[domain.Pizza]{
		Name:        "pizzas",
		Base:        "/admin/pizzas",
		Page:        "admin_pizzas",
		Form:        "partials/pizza_form",
		CreateTitle: "New pizza",
		UpdateTitle: "Edit pizza",
		WS:          ws,
		Views:       views,
		controller:  func(w *Workspace) *resource.Controller[domain.Pizza] { return w.Pizzas },
		readDraft:   readPizzaDraft,
		mount:       mountPizzas,
		extra: func(w *Workspace, data fiber.Map) {
			data["Categories"] = w.Categories.Snapshot().Items
		},
	}
}

// mountPizzas loads the pizza list and the category options side by side.
func mountPizzas(ctx context.Context, w *Workspace) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w.Pizzas.Refresh(ctx)
		return nil
	})
	g.Go(func() error {
		w.Categories.Refresh(ctx)
		return nil
	})
	_ = g.Wait()
}

func readPizzaDraft(c *fiber.Ctx) (map[string]string, *domain.Upload, error) {
	fields := map[string]string{
		"name":        strings.TrimSpace(c.FormValue("name")),
		"price":       strings.TrimSpace(c.FormValue("price")),
		"description": c.FormValue("description"),
		"categoryId":  c.FormValue("categoryId"),
	}
	file, err := readUpload(c, "image")
	if err != nil {
		return nil, nil, err
	}
	return fields, file, nil
}
