package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pizzadmin/internal/domain"
	"pizzadmin/internal/resource"
)

func NewCategoryTable(ws *Workspaces, views fiber.Views) *Table[domain.Category] {
	return &Table[domain.Category]{
		Name:        "categories",
		Base:        "/admin/categories",
		Page:        "admin_categories",
		Form:        "partials/category_form",
		CreateTitle: "New category",
		UpdateTitle: "Edit category",
		WS:          ws,
		Views:       views,
		controller:  func(w *Workspace) *resource.Controller[domain.Category] { return w.Categories },
		readDraft: func(c *fiber.Ctx) (map[string]string, *domain.Upload, error) {
			return map[string]string{"name": strings.TrimSpace(c.FormValue("name"))}, nil, nil
		},
	}
}
