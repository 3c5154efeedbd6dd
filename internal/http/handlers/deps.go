package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pizzadmin/internal/api"
	"pizzadmin/internal/domain"
	"pizzadmin/internal/services"
)

type Deps struct {
	Workspaces *Workspaces
	Admin      *AdminHandler
	Categories *Table[domain.Category]
	Pizzas     *Table[domain.Pizza]
	Orders     *Table[domain.Order]
	Auth       *services.AuthService
}

func NewDeps(client *api.Client, views fiber.Views, auth *services.AuthService) *Deps {
	ws := NewWorkspaces(client)
	return &Deps{
		Workspaces: ws,
		Admin:      &AdminHandler{WS: ws},
		Categories: NewCategoryTable(ws, views),
		Pizzas:     NewPizzaTable(ws, views),
		Orders:     NewOrderTable(ws, views),
		Auth:       auth,
	}
}

// Register mounts the dashboard under /admin.
func (d *Deps) Register(app *fiber.App) {
	app.Use("/admin", RequireAdmin(d.Auth))
	app.Get("/admin", d.Admin.Dashboard)
	d.Categories.Register(app)
	d.Pizzas.Register(app)
	d.Orders.Register(app)
}
