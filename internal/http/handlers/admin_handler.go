package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	WS *Workspaces
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ws := h.WS.For(c)
	return render(c, "admin_index", fiber.Map{
		"Title": "Dashboard",
		"Pages": []fiber.Map{
			{"Name": "Categories", "URL": "/admin/categories", "Count": len(ws.Categories.Snapshot().Items)},
			{"Name": "Pizzas", "URL": "/admin/pizzas", "Count": len(ws.Pizzas.Snapshot().Items)},
			{"Name": "Orders", "URL": "/admin/orders", "Count": len(ws.Orders.Snapshot().Items)},
		},
	})
}
