package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pizzadmin/internal/domain"
	"pizzadmin/internal/resource"
)

// NewOrderTable serves the read-only order list with its detail modal.
func NewOrderTable(ws *Workspaces, views fiber.Views) *Table[domain.Order] {
	return &Table[domain.Order]{
		Name:        "orders",
		Base:        "/admin/orders",
		Page:        "admin_orders",
		Form:        "partials/order_detail",
		DetailTitle: "Order details",
		WS:          ws,
		Views:       views,
		controller:  func(w *Workspace) *resource.Controller[domain.Order] { return w.Orders },
	}
}
