// Package backend serves the /api/admin contract the dashboard consumes,
// backed by SQLite. It exists for local development and end-to-end tests.
package backend

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"pizzadmin/internal/domain"
	applog "pizzadmin/internal/log"
	"pizzadmin/internal/repos"
	"pizzadmin/internal/services"
	"pizzadmin/internal/validate"
)

type API struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

func (h *API) Register(r fiber.Router) {
	admin := r.Group("/api/admin")
	admin.Get("/categories", h.ListCategories)
	admin.Post("/categories", h.CreateCategory)
	admin.Put("/categories/:id", h.UpdateCategory)
	admin.Delete("/categories/:id", h.DeleteCategory)

	admin.Get("/pizzas", h.ListPizzas)
	admin.Post("/pizzas", h.CreatePizza)
	admin.Put("/pizzas/:id", h.UpdatePizza)
	admin.Delete("/pizzas/:id", h.DeletePizza)

	admin.Get("/orders", h.ListOrders)
}

func fail(c *fiber.Ctx, action string, err error) error {
	var ve services.ValidationError
	switch {
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"field": ve.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, services.ErrBadImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported image", "field": "image"})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, repos.ErrInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "category still has pizzas"})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func idParam(c *fiber.Ctx) (string, bool) {
	return validate.ID(c.Params("id"))
}

func (h *API) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "api.categories.list", err)
	}
	return c.JSON(cats)
}

type categoryBody struct {
	Name string `json:"name" form:"name"`
}

func (h *API) CreateCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	cat, err := h.Catalog.CreateCategory(body.Name)
	if err != nil {
		return fail(c, "api.categories.create", err)
	}
	applog.Audit(c, "api.categories.create", map[string]any{"id": cat.ID, "name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *API) UpdateCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	cat, err := h.Catalog.UpdateCategory(id, body.Name)
	if err != nil {
		return fail(c, "api.categories.update", err)
	}
	applog.Audit(c, "api.categories.update", map[string]any{"id": cat.ID, "name": cat.Name})
	return c.JSON(cat)
}

func (h *API) DeleteCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return fail(c, "api.categories.delete", err)
	}
	applog.Audit(c, "api.categories.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *API) ListPizzas(c *fiber.Ctx) error {
	pizzas, err := h.Catalog.ListPizzas()
	if err != nil {
		return fail(c, "api.pizzas.list", err)
	}
	return c.JSON(pizzas)
}

// pizzaInput reads the multipart form. A missing image part is not an error.
func pizzaInput(c *fiber.Ctx) (services.PizzaInput, error) {
	in := services.PizzaInput{
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
		CategoryID:  c.FormValue("categoryId"),
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return in, nil
	}
	f, err := fh.Open()
	if err != nil {
		return in, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return in, err
	}
	if len(data) > 0 {
		in.Image = &domain.Upload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}
	}
	return in, nil
}

func (h *API) CreatePizza(c *fiber.Ctx) error {
	in, err := pizzaInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed upload"})
	}
	p, err := h.Catalog.CreatePizza(in)
	if err != nil {
		return fail(c, "api.pizzas.create", err)
	}
	applog.Audit(c, "api.pizzas.create", map[string]any{"id": p.ID, "name": p.Name, "image": p.ImageURL != ""})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *API) UpdatePizza(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	in, err := pizzaInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed upload"})
	}
	p, err := h.Catalog.UpdatePizza(id, in)
	if err != nil {
		return fail(c, "api.pizzas.update", err)
	}
	applog.Audit(c, "api.pizzas.update", map[string]any{"id": p.ID, "name": p.Name, "image": in.Image != nil})
	return c.JSON(p)
}

func (h *API) DeletePizza(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Catalog.DeletePizza(id); err != nil {
		return fail(c, "api.pizzas.delete", err)
	}
	applog.Audit(c, "api.pizzas.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *API) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.List()
	if err != nil {
		return fail(c, "api.orders.list", err)
	}
	return c.JSON(orders)
}
