package handlers

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	applog "pizzadmin/internal/log"
)

func csrfToken(c *fiber.Ctx) string {
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		return tok
	}
	// Fallback: the cookie set by the csrf middleware on an earlier response.
	return c.Cookies("csrf_")
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u, _ := c.Locals("username").(string); u != "" {
		data["User"] = u
	}
	if tok := csrfToken(c); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// partial renders a template without layout for embedding in a page.
func partial(c *fiber.Ctx, views fiber.Views, tmpl string, data fiber.Map) template.HTML {
	if data == nil {
		data = fiber.Map{}
	}
	data["CSRFToken"] = csrfToken(c)
	var buf bytes.Buffer
	if err := views.Render(&buf, tmpl, data); err != nil {
		applog.Error(c, "render.partial.fail", err, map[string]any{"template": tmpl})
		return ""
	}
	return template.HTML(buf.String())
}
