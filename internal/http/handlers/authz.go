package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	applog "pizzadmin/internal/log"
	"pizzadmin/internal/services"
)

// RequireAdmin guards the dashboard with HTTP basic auth. When no password
// hash is configured every request passes.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	if auth == nil || !auth.Enabled() {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return basicauth.New(basicauth.Config{
		Realm:      "pizzadmin",
		Authorizer: auth.Check,
		Unauthorized: func(c *fiber.Ctx) error {
			applog.Security(c, "access.denied.admin", nil)
			c.Set(fiber.HeaderWWWAuthenticate, `basic realm="pizzadmin"`)
			return c.SendStatus(fiber.StatusUnauthorized)
		},
	})
}
