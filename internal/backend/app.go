package backend

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jmoiron/sqlx"

	applog "pizzadmin/internal/log"
	"pizzadmin/internal/repos"
	"pizzadmin/internal/services"
)

type Options struct {
	MediaDir string
	// AccessLog enables the fiber request logger.
	AccessLog bool
}

// NewApp wires repos, services and routes onto a fresh fiber app.
func NewApp(db *sqlx.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				applog.Error(c, "server.error", err, nil)
			}
			return c.Status(code).JSON(fiber.Map{"error": utils.StatusMessage(code)})
		},
	})
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	mediaDir := opts.MediaDir
	if abs, err := filepath.Abs(mediaDir); err == nil {
		mediaDir = abs
	}
	images := services.NewImageStore(mediaDir)
	api := &API{
		Catalog: services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewPizzaRepo(db), images),
		Orders:  services.NewOrderService(repos.NewOrderRepo(db)),
	}
	api.Register(app)

	app.Static(strings.TrimSuffix(services.UploadsPrefix, "/"), mediaDir)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	return app
}
