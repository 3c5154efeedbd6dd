package main

import (
	"io"
	"log"
	"os"

	"pizzadmin/internal/api"
	"pizzadmin/internal/config"
	"pizzadmin/internal/http/handlers"
	"pizzadmin/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	client, err := api.New(cfg.APIURL, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal(err)
	}
	if !cfg.AuthEnabled() {
		log.Printf("[warn] ADMIN_PASSWORD_HASH not set, dashboard is unauthenticated")
	}

	app := handlers.NewServer(handlers.ServerOptions{
		Templates: cfg.Templates,
		Client:    client,
		Auth:      services.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash),
		RateLimit: 120,
		AccessLog: true,
		Reload:    cfg.TemplatesReload,
	})

	log.Printf("[api] %s", client.BaseURL())
	log.Fatal(app.Listen(":" + cfg.Port))
}
