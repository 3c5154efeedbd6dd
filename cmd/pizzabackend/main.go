package main

import (
	"io"
	"log"
	"os"

	"pizzadmin/internal/backend"
	"pizzadmin/internal/config"
	"pizzadmin/internal/repos"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.Fatal(err)
	}
	log.Printf("[static] /uploads -> %s", cfg.MediaDir)

	app := backend.NewApp(db, backend.Options{MediaDir: cfg.MediaDir, AccessLog: true})
	log.Fatal(app.Listen(":" + cfg.BackendPort))
}
