package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string        `yaml:"port"`
	APIURL      string        `yaml:"api_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	LogFile     string        `yaml:"log_file"`
	Templates   string        `yaml:"templates_dir"`
	// TemplatesReload re-parses templates on every render (development).
	TemplatesReload bool `yaml:"templates_reload"`

	// Basic auth for the dashboard; disabled when PasswordHash is empty.
	AdminUser         string `yaml:"admin_user"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	// Reference backend
	BackendPort string `yaml:"backend_port"`
	DBDSN       string `yaml:"db_dsn"`
	MediaDir    string `yaml:"media_dir"`
}

func Defaults() Config {
	return Config{
		Port:        "8081",
		APIURL:      "http://localhost:3000",
		HTTPTimeout: 10 * time.Second,
		LogFile:     "./pizzadmin.log",
		Templates:   "./web/templates",
		AdminUser:   "admin",
		BackendPort: "3000",
		DBDSN:       "pizzas.db",
		MediaDir:    "./web/uploads",
	}
}

// Load starts from Defaults, applies CONFIG_FILE (yaml) if set, then
// environment variables.
func Load() Config {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			log.Printf("[warn] could not read config file %s: %v", path, err)
		}
	}
	applyEnv(&cfg)

	log.Printf("[config] PORT=%s API_URL=%s HTTP_TIMEOUT=%s TEMPLATES_DIR=%s LOG_FILE=%s BACKEND_PORT=%s DB_DSN=%s MEDIA_DIR=%s auth=%t",
		cfg.Port, cfg.APIURL, cfg.HTTPTimeout, cfg.Templates, cfg.LogFile, cfg.BackendPort, cfg.DBDSN, cfg.MediaDir, cfg.AuthEnabled())
	return cfg
}

func (c Config) AuthEnabled() bool { return c.AdminPasswordHash != "" }

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Port, "PORT")
	set(&cfg.APIURL, "API_URL")
	set(&cfg.LogFile, "LOG_FILE")
	set(&cfg.Templates, "TEMPLATES_DIR")
	set(&cfg.AdminUser, "ADMIN_USER")
	set(&cfg.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	set(&cfg.BackendPort, "BACKEND_PORT")
	set(&cfg.DBDSN, "DB_DSN")
	set(&cfg.MediaDir, "MEDIA_DIR")

	if v := os.Getenv("TEMPLATES_RELOAD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("[warn] ignoring TEMPLATES_RELOAD=%q", v)
		} else {
			cfg.TemplatesReload = b
		}
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("[warn] ignoring HTTP_TIMEOUT=%q", v)
		} else {
			cfg.HTTPTimeout = d
		}
	}
}
