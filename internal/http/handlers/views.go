package handlers

import (
	html "github.com/gofiber/template/html/v2"

	"pizzadmin/internal/api"
)

// NewEngine loads page templates from dir and registers the helpers they use.
func NewEngine(dir string, client *api.Client) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("imageURL", client.ResolveURL)
	return engine
}
