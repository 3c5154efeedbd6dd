package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pizzadmin/internal/api"
	"pizzadmin/internal/domain"
	"pizzadmin/internal/resource"
)

// Workspace is one browser session's set of table controllers.
type Workspace struct {
	Categories *resource.Controller[domain.Category]
	Pizzas     *resource.Controller[domain.Pizza]
	Orders     *resource.Controller[domain.Order]

	lastSeen time.Time
}

func NewWorkspace(client *api.Client) *Workspace {
	cats := api.Categories(client)
	pizzas := api.Pizzas(client)
	return &Workspace{
		Categories: resource.New[domain.Category]("categories", cats, cats, domain.Category.Draft),
		Pizzas:     resource.New[domain.Pizza]("pizzas", pizzas, pizzas, domain.Pizza.Draft),
		Orders:     resource.New[domain.Order]("orders", api.Orders(client), nil, nil),
	}
}

// Workspaces hands out a Workspace per sid cookie and forgets sessions idle
// for longer than MaxIdle.
type Workspaces struct {
	MaxIdle time.Duration

	mu    sync.Mutex
	byID  map[string]*Workspace
	newWS func() *Workspace
	now   func() time.Time
}

func NewWorkspaces(client *api.Client) *Workspaces {
	return &Workspaces{
		MaxIdle: 12 * time.Hour,
		byID:    map[string]*Workspace{},
		newWS:   func() *Workspace { return NewWorkspace(client) },
		now:     time.Now,
	}
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/admin",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

func (w *Workspaces) For(c *fiber.Ctx) *Workspace {
	return w.get(ensureSID(c))
}

func (w *Workspaces) get(sid string) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	for id, ws := range w.byID {
		if id != sid && now.Sub(ws.lastSeen) > w.MaxIdle {
			delete(w.byID, id)
		}
	}
	ws, ok := w.byID[sid]
	if !ok {
		ws = w.newWS()
		w.byID[sid] = ws
	}
	ws.lastSeen = now
	return ws
}

func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.byID)
}
