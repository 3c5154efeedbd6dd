package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"pizzadmin/internal/api"
	"pizzadmin/internal/backend"
	"pizzadmin/internal/http/handlers"
	"pizzadmin/internal/repos"
	"pizzadmin/internal/services"
)

const templatesDir = "../../web/templates"

// newBackendServer runs the reference backend on a real listener so the
// dashboard's HTTP client talks to it over the wire.
func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	app := backend.NewApp(db, backend.Options{MediaDir: t.TempDir()})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	client, err := api.New(baseURL, 5*time.Second)
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	return client
}

func newDashboard(t *testing.T, baseURL string, auth *services.AuthService) *fiber.App {
	t.Helper()
	return handlers.NewServer(handlers.ServerOptions{
		Templates: templatesDir,
		Client:    newClient(t, baseURL),
		Auth:      auth,
	})
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string

	user, pass string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	if b.user != "" {
		req.SetBasicAuth(b.user, b.pass)
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) csrf() string {
	b.t.Helper()
	tok := b.cookies["csrf_"]
	if tok == "" {
		b.t.Fatal("csrf token missing; load a page first")
	}
	return tok
}

func (b *browser) postForm(path string, vals url.Values) (*http.Response, string) {
	b.t.Helper()
	if vals == nil {
		vals = url.Values{}
	}
	vals.Set("csrf", b.csrf())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, image []byte) (*http.Response, string) {
	b.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("csrf", b.csrf())
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "pizza.png")
		if err != nil {
			b.t.Fatal(err)
		}
		_, _ = fw.Write(image)
	}
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return b.do(req)
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected redirect to %s, got %q", to, loc)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	User   string         `json:"user"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
