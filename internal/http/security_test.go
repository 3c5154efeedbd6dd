package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pizzadmin/internal/services"
)

func newAuth(t *testing.T, user, password string) *services.AuthService {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return services.NewAuthService(user, string(h))
}

func TestAdminRequiresBasicAuth(t *testing.T) {
	srv := newBackendServer(t)
	app := newDashboard(t, srv.URL, newAuth(t, "admin", "s3cret"))

	anon := newBrowser(t, app)
	resp, _ := anon.get("/admin/categories")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous expected 401, got %d", resp.StatusCode)
	}
	if !strings.Contains(strings.ToLower(resp.Header.Get("WWW-Authenticate")), "basic") {
		t.Fatalf("missing basic challenge: %q", resp.Header.Get("WWW-Authenticate"))
	}

	wrong := newBrowser(t, app)
	wrong.user, wrong.pass = "admin", "guess"
	var status int
	entries := captureLogs(t, func() {
		resp, _ := wrong.get("/admin")
		status = resp.StatusCode
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401, got %d", status)
	}
	if _, ok := findLog(entries, "access.denied.admin"); !ok {
		t.Fatal("denied access not logged")
	}

	ok := newBrowser(t, app)
	ok.user, ok.pass = "admin", "s3cret"
	resp, body := ok.get("/admin")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "/admin/pizzas") {
		t.Fatalf("dashboard links missing; body=%s", body)
	}

	resp, _ = anon.get("/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz must stay public, got %d", resp.StatusCode)
	}
}

func TestMutationWithoutCSRFIsRejected(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))
	before := len(listCategories(t, srv.URL))

	req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(url.Values{"name": {"Sneaky"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, body := b.do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Security check failed") {
		t.Fatalf("friendly message missing; body=%s", body)
	}
	if len(listCategories(t, srv.URL)) != before {
		t.Fatal("category created without csrf token")
	}
}

func TestMutationsAreAudited(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, newAuth(t, "admin", "s3cret")))
	b.user, b.pass = "admin", "s3cret"
	b.get("/admin/categories/new")

	entries := captureLogs(t, func() {
		b.postForm("/admin/categories", url.Values{"name": {"Cheese"}})
	})
	e, ok := findLog(entries, "admin.categories.create")
	if !ok {
		t.Fatal("admin.categories.create not logged")
	}
	if e.Level != "audit" || e.User != "admin" {
		t.Fatalf("unexpected audit entry %+v", e)
	}
	if e.Fields["kind"] != "ok" {
		t.Fatalf("audit kind = %v", e.Fields["kind"])
	}
}

func TestBackendFailureIsLogged(t *testing.T) {
	srv := newBackendServer(t)
	base := srv.URL
	srv.Close()
	b := newBrowser(t, newDashboard(t, base, nil))

	entries := captureLogs(t, func() { b.get("/admin/orders") })
	e, ok := findLog(entries, "resource.orders.load.fail")
	if !ok {
		t.Fatal("load failure not logged")
	}
	if e.Level != "error" || e.Fields["kind"] != "transport" {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestUnknownPageIsFriendly404(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))

	resp, body := b.get("/does-not-exist")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Page not found") {
		t.Fatalf("friendly message missing; body=%s", body)
	}
}
