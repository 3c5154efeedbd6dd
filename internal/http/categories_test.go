package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"pizzadmin/internal/api"
	"pizzadmin/internal/domain"
)

func categoryByName(t *testing.T, cats []domain.Category, name string) (domain.Category, bool) {
	t.Helper()
	for _, c := range cats {
		if c.Name == name {
			return c, true
		}
	}
	return domain.Category{}, false
}

func listCategories(t *testing.T, baseURL string) []domain.Category {
	t.Helper()
	cats, err := api.Categories(newClient(t, baseURL)).List(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	return cats
}

func TestCategoryCreateEditDelete(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))

	resp, body := b.get("/admin/categories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Classic") {
		t.Fatalf("seeded category missing; body=%s", body)
	}
	if strings.Contains(body, "modal-overlay") {
		t.Fatal("modal rendered while closed")
	}
	before := len(listCategories(t, srv.URL))

	_, body = b.get("/admin/categories/new")
	if !strings.Contains(body, "modal-overlay") || !strings.Contains(body, "New category") {
		t.Fatalf("create modal not shown; body=%s", body)
	}

	resp, _ = b.postForm("/admin/categories", url.Values{"name": {"Cheese"}})
	expectRedirect(t, resp, "/admin/categories")

	_, body = b.get("/admin/categories")
	if !strings.Contains(body, "Cheese") {
		t.Fatalf("new category not listed; body=%s", body)
	}
	if strings.Contains(body, "modal-overlay") {
		t.Fatal("modal still open after submit")
	}
	cats := listCategories(t, srv.URL)
	if len(cats) != before+1 {
		t.Fatalf("expected %d categories, got %d", before+1, len(cats))
	}
	cheese, ok := categoryByName(t, cats, "Cheese")
	if !ok {
		t.Fatal("Cheese not stored")
	}

	_, body = b.get("/admin/categories/" + cheese.ID + "/edit")
	if !strings.Contains(body, "Edit category") || !strings.Contains(body, `value="Cheese"`) {
		t.Fatalf("edit modal not prefilled; body=%s", body)
	}

	resp, _ = b.postForm("/admin/categories", url.Values{"id": {cheese.ID}, "name": {"Cheese Supreme"}})
	expectRedirect(t, resp, "/admin/categories")
	cats = listCategories(t, srv.URL)
	if len(cats) != before+1 {
		t.Fatalf("update must not insert; got %d categories", len(cats))
	}
	if got, ok := categoryByName(t, cats, "Cheese Supreme"); !ok || got.ID != cheese.ID {
		t.Fatalf("update did not replace by id: %+v", cats)
	}

	resp, _ = b.postForm("/admin/categories/"+cheese.ID+"/delete", nil)
	expectRedirect(t, resp, "/admin/categories")
	_, body = b.get("/admin/categories")
	if strings.Contains(body, "Cheese Supreme") {
		t.Fatalf("deleted category still listed; body=%s", body)
	}
	if len(listCategories(t, srv.URL)) != before {
		t.Fatal("delete did not remove the record")
	}
}

func TestCategoryCloseDiscardsDraft(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))

	b.get("/admin/categories")
	_, body := b.get("/admin/categories/classic/edit")
	if !strings.Contains(body, `value="Classic"`) {
		t.Fatalf("edit modal not prefilled; body=%s", body)
	}
	resp, _ := b.postForm("/admin/categories/close", nil)
	expectRedirect(t, resp, "/admin/categories")

	_, body = b.get("/admin/categories")
	if strings.Contains(body, "modal-overlay") {
		t.Fatal("modal still open after close")
	}
	_, body = b.get("/admin/categories/new")
	if strings.Contains(body, `value="Classic"`) {
		t.Fatal("create form kept the discarded edit draft")
	}
}

func TestCategoryEditUnknownIs404(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))

	resp, body := b.get("/admin/categories/nope/edit")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "modal-overlay") {
		t.Fatal("modal opened for unknown record")
	}
}

func TestCategoryDeleteInUseShowsBanner(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))

	b.get("/admin/categories")
	resp, _ := b.postForm("/admin/categories/classic/delete", nil)
	expectRedirect(t, resp, "/admin/categories")

	_, body := b.get("/admin/categories")
	if !strings.Contains(body, "error-banner") {
		t.Fatalf("expected error banner after rejected delete; body=%s", body)
	}
	if !strings.Contains(body, "Classic") {
		t.Fatal("category vanished after rejected delete")
	}
}

func TestBackendDownKeepsPageUp(t *testing.T) {
	srv := newBackendServer(t)
	base := srv.URL
	srv.Close()

	b := newBrowser(t, newDashboard(t, base, nil))
	resp, body := b.get("/admin/categories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("page must render without backend, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "backend is unreachable") {
		t.Fatalf("expected transport banner; body=%s", body)
	}
	if !strings.Contains(body, "No categories yet.") {
		t.Fatalf("expected empty table; body=%s", body)
	}
}

func TestEditFormPostedTwiceUpdatesOnce(t *testing.T) {
	srv := newBackendServer(t)
	b := newBrowser(t, newDashboard(t, srv.URL, nil))

	b.get("/admin/categories/new")
	b.postForm("/admin/categories", url.Values{"name": {"Cheese"}})
	cheese, ok := categoryByName(t, listCategories(t, srv.URL), "Cheese")
	if !ok {
		t.Fatal("Cheese not stored")
	}
	before := len(listCategories(t, srv.URL))

	_, body := b.get("/admin/categories/" + cheese.ID + "/edit")
	if !strings.Contains(body, `name="id" value="`+cheese.ID+`"`) {
		t.Fatalf("edit form does not name its record; body=%s", body)
	}
	form := url.Values{"id": {cheese.ID}, "name": {"Cheese Supreme"}}
	resp, _ := b.postForm("/admin/categories", form)
	expectRedirect(t, resp, "/admin/categories")
	resp, _ = b.postForm("/admin/categories", url.Values{"id": {cheese.ID}, "name": {"Cheese Supreme"}})
	expectRedirect(t, resp, "/admin/categories")

	cats := listCategories(t, srv.URL)
	if len(cats) != before {
		t.Fatalf("resubmitted edit inserted a record: before=%d after=%d", before, len(cats))
	}
	rows := 0
	for _, c := range cats {
		if c.Name == "Cheese Supreme" {
			rows++
		}
	}
	if rows != 1 {
		t.Fatalf("'Cheese Supreme' rows = %d", rows)
	}

	_, body = b.get("/admin/categories")
	if !strings.Contains(body, "That form is no longer open") {
		t.Fatalf("refused resubmit not reported; body=%s", body)
	}
}
