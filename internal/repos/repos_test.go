package repos

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"

	"pizzadmin/internal/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOrdersNewestFirstWithItems(t *testing.T) {
	r := NewOrderRepo(openTestDB(t))
	o := domain.Order{
		ID: "o-2000", Name: "Olga", Phone: "1", Address: "Nevsky 1",
		TotalPrice: 900, Date: "2024-06-01T10:00:00Z",
		Items: []domain.OrderItem{
			{PizzaID: "garden", Name: "Garden", Quantity: 1, Price: 500},
			{PizzaID: "margherita", Name: "Margherita", Quantity: 1, Price: 400},
		},
	}
	if err := r.Create(o); err != nil {
		t.Fatal(err)
	}
	got, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(got))
	for i, g := range got {
		ids[i] = g.ID
	}
	if diff := cmp.Diff([]string{"o-2000", "o-1002", "o-1001"}, ids); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(o, got[0]); diff != "" {
		t.Fatalf("stored order (-want +got):\n%s", diff)
	}
}

func TestCategoryInUseCannotBeDeleted(t *testing.T) {
	db := openTestDB(t)
	cats := NewCategoryRepo(db)
	if err := cats.Delete("classic"); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	if err := cats.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := cats.Create(domain.Category{ID: "empty", Name: "Empty"}); err != nil {
		t.Fatal(err)
	}
	if err := cats.Delete("empty"); err != nil {
		t.Fatalf("delete unused: %v", err)
	}
}

func TestPizzaCarriesCategoryName(t *testing.T) {
	p, err := NewPizzaRepo(openTestDB(t)).Get("pepperoni")
	if err != nil {
		t.Fatal(err)
	}
	if p.CategoryName != "Meat" || p.Price != 550 {
		t.Fatalf("unexpected pizza %+v", p)
	}
}
