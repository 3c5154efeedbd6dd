package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPizzaDraftCopiesFields(t *testing.T) {
	p := Pizza{ID: "p1", Name: "Margherita", Price: 9.5, Description: "Tomato, basil", CategoryID: "c1", ImageURL: "/uploads/a.jpg"}
	want := map[string]string{"name": "Margherita", "price": "9.5", "description": "Tomato, basil", "categoryId": "c1"}
	d := p.Draft()
	if diff := cmp.Diff(want, d.Fields); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
	if d.File != nil {
		t.Fatal("image must not be pre-filled")
	}
}

func TestDraftCloneIsIndependent(t *testing.T) {
	d := Category{ID: "1", Name: "Cheese"}.Draft()
	c := d.Clone()
	c.Fields["name"] = "Changed"
	if d.Get("name") != "Cheese" {
		t.Fatalf("clone shares map with original: %q", d.Get("name"))
	}
	if (Draft{}).IsEmpty() != true {
		t.Fatal("zero draft should be empty")
	}
}

func TestShortAddress(t *testing.T) {
	cases := map[string]string{
		"Main st 1":               "Main st 1",
		"Lenina prospekt 101, k2": "Lenina prospekt...",
		"Улица Пушкина, дом Колотушкина": "Улица Пушкина, ...",
	}
	for in, want := range cases {
		if got := (Order{Address: in}).ShortAddress(); got != want {
			t.Errorf("ShortAddress(%q) = %q, want %q", in, got, want)
		}
	}
}
