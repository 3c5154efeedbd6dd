package services

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"pizzadmin/internal/domain"
	"pizzadmin/internal/repos"
	"pizzadmin/internal/validate"
)

// ValidationError names the form field the backend rejected.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string { return fmt.Sprintf("invalid %s", e.Field) }

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText strips any markup; the stored value is plain text.
func plainText(s string) string {
	textPolicyOnce.Do(func() { textPolicy = bluemonday.StrictPolicy() })
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

type PizzaInput struct {
	Name        string
	Price       string
	Description string
	CategoryID  string
	Image       *domain.Upload
}

type CatalogService struct {
	Cats   *repos.CategoryRepo
	Pizzas *repos.PizzaRepo
	Images *ImageStore
}

func NewCatalogService(cats *repos.CategoryRepo, pizzas *repos.PizzaRepo, images *ImageStore) *CatalogService {
	return &CatalogService{Cats: cats, Pizzas: pizzas, Images: images}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) CreateCategory(name string) (domain.Category, error) {
	name, ok := validate.Name(plainText(name))
	if !ok {
		return domain.Category{}, ValidationError{Field: "name"}
	}
	c := domain.Category{ID: uuid.NewString(), Name: name}
	return c, s.Cats.Create(c)
}

func (s *CatalogService) UpdateCategory(id, name string) (domain.Category, error) {
	name, ok := validate.Name(plainText(name))
	if !ok {
		return domain.Category{}, ValidationError{Field: "name"}
	}
	c := domain.Category{ID: id, Name: name}
	return c, s.Cats.Update(c)
}

func (s *CatalogService) DeleteCategory(id string) error {
	return s.Cats.Delete(id)
}

func (s *CatalogService) ListPizzas() ([]domain.Pizza, error) {
	return s.Pizzas.List()
}

func (s *CatalogService) pizzaFromInput(in PizzaInput) (domain.Pizza, error) {
	name, ok := validate.Name(plainText(in.Name))
	if !ok {
		return domain.Pizza{}, ValidationError{Field: "name"}
	}
	price, ok := validate.Price(in.Price)
	if !ok {
		return domain.Pizza{}, ValidationError{Field: "price"}
	}
	desc, ok := validate.Description(plainText(in.Description))
	if !ok {
		return domain.Pizza{}, ValidationError{Field: "description"}
	}
	catID, ok := validate.ID(in.CategoryID)
	if !ok {
		return domain.Pizza{}, ValidationError{Field: "categoryId"}
	}
	if _, err := s.Cats.Get(catID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return domain.Pizza{}, ValidationError{Field: "categoryId"}
		}
		return domain.Pizza{}, err
	}
	return domain.Pizza{Name: name, Price: price, Description: desc, CategoryID: catID}, nil
}

func (s *CatalogService) CreatePizza(in PizzaInput) (domain.Pizza, error) {
	p, err := s.pizzaFromInput(in)
	if err != nil {
		return domain.Pizza{}, err
	}
	p.ID = uuid.NewString()
	if in.Image != nil {
		if p.ImageURL, err = s.Images.Save(*in.Image); err != nil {
			return domain.Pizza{}, err
		}
	}
	if err := s.Pizzas.Create(p); err != nil {
		s.Images.Remove(p.ImageURL)
		return domain.Pizza{}, err
	}
	return s.Pizzas.Get(p.ID)
}

// UpdatePizza replaces a pizza. Without a new image the old one is kept.
func (s *CatalogService) UpdatePizza(id string, in PizzaInput) (domain.Pizza, error) {
	old, err := s.Pizzas.Get(id)
	if err != nil {
		return domain.Pizza{}, err
	}
	p, err := s.pizzaFromInput(in)
	if err != nil {
		return domain.Pizza{}, err
	}
	p.ID = id
	if in.Image != nil {
		if p.ImageURL, err = s.Images.Save(*in.Image); err != nil {
			return domain.Pizza{}, err
		}
	}
	if err := s.Pizzas.Update(p); err != nil {
		s.Images.Remove(p.ImageURL)
		return domain.Pizza{}, err
	}
	if p.ImageURL != "" && old.ImageURL != p.ImageURL {
		s.Images.Remove(old.ImageURL)
	}
	return s.Pizzas.Get(id)
}

func (s *CatalogService) DeletePizza(id string) error {
	old, err := s.Pizzas.Get(id)
	if err != nil {
		return err
	}
	if err := s.Pizzas.Delete(id); err != nil {
		return err
	}
	s.Images.Remove(old.ImageURL)
	return nil
}
