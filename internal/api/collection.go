package api

import (
	"context"
	"io"
	"net/http"

	"pizzadmin/internal/domain"
)

const (
	CategoriesPath = "/api/admin/categories"
	PizzasPath     = "/api/admin/pizzas"
	OrdersPath     = "/api/admin/orders"
)

// Encoder turns a form draft into a request body and its content type.
type Encoder func(d domain.Draft) (body io.Reader, contentType string, err error)

// Collection is a read-only backend collection of T.
type Collection[T any] struct {
	client *Client
	path   string
}

func NewCollection[T any](c *Client, path string) *Collection[T] {
	return &Collection[T]{client: c, path: path}
}

// List fetches every record in server order. A null body yields an empty slice.
func (col *Collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := col.client.do(ctx, http.MethodGet, col.client.endpoint(col.path), nil, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// MutableCollection adds insert, replace-by-id and delete-by-id.
type MutableCollection[T any] struct {
	*Collection[T]
	encode Encoder
}

func NewMutableCollection[T any](c *Client, path string, enc Encoder) *MutableCollection[T] {
	return &MutableCollection[T]{Collection: NewCollection[T](c, path), encode: enc}
}

func (col *MutableCollection[T]) Create(ctx context.Context, d domain.Draft) error {
	body, ct, err := col.encode(d)
	if err != nil {
		return err
	}
	return col.client.do(ctx, http.MethodPost, col.client.endpoint(col.path), body, ct, nil)
}

func (col *MutableCollection[T]) Update(ctx context.Context, id string, d domain.Draft) error {
	body, ct, err := col.encode(d)
	if err != nil {
		return err
	}
	return col.client.do(ctx, http.MethodPut, col.client.endpoint(col.path, id), body, ct, nil)
}

func (col *MutableCollection[T]) Delete(ctx context.Context, id string) error {
	return col.client.do(ctx, http.MethodDelete, col.client.endpoint(col.path, id), nil, "", nil)
}

func Categories(c *Client) *MutableCollection[domain.Category] {
	return NewMutableCollection[domain.Category](c, CategoriesPath, JSONFields("name"))
}

func Pizzas(c *Client) *MutableCollection[domain.Pizza] {
	return NewMutableCollection[domain.Pizza](c, PizzasPath, Multipart("image", "name", "price", "description", "categoryId"))
}

func Orders(c *Client) *Collection[domain.Order] {
	return NewCollection[domain.Order](c, OrdersPath)
}
