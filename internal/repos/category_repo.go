package repos

import (
	"pizzadmin/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns categories in creation order.
func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT id, name
  FROM categories
  ORDER BY created_at, rowid
`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name FROM categories WHERE id = ?`, id)
	return c, notFound(err)
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories(id, name, created_at) VALUES(?, ?, CURRENT_TIMESTAMP)`, c.ID, c.Name)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, c.Name, c.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

// Delete refuses to remove a category that pizzas still point at.
func (r *CategoryRepo) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM pizzas WHERE category_id = ?`, id); err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	res, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := affected(res); err != nil {
		return err
	}
	return tx.Commit()
}
