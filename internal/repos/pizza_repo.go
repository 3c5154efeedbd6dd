package repos

import (
	"pizzadmin/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PizzaRepo struct{ db *sqlx.DB }

func NewPizzaRepo(db *sqlx.DB) *PizzaRepo { return &PizzaRepo{db: db} }

const pizzaColumns = `
    p.id, p.name, p.price, p.description, p.category_id,
    COALESCE(c.name,'') AS category_name, p.image_url`

func (r *PizzaRepo) List() ([]domain.Pizza, error) {
	out := []domain.Pizza{}
	err := r.db.Select(&out, `
  SELECT`+pizzaColumns+`
  FROM pizzas p
  LEFT JOIN categories c ON c.id = p.category_id
  ORDER BY p.created_at, p.rowid
`)
	return out, err
}

func (r *PizzaRepo) Get(id string) (domain.Pizza, error) {
	var p domain.Pizza
	err := r.db.Get(&p, `
  SELECT`+pizzaColumns+`
  FROM pizzas p
  LEFT JOIN categories c ON c.id = p.category_id
  WHERE p.id = ?
`, id)
	return p, notFound(err)
}

func (r *PizzaRepo) Create(p domain.Pizza) error {
	_, err := r.db.Exec(`
	  INSERT INTO pizzas(id, category_id, name, description, price, image_url, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL)
	return err
}

// Update replaces every column. An empty ImageURL keeps the stored image.
func (r *PizzaRepo) Update(p domain.Pizza) error {
	res, err := r.db.Exec(`
	  UPDATE pizzas SET
	    category_id = ?, name = ?, description = ?, price = ?,
	    image_url = CASE WHEN ? = '' THEN image_url ELSE ? END,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.ImageURL, p.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *PizzaRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM pizzas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
