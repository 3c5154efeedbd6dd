package repos

import (
	"pizzadmin/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderItemRow struct {
	OrderID string `db:"order_id"`
	domain.OrderItem
}

// List returns every order, newest first, with its line items.
func (r *OrderRepo) List() ([]domain.Order, error) {
	out := []domain.Order{}
	if err := r.db.Select(&out, `
		SELECT id, user_id, name, phone, address, total_price, used_bonus, date
		FROM orders
		ORDER BY datetime(date) DESC, id
	`); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	idx := make(map[string]int, len(out))
	for i, o := range out {
		ids[i] = o.ID
		idx[o.ID] = i
		out[i].Items = []domain.OrderItem{}
	}
	query, args, err := sqlx.In(`
		SELECT order_id, pizza_id, name, quantity, price
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return nil, err
	}
	var rows []orderItemRow
	if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		i := idx[row.OrderID]
		out[i].Items = append(out[i].Items, row.OrderItem)
	}
	return out, nil
}

// Create stores an order header and its items in one transaction.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, name, phone, address, total_price, used_bonus, date)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.UserID, o.Name, o.Phone, o.Address, o.TotalPrice, o.UsedBonus, o.Date); err != nil {
		return err
	}
	for i, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, position, pizza_id, name, quantity, price)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, o.ID, i, it.PizzaID, it.Name, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}
