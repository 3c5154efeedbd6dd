package repos

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when deleting a category that still has pizzas.
	ErrInUse = errors.New("still referenced")
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases and PRAGMAs consistent.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS pizzas(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_pizzas_category ON pizzas(category_id);

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL,
  total_price NUMERIC NOT NULL,
  used_bonus NUMERIC NOT NULL DEFAULT 0,
  date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(date);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  pizza_id TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, position)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/pizzas/orders")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('classic','Classic'),
	  ('meat','Meat'),
	  ('veggie','Veggie')`)

	tx.MustExec(`INSERT INTO pizzas(id,category_id,name,description,price,image_url) VALUES
	  ('margherita','classic','Margherita','Tomato sauce, mozzarella, basil',450,''),
	  ('pepperoni','meat','Pepperoni','Pepperoni, mozzarella, tomato sauce',550,''),
	  ('garden','veggie','Garden','Peppers, mushrooms, olives, onion',500,'')`)

	tx.MustExec(`INSERT INTO orders(id,user_id,name,phone,address,total_price,used_bonus,date) VALUES
	  ('o-1001','u-1','Ivan Petrov','+7 900 000 00 01','Lenina prospekt 101, apt 12',1000,0,'2024-05-01T18:30:00Z'),
	  ('o-1002','','Anna Smirnova','+7 900 000 00 02','Sadovaya 5',550,50,'2024-05-02T12:05:00Z')`)

	tx.MustExec(`INSERT INTO order_items(order_id,position,pizza_id,name,quantity,price) VALUES
	  ('o-1001',0,'margherita','Margherita',1,450),
	  ('o-1001',1,'pepperoni','Pepperoni',1,550),
	  ('o-1002',0,'pepperoni','Pepperoni',1,550)`)

	return tx.Commit()
}
