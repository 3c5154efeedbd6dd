package domain

import "strconv"

type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

func (c Category) Key() string { return c.ID }

type Pizza struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Price        float64 `json:"price" db:"price"`
	Description  string  `json:"description" db:"description"`
	CategoryID   string  `json:"categoryId" db:"category_id"`
	CategoryName string  `json:"categoryName,omitempty" db:"category_name"`
	ImageURL     string  `json:"imageUrl" db:"image_url"`
}

func (p Pizza) Key() string { return p.ID }

// PriceString renders the price the way it was typed into the form.
func (p Pizza) PriceString() string {
	return strconv.FormatFloat(p.Price, 'f', -1, 64)
}

type OrderItem struct {
	PizzaID  string  `json:"pizzaId" db:"pizza_id"`
	Name     string  `json:"name" db:"name"`
	Quantity int     `json:"quantity" db:"quantity"`
	Price    float64 `json:"price" db:"price"`
}

type Order struct {
	ID         string      `json:"id" db:"id"`
	UserID     string      `json:"userId,omitempty" db:"user_id"`
	Name       string      `json:"name" db:"name"`
	Phone      string      `json:"phone" db:"phone"`
	Address    string      `json:"address" db:"address"`
	TotalPrice float64     `json:"totalPrice" db:"total_price"`
	UsedBonus  float64     `json:"usedBonus" db:"used_bonus"`
	Date       string      `json:"date" db:"date"`
	Items      []OrderItem `json:"items" db:"-"`
}

func (o Order) Key() string { return o.ID }

// ShortAddress is the truncated address shown in the orders table.
func (o Order) ShortAddress() string {
	r := []rune(o.Address)
	if len(r) <= 15 {
		return o.Address
	}
	return string(r[:15]) + "..."
}
