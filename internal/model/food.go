package model

import (
	"github.com/deppfellow/netcafe/internal/database"
	"github.com/shopspring/decimal"
)

// Category groups the menu.
type Category struct {
	Name string `json:"name"`
}

// CategoryFromRow reads the categoryname column.
func CategoryFromRow(row database.Row) (Category, error) {
	name, err := row.String("CategoryName")
	if err != nil {
		return Category{}, err
	}
	return Category{Name: name}, nil
}

// Food is a menu item.
type Food struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
}

// FoodFromRow reads foodid, foodname, categoryname and price.
func FoodFromRow(row database.Row) (Food, error) {
	id, err := row.Int("FoodID")
	if err != nil {
		return Food{}, err
	}

	name, err := row.String("FoodName")
	if err != nil {
		return Food{}, err
	}

	category, err := row.String("CategoryName")
	if err != nil {
		return Food{}, err
	}

	price, err := row.Decimal("Price")
	if err != nil {
		return Food{}, err
	}

	return Food{ID: id, Name: name, CategoryName: category, Price: price}, nil
}

// FoodDetail is one order line of a billing.
type FoodDetail struct {
	FoodID   int             `json:"food_id"`
	FoodName string          `json:"food_name"`
	Count    int             `json:"count"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal is Count x Price.
func (d FoodDetail) LineTotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Count)))
}

// FoodDetailFromRow reads foodid, foodname, count and price.
func FoodDetailFromRow(row database.Row) (FoodDetail, error) {
	id, err := row.Int("FoodID")
	if err != nil {
		return FoodDetail{}, err
	}

	name, err := row.String("FoodName")
	if err != nil {
		return FoodDetail{}, err
	}

	count, err := row.Int("Count")
	if err != nil {
		return FoodDetail{}, err
	}

	price, err := row.Decimal("Price")
	if err != nil {
		return FoodDetail{}, err
	}

	return FoodDetail{FoodID: id, FoodName: name, Count: count, Price: price}, nil
}

// Order is the running food order of a computer's open billing.
// BillingID is -1 when the computer has no open billing.
type Order struct {
	BillingID int             `json:"billing_id"`
	Lines     []FoodDetail    `json:"lines"`
	FoodTotal decimal.Decimal `json:"food_total"`
}
