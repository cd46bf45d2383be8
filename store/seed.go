package store

import (
	models "shop-inventory/model"

	"github.com/shopspring/decimal"
)

const seedStock = 100

// DefaultProducts is the catalog installed when no saved catalog exists.
func DefaultProducts() []models.Product {
	seed := []struct {
		sku, name, price string
	}{
		{"SKU001", "Laptop", "999.99"},
		{"SKU002", "Mouse", "19.99"},
		{"SKU003", "Keyboard", "45.50"},
		{"SKU004", "Charger", "12.12"},
		{"SKU005", "Monitor", "78.12"},
		{"SKU006", "Power Supply", "45.12"},
		{"SKU007", "RAM", "112.12"},
		{"SKU008", "SSD", "68.35"},
		{"SKU009", "CPU", "234.22"},
		{"SKU010", "Mic", "12.12"},
	}
	out := make([]models.Product, 0, len(seed))
	for _, s := range seed {
		out = append(out, models.Product{
			SKU:   s.sku,
			Name:  s.name,
			Price: decimal.RequireFromString(s.price),
			Stock: seedStock,
		})
	}
	return out
}
