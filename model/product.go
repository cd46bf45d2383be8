package models

import "github.com/shopspring/decimal"

// Product is a catalog record. SKU is the canonical upper-case key.
type Product struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CartItem is a raw (sku, quantity) intention held by a cart.
type CartItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// CartLine is a cart entry resolved against the catalog for display.
type CartLine struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
