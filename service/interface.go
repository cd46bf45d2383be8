package service

import (
	models "shop-inventory/model"

	"github.com/shopspring/decimal"
)

type ServiceInterface interface {
	ListProducts() []models.Product
	UpsertProduct(sku, name string, price decimal.Decimal, stock int) (models.Product, error)
	DeleteProduct(sku string) error
	AddToCart(userID, sku string, qty int) error
	RemoveFromCart(userID, sku string) error
	GetCart(userID string) (CartView, error)
	Checkout(userID string) (*models.Invoice, error)
	EndSession(userID string) bool
	Save() error
}

// Catalog is everything the service needs from the catalog store.
type Catalog interface {
	Inventory
	List() []models.Product
	Upsert(sku, name string, price decimal.Decimal, stock int) (models.Product, error)
	Delete(sku string) error
}
