package store

import models "shop-inventory/model"

// Backend persists the whole catalog. Load returns ErrNoCatalog when nothing
// was saved yet and ErrCorruptStore when saved data cannot be decoded.
type Backend interface {
	Load() ([]models.Product, error)
	Save(products []models.Product) error
}
