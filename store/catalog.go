package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	models "shop-inventory/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Catalog is the in-memory source of truth for products, backed by a Backend
// for durability. It is not safe for concurrent use.
type Catalog struct {
	backend  Backend
	products map[string]models.Product
	log      *zap.Logger
}

func NewCatalog(b Backend, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		backend:  b,
		products: map[string]models.Product{},
		log:      log,
	}
}

// Load replaces the in-memory catalog with the backend's contents.
// A missing catalog is seeded with DefaultProducts and persisted right away;
// a corrupt one leaves the catalog empty and is only logged.
func (c *Catalog) Load() error {
	rows, err := c.backend.Load()
	switch {
	case errors.Is(err, ErrNoCatalog):
		c.log.Info("no saved catalog found, creating default inventory")
		c.replace(DefaultProducts())
		return c.Save()
	case errors.Is(err, ErrCorruptStore):
		c.log.Warn("error reading catalog, starting with empty inventory", zap.Error(err))
		c.replace(nil)
		return nil
	case err != nil:
		return fmt.Errorf("load catalog: %w", err)
	}
	c.replace(rows)
	c.log.Info("catalog loaded", zap.Int("products", len(c.products)))
	return nil
}

// replace keeps the first record for each canonical SKU; later records that
// normalize to the same key are dropped with a warning.
func (c *Catalog) replace(rows []models.Product) {
	c.products = make(map[string]models.Product, len(rows))
	for _, p := range rows {
		key := NormalizeSKU(p.SKU)
		if kept, ok := c.products[key]; ok {
			c.log.Warn("duplicate SKU in saved catalog, ignoring record",
				zap.String("sku", key), zap.String("ignored", p.SKU), zap.String("kept_name", kept.Name))
			continue
		}
		p.SKU = key
		c.products[key] = p
	}
}

// Get returns the product for sku. The lookup is case-sensitive on the
// canonical form produced by NormalizeSKU.
func (c *Catalog) Get(sku string) (models.Product, error) {
	key := NormalizeSKU(sku)
	p, ok := c.products[key]
	if !ok {
		return models.Product{}, fmt.Errorf("product SKU %s: %w", key, ErrNotFound)
	}
	return p, nil
}

// ReduceStock decrements stock, flooring at zero. Unknown SKUs are ignored.
func (c *Catalog) ReduceStock(sku string, quantity int) {
	key := NormalizeSKU(sku)
	p, ok := c.products[key]
	if !ok {
		c.log.Warn("reduce stock on unknown sku ignored", zap.String("sku", key), zap.Int("quantity", quantity))
		return
	}
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	c.products[key] = p
}

// Save writes the full catalog to the backend. A failed write leaves memory untouched.
func (c *Catalog) Save() error {
	if err := c.backend.Save(c.List()); err != nil {
		c.log.Error("saving catalog failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Upsert inserts or fully replaces the record for sku and persists.
func (c *Catalog) Upsert(sku, name string, price decimal.Decimal, stock int) (models.Product, error) {
	key := NormalizeSKU(sku)
	name = strings.TrimSpace(name)
	switch {
	case key == "":
		return models.Product{}, fmt.Errorf("%w: sku is required", ErrInvalidInput)
	case name == "":
		return models.Product{}, fmt.Errorf("%w: name is required for %s", ErrInvalidInput, key)
	case !price.IsPositive():
		return models.Product{}, fmt.Errorf("%w: price for %s must be positive, got %s", ErrInvalidInput, key, price)
	case !price.Equal(price.Round(2)):
		return models.Product{}, fmt.Errorf("%w: price for %s has more than 2 decimal places, got %s", ErrInvalidInput, key, price)
	case stock < 0:
		return models.Product{}, fmt.Errorf("%w: stock for %s must be non-negative, got %d", ErrInvalidInput, key, stock)
	}

	p := models.Product{SKU: key, Name: name, Price: price, Stock: stock}
	c.products[key] = p
	c.log.Info("product upserted", zap.String("sku", key), zap.String("price", price.String()), zap.Int("stock", stock))
	return p, c.Save()
}

// Delete removes the product for sku and persists.
func (c *Catalog) Delete(sku string) error {
	key := NormalizeSKU(sku)
	if _, ok := c.products[key]; !ok {
		return fmt.Errorf("product SKU %s: %w", key, ErrNotFound)
	}
	delete(c.products, key)
	c.log.Info("product deleted", zap.String("sku", key))
	return c.Save()
}

// List returns a copy of all products ordered by SKU.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int { return len(c.products) }
