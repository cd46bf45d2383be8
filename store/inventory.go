package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a SKU is absent from the catalog.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock returned when requested qty exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidInput covers non-positive quantities and prices, negative stock and empty fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPersistence wraps any failure to write the catalog to its backend.
	ErrPersistence = errors.New("failed to persist catalog")
	// ErrCorruptStore is reported by a backend whose data exists but cannot be parsed.
	ErrCorruptStore = errors.New("catalog storage is corrupt")
	// ErrNoCatalog is reported by a backend that has never been written.
	ErrNoCatalog = errors.New("no saved catalog")
)

// StockError names the product and quantities behind an ErrInsufficientStock.
type StockError struct {
	SKU       string
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough stock for '%s' (%s): requested %d, only %d available",
		e.Name, e.SKU, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

// NormalizeSKU returns the canonical form of a SKU: trimmed and upper-cased.
// Every catalog lookup goes through it.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
