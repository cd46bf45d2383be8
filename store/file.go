package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	models "shop-inventory/model"

	"github.com/google/renameio/v2"
	"github.com/shopspring/decimal"
)

// fileRecord is the on-disk shape of one product; the SKU is the map key.
type fileRecord struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
	Stock int         `json:"stock"`
}

// FileBackend keeps the catalog in a single JSON file:
//
//	{"SKU001": {"name": "Laptop", "price": 999.99, "stock": 100}}
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (b *FileBackend) Load() ([]models.Product, error) {
	raw, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.Path, err)
	}

	var data map[string]fileRecord
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, b.Path, err)
	}

	out := make([]models.Product, 0, len(data))
	for sku, rec := range data {
		price, err := decimal.NewFromString(rec.Price.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: price of %s: %v", ErrCorruptStore, b.Path, sku, err)
		}
		out = append(out, models.Product{SKU: sku, Name: rec.Name, Price: price, Stock: rec.Stock})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// Save overwrites the file atomically, so a failed write never leaves a
// truncated catalog behind.
func (b *FileBackend) Save(products []models.Product) error {
	data := make(map[string]fileRecord, len(products))
	for _, p := range products {
		data[p.SKU] = fileRecord{Name: p.Name, Price: json.Number(p.Price.String()), Stock: p.Stock}
	}
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(b.Path, append(raw, '\n'), 0o644)
}
