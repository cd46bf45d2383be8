package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFileBackend_MissingFile(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "inventory.json"))
	if _, err := b.Load(); !errors.Is(err, ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}
}

func TestFileBackend_CorruptFile(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      "{this is not json",
		"bad price":     `{"SKU001": {"name": "Laptop", "price": "abc", "stock": 1}}`,
		"float stock":   `{"SKU001": {"name": "Laptop", "price": 1.5, "stock": 1.5}}`,
		"wrong top lvl": `[1, 2, 3]`,
	} {
		path := filepath.Join(t.TempDir(), "inventory.json")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileBackend(path).Load(); !errors.Is(err, ErrCorruptStore) {
			t.Fatalf("%s: expected ErrCorruptStore, got %v", name, err)
		}
	}
}

func TestFileBackend_ReadsPersistedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	body := `{"SKU001": {"name": "Laptop", "price": 999.99, "stock": 100}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileBackend(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0].SKU != "SKU001" || got[0].Name != "Laptop" || got[0].Stock != 100 {
		t.Fatalf("unexpected products: %+v", got)
	}
	if !got[0].Price.Equal(price("999.99")) {
		t.Fatalf("expected price 999.99, got %s", got[0].Price)
	}
}

func TestFileBackend_WritesBareNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	b := NewFileBackend(path)
	if err := b.Save(DefaultProducts()[:1]); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var generic map[string]map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("saved file is not valid json: %v", err)
	}
	rec := generic["SKU001"]
	if rec["name"] != "Laptop" || rec["price"] != 999.99 || rec["stock"] != float64(100) {
		t.Fatalf("unexpected record layout: %v", rec)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "inventory.json" {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestCatalogRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	first := NewCatalog(NewFileBackend(path), nil)
	if err := first.Load(); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}
	first.ReduceStock("SKU001", 2)
	if _, err := first.Upsert("SKU011", "Webcam", price("49.95"), 7); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := first.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := NewCatalog(NewFileBackend(path), nil)
	if err := second.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	want, got := first.List(), second.List()
	if len(want) != len(got) {
		t.Fatalf("expected %d products, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.SKU != g.SKU || w.Name != g.Name || w.Stock != g.Stock || !w.Price.Equal(g.Price) {
			t.Fatalf("round trip mismatch at %d: want %+v, got %+v", i, w, g)
		}
	}
}

func TestCatalogLoad_CorruptFileIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(NewFileBackend(path), nil)
	if err := c.Load(); err != nil {
		t.Fatalf("corrupt file should be soft-failed: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty catalog")
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "garbage" {
		t.Fatalf("corrupt file was rewritten on load")
	}
}

func TestCatalogLoad_DuplicateSKUKeepsCanonicalRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	content := `{"sku001": {"name": "lower", "price": 1.50, "stock": 1},
		"SKU001": {"name": "Laptop", "price": 999.99, "stock": 100}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.WarnLevel)
	c := NewCatalog(NewFileBackend(path), zap.New(core))
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", c.Len())
	}
	p, err := c.Get("SKU001")
	if err != nil || p.Name != "Laptop" {
		t.Fatalf("expected the SKU001 record to win, got %+v (%v)", p, err)
	}
	dups := logs.FilterMessage("duplicate SKU in saved catalog, ignoring record").All()
	if len(dups) != 1 || dups[0].ContextMap()["ignored"] != "sku001" {
		t.Fatalf("expected one duplicate warning for sku001, got %v", logs.All())
	}
}
