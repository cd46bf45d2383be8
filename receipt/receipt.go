package receipt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	models "shop-inventory/model"

	"go.uber.org/zap"
)

const ruleWidth = 60

// FileEmitter writes one text receipt per invoice into Dir.
type FileEmitter struct {
	Dir string
	log *zap.Logger
}

func NewFileEmitter(dir string, log *zap.Logger) *FileEmitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileEmitter{Dir: dir, log: log}
}

// Emit writes <Dir>/<invoice ID>.txt and returns its path. An existing file
// with the same name is never overwritten.
func (e *FileEmitter) Emit(inv models.Invoice) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(e.Dir, inv.ID+".txt")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(Format(inv)); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	e.log.Info("receipt saved", zap.String("invoice_id", inv.ID), zap.String("path", path))
	return path, nil
}

// Format renders the receipt text.
func Format(inv models.Invoice) []byte {
	var b bytes.Buffer
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(&b, "--- PyShop Receipt: %s ---\n", inv.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", inv.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%-20s | %-5s | %-10s | %-10s\n", "Item", "Qty", "Price", "Total")
	fmt.Fprintln(&b, rule)
	for _, it := range inv.Items {
		fmt.Fprintf(&b, "%-20s | %-5d | $%-9s | $%-9s\n",
			it.Name, it.Quantity, it.UnitPrice.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%-38s | $%-9s\n", "TOTAL COST", inv.Total.StringFixed(2))
	fmt.Fprintln(&b, rule)
	return b.Bytes()
}
