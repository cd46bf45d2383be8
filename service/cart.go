package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	models "shop-inventory/model"
	"shop-inventory/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCart is returned by Checkout when there is nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrReceipt wraps a receipt emitter failure after stock was committed.
	ErrReceipt = errors.New("failed to produce receipt")
)

// Inventory is the part of the catalog a cart needs.
type Inventory interface {
	Get(sku string) (models.Product, error)
	ReduceStock(sku string, quantity int)
	Save() error
}

// ReceiptEmitter produces the durable record of a checkout.
type ReceiptEmitter interface {
	Emit(inv models.Invoice) (string, error)
}

// CartView is a read-only summary of a cart priced against the catalog.
// Lines whose SKU no longer resolves are listed in Missing.
type CartView struct {
	Lines   []models.CartLine `json:"items"`
	Missing []models.CartItem `json:"missing,omitempty"`
	Total   decimal.Decimal   `json:"total"`
}

func (v CartView) Empty() bool { return len(v.Lines) == 0 && len(v.Missing) == 0 }

// Cart holds one session's intended purchases. Quantities are not reserved
// against stock; they are checked when added and again at checkout.
type Cart struct {
	inv     Inventory
	emitter ReceiptEmitter
	log     *zap.Logger
	now     func() time.Time

	qty   map[string]int
	order []string
}

func NewCart(inv Inventory, emitter ReceiptEmitter, log *zap.Logger) *Cart {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cart{
		inv:     inv,
		emitter: emitter,
		log:     log,
		now:     time.Now,
		qty:     map[string]int{},
	}
}

// AddItem adds quantity of sku, accumulating onto an existing line.
func (c *Cart) AddItem(sku string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be positive, got %d", store.ErrInvalidInput, quantity)
	}
	p, err := c.inv.Get(sku)
	if err != nil {
		return err
	}
	if quantity > p.Stock {
		return &store.StockError{SKU: p.SKU, Name: p.Name, Requested: quantity, Available: p.Stock}
	}

	if _, ok := c.qty[p.SKU]; !ok {
		c.order = append(c.order, p.SKU)
	}
	c.qty[p.SKU] += quantity
	c.log.Debug("item added to cart", zap.String("sku", p.SKU), zap.Int("quantity", quantity))
	return nil
}

// RemoveItem drops the whole line for sku.
func (c *Cart) RemoveItem(sku string) error {
	key := store.NormalizeSKU(sku)
	if _, ok := c.qty[key]; !ok {
		return fmt.Errorf("SKU %s is not in the cart: %w", key, store.ErrNotFound)
	}
	delete(c.qty, key)
	for i, s := range c.order {
		if s == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Items returns the cart lines in the order they were first added.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, models.CartItem{SKU: sku, Quantity: c.qty[sku]})
	}
	return out
}

func (c *Cart) Len() int { return len(c.order) }

// Discard empties the cart and reports whether anything was left in it.
func (c *Cart) Discard() bool {
	abandoned := len(c.order) > 0
	c.clear()
	return abandoned
}

func (c *Cart) clear() {
	c.qty = map[string]int{}
	c.order = nil
}

// View prices every line. It never mutates the cart.
func (c *Cart) View() CartView {
	v := CartView{Lines: []models.CartLine{}, Total: decimal.Zero}
	for _, it := range c.Items() {
		p, err := c.inv.Get(it.SKU)
		if err != nil {
			v.Missing = append(v.Missing, it)
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		v.Lines = append(v.Lines, models.CartLine{
			SKU:      p.SKU,
			Name:     p.Name,
			Quantity: it.Quantity,
			Price:    p.Price,
			Subtotal: sub,
		})
		v.Total = v.Total.Add(sub)
	}
	return v
}

// Checkout validates every line against current stock and only then commits
// the stock reductions, persists the catalog and emits the receipt. If any
// line fails validation nothing is touched and the cart is kept as is.
//
// Once stock has been committed the cart is cleared even when persisting or
// emitting the receipt fails; that failure is returned with the invoice.
func (c *Cart) Checkout() (*models.Invoice, error) {
	if len(c.order) == 0 {
		return nil, ErrEmptyCart
	}

	items := c.Items()
	if err := c.validate(items); err != nil {
		c.log.Info("checkout aborted", zap.Error(err))
		return nil, err
	}

	inv := c.commit(items)

	var errs []error
	if err := c.inv.Save(); err != nil {
		if !errors.Is(err, store.ErrPersistence) {
			err = fmt.Errorf("%w: %w", store.ErrPersistence, err)
		}
		errs = append(errs, err)
	}
	path, err := c.emitter.Emit(*inv)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w %s: %w", ErrReceipt, inv.ID, err))
	}
	inv.Receipt = path
	c.clear()

	c.log.Info("checkout completed",
		zap.String("invoice_id", inv.ID),
		zap.Int("lines", len(inv.Items)),
		zap.String("total", inv.Total.StringFixed(2)))
	return inv, errors.Join(errs...)
}

func (c *Cart) validate(items []models.CartItem) error {
	for _, it := range items {
		p, err := c.inv.Get(it.SKU)
		if err != nil {
			return err
		}
		if it.Quantity > p.Stock {
			return fmt.Errorf("out of stock: %w", &store.StockError{
				SKU: p.SKU, Name: p.Name, Requested: it.Quantity, Available: p.Stock,
			})
		}
	}
	return nil
}

func (c *Cart) commit(items []models.CartItem) *models.Invoice {
	now := c.now()
	inv := &models.Invoice{
		ID:        invoiceID(now),
		CreatedAt: now,
		Items:     make([]models.LineItem, 0, len(items)),
		Total:     decimal.Zero,
	}
	for _, it := range items {
		// validate guarantees the lookup succeeds
		p, _ := c.inv.Get(it.SKU)
		sub := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		inv.Total = inv.Total.Add(sub)
		inv.Items = append(inv.Items, models.LineItem{
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			Subtotal:  sub,
		})
		c.inv.ReduceStock(it.SKU, it.Quantity)
	}
	return inv
}

func invoiceID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("Invoice_ID_%s_%s", t.Format("20060102_150405"), suffix)
}
