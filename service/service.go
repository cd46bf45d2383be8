package service

import (
	"fmt"
	"strings"
	"sync"

	models "shop-inventory/model"
	"shop-inventory/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service owns the catalog and one cart per session. Every call holds mu for
// its whole duration, so callers on several goroutines (HTTP) still see the
// catalog and carts change one operation at a time.
type Service struct {
	mu      sync.Mutex
	catalog Catalog
	emitter ReceiptEmitter
	carts   map[string]*Cart
	log     *zap.Logger
}

func NewService(c Catalog, e ReceiptEmitter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{catalog: c, emitter: e, carts: map[string]*Cart{}, log: log}
}

func (s *Service) ListProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

func (s *Service) UpsertProduct(sku, name string, price decimal.Decimal, stock int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Upsert(sku, name, price, stock)
}

func (s *Service) DeleteProduct(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Delete(sku)
}

func (s *Service) AddToCart(userID, sku string, qty int) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartFor(userID).AddItem(sku, qty)
}

func (s *Service) RemoveFromCart(userID, sku string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return fmt.Errorf("SKU %s is not in the cart: %w", store.NormalizeSKU(sku), store.ErrNotFound)
	}
	return cart.RemoveItem(sku)
}

func (s *Service) GetCart(userID string) (CartView, error) {
	if err := requireUser(userID); err != nil {
		return CartView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return CartView{Lines: []models.CartLine{}, Total: decimal.Zero}, nil
	}
	return cart.View(), nil
}

func (s *Service) Checkout(userID string) (*models.Invoice, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, ErrEmptyCart
	}
	return cart.Checkout()
}

// EndSession discards the session's cart and reports whether it still held items.
func (s *Service) EndSession(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return false
	}
	delete(s.carts, userID)
	abandoned := cart.Discard()
	if abandoned {
		s.log.Warn("session ended with items left in cart", zap.String("user_id", userID))
	}
	return abandoned
}

// Save persists the catalog.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Save()
}

func (s *Service) cartFor(userID string) *Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = NewCart(s.catalog, s.emitter, s.log.With(zap.String("user_id", userID)))
		s.carts[userID] = cart
	}
	return cart
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user_id required", store.ErrInvalidInput)
	}
	return nil
}
