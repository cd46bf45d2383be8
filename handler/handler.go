package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	models "shop-inventory/model"
	"shop-inventory/service"
	"shop-inventory/store"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc service.ServiceInterface
	log *zap.Logger
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: s, log: log}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Products
	r.HandleFunc("/products", h.UpsertProduct).Methods("POST")
	r.HandleFunc("/products/list", h.ListProducts).Methods("GET")
	r.HandleFunc("/products/{sku}", h.DeleteProduct).Methods("DELETE")

	// Cart
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods("POST")
	r.HandleFunc("/cart/list", h.ListCart).Methods("GET")

	// Checkout
	r.HandleFunc("/checkout/order", h.Checkout).Methods("POST")
}

// --- request / response shapes ---
type upsertProductReq struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type addRemoveCartReq struct {
	UserID   string `json:"user_id"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity,omitempty"` // optional for remove
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// statusFor maps service errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeErr(w, code, err.Error())
}

// --- Handler ---

// UpsertProduct handles POST /products
// body: { "sku": "SKU011", "name": "Webcam", "price": 39.9, "stock": 10 }
func (h *Handler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req upsertProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.svc.UpsertProduct(req.SKU, req.Name, req.Price, req.Stock)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListProducts handles GET /products/list
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListProducts())
}

// DeleteProduct handles DELETE /products/{sku}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(mux.Vars(r)["sku"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddToCart handles POST /cart/add
// body: { "user_id": "...", "sku": "SKU001", "quantity": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addRemoveCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.AddToCart(req.UserID, req.SKU, req.Quantity); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFromCart handles POST /cart/remove
// body: { "user_id": "...", "sku": "SKU001" }
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req addRemoveCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.RemoveFromCart(req.UserID, req.SKU); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListCart handles GET /cart/list?user_id=...
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	view, err := h.svc.GetCart(userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if view.Missing == nil {
		view.Missing = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"items":   view.Lines,
		"missing": view.Missing,
		"total":   view.Total,
	})
}

// Checkout handles POST /checkout/order
// body: { "user_id": "..." }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	inv, err := h.svc.Checkout(req.UserID)
	if err != nil && inv == nil {
		h.fail(w, r, err)
		return
	}
	if err != nil {
		// stock is committed; report the order with the durability warning
		h.log.Error("checkout completed with errors", zap.String("invoice_id", inv.ID), zap.Error(err))
		writeJSON(w, http.StatusCreated, map[string]interface{}{"order": inv, "warning": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}
