package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one priced entry of a finalized checkout.
type LineItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Invoice is produced once per successful checkout and handed to the receipt emitter.
type Invoice struct {
	ID        string          `json:"id"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Receipt   string          `json:"receipt,omitempty"`
}
