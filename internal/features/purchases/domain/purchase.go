package domain

import "stockdesk/internal/core/apiclient"

// PurchaseStatus is the lifecycle state of a purchase order.
type PurchaseStatus string

const (
	PurchaseDraft             PurchaseStatus = "draft"
	PurchaseOrdered           PurchaseStatus = "ordered"
	PurchasePartiallyReceived PurchaseStatus = "partially_received"
	PurchaseReceived          PurchaseStatus = "received"
	PurchaseCancelled         PurchaseStatus = "cancelled"
)

// PurchaseItem is a single line of a purchase order.
type PurchaseItem struct {
	ID               int             `json:"id"`
	ProductVariantID int             `json:"product_variant_id"`
	ProductName      string          `json:"product_name,omitempty"`
	Quantity         int             `json:"quantity"`
	ReceivedQuantity int             `json:"received_quantity"`
	CostPrice        apiclient.Money `json:"cost_price"`
}

// Purchase is a purchase order placed with a supplier for a store.
type Purchase struct {
	ID           int             `json:"id"`
	Number       string          `json:"number"`
	StoreID      int             `json:"store_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Status       PurchaseStatus  `json:"status"`
	ShippingCost apiclient.Money `json:"shipping_cost"`
	Total        apiclient.Money `json:"total"`
	Items        []PurchaseItem  `json:"items,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

// IsReceivable reports whether stock can still arrive against this
// purchase.
func (p *Purchase) IsReceivable() bool {
	return p.Status == PurchaseOrdered || p.Status == PurchasePartiallyReceived
}

// Store is a physical location stock can be purchased for.
type Store struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Active bool   `json:"active"`
}
