package ports

import (
	"context"
	"strconv"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/orders/domain"
)

// ListFilter holds the supported list query parameters for orders.
type ListFilter struct {
	Search         string
	ShippingStatus string
	PaymentStatus  string
	CustomerID     string
	DateFrom       string
	DateTo         string
	Page           int
	PerPage        int
}

// Map renders the filter as a flat map for cache key construction.
func (f ListFilter) Map() map[string]string {
	m := make(map[string]string)
	if f.Search != "" {
		m["search"] = f.Search
	}
	if f.ShippingStatus != "" {
		m["shipping_status"] = f.ShippingStatus
	}
	if f.PaymentStatus != "" {
		m["payment_status"] = f.PaymentStatus
	}
	if f.CustomerID != "" {
		m["customer_id"] = f.CustomerID
	}
	if f.DateFrom != "" {
		m["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		m["date_to"] = f.DateTo
	}
	if f.Page > 0 {
		m["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		m["per_page"] = strconv.Itoa(f.PerPage)
	}
	return m
}

// OrderList is the normalized list result: items plus pagination meta,
// regardless of how the backend enveloped the response.
type OrderList struct {
	Data []domain.Order `json:"data"`
	Meta apiclient.Meta `json:"meta"`
}

// CreateOrderItem is one requested line on order creation.
type CreateOrderItem struct {
	ProductVariantID int     `json:"product_variant_id"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	Discount         float64 `json:"discount,omitempty"`
	TaxRate          float64 `json:"tax_rate,omitempty"`
}

// CreateOrderInput is the payload for creating an order. Force requests a
// backorder creation after a stock-shortage response.
type CreateOrderInput struct {
	CustomerID  int               `json:"customer_id"`
	Items       []CreateOrderItem `json:"items"`
	ShippingFee float64           `json:"shipping_fee,omitempty"`
	Discount    float64           `json:"discount,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Force       bool              `json:"force,omitempty"`
}

// UpdateOrderInput is the payload for a full order update.
type UpdateOrderInput struct {
	Items       []CreateOrderItem `json:"items"`
	ShippingFee float64           `json:"shipping_fee,omitempty"`
	Discount    float64           `json:"discount,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// PaymentInput records a payment against an order.
type PaymentInput struct {
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
}

// RefundItem selects a line and quantity to refund.
type RefundItem struct {
	OrderItemID int `json:"order_item_id"`
	Quantity    int `json:"quantity"`
}

// RefundInput is the payload for a refund request.
type RefundInput struct {
	Items  []RefundItem `json:"items"`
	Reason string       `json:"reason"`
}

// ShipmentInput records a shipment for an order.
type ShipmentInput struct {
	Items          []RefundItem `json:"items,omitempty"`
	TrackingNumber string       `json:"tracking_number,omitempty"`
	Carrier        string       `json:"carrier,omitempty"`
}

// OrderProvider defines the backend operations for orders.
// This is a Secondary Port (Driven Port).
type OrderProvider interface {
	List(ctx context.Context, filter ListFilter) (*OrderList, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	Update(ctx context.Context, id int, input UpdateOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.ShippingStatus) error
	Cancel(ctx context.Context, id int, reason string) error
	AddPayment(ctx context.Context, id int, input PaymentInput) error
	Refund(ctx context.Context, id int, input RefundInput) error
	Ship(ctx context.Context, id int, input ShipmentInput) error
	// BatchDelete and BatchUpdateStatus take string ids: the wire contract
	// is string arrays regardless of the numeric type used internally.
	BatchDelete(ctx context.Context, ids []string) error
	BatchUpdateStatus(ctx context.Context, ids []string, status string) error
}
