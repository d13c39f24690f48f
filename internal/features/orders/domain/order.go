package domain

import (
	"time"

	"stockdesk/internal/core/apiclient"
)

// ShippingStatus represents the fulfillment state of an order. It moves
// independently of the payment status.
type ShippingStatus string

const (
	ShippingStatusPending          ShippingStatus = "pending"
	ShippingStatusPartiallyShipped ShippingStatus = "partially_shipped"
	ShippingStatusShipped          ShippingStatus = "shipped"
	ShippingStatusDelivered        ShippingStatus = "delivered"
	ShippingStatusCancelled        ShippingStatus = "cancelled"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// Order represents a customer order. Monetary fields arrive from the
// backend as decimal strings and are coerced by apiclient.Money.
type Order struct {
	// ID is the unique identifier for the order.
	ID int `json:"id"`
	// Number is the human-facing order number.
	Number string `json:"number"`
	// CustomerID references the ordering customer.
	CustomerID int `json:"customer_id"`
	// CustomerName is denormalized for list display.
	CustomerName string `json:"customer_name"`

	Subtotal    apiclient.Money `json:"subtotal"`
	ShippingFee apiclient.Money `json:"shipping_fee"`
	Tax         apiclient.Money `json:"tax"`
	Discount    apiclient.Money `json:"discount"`
	GrandTotal  apiclient.Money `json:"grand_total"`
	PaidAmount  apiclient.Money `json:"paid_amount"`

	// ShippingStatus and PaymentStatus are independent enumerations.
	ShippingStatus ShippingStatus `json:"shipping_status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`

	// Items contains the ordered line items.
	Items []OrderItem `json:"items"`
	// Payments contains the recorded payment entries.
	Payments []Payment `json:"payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Remaining returns the unpaid balance, clamped at zero for display.
// paid_amount <= grand_total is a backend invariant the client trusts but
// does not enforce.
func (o *Order) Remaining() apiclient.Money {
	remaining := o.GrandTotal - o.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFullyPaid reports whether nothing remains to be paid.
func (o *Order) IsFullyPaid() bool {
	return o.Remaining() == 0
}

// OrderItem represents a single line of an order.
type OrderItem struct {
	// ID is the unique identifier of the line item.
	ID int `json:"id"`
	// ProductVariantID references the purchased variant.
	ProductVariantID int `json:"product_variant_id"`
	// ProductName is denormalized for display.
	ProductName string `json:"product_name"`
	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
	// UnitPrice is the price per unit.
	UnitPrice apiclient.Money `json:"unit_price"`
	// Discount is the per-line discount amount.
	Discount apiclient.Money `json:"discount"`
	// TaxRate is the applied tax rate in percent.
	TaxRate float64 `json:"tax_rate"`
	// IsBackorder marks lines accepted beyond available stock.
	IsBackorder bool `json:"is_backorder"`
}

// Payment represents a recorded payment against an order.
type Payment struct {
	// ID is the unique identifier of the payment record.
	ID int `json:"id"`
	// Method is the payment method (e.g., cash, card, transfer).
	Method string `json:"method"`
	// Amount is the paid amount.
	Amount apiclient.Money `json:"amount"`
	// Reference is an external payment reference, if any.
	Reference string `json:"reference"`
	// PaidAt is when the payment was recorded.
	PaidAt time.Time `json:"paid_at"`
}
