package domain

import (
	"encoding/json"
	"testing"

	"stockdesk/internal/core/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Remaining(t *testing.T) {
	order := Order{GrandTotal: 113, PaidAmount: 50}
	assert.Equal(t, apiclient.Money(63), order.Remaining())
	assert.False(t, order.IsFullyPaid())

	order.PaidAmount = 113
	assert.Equal(t, apiclient.Money(0), order.Remaining())
	assert.True(t, order.IsFullyPaid())
}

func TestOrder_Remaining_ClampsOverpayment(t *testing.T) {
	// Overpayment should never show a negative balance; the invariant
	// belongs to the backend.
	order := Order{GrandTotal: 100, PaidAmount: 150}
	assert.Equal(t, apiclient.Money(0), order.Remaining())
}

func TestOrder_DecodesMoneyStrings(t *testing.T) {
	body := `{
		"id": 1,
		"number": "ORD-0001",
		"customer_id": 3,
		"subtotal": "100.00",
		"shipping_fee": "10.00",
		"tax": "5.00",
		"discount": "2.00",
		"grand_total": "113.00",
		"paid_amount": "0.00",
		"shipping_status": "pending",
		"payment_status": "unpaid",
		"items": [
			{"id": 11, "product_variant_id": 7, "quantity": 2, "unit_price": "50.00", "discount": "0.00", "tax_rate": 19, "is_backorder": false}
		]
	}`

	var order Order
	require.NoError(t, json.Unmarshal([]byte(body), &order))

	assert.Equal(t, apiclient.Money(113), order.GrandTotal)
	assert.Equal(t, apiclient.Money(113), order.Remaining())
	assert.Equal(t, ShippingStatusPending, order.ShippingStatus)
	assert.Equal(t, PaymentStatusUnpaid, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, apiclient.Money(50), order.Items[0].UnitPrice)
}

func TestStatusValues(t *testing.T) {
	assert.Equal(t, ShippingStatus("shipped"), ShippingStatusShipped)
	assert.Equal(t, PaymentStatus("partially_paid"), PaymentStatusPartiallyPaid)
}
