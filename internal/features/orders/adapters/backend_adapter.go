package adapters

import (
	"context"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/orders/domain"
	"stockdesk/internal/features/orders/ports"
)

// BackendAdapter implements ports.OrderProvider against the ERP REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates an order provider over the backend client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// List fetches a filtered order page and normalizes the envelope.
func (a *BackendAdapter) List(ctx context.Context, filter ports.ListFilter) (*ports.OrderList, error) {
	params := apiclient.NewParams().
		Search(filter.Search).
		Filter("shipping_status", filter.ShippingStatus).
		Filter("payment_status", filter.PaymentStatus).
		Filter("customer_id", filter.CustomerID).
		Filter("date_from", filter.DateFrom).
		Filter("date_to", filter.DateTo).
		Page(filter.Page).
		PerPage(filter.PerPage)

	raw, err := a.client.Get(ctx, "/api/orders", params.Values())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	data, meta, err := apiclient.DecodeList[domain.Order](raw)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &ports.OrderList{Data: data, Meta: meta}, nil
}

// Get fetches a single order.
func (a *BackendAdapter) Get(ctx context.Context, id int) (*domain.Order, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/api/orders/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	order, err := apiclient.DecodeItem[domain.Order](raw)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// Create creates an order. A stock-shortage response is returned as-is so
// the caller can branch into the backorder flow.
func (a *BackendAdapter) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	raw, err := a.client.Post(ctx, "/api/orders", input)
	if err != nil {
		return nil, err
	}

	order, err := apiclient.DecodeItem[domain.Order](raw)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// Update replaces the order's editable fields.
func (a *BackendAdapter) Update(ctx context.Context, id int, input ports.UpdateOrderInput) (*domain.Order, error) {
	raw, err := a.client.Put(ctx, fmt.Sprintf("/api/orders/%d", id), input)
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}

	order, err := apiclient.DecodeItem[domain.Order](raw)
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus transitions the shipping status.
func (a *BackendAdapter) UpdateStatus(ctx context.Context, id int, status domain.ShippingStatus) error {
	_, err := a.client.Patch(ctx, fmt.Sprintf("/api/orders/%d/status", id), map[string]string{
		"shipping_status": string(status),
	})
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}
	return nil
}

// Cancel cancels the order with a reason.
func (a *BackendAdapter) Cancel(ctx context.Context, id int, reason string) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/orders/%d/cancel", id), map[string]string{
		"reason": reason,
	})
	if err != nil {
		return fmt.Errorf("cancel order %d: %w", id, err)
	}
	return nil
}

// AddPayment records a payment against the order.
func (a *BackendAdapter) AddPayment(ctx context.Context, id int, input ports.PaymentInput) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/orders/%d/payments", id), input)
	if err != nil {
		return fmt.Errorf("add payment to order %d: %w", id, err)
	}
	return nil
}

// Refund submits a refund for selected items. The refund amount is
// computed by the backend.
func (a *BackendAdapter) Refund(ctx context.Context, id int, input ports.RefundInput) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/orders/%d/refunds", id), input)
	if err != nil {
		return fmt.Errorf("refund order %d: %w", id, err)
	}
	return nil
}

// Ship records a shipment for the order.
func (a *BackendAdapter) Ship(ctx context.Context, id int, input ports.ShipmentInput) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/orders/%d/shipments", id), input)
	if err != nil {
		return fmt.Errorf("ship order %d: %w", id, err)
	}
	return nil
}

// BatchDelete deletes the given orders. Ids are strings on the wire.
func (a *BackendAdapter) BatchDelete(ctx context.Context, ids []string) error {
	_, err := a.client.Post(ctx, "/api/orders/batch-delete", map[string][]string{
		"ids": ids,
	})
	if err != nil {
		return fmt.Errorf("batch delete orders: %w", err)
	}
	return nil
}

// BatchUpdateStatus updates the shipping status of the given orders.
func (a *BackendAdapter) BatchUpdateStatus(ctx context.Context, ids []string, status string) error {
	_, err := a.client.Post(ctx, "/api/orders/batch-update-status", map[string]any{
		"ids":    ids,
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("batch update order status: %w", err)
	}
	return nil
}
