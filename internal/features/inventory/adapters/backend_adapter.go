package adapters

import (
	"context"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/inventory/domain"
	"stockdesk/internal/features/inventory/ports"
)

// BackendAdapter implements ports.TransferProvider against the ERP REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates a transfer provider over the backend client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// List fetches a filtered transfer page.
func (a *BackendAdapter) List(ctx context.Context, filter ports.ListFilter) (*ports.TransferList, error) {
	params := apiclient.NewParams().
		Filter("status", filter.Status).
		Filter("store_id", filter.StoreID).
		Page(filter.Page).
		PerPage(filter.PerPage)

	raw, err := a.client.Get(ctx, "/api/inventory-transfers", params.Values())
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	data, meta, err := apiclient.DecodeList[domain.Transfer](raw)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return &ports.TransferList{Data: data, Meta: meta}, nil
}

// Get fetches a single transfer.
func (a *BackendAdapter) Get(ctx context.Context, id int) (*domain.Transfer, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/api/inventory-transfers/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get transfer %d: %w", id, err)
	}

	transfer, err := apiclient.DecodeItem[domain.Transfer](raw)
	if err != nil {
		return nil, fmt.Errorf("get transfer %d: %w", id, err)
	}
	return &transfer, nil
}

// Create creates a transfer.
func (a *BackendAdapter) Create(ctx context.Context, input ports.CreateTransferInput) (*domain.Transfer, error) {
	raw, err := a.client.Post(ctx, "/api/inventory-transfers", input)
	if err != nil {
		return nil, err
	}

	transfer, err := apiclient.DecodeItem[domain.Transfer](raw)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	return &transfer, nil
}

// Receive marks the transfer received with per-line quantities.
func (a *BackendAdapter) Receive(ctx context.Context, id int, items []ports.ReceiveItemInput) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/inventory-transfers/%d/receive", id), map[string]any{
		"items": items,
	})
	if err != nil {
		return fmt.Errorf("receive transfer %d: %w", id, err)
	}
	return nil
}

// Cancel cancels the transfer with a reason.
func (a *BackendAdapter) Cancel(ctx context.Context, id int, reason string) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/inventory-transfers/%d/cancel", id), map[string]string{
		"reason": reason,
	})
	if err != nil {
		return fmt.Errorf("cancel transfer %d: %w", id, err)
	}
	return nil
}
