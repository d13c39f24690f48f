package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/purchases/domain"
	"stockdesk/internal/features/purchases/ports"
)

// BackendAdapter implements ports.PurchaseProvider and
// ports.StoreProvider against the ERP REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates a purchase provider over the backend client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// List fetches a filtered purchase page.
func (a *BackendAdapter) List(ctx context.Context, filter ports.ListFilter) (*ports.PurchaseList, error) {
	params := apiclient.NewParams().
		Search(filter.Search).
		Filter("status", filter.Status).
		Filter("store_id", filter.StoreID).
		Page(filter.Page).
		PerPage(filter.PerPage)

	raw, err := a.client.Get(ctx, "/api/purchases", params.Values())
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	data, meta, err := apiclient.DecodeList[domain.Purchase](raw)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return &ports.PurchaseList{Data: data, Meta: meta}, nil
}

// Get fetches a single purchase.
func (a *BackendAdapter) Get(ctx context.Context, id int) (*domain.Purchase, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/api/purchases/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get purchase %d: %w", id, err)
	}

	purchase, err := apiclient.DecodeItem[domain.Purchase](raw)
	if err != nil {
		return nil, fmt.Errorf("get purchase %d: %w", id, err)
	}
	return &purchase, nil
}

// Create creates a purchase.
func (a *BackendAdapter) Create(ctx context.Context, input ports.PurchaseInput) (*domain.Purchase, error) {
	raw, err := a.client.Post(ctx, "/api/purchases", input)
	if err != nil {
		return nil, err
	}

	purchase, err := apiclient.DecodeItem[domain.Purchase](raw)
	if err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}
	return &purchase, nil
}

// Update replaces the purchase's editable fields.
func (a *BackendAdapter) Update(ctx context.Context, id int, input ports.PurchaseInput) (*domain.Purchase, error) {
	raw, err := a.client.Put(ctx, fmt.Sprintf("/api/purchases/%d", id), input)
	if err != nil {
		return nil, err
	}

	purchase, err := apiclient.DecodeItem[domain.Purchase](raw)
	if err != nil {
		return nil, fmt.Errorf("update purchase %d: %w", id, err)
	}
	return &purchase, nil
}

// Delete deletes a purchase.
func (a *BackendAdapter) Delete(ctx context.Context, id int) error {
	if _, err := a.client.Delete(ctx, fmt.Sprintf("/api/purchases/%d", id)); err != nil {
		return fmt.Errorf("delete purchase %d: %w", id, err)
	}
	return nil
}

// Receive records received quantities against the purchase.
func (a *BackendAdapter) Receive(ctx context.Context, id int, items []ports.ReceiveItemInput) error {
	_, err := a.client.Post(ctx, fmt.Sprintf("/api/purchases/%d/receive", id), map[string]any{
		"items": items,
	})
	if err != nil {
		return fmt.Errorf("receive purchase %d: %w", id, err)
	}
	return nil
}

// ListStores fetches all stores.
func (a *BackendAdapter) ListStores(ctx context.Context) ([]domain.Store, error) {
	raw, err := a.client.Get(ctx, "/api/stores", nil)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	data, _, err := apiclient.DecodeList[domain.Store](raw)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return data, nil
}

// StoreExists probes the store detail endpoint. A 404 means the store
// is unknown; any other failure propagates.
func (a *BackendAdapter) StoreExists(ctx context.Context, id int) (bool, error) {
	_, err := a.client.Get(ctx, fmt.Sprintf("/api/stores/%d", id), nil)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("check store %d: %w", id, err)
	}
	return true, nil
}
