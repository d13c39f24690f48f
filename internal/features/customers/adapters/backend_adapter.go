package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/customers/domain"
	"stockdesk/internal/features/customers/ports"
)

// BackendAdapter implements ports.CustomerProvider against the ERP REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates a customer provider over the backend client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// List fetches a filtered customer page.
func (a *BackendAdapter) List(ctx context.Context, filter ports.ListFilter) (*ports.CustomerList, error) {
	params := apiclient.NewParams().
		Search(filter.Search).
		Filter("is_company", filter.IsCompany).
		Page(filter.Page).
		PerPage(filter.PerPage)

	raw, err := a.client.Get(ctx, "/api/customers", params.Values())
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	data, meta, err := apiclient.DecodeList[domain.Customer](raw)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return &ports.CustomerList{Data: data, Meta: meta}, nil
}

// Get fetches a single customer with addresses.
func (a *BackendAdapter) Get(ctx context.Context, id int) (*domain.Customer, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/api/customers/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}

	customer, err := apiclient.DecodeItem[domain.Customer](raw)
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &customer, nil
}

// Create creates a customer.
func (a *BackendAdapter) Create(ctx context.Context, input ports.CustomerInput) (*domain.Customer, error) {
	raw, err := a.client.Post(ctx, "/api/customers", input)
	if err != nil {
		return nil, err
	}

	customer, err := apiclient.DecodeItem[domain.Customer](raw)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

// Update replaces the customer's editable fields.
func (a *BackendAdapter) Update(ctx context.Context, id int, input ports.CustomerInput) (*domain.Customer, error) {
	raw, err := a.client.Put(ctx, fmt.Sprintf("/api/customers/%d", id), input)
	if err != nil {
		return nil, err
	}

	customer, err := apiclient.DecodeItem[domain.Customer](raw)
	if err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}
	return &customer, nil
}

// Delete deletes a customer.
func (a *BackendAdapter) Delete(ctx context.Context, id int) error {
	if _, err := a.client.Delete(ctx, fmt.Sprintf("/api/customers/%d", id)); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}

// EmailExists checks whether the email is already registered.
func (a *BackendAdapter) EmailExists(ctx context.Context, email string) (bool, error) {
	params := apiclient.NewParams().Filter("email", email)

	raw, err := a.client.Get(ctx, "/api/customers/check-email", params.Values())
	if err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}

	var result struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}
	return result.Exists, nil
}
