package adapters

import (
	"context"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/users/domain"
	"stockdesk/internal/features/users/ports"
)

// BackendAdapter implements ports.UserProvider against the ERP REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates a user provider over the backend client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// List fetches all admin accounts.
func (a *BackendAdapter) List(ctx context.Context) ([]domain.User, error) {
	raw, err := a.client.Get(ctx, "/api/users", nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	data, _, err := apiclient.DecodeList[domain.User](raw)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return data, nil
}

// Create creates an admin account.
func (a *BackendAdapter) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	raw, err := a.client.Post(ctx, "/api/users", input)
	if err != nil {
		return nil, err
	}

	user, err := apiclient.DecodeItem[domain.User](raw)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update replaces the account's editable fields.
func (a *BackendAdapter) Update(ctx context.Context, id string, input ports.UserInput) (*domain.User, error) {
	raw, err := a.client.Put(ctx, "/api/users/"+id, input)
	if err != nil {
		return nil, err
	}

	user, err := apiclient.DecodeItem[domain.User](raw)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return &user, nil
}

// Delete deletes an admin account.
func (a *BackendAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Delete(ctx, "/api/users/"+id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
