package adapters

import (
	"context"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/catalog/domain"
	"stockdesk/internal/features/catalog/ports"
)

// BackendAdapter implements ports.CatalogProvider against the ERP REST API.
type BackendAdapter struct {
	client *apiclient.Client
}

// NewBackendAdapter creates a catalog provider over the backend client.
func NewBackendAdapter(client *apiclient.Client) *BackendAdapter {
	return &BackendAdapter{client: client}
}

// ListCategories fetches the full flat category list. The backend does
// not paginate categories.
func (a *BackendAdapter) ListCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := a.client.Get(ctx, "/api/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	data, _, err := apiclient.DecodeList[domain.Category](raw)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return data, nil
}

// CreateCategory creates a category.
func (a *BackendAdapter) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	raw, err := a.client.Post(ctx, "/api/categories", input)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	cat, err := apiclient.DecodeItem[domain.Category](raw)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

// UpdateCategory replaces the category's editable fields.
func (a *BackendAdapter) UpdateCategory(ctx context.Context, id int, input ports.CategoryInput) (*domain.Category, error) {
	raw, err := a.client.Put(ctx, fmt.Sprintf("/api/categories/%d", id), input)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}

	cat, err := apiclient.DecodeItem[domain.Category](raw)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return &cat, nil
}

// DeleteCategory deletes a category.
func (a *BackendAdapter) DeleteCategory(ctx context.Context, id int) error {
	if _, err := a.client.Delete(ctx, fmt.Sprintf("/api/categories/%d", id)); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

// ListAttributes fetches a paginated attribute page.
func (a *BackendAdapter) ListAttributes(ctx context.Context, page, perPage int) (*ports.AttributeList, error) {
	params := apiclient.NewParams().Page(page).PerPage(perPage)

	raw, err := a.client.Get(ctx, "/api/attributes", params.Values())
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}

	data, meta, err := apiclient.DecodeList[domain.Attribute](raw)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return &ports.AttributeList{Data: data, Meta: meta}, nil
}

// GetAttribute fetches a single attribute with its ordered values.
func (a *BackendAdapter) GetAttribute(ctx context.Context, id int) (*domain.Attribute, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/api/attributes/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get attribute %d: %w", id, err)
	}

	attr, err := apiclient.DecodeItem[domain.Attribute](raw)
	if err != nil {
		return nil, fmt.Errorf("get attribute %d: %w", id, err)
	}
	return &attr, nil
}

// CreateAttribute creates an attribute with its value set.
func (a *BackendAdapter) CreateAttribute(ctx context.Context, input ports.AttributeInput) (*domain.Attribute, error) {
	raw, err := a.client.Post(ctx, "/api/attributes", input)
	if err != nil {
		return nil, fmt.Errorf("create attribute: %w", err)
	}

	attr, err := apiclient.DecodeItem[domain.Attribute](raw)
	if err != nil {
		return nil, fmt.Errorf("create attribute: %w", err)
	}
	return &attr, nil
}

// UpdateAttribute replaces the attribute's name and value set.
func (a *BackendAdapter) UpdateAttribute(ctx context.Context, id int, input ports.AttributeInput) (*domain.Attribute, error) {
	raw, err := a.client.Put(ctx, fmt.Sprintf("/api/attributes/%d", id), input)
	if err != nil {
		return nil, fmt.Errorf("update attribute %d: %w", id, err)
	}

	attr, err := apiclient.DecodeItem[domain.Attribute](raw)
	if err != nil {
		return nil, fmt.Errorf("update attribute %d: %w", id, err)
	}
	return &attr, nil
}

// DeleteAttribute deletes an attribute.
func (a *BackendAdapter) DeleteAttribute(ctx context.Context, id int) error {
	if _, err := a.client.Delete(ctx, fmt.Sprintf("/api/attributes/%d", id)); err != nil {
		return fmt.Errorf("delete attribute %d: %w", id, err)
	}
	return nil
}
