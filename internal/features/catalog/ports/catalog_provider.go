package ports

import (
	"context"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/catalog/domain"
)

// CategoryInput carries the editable category fields.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parent_id"`
}

// AttributeInput carries the editable attribute fields. Values replace
// the existing set in the given order.
type AttributeInput struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// AttributeList is a paginated attribute page.
type AttributeList struct {
	Data []domain.Attribute `json:"data"`
	Meta apiclient.Meta     `json:"meta"`
}

// CatalogProvider is the upstream source for categories and attributes.
type CatalogProvider interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	ListAttributes(ctx context.Context, page, perPage int) (*AttributeList, error)
	GetAttribute(ctx context.Context, id int) (*domain.Attribute, error)
	CreateAttribute(ctx context.Context, input AttributeInput) (*domain.Attribute, error)
	UpdateAttribute(ctx context.Context, id int, input AttributeInput) (*domain.Attribute, error)
	DeleteAttribute(ctx context.Context, id int) error
}
