package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/features/catalog/domain"
	"stockdesk/internal/features/catalog/ports"
)

// ErrCategoryNotFound is returned when the category does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// ErrAttributeNotFound is returned when the attribute does not exist.
var ErrAttributeNotFound = errors.New("attribute not found")

const (
	categoryEntity  = "categories"
	attributeEntity = "attributes"
)

// CatalogService serves categories and attributes through the query
// cache. The category tree is derived from the cached flat list, so the
// flat and tree views can never disagree.
type CatalogService struct {
	provider  ports.CatalogProvider
	qc        *querycache.QueryCache
	listTTL   time.Duration
	detailTTL time.Duration
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(provider ports.CatalogProvider, qc *querycache.QueryCache, listTTL, detailTTL time.Duration) *CatalogService {
	return &CatalogService{
		provider:  provider,
		qc:        qc,
		listTTL:   listTTL,
		detailTTL: detailTTL,
	}
}

// ListCategories returns the flat category list, served from cache.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	key := querycache.ListKey(categoryEntity, nil)
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) ([]domain.Category, error) {
		return s.provider.ListCategories(ctx)
	})
}

// CategoryTree returns the category forest built from the flat list.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	flat, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildTree(flat), nil
}

// CreateCategory creates a category and invalidates the list cache.
func (s *CatalogService) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	cat, err := s.provider.CreateCategory(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.qc.InvalidateLists(ctx, categoryEntity); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory updates a category and invalidates the list cache.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int, input ports.CategoryInput) (*domain.Category, error) {
	cat, err := s.provider.UpdateCategory(ctx, id, input)
	if err != nil {
		return nil, mapStatus(err, ErrCategoryNotFound)
	}
	if err := s.qc.InvalidateLists(ctx, categoryEntity); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory deletes a category. The flat list is removed, not just
// invalidated, so the deleted row cannot reappear from cache.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.provider.DeleteCategory(ctx, id); err != nil {
		return mapStatus(err, ErrCategoryNotFound)
	}
	return s.qc.InvalidateLists(ctx, categoryEntity)
}

func attributeKey(id int) string {
	return querycache.Key(attributeEntity, "detail", strconv.Itoa(id))
}

// ListAttributes returns a paginated attribute page, served from cache.
func (s *CatalogService) ListAttributes(ctx context.Context, page, perPage int) (*ports.AttributeList, error) {
	key := querycache.ListKey(attributeEntity, map[string]string{
		"page":     strconv.Itoa(page),
		"per_page": strconv.Itoa(perPage),
	})
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) (*ports.AttributeList, error) {
		return s.provider.ListAttributes(ctx, page, perPage)
	})
}

// GetAttribute returns a single attribute, served from cache.
func (s *CatalogService) GetAttribute(ctx context.Context, id int) (*domain.Attribute, error) {
	attr, err := querycache.FetchJSON(ctx, s.qc, attributeKey(id), s.detailTTL, func(ctx context.Context) (*domain.Attribute, error) {
		return s.provider.GetAttribute(ctx, id)
	})
	if err != nil {
		return nil, mapStatus(err, ErrAttributeNotFound)
	}
	return attr, nil
}

// CreateAttribute creates an attribute and invalidates the list cache.
func (s *CatalogService) CreateAttribute(ctx context.Context, input ports.AttributeInput) (*domain.Attribute, error) {
	attr, err := s.provider.CreateAttribute(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.qc.InvalidateLists(ctx, attributeEntity); err != nil {
		return nil, err
	}
	return attr, nil
}

// UpdateAttribute updates an attribute and invalidates its caches.
func (s *CatalogService) UpdateAttribute(ctx context.Context, id int, input ports.AttributeInput) (*domain.Attribute, error) {
	attr, err := s.provider.UpdateAttribute(ctx, id, input)
	if err != nil {
		return nil, mapStatus(err, ErrAttributeNotFound)
	}
	if err := s.qc.InvalidateLists(ctx, attributeEntity); err != nil {
		return nil, err
	}
	if err := s.qc.Invalidate(ctx, attributeKey(id)); err != nil {
		return nil, err
	}
	return attr, nil
}

// DeleteAttribute deletes an attribute and removes its detail entry.
func (s *CatalogService) DeleteAttribute(ctx context.Context, id int) error {
	if err := s.provider.DeleteAttribute(ctx, id); err != nil {
		return mapStatus(err, ErrAttributeNotFound)
	}
	if err := s.qc.InvalidateLists(ctx, attributeEntity); err != nil {
		return err
	}
	return s.qc.Remove(ctx, attributeKey(id))
}

// mapStatus converts a backend 404 into the given sentinel.
func mapStatus(err, notFound error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return notFound
	}
	return err
}
