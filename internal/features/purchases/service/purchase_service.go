package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/features/purchases/domain"
	"stockdesk/internal/features/purchases/ports"

	"go.uber.org/zap"
)

// ErrPurchaseNotFound is returned when the purchase does not exist.
var ErrPurchaseNotFound = errors.New("purchase not found")

// ErrPurchaseNotReceivable is returned when receiving against a
// purchase that is not in a receivable state.
var ErrPurchaseNotReceivable = errors.New("purchase cannot receive stock in its current state")

const (
	entity      = "purchases"
	storeEntity = "stores"
)

// PurchaseService owns the cache consistency for purchase orders and
// the read-only store list.
type PurchaseService struct {
	provider  ports.PurchaseProvider
	stores    ports.StoreProvider
	qc        *querycache.QueryCache
	listTTL   time.Duration
	detailTTL time.Duration
	log       *zap.Logger
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(provider ports.PurchaseProvider, stores ports.StoreProvider, qc *querycache.QueryCache, listTTL, detailTTL time.Duration) *PurchaseService {
	return &PurchaseService{
		provider:  provider,
		stores:    stores,
		qc:        qc,
		listTTL:   listTTL,
		detailTTL: detailTTL,
		log:       logger.Get(),
	}
}

func detailKey(id int) string {
	return querycache.Key(entity, "detail", strconv.Itoa(id))
}

// List returns a filtered purchase page, served from cache when fresh.
func (s *PurchaseService) List(ctx context.Context, filter ports.ListFilter) (*ports.PurchaseList, error) {
	key := querycache.ListKey(entity, filter.Map())
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) (*ports.PurchaseList, error) {
		return s.provider.List(ctx, filter)
	})
}

// Get returns a single purchase, served from cache when fresh.
func (s *PurchaseService) Get(ctx context.Context, id int) (*domain.Purchase, error) {
	purchase, err := querycache.FetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Purchase, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return purchase, nil
}

// Create creates a purchase and invalidates the list caches. The store
// reference is validated when the check endpoint answers; a failing
// check does not block creation.
func (s *PurchaseService) Create(ctx context.Context, input ports.PurchaseInput) (*domain.Purchase, error) {
	if input.StoreID == 0 {
		return nil, fmt.Errorf("create purchase: store_id is required")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("create purchase: at least one item is required")
	}
	if !s.StoreExists(ctx, input.StoreID) {
		return nil, fmt.Errorf("create purchase: store %d does not exist", input.StoreID)
	}

	purchase, err := s.provider.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Update replaces a purchase and invalidates its caches.
func (s *PurchaseService) Update(ctx context.Context, id int, input ports.PurchaseInput) (*domain.Purchase, error) {
	purchase, err := s.provider.Update(ctx, id, input)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	if err := s.qc.Invalidate(ctx, detailKey(id)); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Delete deletes a purchase and removes its detail entry.
func (s *PurchaseService) Delete(ctx context.Context, id int) error {
	if err := s.provider.Delete(ctx, id); err != nil {
		return s.mapNotFound(err)
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}
	return s.qc.Remove(ctx, detailKey(id))
}

// Receive records received quantities, then refetches the detail so the
// caller sees the updated state immediately.
func (s *PurchaseService) Receive(ctx context.Context, id int, items []ports.ReceiveItemInput) (*domain.Purchase, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsReceivable() {
		return nil, ErrPurchaseNotReceivable
	}

	if err := s.provider.Receive(ctx, id, items); err != nil {
		return nil, s.mapNotFound(err)
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	purchase, err := querycache.RefetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Purchase, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return purchase, nil
}

// ListStores returns all stores. Stores change rarely so the list is
// cached with the detail TTL.
func (s *PurchaseService) ListStores(ctx context.Context) ([]domain.Store, error) {
	key := querycache.ListKey(storeEntity, nil)
	return querycache.FetchJSON(ctx, s.qc, key, s.detailTTL, func(ctx context.Context) ([]domain.Store, error) {
		return s.stores.ListStores(ctx)
	})
}

// StoreExists checks whether the store id is known. The check is
// advisory: an upstream failure degrades to exists=true with a log line
// so a flaky check never blocks purchasing, the backend re-validates
// anyway.
func (s *PurchaseService) StoreExists(ctx context.Context, id int) bool {
	exists, err := s.stores.StoreExists(ctx, id)
	if err != nil {
		s.log.Warn("store existence check failed, assuming present",
			zap.Int("store_id", id),
			zap.Error(err),
		)
		return true
	}
	return exists
}

func (s *PurchaseService) mapNotFound(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrPurchaseNotFound
	}
	return err
}
