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
	"stockdesk/internal/features/orders/domain"
	"stockdesk/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrOrderNotFound is returned when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

const entity = "orders"

// OrderService owns the cache consistency for orders: reads go through the
// query cache, mutations invalidate the affected list and detail entries.
// Business rules (stock checks, refund math, payment ledger) stay upstream.
type OrderService struct {
	provider  ports.OrderProvider
	qc        *querycache.QueryCache
	listTTL   time.Duration
	detailTTL time.Duration
	log       *zap.Logger
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(provider ports.OrderProvider, qc *querycache.QueryCache, listTTL, detailTTL time.Duration) *OrderService {
	return &OrderService{
		provider:  provider,
		qc:        qc,
		listTTL:   listTTL,
		detailTTL: detailTTL,
		log:       logger.Get(),
	}
}

func detailKey(id int) string {
	return querycache.Key(entity, "detail", strconv.Itoa(id))
}

// List returns a filtered order page, served from cache when fresh.
func (s *OrderService) List(ctx context.Context, filter ports.ListFilter) (*ports.OrderList, error) {
	key := querycache.ListKey(entity, filter.Map())
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) (*ports.OrderList, error) {
		return s.provider.List(ctx, filter)
	})
}

// Get returns a single order, served from cache when fresh.
func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := querycache.FetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Order, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return order, nil
}

// Create creates an order and invalidates the list caches. A
// stock-shortage error from the backend is returned untouched so the
// caller can offer the backorder flow.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	order, err := s.provider.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	return order, nil
}

// Update replaces an order and invalidates its caches.
func (s *OrderService) Update(ctx context.Context, id int, input ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.provider.Update(ctx, id, input)
	if err != nil {
		return nil, s.mapNotFound(err)
	}

	if err := s.invalidateOrder(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus transitions the shipping status and invalidates caches.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status domain.ShippingStatus) error {
	if err := s.provider.UpdateStatus(ctx, id, status); err != nil {
		return s.mapNotFound(err)
	}
	return s.invalidateOrder(ctx, id)
}

// Cancel cancels an order. The confirmation step happens in the caller;
// the reason is mandatory here.
func (s *OrderService) Cancel(ctx context.Context, id int, reason string) error {
	if reason == "" {
		return fmt.Errorf("cancel order %d: reason is required", id)
	}
	if err := s.provider.Cancel(ctx, id, reason); err != nil {
		return s.mapNotFound(err)
	}
	return s.invalidateOrder(ctx, id)
}

// RecordPayment records a payment, then refetches the detail so the
// returned order reflects the new paid amount immediately.
func (s *OrderService) RecordPayment(ctx context.Context, id int, input ports.PaymentInput) (*domain.Order, error) {
	if err := s.provider.AddPayment(ctx, id, input); err != nil {
		return nil, s.mapNotFound(err)
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	order, err := querycache.RefetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Order, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return order, nil
}

// Refund submits a refund and refetches the detail.
func (s *OrderService) Refund(ctx context.Context, id int, input ports.RefundInput) (*domain.Order, error) {
	if err := s.provider.Refund(ctx, id, input); err != nil {
		return nil, s.mapNotFound(err)
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	order, err := querycache.RefetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Order, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return order, nil
}

// Ship records a shipment and invalidates caches.
func (s *OrderService) Ship(ctx context.Context, id int, input ports.ShipmentInput) error {
	if err := s.provider.Ship(ctx, id, input); err != nil {
		return s.mapNotFound(err)
	}
	return s.invalidateOrder(ctx, id)
}

// BatchDelete deletes orders by heterogeneous ids. Detail cache entries
// for deleted orders are removed, not just marked stale, so a later read
// can never resurrect a deleted record.
func (s *OrderService) BatchDelete(ctx context.Context, ids []any) error {
	wireIDs, err := NormalizeIDs(ids)
	if err != nil {
		return err
	}

	if err := s.provider.BatchDelete(ctx, wireIDs); err != nil {
		return err
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}

	keys := make([]string, 0, len(wireIDs))
	for _, id := range wireIDs {
		keys = append(keys, querycache.Key(entity, "detail", id))
	}
	return s.qc.Remove(ctx, keys...)
}

// BatchUpdateStatus updates the shipping status of multiple orders.
func (s *OrderService) BatchUpdateStatus(ctx context.Context, ids []any, status string) error {
	wireIDs, err := NormalizeIDs(ids)
	if err != nil {
		return err
	}

	if err := s.provider.BatchUpdateStatus(ctx, wireIDs, status); err != nil {
		return err
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}
	keys := make([]string, 0, len(wireIDs))
	for _, id := range wireIDs {
		keys = append(keys, querycache.Key(entity, "detail", id))
	}
	return s.qc.Invalidate(ctx, keys...)
}

// invalidateOrder drops the list caches and the order's detail entry.
func (s *OrderService) invalidateOrder(ctx context.Context, id int) error {
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}
	return s.qc.Invalidate(ctx, detailKey(id))
}

// mapNotFound converts a backend 404 into the service sentinel.
func (s *OrderService) mapNotFound(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrOrderNotFound
	}
	return err
}

// NormalizeIDs converts a heterogeneous id list (JSON numbers or strings)
// into the string ids the batch endpoints expect.
func NormalizeIDs(ids []any) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		switch v := id.(type) {
		case string:
			if v == "" {
				return nil, fmt.Errorf("empty id in batch request")
			}
			out = append(out, v)
		case float64:
			// JSON numbers decode as float64
			out = append(out, strconv.FormatInt(int64(v), 10))
		case int:
			out = append(out, strconv.Itoa(v))
		case int64:
			out = append(out, strconv.FormatInt(v, 10))
		default:
			return nil, fmt.Errorf("unsupported id type %T in batch request", id)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("batch request requires at least one id")
	}
	return out, nil
}
