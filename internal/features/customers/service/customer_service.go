package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/features/customers/domain"
	"stockdesk/internal/features/customers/ports"

	"go.uber.org/zap"
)

// ErrCustomerNotFound is returned when the customer does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

const entity = "customers"

// CustomerService owns the cache consistency for customers.
type CustomerService struct {
	provider  ports.CustomerProvider
	qc        *querycache.QueryCache
	listTTL   time.Duration
	detailTTL time.Duration
	log       *zap.Logger
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(provider ports.CustomerProvider, qc *querycache.QueryCache, listTTL, detailTTL time.Duration) *CustomerService {
	return &CustomerService{
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

// List returns a filtered customer page, served from cache when fresh.
func (s *CustomerService) List(ctx context.Context, filter ports.ListFilter) (*ports.CustomerList, error) {
	key := querycache.ListKey(entity, filter.Map())
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) (*ports.CustomerList, error) {
		return s.provider.List(ctx, filter)
	})
}

// Get returns a single customer, served from cache when fresh.
func (s *CustomerService) Get(ctx context.Context, id int) (*domain.Customer, error) {
	customer, err := querycache.FetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Customer, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return customer, nil
}

// Create creates a customer and invalidates the list caches. The
// address set is normalized so at most one address carries the default
// flag before it reaches the backend.
func (s *CustomerService) Create(ctx context.Context, input ports.CustomerInput) (*domain.Customer, error) {
	input.Addresses = NormalizeDefaultAddress(input.Addresses)

	customer, err := s.provider.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update replaces a customer and invalidates its caches.
func (s *CustomerService) Update(ctx context.Context, id int, input ports.CustomerInput) (*domain.Customer, error) {
	input.Addresses = NormalizeDefaultAddress(input.Addresses)

	customer, err := s.provider.Update(ctx, id, input)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	if err := s.qc.Invalidate(ctx, detailKey(id)); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete deletes a customer and removes its detail entry so the deleted
// record cannot be served from cache.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	if err := s.provider.Delete(ctx, id); err != nil {
		return s.mapNotFound(err)
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}
	return s.qc.Remove(ctx, detailKey(id))
}

// EmailExists checks whether the email is already registered. The check
// is advisory: an upstream failure degrades to exists=false with a log
// line instead of failing the caller, so a flaky check endpoint never
// blocks customer creation.
func (s *CustomerService) EmailExists(ctx context.Context, email string) bool {
	exists, err := s.provider.EmailExists(ctx, email)
	if err != nil {
		s.log.Warn("email existence check failed, assuming available",
			zap.String("email", email),
			zap.Error(err),
		)
		return false
	}
	return exists
}

// NormalizeDefaultAddress enforces the single-default invariant: the
// last address flagged default wins and all others are cleared. With no
// flagged address the first one becomes the default.
func NormalizeDefaultAddress(addresses []ports.AddressInput) []ports.AddressInput {
	if len(addresses) == 0 {
		return addresses
	}

	defaultIdx := 0
	for i := range addresses {
		if addresses[i].IsDefault {
			defaultIdx = i
		}
	}
	for i := range addresses {
		addresses[i].IsDefault = i == defaultIdx
	}
	return addresses
}

func (s *CustomerService) mapNotFound(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrCustomerNotFound
	}
	return err
}
