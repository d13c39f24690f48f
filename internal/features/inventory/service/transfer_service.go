package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/features/inventory/domain"
	"stockdesk/internal/features/inventory/ports"
)

// ErrTransferNotFound is returned when the transfer does not exist.
var ErrTransferNotFound = errors.New("transfer not found")

// ErrTransferClosed is returned when receiving or cancelling a transfer
// that is no longer open.
var ErrTransferClosed = errors.New("transfer is already received or cancelled")

const entity = "transfers"

// TransferService owns the cache consistency for inventory transfers.
type TransferService struct {
	provider  ports.TransferProvider
	qc        *querycache.QueryCache
	listTTL   time.Duration
	detailTTL time.Duration
}

// NewTransferService creates a new instance of TransferService.
func NewTransferService(provider ports.TransferProvider, qc *querycache.QueryCache, listTTL, detailTTL time.Duration) *TransferService {
	return &TransferService{
		provider:  provider,
		qc:        qc,
		listTTL:   listTTL,
		detailTTL: detailTTL,
	}
}

func detailKey(id int) string {
	return querycache.Key(entity, "detail", strconv.Itoa(id))
}

// List returns a filtered transfer page, served from cache when fresh.
func (s *TransferService) List(ctx context.Context, filter ports.ListFilter) (*ports.TransferList, error) {
	key := querycache.ListKey(entity, filter.Map())
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) (*ports.TransferList, error) {
		return s.provider.List(ctx, filter)
	})
}

// Get returns a single transfer, served from cache when fresh.
func (s *TransferService) Get(ctx context.Context, id int) (*domain.Transfer, error) {
	transfer, err := querycache.FetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Transfer, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return transfer, nil
}

// Create creates a transfer and invalidates the list caches.
func (s *TransferService) Create(ctx context.Context, input ports.CreateTransferInput) (*domain.Transfer, error) {
	if input.SourceStoreID == input.DestinationStoreID {
		return nil, fmt.Errorf("create transfer: source and destination stores must differ")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("create transfer: at least one item is required")
	}

	transfer, err := s.provider.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	return transfer, nil
}

// Receive marks the transfer received, then refetches the detail so the
// caller sees the received quantities immediately. Closed transfers are
// rejected before the upstream call.
func (s *TransferService) Receive(ctx context.Context, id int, items []ports.ReceiveItemInput) (*domain.Transfer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsOpen() {
		return nil, ErrTransferClosed
	}

	if err := s.provider.Receive(ctx, id, items); err != nil {
		return nil, s.mapNotFound(err)
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	transfer, err := querycache.RefetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Transfer, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return transfer, nil
}

// Cancel cancels an open transfer. The confirmation step happens in the
// caller; the reason is mandatory here.
func (s *TransferService) Cancel(ctx context.Context, id int, reason string) error {
	if reason == "" {
		return fmt.Errorf("cancel transfer %d: reason is required", id)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.IsOpen() {
		return ErrTransferClosed
	}

	if err := s.provider.Cancel(ctx, id, reason); err != nil {
		return s.mapNotFound(err)
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}
	return s.qc.Invalidate(ctx, detailKey(id))
}

func (s *TransferService) mapNotFound(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrTransferNotFound
	}
	return err
}
