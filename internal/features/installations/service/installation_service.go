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
	"stockdesk/internal/features/installations/domain"
	"stockdesk/internal/features/installations/ports"
)

// ErrInstallationNotFound is returned when the installation does not exist.
var ErrInstallationNotFound = errors.New("installation not found")

// ErrInvalidTransition is returned for a disallowed status move.
var ErrInvalidTransition = errors.New("invalid installation status transition")

const entity = "installations"

// InstallationService owns the cache consistency for installation jobs
// and guards the status state machine before calls go upstream.
type InstallationService struct {
	provider  ports.InstallationProvider
	qc        *querycache.QueryCache
	listTTL   time.Duration
	detailTTL time.Duration
}

// NewInstallationService creates a new instance of InstallationService.
func NewInstallationService(provider ports.InstallationProvider, qc *querycache.QueryCache, listTTL, detailTTL time.Duration) *InstallationService {
	return &InstallationService{
		provider:  provider,
		qc:        qc,
		listTTL:   listTTL,
		detailTTL: detailTTL,
	}
}

func detailKey(id int) string {
	return querycache.Key(entity, "detail", strconv.Itoa(id))
}

// List returns a filtered installation page, served from cache when fresh.
func (s *InstallationService) List(ctx context.Context, filter ports.ListFilter) (*ports.InstallationList, error) {
	key := querycache.ListKey(entity, filter.Map())
	return querycache.FetchJSON(ctx, s.qc, key, s.listTTL, func(ctx context.Context) (*ports.InstallationList, error) {
		return s.provider.List(ctx, filter)
	})
}

// Get returns a single installation, served from cache when fresh.
func (s *InstallationService) Get(ctx context.Context, id int) (*domain.Installation, error) {
	installation, err := querycache.FetchJSON(ctx, s.qc, detailKey(id), s.detailTTL, func(ctx context.Context) (*domain.Installation, error) {
		return s.provider.Get(ctx, id)
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return installation, nil
}

// Create creates an installation and invalidates the list caches.
func (s *InstallationService) Create(ctx context.Context, input ports.CreateInstallationInput) (*domain.Installation, error) {
	if input.OrderID == 0 {
		return nil, fmt.Errorf("create installation: order_id is required")
	}

	installation, err := s.provider.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return nil, err
	}
	return installation, nil
}

// UpdateStatus transitions the status after validating the move against
// the current state.
func (s *InstallationService) UpdateStatus(ctx context.Context, id int, status domain.InstallationStatus) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	if err := s.provider.UpdateStatus(ctx, id, status); err != nil {
		return s.mapNotFound(err)
	}
	return s.invalidate(ctx, id)
}

// Schedule sets the installation date.
func (s *InstallationService) Schedule(ctx context.Context, id int, date string) error {
	if date == "" {
		return fmt.Errorf("schedule installation %d: date is required", id)
	}
	if err := s.provider.Schedule(ctx, id, date); err != nil {
		return s.mapNotFound(err)
	}
	return s.invalidate(ctx, id)
}

// AssignInstaller assigns the job to an installer.
func (s *InstallationService) AssignInstaller(ctx context.Context, id, installerID int) error {
	if err := s.provider.AssignInstaller(ctx, id, installerID); err != nil {
		return s.mapNotFound(err)
	}
	return s.invalidate(ctx, id)
}

func (s *InstallationService) invalidate(ctx context.Context, id int) error {
	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		return err
	}
	return s.qc.Invalidate(ctx, detailKey(id))
}

func (s *InstallationService) mapNotFound(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrInstallationNotFound
	}
	return err
}
