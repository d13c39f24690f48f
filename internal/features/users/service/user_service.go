package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/features/users/domain"
	"stockdesk/internal/features/users/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned when the user does not exist.
var ErrUserNotFound = errors.New("user not found")

const entity = "users"

// UserService manages admin accounts with optimistic cache updates: the
// predicted post-mutation list is written before the upstream call, the
// prior state is snapshotted for rollback, and the list is invalidated
// once the mutation settles regardless of outcome.
type UserService struct {
	provider ports.UserProvider
	qc       *querycache.QueryCache
	listTTL  time.Duration
	log      *zap.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(provider ports.UserProvider, qc *querycache.QueryCache, listTTL time.Duration) *UserService {
	return &UserService{
		provider: provider,
		qc:       qc,
		listTTL:  listTTL,
		log:      logger.Get(),
	}
}

func listKey() string {
	return querycache.ListKey(entity, nil)
}

// List returns all admin accounts, served from cache when fresh.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return querycache.FetchJSON(ctx, s.qc, listKey(), s.listTTL, func(ctx context.Context) ([]domain.User, error) {
		return s.provider.List(ctx)
	})
}

// Create creates a user. The list cache immediately shows the new user
// under a client-generated temporary id; on failure the prior list is
// restored byte-for-byte before the settle invalidation.
func (s *UserService) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	current, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	predicted := append(append([]domain.User{}, current...), domain.User{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Email:   input.Email,
		Role:    input.Role,
		Active:  input.Active,
		Pending: true,
	})

	snap, err := querycache.WriteOptimisticJSON(ctx, s.qc, listKey(), predicted, s.listTTL)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.Create(ctx, input)
	return s.settle(ctx, snap, user, err)
}

// Update replaces a user's editable fields with the same optimistic
// discipline as Create.
func (s *UserService) Update(ctx context.Context, id string, input ports.UserInput) (*domain.User, error) {
	current, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	predicted := make([]domain.User, 0, len(current))
	for _, u := range current {
		if u.ID == id {
			found = true
			u.Name = input.Name
			u.Email = input.Email
			u.Role = input.Role
			u.Active = input.Active
			u.Pending = true
		}
		predicted = append(predicted, u)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	snap, err := querycache.WriteOptimisticJSON(ctx, s.qc, listKey(), predicted, s.listTTL)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.Update(ctx, id, input)
	return s.settle(ctx, snap, user, err)
}

// Delete removes a user. The list cache drops the user immediately; a
// failed delete brings the user back via rollback.
func (s *UserService) Delete(ctx context.Context, id string) error {
	current, err := s.List(ctx)
	if err != nil {
		return err
	}

	predicted := make([]domain.User, 0, len(current))
	for _, u := range current {
		if u.ID != id {
			predicted = append(predicted, u)
		}
	}
	if len(predicted) == len(current) {
		return ErrUserNotFound
	}

	snap, err := querycache.WriteOptimisticJSON(ctx, s.qc, listKey(), predicted, s.listTTL)
	if err != nil {
		return err
	}

	_, err = s.settle(ctx, snap, nil, s.provider.Delete(ctx, id))
	return err
}

// settle finishes a mutation: rollback on failure, then invalidate the
// list so the next read refetches the authoritative state. Invalidation
// runs on both outcomes.
func (s *UserService) settle(ctx context.Context, snap querycache.Snapshot, user *domain.User, mutationErr error) (*domain.User, error) {
	if mutationErr != nil {
		if err := s.qc.Restore(ctx, snap); err != nil {
			s.log.Error("optimistic rollback failed",
				zap.String("key", snap.Key()),
				zap.Error(err),
			)
		}
	}

	if err := s.qc.InvalidateLists(ctx, entity); err != nil {
		s.log.Error("settle invalidation failed",
			zap.String("key", snap.Key()),
			zap.Error(err),
		)
	}

	if mutationErr != nil {
		return nil, s.mapNotFound(mutationErr)
	}
	return user, nil
}

func (s *UserService) mapNotFound(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrUserNotFound
	}
	return err
}
