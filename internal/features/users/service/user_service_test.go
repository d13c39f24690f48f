package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockdesk/internal/core/cache"
	"stockdesk/internal/core/metrics"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/features/users/domain"
	"stockdesk/internal/features/users/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserProvider struct {
	users     []domain.User
	listCalls int
	createErr error
	updateErr error
	deleteErr error

	// inFlight is invoked while a mutation is outstanding, before the
	// provider responds. Used to observe the optimistic cache state.
	inFlight func()
}

func (m *mockUserProvider) List(ctx context.Context) ([]domain.User, error) {
	m.listCalls++
	return append([]domain.User{}, m.users...), nil
}

func (m *mockUserProvider) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	if m.inFlight != nil {
		m.inFlight()
	}
	if m.createErr != nil {
		return nil, m.createErr
	}
	user := domain.User{ID: "101", Name: input.Name, Email: input.Email, Role: input.Role, Active: input.Active}
	m.users = append(m.users, user)
	return &user, nil
}

func (m *mockUserProvider) Update(ctx context.Context, id string, input ports.UserInput) (*domain.User, error) {
	if m.inFlight != nil {
		m.inFlight()
	}
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Name = input.Name
			return &m.users[i], nil
		}
	}
	return nil, errors.New("missing user")
}

func (m *mockUserProvider) Delete(ctx context.Context, id string) error {
	if m.inFlight != nil {
		m.inFlight()
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.users[:0]
	for _, u := range m.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	m.users = kept
	return nil
}

func newTestService(t *testing.T, provider ports.UserProvider) *UserService {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	qc := querycache.New(store, metrics.NewRecorder(prometheus.NewRegistry()))
	return NewUserService(provider, qc, time.Minute)
}

func TestUserService_Create_OptimisticStateVisibleInFlight(t *testing.T) {
	provider := &mockUserProvider{users: []domain.User{{ID: "1", Name: "Ana"}}}
	svc := newTestService(t, provider)
	ctx := context.Background()

	var inFlightList []domain.User
	provider.inFlight = func() {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		inFlightList = list
	}

	user, err := svc.Create(ctx, ports.UserInput{Name: "Bruno", Email: "bruno@example.com", Role: domain.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, "101", user.ID)

	// While the upstream call was outstanding the cache already showed
	// the new user under a temporary uuid, marked pending.
	require.Len(t, inFlightList, 2)
	pending := inFlightList[1]
	assert.True(t, pending.Pending)
	assert.Equal(t, "Bruno", pending.Name)
	_, parseErr := uuid.Parse(pending.ID)
	assert.NoError(t, parseErr, "temporary id must be a uuid")

	// After settle the list refetches and carries the backend id.
	final, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, final, 2)
	assert.Equal(t, "101", final[1].ID)
	assert.False(t, final[1].Pending)
}

func TestUserService_Create_FailureRollsBackAndSettles(t *testing.T) {
	provider := &mockUserProvider{
		users:     []domain.User{{ID: "1", Name: "Ana"}},
		createErr: errors.New("backend rejected"),
	}
	svc := newTestService(t, provider)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, provider.listCalls)

	_, err = svc.Create(ctx, ports.UserInput{Name: "Bruno", Email: "bruno@example.com"})
	require.Error(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, 2, provider.listCalls, "settle invalidation must force a refetch even after rollback")
}

func TestUserService_Delete_FailureBringsUserBack(t *testing.T) {
	provider := &mockUserProvider{
		users:     []domain.User{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bruno"}},
		deleteErr: errors.New("backend unavailable"),
	}
	svc := newTestService(t, provider)
	ctx := context.Background()

	var inFlightLen int
	provider.inFlight = func() {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		inFlightLen = len(list)
	}

	err := svc.Delete(ctx, "2")
	require.Error(t, err)
	assert.Equal(t, 1, inFlightLen, "user must disappear optimistically")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "failed delete must bring the user back")
}

func TestUserService_Update_UnknownUser(t *testing.T) {
	svc := newTestService(t, &mockUserProvider{users: []domain.User{{ID: "1"}}})

	_, err := svc.Update(context.Background(), "99", ports.UserInput{Name: "X"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_UnknownUser(t *testing.T) {
	svc := newTestService(t, &mockUserProvider{users: []domain.User{{ID: "1"}}})

	err := svc.Delete(context.Background(), "99")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
