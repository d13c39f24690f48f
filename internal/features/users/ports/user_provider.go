package ports

import (
	"context"

	"stockdesk/internal/features/users/domain"
)

// UserInput carries the editable user fields.
type UserInput struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Active bool        `json:"active"`
}

// UserProvider is the upstream source for admin accounts. The user list
// is small and unpaginated.
type UserProvider interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
