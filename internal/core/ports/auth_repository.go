package ports

import (
	"context"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// UserRepository persists the accounts used by the local authenticator.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
