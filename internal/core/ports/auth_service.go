package ports

import (
	"context"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Authenticator verifies credentials and creates accounts. It is satisfied by
// the remote REST API client and by the local mongo-backed service.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.UserIdentity, domain.Role, error)
	Register(ctx context.Context, in RegisterInput) (domain.UserIdentity, domain.Role, error)
}
