package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

// AuthService is the local authenticator used when the portal runs without
// the remote API. Accounts live in a UserRepository with bcrypt hashes.
type AuthService struct {
	repo ports.UserRepository
	cost int
}

func NewAuthService(repo ports.UserRepository) *AuthService {
	return &AuthService{repo: repo, cost: bcrypt.DefaultCost}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (domain.UserIdentity, domain.Role, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return domain.UserIdentity{}, domain.RoleNone, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return domain.UserIdentity{}, domain.RoleNone, domain.ErrUnknownRole
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.UserIdentity{}, domain.RoleNone, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.UserIdentity{}, domain.RoleNone, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return domain.UserIdentity{}, domain.RoleNone, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.UserIdentity{}, domain.RoleNone, err
	}
	return created.Identity(), created.Role, nil
}

// Login checks email and password. An unknown email and a wrong password both
// report ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.UserIdentity, domain.Role, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.UserIdentity{}, domain.RoleNone, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.UserIdentity{}, domain.RoleNone, domain.ErrInvalidCredentials
		}
		return domain.UserIdentity{}, domain.RoleNone, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.UserIdentity{}, domain.RoleNone, domain.ErrInvalidCredentials
	}
	return user.Identity(), user.Role, nil
}
