package hmsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

// loginData is the data payload of /auth/login and /auth/register.
type loginData struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// flexID accepts the user id as either a JSON number or a string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// RemoteAuthenticator authenticates against the REST API's /auth endpoints.
type RemoteAuthenticator struct {
	client *Client
}

func NewRemoteAuthenticator(client *Client) *RemoteAuthenticator {
	return &RemoteAuthenticator{client: client}
}

var _ ports.Authenticator = (*RemoteAuthenticator)(nil)

func (a *RemoteAuthenticator) Login(ctx context.Context, email, password string) (domain.UserIdentity, domain.Role, error) {
	data, err := a.client.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		if IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusBadRequest) {
			return domain.UserIdentity{}, domain.RoleNone, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		return domain.UserIdentity{}, domain.RoleNone, err
	}
	return decodeLogin(data)
}

func (a *RemoteAuthenticator) Register(ctx context.Context, in ports.RegisterInput) (domain.UserIdentity, domain.Role, error) {
	data, err := a.client.Post(ctx, "/auth/register", map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
		"role":     in.Role.String(),
	})
	if err != nil {
		return domain.UserIdentity{}, domain.RoleNone, err
	}
	return decodeLogin(data)
}

// decodeLogin rejects a successful response whose role is outside the
// closed set; such a user would have no access anyway.
func decodeLogin(data json.RawMessage) (domain.UserIdentity, domain.Role, error) {
	var ld loginData
	if err := json.Unmarshal(data, &ld); err != nil {
		return domain.UserIdentity{}, domain.RoleNone, &Error{Message: "malformed login response", Err: err}
	}
	role := domain.ParseRole(ld.Role)
	if !role.Valid() {
		return domain.UserIdentity{}, domain.RoleNone, fmt.Errorf("login response role %q: %w", ld.Role, domain.ErrUnknownRole)
	}
	return domain.UserIdentity{ID: string(ld.ID), Name: ld.Name, Email: ld.Email}, role, nil
}
