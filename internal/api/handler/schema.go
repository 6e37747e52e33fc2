package handler

import (
	"encoding/json"

	"github.com/hospital-ms/portal/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required,max=120"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Role     string `json:"role"     form:"role"     validate:"required,role"`
}

type userResponse struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

func newUserResponse(identity domain.UserIdentity, role domain.Role) userResponse {
	return userResponse{ID: identity.ID, Name: identity.Name, Email: identity.Email, Role: role.String()}
}

type authResponse struct {
	User     userResponse `json:"user"`
	Message  string       `json:"message,omitempty"`
	Redirect string       `json:"redirect"`
}

type formPageResponse struct {
	Page     string   `json:"page"`
	Action   string   `json:"action"`
	Fields   []string `json:"fields"`
	Roles    []string `json:"roles,omitempty"`
	Alt      string   `json:"alt"`
	AltLabel string   `json:"alt_label"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

type menuResponse struct {
	Role  string             `json:"role,omitempty"`
	Items []domain.MenuEntry `json:"items"`
}

type pageResponse struct {
	Route string             `json:"route"`
	Title string             `json:"title"`
	User  userResponse       `json:"user"`
	Menu  []domain.MenuEntry `json:"menu"`
	Data  json.RawMessage    `json:"data"`
}
