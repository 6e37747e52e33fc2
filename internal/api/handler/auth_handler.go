package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/api/metrics"
	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

type AuthHandler struct {
	auth     ports.Authenticator
	sessions ports.SessionManager
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.Authenticator, sessions ports.SessionManager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, log: log}
}

// LoginPage describes the login form, or sends a logged-in client to the
// dashboard.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  formPageResponse
// @Success      302  {string}  string  "already logged in, redirect to /dashboard"
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if _, ok := h.sessions.Current(c.Request().Context()); ok {
		return c.Redirect(http.StatusFound, domain.PathDashboard)
	}
	return c.JSON(http.StatusOK, formPageResponse{
		Page:     "login",
		Action:   domain.PathLogin,
		Fields:   []string{"email", "password"},
		Alt:      domain.PathRegister,
		AltLabel: "Don't have an account? Register here",
	})
}

// Login authenticates the user and binds the session to this client.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	identity, role, err := h.auth.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid_credentials"
		}
		metrics.LoginTotal.WithLabelValues(result).Inc()
		return err
	}

	if err := h.sessions.Save(ctx, identity, role); err != nil {
		metrics.LoginTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginTotal.WithLabelValues("success").Inc()

	h.log.Info().
		Str("user", identity.Name).
		Str("role", role.String()).
		Msg("user logged in")

	return c.JSON(http.StatusOK, authResponse{
		User:     newUserResponse(identity, role),
		Redirect: domain.PathDashboard,
	})
}

// RegisterPage describes the registration form.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  formPageResponse
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	roles := make([]string, 0, len(domain.AllRoles))
	for _, r := range domain.AllRoles {
		roles = append(roles, r.String())
	}
	return c.JSON(http.StatusOK, formPageResponse{
		Page:     "register",
		Action:   domain.PathRegister,
		Fields:   []string{"name", "email", "password", "role"},
		Roles:    roles,
		Alt:      domain.PathLogin,
		AltLabel: "Already have an account? Login here",
	})
}

// Register creates an account. It does not log the new user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, role, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     domain.ParseRole(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		User:     newUserResponse(identity, role),
		Message:  "Registration successful! Please login.",
		Redirect: domain.PathLogin,
	})
}

// Logout clears the client's session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      302  {string}  string  "redirect to /login"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, domain.PathLogin)
}
