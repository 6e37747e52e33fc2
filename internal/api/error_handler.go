package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/api/handler"
	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/infrastructure/hmsapi"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Passes REST API rejections through with the API's message.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, handler.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), handler.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest, "unknown role"
	case errors.Is(err, domain.ErrNoClientContext):
		return http.StatusBadRequest, "missing client context"
	}

	var apiErr *hmsapi.Error
	if errors.As(err, &apiErr) {
		log.Warn().
			Err(err).
			Int("upstream_status", apiErr.Status).
			Str("path", c.Path()).
			Msg("api request failed")
		if apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError {
			return apiErr.Status, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	}
	if errors.Is(err, domain.ErrUpstream) {
		return http.StatusBadGateway, "upstream request failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
