package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_SkipsUnconfiguredBackends(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	h := NewHealthDependenciesHandler(nil, nil, stubPinger{})
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Dependencies) != 1 || resp.Dependencies["api"].Status != "ok" {
		t.Fatalf("unexpected dependencies %+v", resp.Dependencies)
	}
}

func TestReadiness_DegradedWhenAPIDown(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	h := NewHealthDependenciesHandler(nil, nil, stubPinger{err: errors.New("connection refused")})
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
