package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/api/middleware"
	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/policy"
	"github.com/hospital-ms/portal/internal/core/service"
)

func sectionContext(e *echo.Echo, path string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
	if sess != nil {
		c.Set(middleware.SessionKey, *sess)
	}
	return c, rec
}

func TestPageHandler_SectionRendersUserMenuAndData(t *testing.T) {
	e := newEcho()
	api := &stubFetcher{data: map[string]string{"/prescriptions": `[{"id":1}]`}}
	h := NewPageHandler(api, service.NewMenuProjector(policy.Default(), &stubSessions{}))

	sess := &domain.Session{Identity: domain.UserIdentity{Name: "Dr. Grey"}, Role: domain.RoleDoctor}
	c, rec := sectionContext(e, "/prescriptions", sess)
	if err := h.Section(domain.RoutePrescriptions)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Route string            `json:"route"`
		User  userResponse      `json:"user"`
		Menu  []json.RawMessage `json:"menu"`
		Data  json.RawMessage   `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Route != "/prescriptions" || resp.User.Role != "DOCTOR" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Menu) != 5 {
		t.Fatalf("expected 5 doctor menu entries, got %d", len(resp.Menu))
	}
	if string(resp.Data) != `[{"id":1}]` {
		t.Fatalf("unexpected data %s", resp.Data)
	}
}

func TestPageHandler_ReportsMergesSources(t *testing.T) {
	e := newEcho()
	api := &stubFetcher{data: map[string]string{
		"/reports/monthly-appointments": `[1]`,
		"/reports/monthly-revenue":      `[2]`,
	}}
	h := NewPageHandler(api, service.NewMenuProjector(policy.Default(), &stubSessions{}))

	c, rec := sectionContext(e, "/reports", &domain.Session{Identity: domain.UserIdentity{Name: "Root"}, Role: domain.RoleAdmin})
	if err := h.Section(domain.RouteReports)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if string(resp.Data["monthlyAppointments"]) != "[1]" || string(resp.Data["monthlyRevenue"]) != "[2]" {
		t.Fatalf("unexpected data %+v", resp.Data)
	}
	if len(api.paths) != 2 {
		t.Fatalf("expected two api calls, got %v", api.paths)
	}
}

func TestPageHandler_WithoutSessionFailsFast(t *testing.T) {
	e := newEcho()
	api := &stubFetcher{}
	h := NewPageHandler(api, service.NewMenuProjector(policy.Default(), &stubSessions{}))

	c, _ := sectionContext(e, "/patients", nil)
	err := h.Section(domain.RoutePatients)(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if len(api.paths) != 0 {
		t.Fatal("api must not be called without a session")
	}
}

func TestPageHandler_PropagatesAPIError(t *testing.T) {
	e := newEcho()
	api := &stubFetcher{err: domain.ErrUpstream}
	h := NewPageHandler(api, service.NewMenuProjector(policy.Default(), &stubSessions{}))

	c, _ := sectionContext(e, "/doctors", &domain.Session{Role: domain.RoleAdmin})
	if err := h.Section(domain.RouteDoctors)(c); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSectionSources_CoverEveryRoute(t *testing.T) {
	for _, r := range domain.AllRoutes {
		if len(sectionSources[r]) == 0 {
			t.Fatalf("route %s has no data source", r)
		}
		if sectionTitle(r) == "" {
			t.Fatalf("route %s has no title", r)
		}
	}
}
