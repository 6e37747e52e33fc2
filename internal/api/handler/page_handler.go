package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// Fetcher reads the data payload of a REST API path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (json.RawMessage, error)
}

type dataSource struct {
	key  string
	path string
}

// sectionSources maps each section to the API paths feeding it. Sections with
// several sources get an object keyed by source.
var sectionSources = map[domain.RouteKey][]dataSource{
	domain.RouteDashboard:     {{path: "/dashboard/summary"}},
	domain.RoutePatients:      {{path: "/patients"}},
	domain.RouteDoctors:       {{path: "/doctors"}},
	domain.RouteAppointments:  {{path: "/appointments"}},
	domain.RouteBilling:       {{path: "/billings"}},
	domain.RoutePrescriptions: {{path: "/prescriptions"}},
	domain.RouteMedicines:     {{path: "/medicines"}},
	domain.RouteLabTests:      {{path: "/lab-tests"}},
	domain.RouteReports: {
		{key: "monthlyAppointments", path: "/reports/monthly-appointments"},
		{key: "monthlyRevenue", path: "/reports/monthly-revenue"},
	},
}

// PageHandler renders guarded sections. Every API call it makes carries the
// session role through the client's transport.
type PageHandler struct {
	api  Fetcher
	menu MenuSource
}

func NewPageHandler(api Fetcher, menu MenuSource) *PageHandler {
	return &PageHandler{api: api, menu: menu}
}

// Section returns the handler for route. It must be mounted behind the Guard
// middleware for the same route.
//
// @Summary      Section page
// @Description  One of dashboard, patients, doctors, appointments, billing,
// @Description  prescriptions, medicines, lab-tests, reports. Redirects to
// @Description  /login without a session and to /dashboard when the role may
// @Description  not open the section.
// @Tags         sections
// @Produce      json
// @Param        section  path      string  true  "section name"
// @Success      200      {object}  pageResponse
// @Success      302      {string}  string  "redirect to /login or /dashboard"
// @Failure      502      {object}  map[string]string
// @Router       /{section} [get]
func (h *PageHandler) Section(route domain.RouteKey) echo.HandlerFunc {
	sources := sectionSources[route]
	title := sectionTitle(route)

	return func(c echo.Context) error {
		sess, err := ctxSession(c)
		if err != nil {
			return err
		}

		data, err := h.load(c.Request().Context(), sources)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, pageResponse{
			Route: route.Path(),
			Title: title,
			User:  newUserResponse(sess.Identity, sess.Role),
			Menu:  h.menu.Project(sess.Role),
			Data:  data,
		})
	}
}

func (h *PageHandler) load(ctx context.Context, sources []dataSource) (json.RawMessage, error) {
	switch len(sources) {
	case 0:
		return json.RawMessage("null"), nil
	case 1:
		data, err := h.api.Fetch(ctx, sources[0].path)
		if err != nil {
			return nil, err
		}
		return orNull(data), nil
	}

	merged := make(map[string]json.RawMessage, len(sources))
	for _, s := range sources {
		data, err := h.api.Fetch(ctx, s.path)
		if err != nil {
			return nil, err
		}
		merged[s.key] = orNull(data)
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("merge section data: %w", err)
	}
	return out, nil
}

func orNull(data json.RawMessage) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("null")
	}
	return data
}

func sectionTitle(route domain.RouteKey) string {
	switch route {
	case domain.RouteDashboard:
		return "Dashboard"
	case domain.RoutePatients:
		return "Patients"
	case domain.RouteDoctors:
		return "Doctors"
	case domain.RouteAppointments:
		return "Appointments"
	case domain.RouteBilling:
		return "Billing"
	case domain.RoutePrescriptions:
		return "Prescriptions"
	case domain.RouteMedicines:
		return "Medicines"
	case domain.RouteLabTests:
		return "Lab Tests"
	case domain.RouteReports:
		return "Reports"
	default:
		return ""
	}
}
