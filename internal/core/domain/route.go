package domain

import "strings"

// RouteKey identifies one of the protected portal sections.
type RouteKey uint8

const (
	RouteUnknown RouteKey = iota
	RouteDashboard
	RoutePatients
	RouteDoctors
	RouteAppointments
	RouteBilling
	RoutePrescriptions
	RouteMedicines
	RouteLabTests
	RouteReports
)

// AllRoutes lists the protected sections in declaration order.
var AllRoutes = []RouteKey{
	RouteDashboard,
	RoutePatients,
	RouteDoctors,
	RouteAppointments,
	RouteBilling,
	RoutePrescriptions,
	RouteMedicines,
	RouteLabTests,
	RouteReports,
}

const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
)

// Path returns the URL path the section is mounted on.
func (k RouteKey) Path() string {
	switch k {
	case RouteDashboard:
		return PathDashboard
	case RoutePatients:
		return "/patients"
	case RouteDoctors:
		return "/doctors"
	case RouteAppointments:
		return "/appointments"
	case RouteBilling:
		return "/billing"
	case RoutePrescriptions:
		return "/prescriptions"
	case RouteMedicines:
		return "/medicines"
	case RouteLabTests:
		return "/lab-tests"
	case RouteReports:
		return "/reports"
	case RouteUnknown:
		return ""
	default:
		return ""
	}
}

// String returns the short section name used in logs and metric labels.
func (k RouteKey) String() string {
	if p := k.Path(); p != "" {
		return p[1:]
	}
	return "unknown"
}

// RouteFromPath resolves a request path to its section. Trailing slashes are
// ignored; anything else that is not an exact match is RouteUnknown.
func RouteFromPath(path string) RouteKey {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, k := range AllRoutes {
		if k.Path() == path {
			return k
		}
	}
	return RouteUnknown
}
