// Package policy holds the RBAC table that gates both navigation and the
// sidebar menu. There is exactly one table per process and it never changes
// after construction.
package policy

import (
	"fmt"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// Entry binds a section to its menu metadata and the roles allowed into it.
type Entry struct {
	Route   domain.RouteKey
	Label   string
	Icon    string
	Allowed domain.RoleSet
}

// Table is an immutable, ordered RouteKey -> Entry mapping.
type Table struct {
	entries []Entry
	index   map[domain.RouteKey]int
}

var (
	all          = domain.NewRoleSet(domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient)
	adminOnly    = domain.NewRoleSet(domain.RoleAdmin)
	adminDoctor  = domain.NewRoleSet(domain.RoleAdmin, domain.RoleDoctor)
	adminPatient = domain.NewRoleSet(domain.RoleAdmin, domain.RolePatient)
)

var defaultTable = mustNew(
	Entry{Route: domain.RouteDashboard, Label: "Dashboard", Icon: "📊", Allowed: all},
	Entry{Route: domain.RoutePatients, Label: "Patients", Icon: "👥", Allowed: adminDoctor},
	Entry{Route: domain.RouteDoctors, Label: "Doctors", Icon: "👨‍⚕️", Allowed: adminOnly},
	Entry{Route: domain.RouteAppointments, Label: "Appointments", Icon: "📅", Allowed: all},
	Entry{Route: domain.RouteBilling, Label: "Billing", Icon: "💰", Allowed: adminPatient},
	Entry{Route: domain.RoutePrescriptions, Label: "Prescriptions", Icon: "💊", Allowed: all},
	Entry{Route: domain.RouteMedicines, Label: "Pharmacy", Icon: "💉", Allowed: adminOnly},
	Entry{Route: domain.RouteLabTests, Label: "Lab Tests", Icon: "🔬", Allowed: all},
	Entry{Route: domain.RouteReports, Label: "Reports", Icon: "📈", Allowed: adminOnly},
)

// Default returns the portal's policy table.
func Default() *Table { return defaultTable }

// New builds a table from entries in menu order. Every route may appear at
// most once and RouteUnknown is rejected.
func New(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[domain.RouteKey]int, len(entries)),
	}
	for _, e := range entries {
		if e.Route.Path() == "" {
			return nil, fmt.Errorf("policy: entry %q has no known route", e.Label)
		}
		if _, dup := t.index[e.Route]; dup {
			return nil, fmt.Errorf("policy: duplicate entry for %s", e.Route)
		}
		t.index[e.Route] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

func mustNew(entries ...Entry) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// AllowedRoles returns the roles permitted into route. A route missing from
// the table gets the empty set.
func (t *Table) AllowedRoles(route domain.RouteKey) domain.RoleSet {
	i, ok := t.index[route]
	if !ok {
		return 0
	}
	return t.entries[i].Allowed
}

// Allows reports whether role may enter route.
func (t *Table) Allows(route domain.RouteKey, role domain.Role) bool {
	return t.AllowedRoles(route).Has(role)
}

// Entries returns a copy of the table in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
