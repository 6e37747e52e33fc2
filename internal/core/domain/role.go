package domain

import "strings"

// Role is the closed set of portal roles. The zero value RoleNone carries no
// access and is what any unrecognised role string parses to.
type Role uint8

const (
	RoleNone Role = iota
	RoleAdmin
	RoleDoctor
	RolePatient
)

// AllRoles lists every assignable role in a stable order.
var AllRoles = []Role{RoleAdmin, RoleDoctor, RolePatient}

// ParseRole maps the wire representation (ADMIN, DOCTOR, PATIENT) to a Role.
// Matching is exact; "admin" or " ADMIN" are RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "ADMIN":
		return RoleAdmin
	case "DOCTOR":
		return RoleDoctor
	case "PATIENT":
		return RolePatient
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleDoctor:
		return "DOCTOR"
	case RolePatient:
		return "PATIENT"
	case RoleNone:
		return ""
	default:
		return ""
	}
}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	default:
		return false
	}
}

// RoleSet is an immutable set of roles stored as a bitmask.
type RoleSet uint8

// NewRoleSet builds a set from the given roles, ignoring invalid ones.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.With(r)
	}
	return s
}

func (s RoleSet) With(r Role) RoleSet {
	if !r.Valid() {
		return s
	}
	return s | 1<<r
}

// Has reports whether r is a member. RoleNone is never a member.
func (s RoleSet) Has(r Role) bool {
	if !r.Valid() {
		return false
	}
	return s&(1<<r) != 0
}

func (s RoleSet) Empty() bool { return s == 0 }

// Roles returns the members in AllRoles order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(AllRoles))
	for _, r := range AllRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(AllRoles))
	for _, r := range s.Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, ",")
}
