package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":   RoleAdmin,
		"DOCTOR":  RoleDoctor,
		"PATIENT": RolePatient,
		"admin":   RoleNone,
		" ADMIN":  RoleNone,
		"NURSE":   RoleNone,
		"":        RoleNone,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestRole_StringRoundTrip(t *testing.T) {
	for _, r := range AllRoles {
		if ParseRole(r.String()) != r {
			t.Fatalf("round trip failed for %v", r)
		}
	}
	if RoleNone.String() != "" || Role(42).String() != "" {
		t.Fatalf("non-roles must stringify empty")
	}
}

func TestRoleSet(t *testing.T) {
	s := NewRoleSet(RoleAdmin, RolePatient, RoleNone, Role(42))
	if !s.Has(RoleAdmin) || !s.Has(RolePatient) || s.Has(RoleDoctor) {
		t.Fatalf("unexpected membership: %s", s)
	}
	if s.Has(RoleNone) || s.Has(Role(42)) {
		t.Fatalf("invalid roles must never be members")
	}
	if s.String() != "ADMIN,PATIENT" {
		t.Fatalf("unexpected string: %q", s.String())
	}
	if !RoleSet(0).Empty() || s.Empty() {
		t.Fatalf("unexpected Empty result")
	}
	if s.With(RoleDoctor) == s {
		t.Fatalf("With must return a new set")
	}
}
