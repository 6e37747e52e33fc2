package domain

import "testing"

func TestRouteFromPath(t *testing.T) {
	for _, k := range AllRoutes {
		if got := RouteFromPath(k.Path()); got != k {
			t.Fatalf("RouteFromPath(%q): expected %s, got %s", k.Path(), k, got)
		}
		if got := RouteFromPath(k.Path() + "/"); got != k {
			t.Fatalf("trailing slash not ignored for %s", k)
		}
	}

	for _, p := range []string{"/", "/notifications", "/login", "/patients/12", "patients", ""} {
		if got := RouteFromPath(p); got != RouteUnknown {
			t.Fatalf("RouteFromPath(%q): expected unknown, got %s", p, got)
		}
	}
}

func TestRouteKey_Names(t *testing.T) {
	if RouteLabTests.String() != "lab-tests" {
		t.Fatalf("unexpected name %q", RouteLabTests.String())
	}
	if RouteUnknown.String() != "unknown" || RouteKey(77).Path() != "" {
		t.Fatalf("unknown routes must have no path")
	}
	if len(AllRoutes) != 9 {
		t.Fatalf("expected nine protected sections, got %d", len(AllRoutes))
	}
}
