package domain

import "time"

// GuardState is the outcome of evaluating a navigation attempt.
type GuardState uint8

const (
	StateUnauthenticated GuardState = iota
	StateAuthorized
	StateUnauthorized
)

func (s GuardState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// AccessEvent records a navigation that was redirected away from its target.
type AccessEvent struct {
	ClientID  string
	UserName  string
	Role      Role
	Path      string
	Route     RouteKey
	State     GuardState
	Timestamp time.Time
}
