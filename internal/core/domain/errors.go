package domain

import "errors"

var (
	ErrCorruptSession     = errors.New("corrupt session record")
	ErrNoClientContext    = errors.New("no client context")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUpstream           = errors.New("upstream api error")
)
