package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConfig       = errors.New("missing configuration")
	ErrUpstream     = errors.New("upstream error")

	// ErrNoDoodle means the query succeeded but there is nothing to show:
	// no records, the newest record belongs to the caller, or its image
	// payload could not be resolved.
	ErrNoDoodle = errors.New("no doodle available")
)
