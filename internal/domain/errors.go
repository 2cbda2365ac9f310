package domain

import "errors"

// Sentinel errors shared across entities. Services return these (or entity
// specific sentinels) for expected business outcomes; infrastructure failures
// are wrapped with %w instead so callers can tell "final answer" from "retry".
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)
