package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAccessDenied is returned when a resource exists but belongs to a
// different account than the caller. Kept distinct from ErrNotFound so
// handlers can map it to HTTP 403 rather than 404.
var ErrAccessDenied = errors.New("access denied")

// ErrRateLimited is returned when a local request budget is exhausted before
// any upstream call is made, or when the upstream itself reports 429.
// Handlers should map this to HTTP 429.
var ErrRateLimited = errors.New("rate limited")
