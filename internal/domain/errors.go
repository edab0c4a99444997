package domain

import "errors"

// ErrNotConfigured is returned when an operation needs configuration that was
// not supplied (e.g. no API key). Callers should disable the feature rather
// than attempt requests that are bound to fail.
var ErrNotConfigured = errors.New("not configured")

// ErrValidation is returned when input fails a client-side check before any
// request is sent (e.g. an invalid form, an oversized avatar image).
var ErrValidation = errors.New("validation error")

// ErrBusy is returned when an operation is triggered while the same operation
// is still outstanding. At most one request per page section is in flight.
var ErrBusy = errors.New("operation already in progress")
