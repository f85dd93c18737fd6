// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrUnavailable indicates a transient infrastructure failure.
// Operations never leave partial mutations behind, so callers may
// retry with backoff.
var ErrUnavailable = errors.New("service unavailable")
