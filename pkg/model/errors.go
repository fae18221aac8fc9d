package model

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrExists is returned when trying to create a record that already exists.
	ErrExists = errors.New("record already exists")
	// ErrPreconditionFailed is returned when a conditional update fails.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrPermissionDenied is returned when the caller lacks access.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidQuery is returned when a list request is malformed.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCanceled is returned when the operation is canceled by the client.
	ErrCanceled = errors.New("operation canceled")
)

// WrapError converts context cancellation errors to ErrCanceled and passes
// everything else through unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsCanceled(err) {
		return ErrCanceled
	}
	return err
}

// IsCanceled returns true if the error is due to context cancellation or
// deadline exceeded. It checks both direct context errors and wrapped errors
// (e.g., from the MongoDB driver).
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, ErrCanceled) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "context canceled") || strings.Contains(errStr, "context deadline exceeded")
}
