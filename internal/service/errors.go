// Package service implements the business rules of the item-sharing
// backend: the booking lifecycle, item catalog rules, item request
// aggregation and user accounts. Services speak to storage through
// narrow interfaces so tests can substitute mocks, and report
// failures as coded errors that handlers translate to HTTP statuses.
package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrCode classifies a service failure for the transport layer.
type ErrCode string

const (
	// CodeNotFound covers missing users, items, bookings and
	// requests, and authorization failures that are deliberately
	// indistinguishable from a missing resource.
	CodeNotFound ErrCode = "NOT_FOUND"
	// CodeValidation covers malformed input: inverted date ranges,
	// unavailable items, pagination bounds, blank text.
	CodeValidation ErrCode = "VALIDATION"
	// CodeConflict covers duplicate emails and status transitions
	// that the current state forbids.
	CodeConflict ErrCode = "CONFLICT"
	// CodeUnknownState covers an unrecognized booking state filter.
	CodeUnknownState ErrCode = "UNKNOWN_STATE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

// Errorf builds a coded error with a formatted message.
func Errorf(code ErrCode, format string, args ...any) error {
	return codedError{code: code, msg: fmt.Sprintf(format, args...)}
}

// Code extracts the error code, or the empty string for errors that
// did not originate in this package (treated as internal).
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// checkPage rejects out-of-bounds pagination instead of clamping.
func checkPage(from, size int) error {
	if size < 1 || from < 0 {
		return Errorf(CodeValidation, "page size must be at least 1 and offset non-negative (from=%d, size=%d)", from, size)
	}
	return nil
}

// Clock abstracts "now" so time-window rules are testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
