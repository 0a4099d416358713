package inventory

import (
	"errors"
	"fmt"
)

// Error is returned by store operations that cannot be completed.
// All errors are recoverable by the caller; repeating the same call against
// the same store yields the same outcome.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Target is the record name or key the operation was applied to, if any.
	Target string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeFull indicates an insert into an array store at capacity.
	ErrCodeFull ErrorCode = "FULL"

	// ErrCodeNotFound indicates a removal or search found no matching record.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeNotSorted indicates a binary search against a store not ordered
	// by the requested key.
	ErrCodeNotSorted ErrorCode = "NOT_SORTED"

	// ErrCodeInputTooLong indicates a record field exceeds its bound.
	ErrCodeInputTooLong ErrorCode = "INPUT_TOO_LONG"

	// ErrCodeInvalidRecord indicates a record that cannot be stored at all
	// (empty name, negative capacity).
	ErrCodeInvalidRecord ErrorCode = "INVALID_RECORD"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s: %s (target=%q)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsFull returns true if err is a FULL error.
func IsFull(err error) bool { return CodeOf(err) == ErrCodeFull }

// IsNotFound returns true if err is a NOT_FOUND error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsNotSorted returns true if err is a NOT_SORTED error.
func IsNotSorted(err error) bool { return CodeOf(err) == ErrCodeNotSorted }

// IsInputTooLong returns true if err is an INPUT_TOO_LONG error.
func IsInputTooLong(err error) bool { return CodeOf(err) == ErrCodeInputTooLong }

func newFullError(capacity int) *Error {
	return &Error{
		Code:    ErrCodeFull,
		Message: fmt.Sprintf("store is at capacity (%d)", capacity),
	}
}

func newNotFoundError(name string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "no record with that name",
		Target:  name,
	}
}

func newNotSortedError(want, have OrderState) *Error {
	return &Error{
		Code:    ErrCodeNotSorted,
		Message: fmt.Sprintf("binary search needs %s, store is %s", want, have),
	}
}
