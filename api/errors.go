// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-blockpool.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidConfig     = errors.New("blockpool: invalid configuration")
	ErrOutOfMemory       = errors.New("blockpool: backing buffer allocation failed")
	ErrBlocksOutstanding = errors.New("blockpool: blocks still allocated")
	ErrDoubleRecycle     = errors.New("blockpool: block recycled twice")
	ErrForeignBlock      = errors.New("blockpool: block does not belong to this pool")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidConfig
	ErrCodeOutOfMemory
	ErrCodeBlocksOutstanding
	ErrCodeDoubleRecycle
	ErrCodeForeignBlock
	ErrCodeInternal
)

// sentinels maps codes to the package level errors they wrap.
var sentinels = map[ErrorCode]error{
	ErrCodeInvalidConfig:     ErrInvalidConfig,
	ErrCodeOutOfMemory:       ErrOutOfMemory,
	ErrCodeBlocksOutstanding: ErrBlocksOutstanding,
	ErrCodeDoubleRecycle:     ErrDoubleRecycle,
	ErrCodeForeignBlock:      ErrForeignBlock,
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel for the error code, or the cause set by WithCause.
func (e *Error) Unwrap() []error {
	var errs []error
	if s, ok := sentinels[e.Code]; ok {
		errs = append(errs, s)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause records the lower level error that triggered e.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or ErrCodeOK for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
