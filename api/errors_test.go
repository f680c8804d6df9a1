package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsSentinel(t *testing.T) {
	err := NewError(ErrCodeOutOfMemory, "blockpool: arena allocation failed").
		WithContext("capacity", 8)

	assert.True(t, errors.Is(err, ErrOutOfMemory))
	assert.False(t, errors.Is(err, ErrInvalidConfig))
	assert.Equal(t, "blockpool: arena allocation failed (context: map[capacity:8])", err.Error())

	wrapped := fmt.Errorf("startup: %w", err)
	assert.ErrorIs(t, wrapped, ErrOutOfMemory)
	assert.Equal(t, ErrCodeOutOfMemory, CodeOf(wrapped))
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("cannot allocate memory")
	err := NewError(ErrCodeOutOfMemory, "mmap").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeOK, CodeOf(nil))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrCodeInternal, CodeOf(NewError(ErrCodeInternal, "x")))

	var e *Error
	assert.ErrorAs(t, NewError(ErrCodeDoubleRecycle, "twice"), &e)
	assert.Equal(t, ErrCodeDoubleRecycle, e.Code)
	assert.Empty(t, e.Unwrap()[1:], "no cause recorded")
}

func TestError_NoContext(t *testing.T) {
	e := &Error{Code: ErrCodeForeignBlock, Message: "foreign"}
	assert.Equal(t, "foreign", e.Error())
	e.WithContext("index", 3)
	assert.Equal(t, 3, e.Context["index"])
}
