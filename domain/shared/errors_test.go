package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"invalid argument", ErrInvalidArgument("user cannot be nil"), IsInvalidArgument},
		{"not found", ErrNotFound("user"), IsNotFound},
		{"conflict", ErrConflict("user"), IsConflict},
		{"wrapped conflict", WrapConflict(errors.New("duplicate key"), "user"), IsConflict},
		{"wrapped unavailable", WrapUnavailable(errors.New("connection reset"), "create user"), IsUnavailable},
		{"wrapped not found", WrapNotFound(errors.New("no documents"), "user"), IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
		})
	}
}

func TestErrorPredicates_Disjoint(t *testing.T) {
	err := ErrNotFound("user")

	assert.False(t, IsInvalidArgument(err))
	assert.False(t, IsConflict(err))
	assert.False(t, IsUnavailable(err))
}

func TestErrorPredicates_PlainError(t *testing.T) {
	err := errors.New("plain")

	assert.False(t, IsInvalidArgument(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.False(t, IsUnavailable(err))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapUnavailable(cause, "create user")

	assert.ErrorIs(t, err, cause)
}
