package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "insert failed", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrInternal)

	err = NewAppError(404, "missing", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInternal)

	assert.ErrorIs(t, NewAppError(500, "nil cause", nil), ErrInternal)
}

func TestInvalidAmountIsValidation(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidAmount, ErrValidation)
	assert.ErrorIs(t, ErrAccountNotActive, ErrValidation)
	assert.NotErrorIs(t, ErrInsufficientFunds, ErrValidation)
}

func TestIsBusiness(t *testing.T) {
	assert.True(t, IsBusiness(fmt.Errorf("confirm: %w", ErrInvalidOTP)))
	assert.True(t, IsBusiness(ErrInvalidAmount))
	assert.False(t, IsBusiness(nil))
	assert.False(t, IsBusiness(errors.New("socket closed")))
	assert.False(t, IsBusiness(NewAppError(500, "db down", ErrNotFound)))
}
