package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrInvalidOTP, http.StatusUnauthorized},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{apperrors.ErrAlreadyProcessed, http.StatusConflict},
		{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{apperrors.ErrInsufficientPosition, http.StatusUnprocessableEntity},
		{apperrors.ErrInvalidAmount, http.StatusBadRequest},
		{apperrors.ErrAccountNotActive, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", apperrors.ErrValidation), http.StatusBadRequest},
		{apperrors.NewAppError(500, "db down", apperrors.ErrNotFound), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
