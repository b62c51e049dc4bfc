package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller does not own the referenced resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that no verified identity accompanied the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected storage or infrastructure failure.
var ErrInternal = errors.New("internal error")

// Ledger business failures. They are terminal results, never retried by the core.
var (
	ErrInvalidAmount        = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientPosition = errors.New("insufficient position")
	ErrInvalidOTP           = errors.New("invalid one-time passcode")
	ErrAlreadyProcessed     = errors.New("already processed")
	ErrAccountNotActive     = fmt.Errorf("%w: account is not active", ErrValidation)
)

// IsBusiness reports whether err is an expected business-rule failure rather than a
// storage or programming fault.
func IsBusiness(err error) bool {
	if err == nil || errors.Is(err, ErrInternal) {
		return false
	}
	for _, target := range []error{
		ErrNotFound, ErrValidation, ErrDuplicate, ErrForbidden, ErrUnauthorized,
		ErrInsufficientFunds, ErrInsufficientPosition, ErrInvalidOTP, ErrAlreadyProcessed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. A nil cause is recorded as ErrInternal.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause. Storage failures (code >= 500) also match ErrInternal.
func (e *AppError) Unwrap() []error {
	if e.Code >= 500 && !errors.Is(e.Err, ErrInternal) {
		return []error{e.Err, ErrInternal}
	}
	return []error{e.Err}
}
