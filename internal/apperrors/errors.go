package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks permission for the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidRate indicates an exchange rate that is zero or negative.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// ErrInvalidPercentage indicates an allocation percentage outside (0, 100].
var ErrInvalidPercentage = errors.New("allocation percentage must be greater than 0 and at most 100")

// ErrInvalidTransition indicates a workflow transition from a state that does not allow it.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotAuthorized indicates the actor does not hold the pending approval at the current level.
var ErrNotAuthorized = errors.New("actor is not the assigned approver")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token has expired")

// AllocationSumError indicates a non-empty allocation set whose percentages do
// not sum to exactly 100. It carries the actual sum for the caller.
type AllocationSumError struct {
	ActualSum decimal.Decimal
}

func (e *AllocationSumError) Error() string {
	return fmt.Sprintf("segment allocations must sum to 100, got %s", e.ActualSum.String())
}

// Is makes AllocationSumError match ErrValidation in errors.Is checks.
func (e *AllocationSumError) Is(target error) bool {
	return target == ErrValidation
}

// AppError wraps lower-level failures (typically from repositories) with a
// code the handler layer can translate to an HTTP status.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
