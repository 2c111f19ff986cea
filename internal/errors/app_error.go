package errors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeHeaderValidation  = "HEADER_VALIDATION"
	ErrCodeUnresolvableAsset = "UNRESOLVABLE_ASSET"
	ErrCodeWouldOverwrite    = "WOULD_OVERWRITE"
	ErrCodeCapacityExceeded  = "CAPACITY_EXCEEDED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

// HeaderValidationError aborts a whole import before any row is processed.
func HeaderValidationError(message string) *AppError {
	return NewAppError(ErrCodeHeaderValidation, message, http.StatusBadRequest)
}

// UnresolvableAssetError means no product number could be extracted from an
// image filename or URL.
func UnresolvableAssetError(message string) *AppError {
	return NewAppError(ErrCodeUnresolvableAsset, message, http.StatusBadRequest)
}

// WouldOverwriteError signals that assigning a thumbnail would replace an
// existing one and needs explicit confirmation.
func WouldOverwriteError(message string) *AppError {
	return NewAppError(ErrCodeWouldOverwrite, message, http.StatusConflict)
}

// CapacityExceededError rejects additions beyond the per-product detail
// image limit.
func CapacityExceededError(message string) *AppError {
	return NewAppError(ErrCodeCapacityExceeded, message, http.StatusConflict)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
