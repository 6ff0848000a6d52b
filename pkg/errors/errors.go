package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category

type ErrorType int

// Domain errors - raised while turning forecast data into a notification
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeMalformedInterval
	ErrorTypeMalformedResponse
	ErrorTypeNoMatchingForecast
	ErrorTypeEmptyWindow
	ErrorTypeUnsupportedTimeSpec

	// Infrastructure errors - external systems and storage
	ErrorTypeFetchFailure
	ErrorTypeCache
	ErrorTypeDatabase
	ErrorTypeEmail

	// System errors
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeMalformedInterval:
		return "MALFORMED_INTERVAL"
	case ErrorTypeMalformedResponse:
		return "MALFORMED_RESPONSE"
	case ErrorTypeNoMatchingForecast:
		return "NO_MATCHING_FORECAST"
	case ErrorTypeEmptyWindow:
		return "EMPTY_WINDOW"
	case ErrorTypeUnsupportedTimeSpec:
		return "UNSUPPORTED_TIME_SPEC"
	case ErrorTypeFetchFailure:
		return "FETCH_FAILURE"
	case ErrorTypeCache:
		return "CACHE_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeEmail:
		return "EMAIL_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain error constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

func NewMalformedIntervalError(message string, cause error) *AppError {
	return Wrap(ErrorTypeMalformedInterval, message, cause)
}

func NewMalformedResponseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeMalformedResponse, message, cause)
}

func NewNoMatchingForecastError(message string) *AppError {
	return New(ErrorTypeNoMatchingForecast, message)
}

func NewEmptyWindowError(message string) *AppError {
	return New(ErrorTypeEmptyWindow, message)
}

func NewUnsupportedTimeSpecError(message string) *AppError {
	return New(ErrorTypeUnsupportedTimeSpec, message)
}

// Infrastructure error constructors
func NewFetchFailureError(message string, cause error) *AppError {
	return Wrap(ErrorTypeFetchFailure, message, cause)
}

func NewCacheError(message string, cause error) *AppError {
	return Wrap(ErrorTypeCache, message, cause)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewEmailError(message string, cause error) *AppError {
	return Wrap(ErrorTypeEmail, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// TypeOf returns the type of the outermost AppError in the chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func isType(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

func IsMalformedIntervalError(err error) bool {
	return isType(err, ErrorTypeMalformedInterval)
}

func IsMalformedResponseError(err error) bool {
	return isType(err, ErrorTypeMalformedResponse)
}

func IsNoMatchingForecastError(err error) bool {
	return isType(err, ErrorTypeNoMatchingForecast)
}

func IsEmptyWindowError(err error) bool {
	return isType(err, ErrorTypeEmptyWindow)
}

func IsUnsupportedTimeSpecError(err error) bool {
	return isType(err, ErrorTypeUnsupportedTimeSpec)
}

func IsFetchFailureError(err error) bool {
	return isType(err, ErrorTypeFetchFailure)
}

func IsCacheError(err error) bool {
	return isType(err, ErrorTypeCache)
}

func IsDatabaseError(err error) bool {
	return isType(err, ErrorTypeDatabase)
}

func IsEmailError(err error) bool {
	return isType(err, ErrorTypeEmail)
}

func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}
