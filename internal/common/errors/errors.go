package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryNotFound   ErrorCategory = "NOT_FOUND"
	CategoryConflict   ErrorCategory = "CONFLICT"
	CategoryInternal   ErrorCategory = "INTERNAL"
	CategoryExternal   ErrorCategory = "EXTERNAL"
	CategoryRateLimit  ErrorCategory = "RATE_LIMIT"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Details() map[string]any
	TraceID() string
	Unwrap() error
	WithCause(cause error) DomainError
	WithDetails(details map[string]any) DomainError
	WithTraceID(traceID string) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	details  map[string]any
	traceID  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Details() map[string]any {
	return e.details
}

func (e *domainError) TraceID() string {
	return e.traceID
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches any domain error carrying the same code, so copies produced by
// WithCause/WithDetails still satisfy errors.Is against their sentinel.
func (e *domainError) Is(target error) bool {
	var other *domainError
	if !errors.As(target, &other) {
		return false
	}
	return other.code == e.code
}

func (e *domainError) clone() *domainError {
	c := *e
	return &c
}

func (e *domainError) WithCause(cause error) DomainError {
	c := e.clone()
	c.cause = cause
	return c
}

func (e *domainError) WithDetails(details map[string]any) DomainError {
	c := e.clone()
	c.details = details
	return c
}

func (e *domainError) WithTraceID(traceID string) DomainError {
	c := e.clone()
	c.traceID = traceID
	return c
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryInternal,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrValidationFailed = NewDomainError(
		"VALIDATION_FAILED",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid request data",
	)

	ErrPersistenceFailed = NewDomainError(
		"PERSISTENCE_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"failed to save prayer intention",
	)

	ErrFetchFailed = NewDomainError(
		"FETCH_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"failed to fetch prayer intentions",
	)

	ErrStoreUnavailable = NewDomainError(
		"STORE_UNAVAILABLE",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"store unavailable",
	)

	ErrStoreConstraint = NewDomainError(
		"STORE_CONSTRAINT",
		CategoryConflict,
		http.StatusConflict,
		"store constraint violated",
	)

	ErrConfigurationMissing = NewDomainError(
		"CONFIGURATION_MISSING",
		CategoryInternal,
		http.StatusInternalServerError,
		"notification configuration missing",
	)

	ErrDeliveryFailed = NewDomainError(
		"DELIVERY_FAILED",
		CategoryExternal,
		http.StatusBadGateway,
		"notification delivery failed",
	)

	ErrGenerationFailed = NewDomainError(
		"GENERATION_FAILED",
		CategoryExternal,
		http.StatusInternalServerError,
		"failed to process chat message",
	)

	ErrCircuitOpen = NewDomainError(
		"CIRCUIT_OPEN",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"circuit breaker is open",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrRateLimited = NewDomainError(
		"RATE_LIMITED",
		CategoryRateLimit,
		http.StatusTooManyRequests,
		"rate limit exceeded",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"an unexpected error occurred",
	)
)
