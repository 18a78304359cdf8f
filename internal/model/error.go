package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeStoreFailure     = "STORE_FAILURE"
	ErrCodeInvalidImage     = "INVALID_IMAGE"
	ErrCodeInvalidForm      = "INVALID_FORM"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a typed failure raised by repositories and services.
// Two domain errors match with errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFound creates a NOT_FOUND error.
func NewNotFound(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// NewConflict creates a CONFLICT error.
func NewConflict(message string) *DomainError {
	return NewDomainError(ErrCodeConflict, message)
}

// NewStoreFailure wraps an underlying store error. The message reads
// "<prefix>: <cause>".
func NewStoreFailure(prefix string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeStoreFailure,
		Message: fmt.Sprintf("%s: %v", prefix, err),
		Err:     err,
	}
}

// Error kinds, compared by code.
var (
	ErrNotFound     = NewDomainError(ErrCodeNotFound, "resource not found")
	ErrValidation   = NewDomainError(ErrCodeValidationFailed, "validation failed")
	ErrConflict     = NewDomainError(ErrCodeConflict, "conflict")
	ErrStoreFailure = NewDomainError(ErrCodeStoreFailure, "store failure")
	ErrInvalidImage = NewDomainError(ErrCodeInvalidImage, "invalid image")
)

// Messages shown to users.
const (
	MsgCategoriaTieneProductos = "No se puede eliminar la categoría porque tiene productos asociados"
	MsgCategoriaNombreExiste   = "Ya existe una categoría con este nombre"
	MsgCategoriaNombreOtra     = "Ya existe otra categoría con este nombre"
	MsgProductoCodigoExiste    = "Ya existe un producto con ese código"
)
