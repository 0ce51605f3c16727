// Package errors provides the structured error type shared by the registry
// store, the query layer and the HTTP adapter.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeNotFound ErrorType = "not_found"
	ErrorTypeCatalog  ErrorType = "catalog"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeComponentNotFound = "COMPONENT_NOT_FOUND"
	ErrCodeCatalogInvalid    = "CATALOG_INVALID"
	ErrCodeCatalogDuplicate  = "CATALOG_DUPLICATE_NAME"
	ErrCodeCatalogRead       = "CATALOG_READ"
	ErrCodeConfigInvalid     = "CONFIG_INVALID"
	ErrCodeInternalError     = "INTERNAL"
)

// ErrComponentNotFound is the comparison target for lookups of unknown names.
// errors.Is matches any RegistryError with the same type and code.
var ErrComponentNotFound = &RegistryError{
	Type:    ErrorTypeNotFound,
	Code:    ErrCodeComponentNotFound,
	Message: "Component not found",
}

// RegistryError is a structured error type with context.
type RegistryError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Component string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *RegistryError) Is(target error) bool {
	var t *RegistryError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *RegistryError) WithContext(key string, value interface{}) *RegistryError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *RegistryError) WithComponent(component string) *RegistryError {
	e.Component = component

	return e
}

// NewNotFoundError creates the error returned for an unknown component name.
func NewNotFoundError(name string) *RegistryError {
	return &RegistryError{
		Type:      ErrorTypeNotFound,
		Code:      ErrCodeComponentNotFound,
		Message:   "Component not found",
		Component: name,
	}
}

// NewCatalogError creates a catalog loading error.
func NewCatalogError(code, message string, cause error) *RegistryError {
	return &RegistryError{
		Type:    ErrorTypeCatalog,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *RegistryError {
	return &RegistryError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *RegistryError {
	return &RegistryError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound reports whether err is, or wraps, a component lookup miss.
func IsNotFound(err error) bool {
	var re *RegistryError
	if errors.As(err, &re) {
		return re.Type == ErrorTypeNotFound
	}

	return false
}

// IsCatalogError checks if an error came from loading the catalog.
func IsCatalogError(err error) bool {
	var re *RegistryError
	if errors.As(err, &re) {
		return re.Type == ErrorTypeCatalog
	}

	return false
}

// ErrorHandler provides centralized error logging.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err at a level chosen by its type. Lookup misses are part of
// normal operation and are not logged.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var re *RegistryError
	if !errors.As(err, &re) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch re.Type {
	case ErrorTypeNotFound:
		return
	case ErrorTypeCatalog, ErrorTypeConfig:
		h.logger.Error(ctx, err, "Startup error occurred",
			"type", re.Type,
			"code", re.Code)
	default:
		h.logger.Error(ctx, err, "Error occurred",
			"type", re.Type,
			"code", re.Code,
			"component", re.Component)
	}
}
