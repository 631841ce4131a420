package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeStore represents primary store (SQLite, MongoDB) errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeValidation represents rejected client input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents lookups with no matching record
	ErrorTypeNotFound ErrorType = "not_found"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrMissingFields is returned when an add request lacks name or address
var ErrMissingFields = NewBaseError(ErrorTypeValidation, "Please provide both name and address.", nil)

// ErrMissingName is returned when a search request has no name
var ErrMissingName = NewBaseError(ErrorTypeValidation, "Name parameter required", nil)

// ErrRecordNotFound is returned when no record exists for a name
type ErrRecordNotFound struct {
	*BaseError
	Name string
}

func NewRecordNotFound(name string) *ErrRecordNotFound {
	return &ErrRecordNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("no record found for name: %s", name), nil),
		Name:      name,
	}
}

// Store Errors

// ErrStoreConnectionFailed is returned when the primary store cannot be opened
type ErrStoreConnectionFailed struct {
	*BaseError
	Backend string
}

func NewStoreConnectionFailed(backend string, err error) *ErrStoreConnectionFailed {
	return &ErrStoreConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to %s", backend), err),
		Backend:   backend,
	}
}

// ErrStoreOperationFailed is returned when a read or write against the primary store fails
type ErrStoreOperationFailed struct {
	*BaseError
	Operation string
}

func NewStoreOperationFailed(operation string, err error) *ErrStoreOperationFailed {
	return &ErrStoreOperationFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store operation failed: %s", operation), err),
		Operation: operation,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if baseErr := asBaseError(err); baseErr != nil && baseErr.Type == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// asBaseError extracts the BaseError from err itself, without following the wrap chain
func asBaseError(err error) *BaseError {
	switch e := err.(type) {
	case *BaseError:
		return e
	case interface{ Base() *BaseError }:
		return e.Base()
	}
	return nil
}

// Base exposes the embedded BaseError of typed errors
func (e *BaseError) Base() *BaseError {
	return e
}
