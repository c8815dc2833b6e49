package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents different types of errors the engine can report
type ErrorCategory string

const (
	// Rejected before any computation runs
	ErrorCategoryValidation ErrorCategory = "VALIDATION"

	// Input data does not meet minimum requirements
	ErrorCategoryData ErrorCategory = "DATA"

	// Strategy configuration problems
	ErrorCategoryStrategy ErrorCategory = "STRATEGY"
)

// Sentinel errors for the engine's documented failure modes. Degraded
// conditions (missing sentiment sources, missing indicators) are not errors;
// they lower confidence instead.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNoActiveStrategy = errors.New("no active strategy configured")
)

// EngineError is a categorized error with component context
type EngineError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// NewEngineError creates a new categorized engine error
func NewEngineError(category ErrorCategory, component, operation, message string) *EngineError {
	return &EngineError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// WrapError wraps an existing error with engine error context
func WrapError(err error, category ErrorCategory, component, operation string) *EngineError {
	return &EngineError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    err.Error(),
		Underlying: err,
	}
}

// InsufficientData builds a DATA-category error carrying the sentinel
func InsufficientData(component, message string) *EngineError {
	return &EngineError{
		Category:   ErrorCategoryData,
		Component:  component,
		Operation:  "validate_input",
		Message:    message,
		Underlying: ErrInsufficientData,
	}
}

// InvalidParameter builds a VALIDATION-category error carrying the sentinel
func InvalidParameter(component, message string) *EngineError {
	return &EngineError{
		Category:   ErrorCategoryValidation,
		Component:  component,
		Operation:  "validate_params",
		Message:    message,
		Underlying: ErrInvalidParameter,
	}
}
