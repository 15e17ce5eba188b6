// Package errors provides enhanced error types with helpful context and suggestions
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

const (
	// Reference table errors
	ErrCodeTableLoad    ErrorCode = "TABLE_LOAD_FAILED"
	ErrCodeTableMissing ErrorCode = "TABLE_MISSING_COLUMN"

	// Answer errors
	ErrCodeResolverFault ErrorCode = "RESOLVER_FAULT"
	ErrCodeLLMRewrite    ErrorCode = "LLM_REWRITE_FAILED"
	ErrCodeLLMRateLimit  ErrorCode = "LLM_RATE_LIMITED"

	// Database errors
	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseQuery      ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeMigration          ErrorCode = "MIGRATION_FAILED"

	// Input validation errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Cache errors
	ErrCodeCacheRead  ErrorCode = "CACHE_READ_FAILED"
	ErrCodeCacheWrite ErrorCode = "CACHE_WRITE_FAILED"
)

// EnhancedError represents an error with additional context and helpful information
type EnhancedError struct {
	Code          ErrorCode              `json:"code"`
	Message       string                 `json:"message"`
	Details       string                 `json:"details,omitempty"`
	Suggestion    string                 `json:"suggestion,omitempty"`
	Documentation string                 `json:"documentation,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	Cause         error                  `json:"-"`
}

// Error implements the error interface
func (e *EnhancedError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Details != "" {
		sb.WriteString(fmt.Sprintf(": %s", e.Details))
	}
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(" (cause: %v)", e.Cause))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error chain unwrapping
func (e *EnhancedError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message with suggestions
func (e *EnhancedError) UserMessage() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString(fmt.Sprintf("\n\nDetails: %s", e.Details))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n\nSuggestion: %s", e.Suggestion))
	}

	if e.Documentation != "" {
		sb.WriteString(fmt.Sprintf("\n\nLearn more: %s", e.Documentation))
	}

	return sb.String()
}

// New creates a new EnhancedError
func New(code ErrorCode, message string) *EnhancedError {
	return &EnhancedError{
		Code:     code,
		Message:  message,
		Metadata: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with enhanced context
func Wrap(err error, code ErrorCode, message string) *EnhancedError {
	return &EnhancedError{
		Code:     code,
		Message:  message,
		Cause:    err,
		Metadata: make(map[string]interface{}),
	}
}

// WithDetails adds detailed information about the error
func (e *EnhancedError) WithDetails(details string) *EnhancedError {
	e.Details = details
	return e
}

// WithSuggestion adds a suggestion on how to fix the error
func (e *EnhancedError) WithSuggestion(suggestion string) *EnhancedError {
	e.Suggestion = suggestion
	return e
}

// WithMetadata adds additional metadata to the error
func (e *EnhancedError) WithMetadata(key string, value interface{}) *EnhancedError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Common error constructors with pre-configured messages

// NewTableLoadError creates an error for a reference table that could not be loaded
func NewTableLoadError(err error, source, table string) *EnhancedError {
	return Wrap(err, ErrCodeTableLoad, "Failed to load reference table").
		WithDetails(fmt.Sprintf("Could not read the %s table from the %s source", table, source)).
		WithSuggestion("Check that the workbook or database table exists and is readable. The service cannot start without its reference tables.").
		WithMetadata("source", source).
		WithMetadata("table", table)
}

// NewMissingColumnError creates an error for a sheet missing required columns
func NewMissingColumnError(sheet string, columns []string) *EnhancedError {
	return New(ErrCodeTableMissing, "Reference sheet is missing required columns").
		WithDetails(fmt.Sprintf("Sheet '%s' has no column named %s", sheet, strings.Join(columns, ", "))).
		WithSuggestion("Column names are matched exactly against the header row. Check for renamed or misspelled headers.").
		WithMetadata("sheet", sheet)
}

// NewResolverFaultError creates an error for a failure inside an answer resolver
func NewResolverFaultError(cause interface{}, resolver string) *EnhancedError {
	return New(ErrCodeResolverFault, "Answer resolver failed").
		WithDetails(fmt.Sprintf("The %s resolver failed while scanning its table: %v", resolver, cause)).
		WithMetadata("resolver", resolver)
}

// NewLLMRewriteError creates an error for a failed tone rewrite
func NewLLMRewriteError(err error, provider string) *EnhancedError {
	return Wrap(err, ErrCodeLLMRewrite, "Failed to rewrite answer").
		WithDetails(fmt.Sprintf("The %s completion call did not return a usable rewrite", provider)).
		WithSuggestion("The raw answer is served instead. Check the API key and provider status if this persists.").
		WithMetadata("provider", provider).
		WithMetadata("retryable", true)
}

// NewLLMRateLimitError creates an error for a rewrite refused by the local rate limiter
func NewLLMRateLimitError(provider string) *EnhancedError {
	return New(ErrCodeLLMRateLimit, "Rewrite rate limit reached").
		WithDetails("Too many rewrite requests in a short period; the raw answer is served instead").
		WithMetadata("provider", provider)
}

// NewInvalidInputError creates an error for invalid input
func NewInvalidInputError(field string, reason string) *EnhancedError {
	return New(ErrCodeInvalidInput, "Invalid input").
		WithDetails(fmt.Sprintf("Field '%s' is invalid: %s", field, reason)).
		WithMetadata("field", field)
}

// NewDatabaseConnectionError creates an error for database connection failures
func NewDatabaseConnectionError(err error) *EnhancedError {
	return Wrap(err, ErrCodeDatabaseConnection, "Database connection failed").
		WithDetails("Unable to connect to the reference table database").
		WithSuggestion("Check DB_HOST, DB_PORT and the credentials, or switch DATA_SOURCE to xlsx.").
		WithMetadata("retryable", true)
}

// NewDatabaseQueryError creates an error for database query failures
func NewDatabaseQueryError(err error, operation string) *EnhancedError {
	return Wrap(err, ErrCodeDatabaseQuery, "Database query failed").
		WithDetails(fmt.Sprintf("Failed to execute database operation: %s", operation)).
		WithSuggestion("Make sure the migrations have been applied with cmd/migrate.").
		WithMetadata("retryable", true)
}

// NewMigrationError creates an error for a failed schema migration
func NewMigrationError(err error, direction string) *EnhancedError {
	return Wrap(err, ErrCodeMigration, "Database migration failed").
		WithDetails(fmt.Sprintf("Migration %s did not complete", direction)).
		WithSuggestion("Inspect schema_migrations for a dirty version and fix it with the force command.").
		WithMetadata("direction", direction)
}

// NewCacheReadError creates an error for a failed rewrite cache lookup
func NewCacheReadError(err error, key string) *EnhancedError {
	return Wrap(err, ErrCodeCacheRead, "Failed to read rewrite cache").
		WithDetails("The cached rewrite could not be read; a fresh rewrite is requested instead").
		WithMetadata("key", key)
}

// NewCacheWriteError creates an error for a failed rewrite cache store
func NewCacheWriteError(err error, key string) *EnhancedError {
	return Wrap(err, ErrCodeCacheWrite, "Failed to write rewrite cache").
		WithMetadata("key", key)
}
