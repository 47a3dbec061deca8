// Package errors provides custom error types for the brandmap system.
// These errors enable programmatic error checking at the item boundary of the
// ingestion pipeline, where every failure must be classified and recorded
// rather than aborting the batch.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the brandmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrUnresolved indicates that a label matched no registry entity at
	// any tier
	ErrUnresolved = errors.New("unresolved label")

	// ErrFetchFailed indicates that a source asset was unreachable or
	// returned a non-2xx status
	ErrFetchFailed = errors.New("fetch failed")

	// ErrStorageFailed indicates that the object store rejected a write
	ErrStorageFailed = errors.New("storage failed")

	// ErrRegistryFailed indicates a registry read or write error
	ErrRegistryFailed = errors.New("registry failed")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrRateLimited indicates that an upstream API rate limit was exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// FetchError represents a failure to download a candidate asset from its
// scraped source URL.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrFetchFailed || target == ErrRateLimited
	}
	return target == ErrFetchFailed
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{URL: url, StatusCode: statusCode, Err: err}
}

// StorageError represents an object store rejecting a write.
type StorageError struct {
	Key     string
	Bucket  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.Bucket != "" {
		return fmt.Sprintf("storage write %s/%s: %s", e.Bucket, e.Key, e.Message)
	}
	return fmt.Sprintf("storage write %s: %s", e.Key, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailed
}

// NewStorageError creates a new StorageError
func NewStorageError(bucket, key string, err error) *StorageError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &StorageError{Bucket: bucket, Key: key, Message: message, Err: err}
}

// RegistryError represents a registry read or write failure.
type RegistryError struct {
	Operation string // "list", "find", "insert", "update"
	Resource  string // "entity", "media"
	ID        string
	Err       error
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("registry %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("registry %s %s: %v", e.Operation, e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RegistryError) Is(target error) bool {
	return target == ErrRegistryFailed
}

// NewRegistryError creates a new RegistryError
func NewRegistryError(operation, resource, id string, err error) *RegistryError {
	return &RegistryError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// AmbiguousMatchError records that a label matched more than one entity at the
// same tier. It is a warning, not a fatal condition: resolution still picks
// the first candidate in registry iteration order.
type AmbiguousMatchError struct {
	Label      string
	Candidates []string
}

// Error implements the error interface
func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match for %q: %d candidates %v",
		e.Label, len(e.Candidates), e.Candidates)
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// APIError represents an error response from an upstream HTTP API, such as
// the scraping service.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// IOError represents an error during local I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnresolved checks if an error indicates an unresolved label
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolved)
}

// IsFetchFailure checks if an error is a fetch failure
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsStorageFailure checks if an error is a storage failure
func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailed)
}

// IsRegistryFailure checks if an error is a registry failure
func IsRegistryFailure(err error) bool {
	return errors.Is(err, ErrRegistryFailed)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCanceled checks if an error is a cancellation error. Context deadlines
// count: an item aborted by a caller deadline is the same abort as one
// aborted by an explicit cancel.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapRegistry wraps an error as a RegistryError
func WrapRegistry(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewRegistryError(operation, resource, id, err)
}

// WrapStorage wraps an error as a StorageError
func WrapStorage(bucket, key string, err error) error {
	if err == nil {
		return nil
	}
	return NewStorageError(bucket, key, err)
}
