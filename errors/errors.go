/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrInvalidInput is returned when a query, scan or update description is malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyUpdate is returned when an update expression is requested for zero fields
	ErrEmptyUpdate = errors.New("update contains no fields")

	// ErrStore is the root of all failures reported by the underlying store
	ErrStore = errors.New("store operation failed")

	// ErrUnprocessed is returned when a bulk write leaves items unprocessed after retries
	ErrUnprocessed = errors.New("unprocessed items remain")
)

// ValidationError represents a malformed query, filter or update description
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// EmptyUpdateError represents an update request with no fields to set
type EmptyUpdateError struct{}

func (e *EmptyUpdateError) Error() string {
	return "update expression requires at least one field"
}

func (e *EmptyUpdateError) Is(target error) bool {
	return target == ErrEmptyUpdate || target == ErrInvalidInput
}

// StoreError wraps a failure returned by the store client
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("store %s on table %q failed: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// UnprocessedError records bulk-write items the store never acknowledged,
// typically due to throttling. It is surfaced per batch after retry exhaustion.
type UnprocessedError struct {
	Table    string
	Count    int
	Attempts int
}

func (e *UnprocessedError) Error() string {
	return fmt.Sprintf("%d items in table %q not processed after %d attempts", e.Count, e.Table, e.Attempts)
}

func (e *UnprocessedError) Is(target error) bool {
	return target == ErrUnprocessed
}

// Helper functions for creating errors

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewStoreError wraps err as a StoreError for the given operation and table
func NewStoreError(op, table string, err error) error {
	return &StoreError{Op: op, Table: table, Err: err}
}

// NewUnprocessedError creates a new UnprocessedError
func NewUnprocessedError(table string, count, attempts int) error {
	return &UnprocessedError{Table: table, Count: count, Attempts: attempts}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreError checks if an error originated in the store client
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}

// IsUnprocessed checks if an error reports unacknowledged bulk-write items
func IsUnprocessed(err error) bool {
	return errors.Is(err, ErrUnprocessed)
}
