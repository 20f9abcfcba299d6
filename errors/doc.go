/*
Package errors provides semantic error types for the tablescope execution core.

The package defines common failure scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrInvalidInput = errors.New("invalid input")
	    ErrEmptyUpdate  = errors.New("update contains no fields")
	    ErrStore        = errors.New("store operation failed")
	    ErrUnprocessed  = errors.New("unprocessed items remain")
	)

Usage:

	// Check error type
	result, err := exec.Query(ctx, desc, 500, progress)
	if err != nil {
	    if errors.IsStoreError(err) {
	        // The store rejected a page fetch; no partial result is returned
	        return nil, err
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewValidationError("sortKey", "between requires two values")
	err := errors.NewStoreError("query", "orders", cause)
	err := errors.NewUnprocessedError("orders", 7, 5)

Cancellation is deliberately not an error: a cancelled read returns a normal
result with its Cancelled flag set.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
