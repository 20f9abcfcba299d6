/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querymodels

// QueryProgress is pushed to the caller while a paginated read runs.
//
// The first event for a query carries only the QueryID so a concurrent
// caller can request cancellation before the first page returns. Items on
// each event are the items fetched since the previous event; concatenating
// Items across all events of one query reproduces the full result set in
// arrival order.
type QueryProgress struct {
	QueryID      string
	Count        int
	ScannedCount int
	ElapsedMs    int64
	// Items fetched since the previous progress event.
	Items []Item
	// IsComplete marks the final event of a query; any still-unsent items
	// are flushed with it.
	IsComplete bool
	Cancelled  bool
}

// WriteProgress is pushed to the caller after each internal write batch.
type WriteProgress struct {
	// Processed is the count of operations durably applied so far.
	Processed int
	// Total is the number of operations in the whole request.
	Total int
}
