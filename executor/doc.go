/*
Package executor drives long-running reads and bulk writes against the
store boundary.

Reads are paginated: the executor threads each page's continuation token
into the next fetch, accumulates items toward a result target, and pushes
incremental QueryProgress events to the caller. Events are throttled to one
per 150ms by default, but no item is ever lost: whatever was fetched since
the last event is flushed with the final one. Cancellation is cooperative,
polled from the shared registry at the top of every iteration, and is a
normal completion path rather than an error.

Writes accept a mixed list of puts, deletes and primary-key changes.
Key changes become atomic delete+put transactions; everything else goes
through the store's bulk-write call in chunks of 25, with exponential
backoff on throttled items and a per-operation fallback when a bulk call
fails outright. The outcome reports progress per operation; partial failure
never aborts the remainder.

	exec := executor.New(client, registry.New())
	result, err := exec.Query(ctx, desc, 500, progressCh)
*/
package executor
