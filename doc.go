/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package tablescope is the query, scan and write engine behind a DynamoDB
table browser.

It turns structured key, sort-key and filter descriptions into store
expressions, drives paginated reads with incremental progress and
cooperative cancellation, and applies mixed batches of puts, deletes and
primary-key changes with bounded chunking and retry.

The root package manages named sessions, one per connection profile:

	sessions := tablescope.NewSessionManager()
	session, err := sessions.Open(ctx, prof)
	if err != nil {
		...
	}
	result, err := session.Exec.Query(ctx, desc, 500, progressCh)

Subpackages:

  - querymodels: request and response value types
  - expression: key-condition, filter and update expression building
  - registry: cancellation flags keyed by query id
  - executor: the paginated read loop and the write batcher
  - store, store/ddb: the store boundary and its DynamoDB implementation
  - profile: connection profiles (YAML + environment)
*/
package tablescope
