/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"context"
	"fmt"
	"sort"

	"github.com/suparena/tablescope/errors"
	"github.com/suparena/tablescope/querymodels"
	"github.com/suparena/tablescope/store"
)

// ApplyBatch executes a heterogeneous list of put, delete and
// primary-key-change operations.
//
// Key changes run one at a time as atomic delete+put transactions; their
// failures are independent. The remaining puts and deletes run in bounded
// batches with retry-with-backoff for throttled ("unprocessed") items and a
// per-item fallback when a bulk call fails outright. Failures never abort
// the rest of the batch; they are aggregated per operation into the outcome.
func (e *Executor) ApplyBatch(ctx context.Context, ops []querymodels.BatchOperation,
	progress chan<- querymodels.WriteProgress) *querymodels.WriteOutcome {

	total := len(ops)
	outcome := &querymodels.WriteOutcome{}

	emit := func() {
		if progress != nil {
			progress <- querymodels.WriteProgress{
				Processed: outcome.Processed,
				Total:     total,
			}
		}
	}

	// Partition preserving relative order within each group.
	var keyChanges []querymodels.KeyChangeOperation
	var regular []querymodels.BatchOperation
	for _, op := range ops {
		if kc, ok := op.(querymodels.KeyChangeOperation); ok {
			keyChanges = append(keyChanges, kc)
		} else {
			regular = append(regular, op)
		}
	}

	for _, kc := range keyChanges {
		err := e.store.TransactWrite(ctx, []store.TransactItem{
			{Delete: &store.TransactDelete{TableName: kc.TableName, Key: kc.OldKey}},
			{Put: &store.TransactPut{TableName: kc.TableName, Item: kc.NewItem}},
		})
		if err != nil {
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("primary key change in table %q failed: %v", kc.TableName, err))
		} else {
			outcome.Processed++
		}
		emit()
	}

	for begin := 0; begin < len(regular); begin += maxBatchSize {
		end := begin + maxBatchSize
		if end > len(regular) {
			end = len(regular)
		}

		// Bulk writes are issued per table-set.
		requests := make(map[string][]store.WriteRequest)
		for _, op := range regular[begin:end] {
			switch o := op.(type) {
			case querymodels.PutOperation:
				requests[o.TableName] = append(requests[o.TableName], store.WriteRequest{PutItem: o.Item})
			case querymodels.DeleteOperation:
				requests[o.TableName] = append(requests[o.TableName], store.WriteRequest{DeleteKey: o.Key})
			}
		}

		applied, errs := e.writeChunk(ctx, requests)
		outcome.Processed += applied
		outcome.Errors = append(outcome.Errors, errs...)
		emit()
	}

	outcome.Success = len(outcome.Errors) == 0
	return outcome
}

// writeChunk drives one ≤25-operation chunk to completion: bulk call,
// unprocessed-item retries with exponential backoff, and the per-item
// fallback on a hard failure. Operations already acknowledged are never
// re-attempted.
func (e *Executor) writeChunk(ctx context.Context, requests map[string][]store.WriteRequest) (int, []string) {
	processed := 0
	pending := requests

	for attempt := 1; ; attempt++ {
		unprocessed, err := e.store.BatchWrite(ctx, pending)
		if err != nil {
			// Hard failure of the bulk call itself. Only the still-pending
			// requests are retried individually.
			applied, errs := e.writeIndividually(ctx, pending)
			return processed + applied, errs
		}

		processed += countRequests(pending) - countRequests(unprocessed)
		if countRequests(unprocessed) == 0 {
			return processed, nil
		}

		if attempt >= e.maxWriteAttempts {
			var errs []string
			for _, table := range sortedTables(unprocessed) {
				errs = append(errs, errors.NewUnprocessedError(table, len(unprocessed[table]), attempt).Error())
			}
			return processed, errs
		}

		// delay = base * 2^(attempt-1)
		if err := e.sleep(ctx, e.backoffBase<<(attempt-1)); err != nil {
			var errs []string
			for _, table := range sortedTables(unprocessed) {
				errs = append(errs, fmt.Sprintf("%d items in table %q abandoned: %v",
					len(unprocessed[table]), table, err))
			}
			return processed, errs
		}
		pending = unprocessed
	}
}

// writeIndividually is the safe fallback: one store call per operation, so
// a single bad item cannot sink its whole chunk.
func (e *Executor) writeIndividually(ctx context.Context, requests map[string][]store.WriteRequest) (int, []string) {
	processed := 0
	var errs []string

	for _, table := range sortedTables(requests) {
		for _, req := range requests[table] {
			var err error
			if req.PutItem != nil {
				err = e.store.Put(ctx, table, req.PutItem)
			} else {
				err = e.store.Delete(ctx, table, req.DeleteKey)
			}
			if err != nil {
				errs = append(errs, fmt.Sprintf("write to table %q failed: %v", table, err))
			} else {
				processed++
			}
		}
	}
	return processed, errs
}

func countRequests(requests map[string][]store.WriteRequest) int {
	n := 0
	for _, reqs := range requests {
		n += len(reqs)
	}
	return n
}

func sortedTables(requests map[string][]store.WriteRequest) []string {
	tables := make([]string, 0, len(requests))
	for table := range requests {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
