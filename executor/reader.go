/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/tablescope/errors"
	"github.com/suparena/tablescope/expression"
	"github.com/suparena/tablescope/querymodels"
	"github.com/suparena/tablescope/store"
)

// Query executes a key-based read repeatedly until maxResults items have
// accumulated, the store runs out of pages, or the caller cancels via the
// registry. Progress events are pushed to the progress channel (nil to
// disable); the caller is the sole consumer and must drain it.
//
// maxResults is a target, not a hard cap: the last page fetched may
// overshoot it, matching store paging granularity. maxResults <= 0 reads
// until the store is exhausted.
func (e *Executor) Query(ctx context.Context, desc *querymodels.QueryDescription, maxResults int,
	progress chan<- querymodels.QueryProgress) (*querymodels.BatchQueryResult, error) {

	keyExpr, filterExpr, names, values := expression.BuildKeyAndFilter(desc.KeyCondition, desc.Filters)

	build := func(startKey querymodels.Key) *store.PageRequest {
		return &store.PageRequest{
			TableName:                 desc.TableName,
			IndexName:                 desc.IndexName,
			KeyConditionExpression:    aws.String(keyExpr),
			FilterExpression:          filterExpr,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			Limit:                     desc.Limit,
			ScanIndexForward:          desc.ScanForward,
			ExclusiveStartKey:         startKey,
		}
	}

	return e.executePaginated(ctx, "query", desc.TableName, desc.QueryID,
		desc.ExclusiveStartKey, maxResults, build, progress)
}

// Scan is Query without a key condition: a full-table (or full-index)
// paginated read with optional filters.
func (e *Executor) Scan(ctx context.Context, desc *querymodels.ScanDescription, maxResults int,
	progress chan<- querymodels.QueryProgress) (*querymodels.BatchQueryResult, error) {

	filterExpr, names, values := expression.BuildFilter(desc.Filters)

	build := func(startKey querymodels.Key) *store.PageRequest {
		return &store.PageRequest{
			TableName:                 desc.TableName,
			IndexName:                 desc.IndexName,
			FilterExpression:          filterExpr,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			Limit:                     desc.Limit,
			ExclusiveStartKey:         startKey,
		}
	}

	return e.executePaginated(ctx, "scan", desc.TableName, desc.QueryID,
		desc.ExclusiveStartKey, maxResults, build, progress)
}

// executePaginated is the shared page loop. Pages are fetched strictly
// sequentially: each continuation token is only valid when derived from the
// immediately preceding page.
func (e *Executor) executePaginated(ctx context.Context, op, table, queryID string,
	startKey querymodels.Key, maxResults int,
	build func(querymodels.Key) *store.PageRequest,
	progress chan<- querymodels.QueryProgress) (*querymodels.BatchQueryResult, error) {

	if queryID == "" {
		queryID = uuid.NewString()
	}

	start := time.Now()
	result := &querymodels.BatchQueryResult{
		StartedAt: strfmt.DateTime(start),
	}

	emit := func(ev querymodels.QueryProgress) {
		if progress != nil {
			progress <- ev
		}
	}

	// Started notification: carries the query id so a concurrent caller can
	// request cancellation before the first page returns.
	emit(querymodels.QueryProgress{QueryID: queryID})
	lastEmit := time.Now()

	// pending buffers items fetched but not yet reported in a progress
	// event; it is always flushed with the final event.
	var pending []querymodels.Item

	for maxResults <= 0 || len(result.Items) < maxResults {
		if e.cancels.IsCancelled(queryID) {
			e.cancels.Clear(queryID)
			result.Count = len(result.Items)
			result.Cancelled = true
			result.ElapsedMs = time.Since(start).Milliseconds()
			emit(querymodels.QueryProgress{
				QueryID:      queryID,
				Count:        result.Count,
				ScannedCount: result.ScannedCount,
				ElapsedMs:    result.ElapsedMs,
				Items:        pending,
				IsComplete:   true,
				Cancelled:    true,
			})
			return result, nil
		}

		page, err := e.store.GetPage(ctx, build(startKey))
		if err != nil {
			// Partial results are discarded: the caller sees success with a
			// full result or a single error, never both.
			e.cancels.Clear(queryID)
			return nil, errors.NewStoreError(op, table, err)
		}

		result.Items = append(result.Items, page.Items...)
		result.ScannedCount += int(page.ScannedCount)
		pending = append(pending, page.Items...)

		if time.Since(lastEmit) >= e.throttle {
			emit(querymodels.QueryProgress{
				QueryID:      queryID,
				Count:        len(result.Items),
				ScannedCount: result.ScannedCount,
				ElapsedMs:    time.Since(start).Milliseconds(),
				Items:        pending,
			})
			pending = nil
			lastEmit = time.Now()
		}

		if len(page.LastEvaluatedKey) == 0 {
			startKey = nil
			break
		}
		startKey = page.LastEvaluatedKey
	}

	result.Count = len(result.Items)
	// Non-nil when the read stopped at its target before the store ran out
	// of data; the caller resumes from it.
	result.LastEvaluatedKey = startKey
	result.ElapsedMs = time.Since(start).Milliseconds()

	emit(querymodels.QueryProgress{
		QueryID:      queryID,
		Count:        result.Count,
		ScannedCount: result.ScannedCount,
		ElapsedMs:    result.ElapsedMs,
		Items:        pending,
		IsComplete:   true,
	})
	e.cancels.Clear(queryID)

	return result, nil
}
