/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablescope/querymodels"
	"github.com/suparena/tablescope/registry"
	"github.com/suparena/tablescope/store"
)

func putOps(table string, n int) []querymodels.BatchOperation {
	ops := make([]querymodels.BatchOperation, 0, n)
	for i := 0; i < n; i++ {
		ops = append(ops, querymodels.PutOperation{
			TableName: table,
			Item:      testItem(i),
		})
	}
	return ops
}

func drainWrite(ch chan querymodels.WriteProgress) []querymodels.WriteProgress {
	var events []querymodels.WriteProgress
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestApplyBatchConservation(t *testing.T) {
	var sizes []int
	st := &stubStore{
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			sizes = append(sizes, countRequests(requests))
			return nil, nil
		},
	}
	exec := New(st, registry.New())

	progress := make(chan querymodels.WriteProgress, 8)
	outcome := exec.ApplyBatch(context.Background(), putOps("orders", 60), progress)

	if !outcome.Success || len(outcome.Errors) != 0 {
		t.Errorf("expected clean success, got %+v", outcome)
	}
	if outcome.Processed != 60 {
		t.Errorf("expected 60 processed, got %d", outcome.Processed)
	}
	if len(sizes) != 3 || sizes[0] != 25 || sizes[1] != 25 || sizes[2] != 10 {
		t.Errorf("expected batches of 25/25/10, got %v", sizes)
	}

	events := drainWrite(progress)
	want := []querymodels.WriteProgress{
		{Processed: 25, Total: 60},
		{Processed: 50, Total: 60},
		{Processed: 60, Total: 60},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d progress events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], events[i])
		}
	}
}

func TestBackoffSchedule(t *testing.T) {
	attempts := 0
	st := &stubStore{
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			attempts++
			if attempts <= 2 {
				// Everything throttled
				return requests, nil
			}
			return nil, nil
		},
	}
	exec := New(st, registry.New())

	var delays []time.Duration
	exec.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	outcome := exec.ApplyBatch(context.Background(), putOps("orders", 10), nil)

	if attempts != 3 {
		t.Errorf("expected 3 bulk calls, got %d", attempts)
	}
	if len(delays) != 2 || delays[0] != 100*time.Millisecond || delays[1] != 200*time.Millisecond {
		t.Errorf("expected delays of 100ms and 200ms, got %v", delays)
	}
	// Only the final successful attempt counts
	if outcome.Processed != 10 || !outcome.Success {
		t.Errorf("expected 10 processed with success, got %+v", outcome)
	}
}

func TestRetryExhaustionRecordsRemainder(t *testing.T) {
	attempts := 0
	st := &stubStore{
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			attempts++
			return requests, nil
		},
	}
	exec := New(st, registry.New())
	exec.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	outcome := exec.ApplyBatch(context.Background(), putOps("orders", 10), nil)

	if attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", attempts)
	}
	if outcome.Success || outcome.Processed != 0 {
		t.Errorf("expected nothing processed, got %+v", outcome)
	}
	if len(outcome.Errors) != 1 {
		t.Fatalf("expected one recorded error, got %v", outcome.Errors)
	}
	if !strings.Contains(outcome.Errors[0], "10 items") || !strings.Contains(outcome.Errors[0], "5 attempts") {
		t.Errorf("expected a descriptive unprocessed count, got %q", outcome.Errors[0])
	}
}

func TestPartialAcknowledgementCountsOnce(t *testing.T) {
	attempts := 0
	st := &stubStore{
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			attempts++
			if attempts == 1 {
				// Acknowledge all but the last two
				reqs := requests["orders"]
				return map[string][]store.WriteRequest{"orders": reqs[len(reqs)-2:]}, nil
			}
			return nil, nil
		},
	}
	exec := New(st, registry.New())
	exec.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	outcome := exec.ApplyBatch(context.Background(), putOps("orders", 10), nil)

	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if outcome.Processed != 10 || !outcome.Success {
		t.Errorf("expected all 10 processed exactly once, got %+v", outcome)
	}
}

func TestHardFailureFallsBackPerItem(t *testing.T) {
	attempts := 0
	var putCalls int
	st := &stubStore{
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			attempts++
			if attempts == 1 {
				// First attempt acknowledges one of three
				reqs := requests["orders"]
				return map[string][]store.WriteRequest{"orders": reqs[1:]}, nil
			}
			return nil, fmt.Errorf("internal server error")
		},
	}
	st.put = func(ctx context.Context, table string, item querymodels.Item) error {
		putCalls++
		if putCalls == 1 {
			return fmt.Errorf("validation error")
		}
		return nil
	}
	exec := New(st, registry.New())
	exec.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	outcome := exec.ApplyBatch(context.Background(), putOps("orders", 3), nil)

	// The operation confirmed in attempt one is never re-attempted.
	if putCalls != 2 {
		t.Errorf("expected 2 individual puts, got %d", putCalls)
	}
	if outcome.Processed != 2 {
		t.Errorf("expected 2 processed (1 bulk + 1 fallback), got %d", outcome.Processed)
	}
	if len(outcome.Errors) != 1 {
		t.Errorf("expected one recorded error, got %v", outcome.Errors)
	}
	if outcome.Success {
		t.Error("expected success to be false")
	}
}

func TestKeyChangeRunsAsTransaction(t *testing.T) {
	var transactions [][]store.TransactItem
	st := &stubStore{
		transactWrite: func(ctx context.Context, items []store.TransactItem) error {
			transactions = append(transactions, items)
			if len(transactions) == 2 {
				return fmt.Errorf("transaction conflict")
			}
			return nil
		},
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			return nil, nil
		},
	}
	exec := New(st, registry.New())

	oldKey := querymodels.Key{"PK": &types.AttributeValueMemberS{Value: "old"}}
	newItem := querymodels.Item{"PK": &types.AttributeValueMemberS{Value: "new"}}

	ops := []querymodels.BatchOperation{
		querymodels.KeyChangeOperation{TableName: "orders", OldKey: oldKey, NewItem: newItem},
		querymodels.KeyChangeOperation{TableName: "archive", OldKey: oldKey, NewItem: newItem},
		querymodels.PutOperation{TableName: "orders", Item: testItem(1)},
		querymodels.DeleteOperation{TableName: "orders", Key: oldKey},
	}

	progress := make(chan querymodels.WriteProgress, 8)
	outcome := exec.ApplyBatch(context.Background(), ops, progress)

	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	// Each key change is delete-then-put in one atomic unit.
	for i, tx := range transactions {
		if len(tx) != 2 || tx[0].Delete == nil || tx[1].Put == nil {
			t.Errorf("transaction %d is not delete+put: %+v", i, tx)
		}
	}

	// The failing key change is independent of everything else.
	if outcome.Processed != 3 {
		t.Errorf("expected 3 processed (1 key change + 2 regular), got %d", outcome.Processed)
	}
	if len(outcome.Errors) != 1 || !strings.Contains(outcome.Errors[0], "archive") {
		t.Errorf("expected one error naming the failed table, got %v", outcome.Errors)
	}

	events := drainWrite(progress)
	want := []querymodels.WriteProgress{
		{Processed: 1, Total: 4},
		{Processed: 1, Total: 4},
		{Processed: 3, Total: 4},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d progress events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], events[i])
		}
	}
}

func TestApplyBatchGroupsByTable(t *testing.T) {
	var tables []string
	st := &stubStore{
		batchWrite: func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
			tables = sortedTables(requests)
			return nil, nil
		},
	}
	exec := New(st, registry.New())

	ops := []querymodels.BatchOperation{
		querymodels.PutOperation{TableName: "a", Item: testItem(1)},
		querymodels.PutOperation{TableName: "b", Item: testItem(2)},
		querymodels.DeleteOperation{TableName: "a", Key: querymodels.Key{}},
	}

	outcome := exec.ApplyBatch(context.Background(), ops, nil)
	if outcome.Processed != 3 {
		t.Errorf("expected 3 processed, got %d", outcome.Processed)
	}
	if len(tables) != 2 || tables[0] != "a" || tables[1] != "b" {
		t.Errorf("expected one call covering tables a and b, got %v", tables)
	}
}

func TestApplyBatchEmpty(t *testing.T) {
	exec := New(&stubStore{}, registry.New())

	progress := make(chan querymodels.WriteProgress, 1)
	outcome := exec.ApplyBatch(context.Background(), nil, progress)

	if !outcome.Success || outcome.Processed != 0 || len(outcome.Errors) != 0 {
		t.Errorf("expected an empty success, got %+v", outcome)
	}
	if len(drainWrite(progress)) != 0 {
		t.Error("expected no progress events for an empty batch")
	}
}
