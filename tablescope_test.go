/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablescope

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablescope/querymodels"
	"github.com/suparena/tablescope/store"
)

// fakeClient is a minimal store.Client for wiring tests.
type fakeClient struct{}

func (fakeClient) ListTables(ctx context.Context) ([]string, error) { return nil, nil }
func (fakeClient) DescribeTable(ctx context.Context, table string) (*types.TableDescription, error) {
	return nil, nil
}
func (fakeClient) GetPage(ctx context.Context, req *store.PageRequest) (*store.Page, error) {
	return &store.Page{}, nil
}
func (fakeClient) Put(ctx context.Context, table string, item querymodels.Item) error { return nil }
func (fakeClient) Delete(ctx context.Context, table string, key querymodels.Key) error {
	return nil
}
func (fakeClient) Update(ctx context.Context, table string, key querymodels.Key, expr string,
	names map[string]string, values map[string]types.AttributeValue) error {
	return nil
}
func (fakeClient) TransactWrite(ctx context.Context, items []store.TransactItem) error { return nil }
func (fakeClient) BatchWrite(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
	return nil, nil
}

func TestSessionManagerRegisterAndGet(t *testing.T) {
	sessions := NewSessionManager()

	created, err := sessions.Register("staging", fakeClient{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Exec == nil || created.Cancels == nil {
		t.Fatal("expected the session to be fully wired")
	}

	got, err := sessions.Get("staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Error("expected Get to return the registered session")
	}
}

func TestSessionManagerRejectsDuplicates(t *testing.T) {
	sessions := NewSessionManager()

	if _, err := sessions.Register("staging", fakeClient{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sessions.Register("staging", fakeClient{}); err == nil {
		t.Error("expected an error when re-registering a name")
	}
}

func TestSessionManagerGetUnknown(t *testing.T) {
	sessions := NewSessionManager()
	if _, err := sessions.Get("missing"); err == nil {
		t.Error("expected an error for an unknown session")
	}
}

func TestSessionManagerRemove(t *testing.T) {
	sessions := NewSessionManager()

	if _, err := sessions.Register("staging", fakeClient{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions.Remove("staging")
	if _, err := sessions.Get("staging"); err == nil {
		t.Error("expected the session to be gone after Remove")
	}

	// Removing an unknown name must not panic.
	sessions.Remove("missing")
}

func TestSessionsHaveIndependentCancellation(t *testing.T) {
	sessions := NewSessionManager()

	a, _ := sessions.Register("a", fakeClient{})
	b, _ := sessions.Register("b", fakeClient{})

	a.Cancels.RequestCancel("q1")
	if b.Cancels.IsCancelled("q1") {
		t.Error("cancellation must not leak across sessions")
	}
}

func TestSessionManagerConcurrentAccess(t *testing.T) {
	sessions := NewSessionManager()
	if _, err := sessions.Register("shared", fakeClient{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := sessions.Get("shared"); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
