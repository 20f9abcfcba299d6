/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablescope/querymodels"
	"github.com/suparena/tablescope/store"
)

// stubStore implements store.Client with per-call hooks so each test drives
// exactly the behavior it needs.
type stubStore struct {
	getPage       func(ctx context.Context, req *store.PageRequest) (*store.Page, error)
	put           func(ctx context.Context, table string, item querymodels.Item) error
	del           func(ctx context.Context, table string, key querymodels.Key) error
	transactWrite func(ctx context.Context, items []store.TransactItem) error
	batchWrite    func(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error)
}

func (s *stubStore) ListTables(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubStore) DescribeTable(ctx context.Context, table string) (*types.TableDescription, error) {
	return nil, nil
}

func (s *stubStore) GetPage(ctx context.Context, req *store.PageRequest) (*store.Page, error) {
	return s.getPage(ctx, req)
}

func (s *stubStore) Put(ctx context.Context, table string, item querymodels.Item) error {
	if s.put == nil {
		return nil
	}
	return s.put(ctx, table, item)
}

func (s *stubStore) Delete(ctx context.Context, table string, key querymodels.Key) error {
	if s.del == nil {
		return nil
	}
	return s.del(ctx, table, key)
}

func (s *stubStore) Update(ctx context.Context, table string, key querymodels.Key, expr string,
	names map[string]string, values map[string]types.AttributeValue) error {
	return nil
}

func (s *stubStore) TransactWrite(ctx context.Context, items []store.TransactItem) error {
	return s.transactWrite(ctx, items)
}

func (s *stubStore) BatchWrite(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
	return s.batchWrite(ctx, requests)
}

// testItem builds a small distinguishable item.
func testItem(n int) querymodels.Item {
	return querymodels.Item{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("item-%03d", n)},
	}
}

// pagedStore serves total items in pages of pageSize, with a continuation
// token on every page but the last. It counts calls and records the start
// key of each request.
func pagedStore(total, pageSize int, calls *int, startKeys *[]querymodels.Key) *stubStore {
	return &stubStore{
		getPage: func(ctx context.Context, req *store.PageRequest) (*store.Page, error) {
			offset := *calls * pageSize
			*calls++
			if startKeys != nil {
				*startKeys = append(*startKeys, req.ExclusiveStartKey)
			}

			n := pageSize
			if offset+n > total {
				n = total - offset
			}
			items := make([]querymodels.Item, 0, n)
			for i := 0; i < n; i++ {
				items = append(items, testItem(offset+i))
			}

			page := &store.Page{
				Items:        items,
				Count:        int32(n),
				ScannedCount: int32(n),
			}
			if offset+n < total {
				page.LastEvaluatedKey = querymodels.Key{
					"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("item-%03d", offset+n-1)},
				}
			}
			return page, nil
		},
	}
}

// collectItems concatenates the item deltas of all progress events.
func collectItems(events []querymodels.QueryProgress) []querymodels.Item {
	var all []querymodels.Item
	for _, ev := range events {
		all = append(all, ev.Items...)
	}
	return all
}

// drain reads every buffered event off the progress channel.
func drain(ch chan querymodels.QueryProgress) []querymodels.QueryProgress {
	var events []querymodels.QueryProgress
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}
