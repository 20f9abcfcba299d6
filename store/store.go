/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/tablescope/querymodels"
)

// PageRequest is a single page fetch against a table or index.
// A nil KeyConditionExpression makes it a scan.
type PageRequest struct {
	TableName                 string
	IndexName                 *string
	KeyConditionExpression    *string
	FilterExpression          *string
	ExpressionAttributeNames  map[string]string
	ExpressionAttributeValues map[string]types.AttributeValue
	Limit                     *int32
	ScanIndexForward          *bool
	ExclusiveStartKey         querymodels.Key
}

// Page is the store's answer to one PageRequest. An empty LastEvaluatedKey
// means the store has no more data.
type Page struct {
	Items            []querymodels.Item
	LastEvaluatedKey querymodels.Key
	Count            int32
	ScannedCount     int32
}

// WriteRequest is one element of a bulk write: exactly one of PutItem or
// DeleteKey is set.
type WriteRequest struct {
	PutItem   querymodels.Item
	DeleteKey querymodels.Key
}

// TransactPut stores an item inside a transaction.
type TransactPut struct {
	TableName string
	Item      querymodels.Item
}

// TransactDelete removes an item inside a transaction.
type TransactDelete struct {
	TableName string
	Key       querymodels.Key
}

// TransactItem is one element of an atomic write: exactly one of Put or
// Delete is set.
type TransactItem struct {
	Put    *TransactPut
	Delete *TransactDelete
}

// Client is the consumed store boundary. All calls may fail with
// store-specific errors (throttling, validation, not-found); BatchWrite may
// additionally acknowledge only part of a request by returning the
// unprocessed remainder.
type Client interface {
	ListTables(ctx context.Context) ([]string, error)

	DescribeTable(ctx context.Context, table string) (*types.TableDescription, error)

	GetPage(ctx context.Context, req *PageRequest) (*Page, error)

	Put(ctx context.Context, table string, item querymodels.Item) error

	Delete(ctx context.Context, table string, key querymodels.Key) error

	Update(ctx context.Context, table string, key querymodels.Key, expr string,
		names map[string]string, values map[string]types.AttributeValue) error

	TransactWrite(ctx context.Context, items []TransactItem) error

	BatchWrite(ctx context.Context, requests map[string][]WriteRequest) (map[string][]WriteRequest, error)
}
