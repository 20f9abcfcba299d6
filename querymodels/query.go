/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querymodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// Item is a raw store item keyed by attribute name.
type Item = map[string]types.AttributeValue

// Key is a primary key, a subset of an Item.
type Key = map[string]types.AttributeValue

// QueryDescription defines a key-based paginated read.
type QueryDescription struct {
	// QueryID identifies the execution for cancellation purposes.
	// When empty, the executor assigns one and reports it in the first
	// progress event.
	QueryID string
	// TableName is the table to read from.
	TableName string
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// KeyCondition is the primary condition for the query.
	KeyCondition KeyCondition
	// Filters are ANDed non-key conditions applied after the key condition.
	Filters []FilterCondition
	// Limit defines an optional limit per query page.
	Limit *int32
	// ScanForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order over the sort key.
	ScanForward *bool
	// ExclusiveStartKey resumes pagination from a previous continuation token.
	ExclusiveStartKey Key
}

// ScanDescription defines a full-table paginated read. It mirrors
// QueryDescription without a key condition.
type ScanDescription struct {
	QueryID           string
	TableName         string
	IndexName         *string
	Filters           []FilterCondition
	Limit             *int32
	ExclusiveStartKey Key
}

// PageResult is the outcome of a single page fetch.
// Count always equals len(Items) for one page; ScannedCount may exceed it
// when a filter discards items.
type PageResult struct {
	Items            []Item
	LastEvaluatedKey Key
	Count            int
	ScannedCount     int
}

// BatchQueryResult is a PageResult accumulated across pages.
type BatchQueryResult struct {
	Items []Item
	// LastEvaluatedKey carries the continuation token when the read stopped
	// at its result target before the store ran out of data.
	LastEvaluatedKey Key
	Count            int
	ScannedCount     int
	ElapsedMs        int64
	Cancelled        bool
	StartedAt        strfmt.DateTime
}
