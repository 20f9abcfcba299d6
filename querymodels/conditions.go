/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querymodels

// ValueType describes how a user-supplied key value should be encoded
// for the store.
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeNumber ValueType = "number"
	ValueTypeBinary ValueType = "binary"
)

// SortKeyOperator is a comparison applied to the sort key of a query.
type SortKeyOperator string

const (
	SortEquals         SortKeyOperator = "equals"
	SortBeginsWith     SortKeyOperator = "begins-with"
	SortBetween        SortKeyOperator = "between"
	SortLessThan       SortKeyOperator = "less-than"
	SortLessOrEqual    SortKeyOperator = "less-or-equal"
	SortGreaterThan    SortKeyOperator = "greater-than"
	SortGreaterOrEqual SortKeyOperator = "greater-or-equal"
)

// FilterOperator is a comparison applied to a non-key attribute.
// Filters are ANDed together.
type FilterOperator string

const (
	FilterEquals         FilterOperator = "eq"
	FilterNotEquals      FilterOperator = "ne"
	FilterLessThan       FilterOperator = "lt"
	FilterLessOrEqual    FilterOperator = "lte"
	FilterGreaterThan    FilterOperator = "gt"
	FilterGreaterOrEqual FilterOperator = "gte"
	FilterBeginsWith     FilterOperator = "begins_with"
	FilterContains       FilterOperator = "contains"
	FilterExists         FilterOperator = "exists"
	FilterNotExists      FilterOperator = "not_exists"
	FilterBetween        FilterOperator = "between"
)

// KeyAttribute is the partition-key half of a key condition.
type KeyAttribute struct {
	// Name is the attribute name of the partition key.
	Name string
	// Value is the user-supplied key value, always carried as a string.
	Value string
	// ValueType controls how Value is encoded; empty means string.
	ValueType ValueType
}

// SortKeyCondition is the optional sort-key half of a key condition.
type SortKeyCondition struct {
	Name     string
	Operator SortKeyOperator
	Value    string
	// Value2 is the upper bound for the between operator.
	// When absent for between, the second placeholder is still bound and
	// the store is left to reject the request.
	Value2    string
	ValueType ValueType
}

// KeyCondition describes the primary-key constraint of a query.
type KeyCondition struct {
	PartitionKey KeyAttribute
	SortKey      *SortKeyCondition
}

// FilterCondition describes a single non-key attribute filter.
type FilterCondition struct {
	// ID identifies the filter row in the composing UI; it does not
	// affect the generated expression.
	ID        string
	Attribute string
	Operator  FilterOperator
	Value     string
	// Value2 is only used by the between operator.
	Value2 string
}
