/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/tablescope/querymodels"
)

// Placeholders generated for the key condition. Filter placeholders are
// #f{i}/:f{i} and can never collide with these.
const (
	pkName   = "#pk"
	pkValue  = ":pk"
	skName   = "#sk"
	skValue  = ":sk"
	sk2Value = ":sk2"
)

// BuildKeyAndFilter translates a key condition plus optional filters into a
// store-native key condition expression and filter expression.
//
// Every attribute name goes behind a generated name placeholder and every
// literal behind a value placeholder, so names that collide with reserved
// words in the store's expression language stay safe. The function is pure
// and deterministic; structural validation of the condition is the caller's
// responsibility.
func BuildKeyAndFilter(kc querymodels.KeyCondition, filters []querymodels.FilterCondition) (string, *string, map[string]string, map[string]types.AttributeValue) {
	names := map[string]string{pkName: kc.PartitionKey.Name}
	values := map[string]types.AttributeValue{
		pkValue: keyAttributeValue(kc.PartitionKey.Value, kc.PartitionKey.ValueType),
	}

	parts := []string{fmt.Sprintf("%s = %s", pkName, pkValue)}

	if sk := kc.SortKey; sk != nil {
		names[skName] = sk.Name
		values[skValue] = keyAttributeValue(sk.Value, sk.ValueType)

		switch sk.Operator {
		case querymodels.SortBeginsWith:
			parts = append(parts, fmt.Sprintf("begins_with(%s, %s)", skName, skValue))
		case querymodels.SortBetween:
			// Value2 may be absent; the placeholder is still bound and the
			// store is left to reject the request.
			values[sk2Value] = keyAttributeValue(sk.Value2, sk.ValueType)
			parts = append(parts, fmt.Sprintf("%s BETWEEN %s AND %s", skName, skValue, sk2Value))
		case querymodels.SortLessThan:
			parts = append(parts, fmt.Sprintf("%s < %s", skName, skValue))
		case querymodels.SortLessOrEqual:
			parts = append(parts, fmt.Sprintf("%s <= %s", skName, skValue))
		case querymodels.SortGreaterThan:
			parts = append(parts, fmt.Sprintf("%s > %s", skName, skValue))
		case querymodels.SortGreaterOrEqual:
			parts = append(parts, fmt.Sprintf("%s >= %s", skName, skValue))
		default:
			parts = append(parts, fmt.Sprintf("%s = %s", skName, skValue))
		}
	}

	filterExpr := appendFilters(filters, names, values)
	return strings.Join(parts, " AND "), filterExpr, names, values
}

// BuildFilter translates filter conditions for a scan, which has no key
// condition. It returns nil when there are no filters.
func BuildFilter(filters []querymodels.FilterCondition) (*string, map[string]string, map[string]types.AttributeValue) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	return appendFilters(filters, names, values), names, values
}

// appendFilters emits one clause per filter, ANDed together. Each filter gets
// a unique placeholder index based on its position, so the output is
// byte-identical across calls for the same input.
func appendFilters(filters []querymodels.FilterCondition, names map[string]string, values map[string]types.AttributeValue) *string {
	if len(filters) == 0 {
		return nil
	}

	clauses := make([]string, 0, len(filters))
	for i, f := range filters {
		name := fmt.Sprintf("#f%d", i)
		value := fmt.Sprintf(":f%d", i)
		names[name] = f.Attribute

		switch f.Operator {
		case querymodels.FilterNotEquals:
			clauses = append(clauses, fmt.Sprintf("%s <> %s", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterLessThan:
			clauses = append(clauses, fmt.Sprintf("%s < %s", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterLessOrEqual:
			clauses = append(clauses, fmt.Sprintf("%s <= %s", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterGreaterThan:
			clauses = append(clauses, fmt.Sprintf("%s > %s", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterGreaterOrEqual:
			clauses = append(clauses, fmt.Sprintf("%s >= %s", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterBeginsWith:
			clauses = append(clauses, fmt.Sprintf("begins_with(%s, %s)", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterContains:
			clauses = append(clauses, fmt.Sprintf("contains(%s, %s)", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		case querymodels.FilterExists:
			// takes no value placeholder
			clauses = append(clauses, fmt.Sprintf("attribute_exists(%s)", name))
		case querymodels.FilterNotExists:
			clauses = append(clauses, fmt.Sprintf("attribute_not_exists(%s)", name))
		case querymodels.FilterBetween:
			value2 := fmt.Sprintf(":f%db", i)
			clauses = append(clauses, fmt.Sprintf("%s BETWEEN %s AND %s", name, value, value2))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
			values[value2] = &types.AttributeValueMemberS{Value: f.Value2}
		default:
			clauses = append(clauses, fmt.Sprintf("%s = %s", name, value))
			values[value] = &types.AttributeValueMemberS{Value: f.Value}
		}
	}

	expr := strings.Join(clauses, " AND ")
	return &expr
}

// keyAttributeValue encodes a user-supplied key value. Numeric values that
// fail to parse keep their original string form so the store reports the
// type error; this layer does not fail fast on coercion.
func keyAttributeValue(raw string, vt querymodels.ValueType) types.AttributeValue {
	switch vt {
	case querymodels.ValueTypeNumber:
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return &types.AttributeValueMemberN{Value: raw}
		}
		return &types.AttributeValueMemberS{Value: raw}
	case querymodels.ValueTypeBinary:
		if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
			return &types.AttributeValueMemberB{Value: b}
		}
		return &types.AttributeValueMemberS{Value: raw}
	default:
		return &types.AttributeValueMemberS{Value: raw}
	}
}
