/*
Package expression translates structured query, scan and update descriptions
into store-native expressions.

All builders are pure functions: no I/O, no state, identical output for
identical input. Attribute names and literal values are never interpolated
into expression text; each goes behind a generated placeholder
(#pk, #sk, #f{i} / :pk, :sk, :sk2, :f{i}, :f{i}b) to stay clear of the
store's reserved words and to rule out injection through attribute names.

	keyExpr, filterExpr, names, values := expression.BuildKeyAndFilter(
	    querymodels.KeyCondition{
	        PartitionKey: querymodels.KeyAttribute{Name: "PK", Value: "USER#1"},
	    },
	    nil,
	)
	// keyExpr == "#pk = :pk"

Structural validation of the input is performed upstream; the only builder
that fails on well-formed types is BuildUpdateExpression, which rejects an
empty field set.
*/
package expression
