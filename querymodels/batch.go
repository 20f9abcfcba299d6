/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querymodels

// BatchOperation is a single write in a bulk edit. It is a closed sum of
// PutOperation, DeleteOperation and KeyChangeOperation.
type BatchOperation interface {
	isBatchOperation()
	// Table returns the table the operation targets.
	Table() string
}

// PutOperation stores an item, replacing any existing item with the same key.
type PutOperation struct {
	TableName string
	Item      Item
}

func (PutOperation) isBatchOperation() {}

func (o PutOperation) Table() string { return o.TableName }

// DeleteOperation removes the item at Key.
type DeleteOperation struct {
	TableName string
	Key       Key
}

func (DeleteOperation) isBatchOperation() {}

func (o DeleteOperation) Table() string { return o.TableName }

// KeyChangeOperation replaces an item's primary key. The store only supports
// this as delete-then-recreate, so it is executed as a single two-item
// transaction: without one there is a window with neither or both items
// present.
type KeyChangeOperation struct {
	TableName string
	OldKey    Key
	NewItem   Item
}

func (KeyChangeOperation) isBatchOperation() {}

func (o KeyChangeOperation) Table() string { return o.TableName }

// WriteOutcome reports the result of a bulk edit.
//
// Success means zero recorded errors. Processed counts operations durably
// applied; no operation is ever counted twice.
type WriteOutcome struct {
	Success   bool
	Processed int
	Errors    []string
}
