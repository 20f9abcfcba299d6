/*
Package store defines the boundary between the execution core and the
underlying partition/sort-key table store.

The Client interface shapes requests for an existing store protocol and is
agnostic to transport; the execution core only ever talks to this interface,
so tests drive it with in-memory stubs while the application wires the
DynamoDB implementation from the ddb subpackage.
*/
package store
