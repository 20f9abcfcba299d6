/*
Package querymodels defines the data structures used throughout the
tablescope execution core.

Key Types:

QueryDescription / ScanDescription:
Structured, user-composed read requests:

	desc := &QueryDescription{
	    TableName: "orders",
	    KeyCondition: KeyCondition{
	        PartitionKey: KeyAttribute{Name: "PK", Value: "USER#123"},
	        SortKey: &SortKeyCondition{
	            Name:     "SK",
	            Operator: SortBeginsWith,
	            Value:    "ORDER#",
	        },
	    },
	    Limit: aws.Int32(100),
	}

QueryProgress:
Incremental events pushed while a paginated read runs. Each event carries
only the items fetched since the previous event; the final event has
IsComplete set and flushes anything still pending.

BatchOperation:
A closed sum of PutOperation, DeleteOperation and KeyChangeOperation,
consumed by the write batcher.

All values here are per-call request/response data with no persistence.
*/
package querymodels
