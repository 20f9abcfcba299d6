/*
Package ddb implements the store.Client boundary on AWS DynamoDB.

The client is a thin translation layer: it shapes store.PageRequest values
into Query or Scan calls, converts bulk writes to and from the service's
WriteRequest shape, and otherwise passes items through untouched as raw
attribute-value maps. Retry, pagination and cancellation policy live in the
executor package, not here.

	client, err := ddb.NewClient(accessKey, secretKey, "us-east-1")
	if err != nil {
	    return err
	}
	page, err := client.GetPage(ctx, &store.PageRequest{TableName: "orders"})
*/
package ddb
