/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablescope/querymodels"
	"github.com/suparena/tablescope/store"
)

// api is the subset of the DynamoDB client the store boundary needs.
type api interface {
	ListTables(ctx context.Context, params *sdk.ListTablesInput, optFns ...func(*sdk.Options)) (*sdk.ListTablesOutput, error)
	DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	TransactWriteItems(ctx context.Context, params *sdk.TransactWriteItemsInput, optFns ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error)
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
}

// Client implements store.Client on top of AWS DynamoDB.
type Client struct {
	api api
}

var _ store.Client = (*Client)(nil)

// NewClient initializes a DynamoDB-backed store client using static AWS
// credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewFromConfig(cfg), nil
}

// NewFromConfig wraps an already-built AWS configuration, e.g. one produced
// from a connection profile.
func NewFromConfig(cfg aws.Config, optFns ...func(*sdk.Options)) *Client {
	return &Client{api: sdk.NewFromConfig(cfg, optFns...)}
}

// WithBaseEndpoint points the client at a custom endpoint, e.g. a local
// DynamoDB instance.
func WithBaseEndpoint(url string) func(*sdk.Options) {
	return func(o *sdk.Options) {
		o.BaseEndpoint = aws.String(url)
	}
}

// ListTables returns the names of all tables visible to the session,
// following the store's own pagination.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	var names []string
	var startName *string
	for {
		out, err := c.api.ListTables(ctx, &sdk.ListTablesInput{
			ExclusiveStartTableName: startName,
		})
		if err != nil {
			return nil, fmt.Errorf("ListTables failed: %w", err)
		}
		names = append(names, out.TableNames...)
		if out.LastEvaluatedTableName == nil {
			return names, nil
		}
		startName = out.LastEvaluatedTableName
	}
}

// DescribeTable returns the table's key schema and index metadata.
func (c *Client) DescribeTable(ctx context.Context, table string) (*types.TableDescription, error) {
	out, err := c.api.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: &table,
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeTable failed: %w", err)
	}
	return out.Table, nil
}

// GetPage fetches one page. Requests with a key condition run as queries,
// the rest as scans.
func (c *Client) GetPage(ctx context.Context, req *store.PageRequest) (*store.Page, error) {
	if req.KeyConditionExpression != nil {
		out, err := c.api.Query(ctx, &sdk.QueryInput{
			TableName:                 &req.TableName,
			IndexName:                 req.IndexName,
			KeyConditionExpression:    req.KeyConditionExpression,
			FilterExpression:          req.FilterExpression,
			ExpressionAttributeNames:  nonEmptyNames(req.ExpressionAttributeNames),
			ExpressionAttributeValues: nonEmptyValues(req.ExpressionAttributeValues),
			Limit:                     req.Limit,
			ScanIndexForward:          req.ScanIndexForward,
			ExclusiveStartKey:         req.ExclusiveStartKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		return &store.Page{
			Items:            out.Items,
			LastEvaluatedKey: out.LastEvaluatedKey,
			Count:            out.Count,
			ScannedCount:     out.ScannedCount,
		}, nil
	}

	out, err := c.api.Scan(ctx, &sdk.ScanInput{
		TableName:                 &req.TableName,
		IndexName:                 req.IndexName,
		FilterExpression:          req.FilterExpression,
		ExpressionAttributeNames:  nonEmptyNames(req.ExpressionAttributeNames),
		ExpressionAttributeValues: nonEmptyValues(req.ExpressionAttributeValues),
		Limit:                     req.Limit,
		ExclusiveStartKey:         req.ExclusiveStartKey,
	})
	if err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}
	return &store.Page{
		Items:            out.Items,
		LastEvaluatedKey: out.LastEvaluatedKey,
		Count:            out.Count,
		ScannedCount:     out.ScannedCount,
	}, nil
}

// Put stores an item, replacing any existing item with the same key.
func (c *Client) Put(ctx context.Context, table string, item querymodels.Item) error {
	_, err := c.api.PutItem(ctx, &sdk.PutItemInput{
		TableName: &table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes the item at key.
func (c *Client) Delete(ctx context.Context, table string, key querymodels.Key) error {
	_, err := c.api.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &table,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}

// Update applies an update expression to the item at key.
func (c *Client) Update(ctx context.Context, table string, key querymodels.Key, expr string,
	names map[string]string, values map[string]types.AttributeValue) error {

	_, err := c.api.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 &table,
		Key:                       key,
		UpdateExpression:          &expr,
		ExpressionAttributeNames:  nonEmptyNames(names),
		ExpressionAttributeValues: nonEmptyValues(values),
	})
	if err != nil {
		return fmt.Errorf("UpdateItem failed: %w", err)
	}
	return nil
}

// TransactWrite applies the given puts and deletes as one atomic unit.
func (c *Client) TransactWrite(ctx context.Context, items []store.TransactItem) error {
	transactItems := make([]types.TransactWriteItem, 0, len(items))
	for _, item := range items {
		switch {
		case item.Put != nil:
			transactItems = append(transactItems, types.TransactWriteItem{
				Put: &types.Put{
					TableName: &item.Put.TableName,
					Item:      item.Put.Item,
				},
			})
		case item.Delete != nil:
			transactItems = append(transactItems, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: &item.Delete.TableName,
					Key:       item.Delete.Key,
				},
			})
		}
	}

	_, err := c.api.TransactWriteItems(ctx, &sdk.TransactWriteItemsInput{
		TransactItems: transactItems,
	})
	if err != nil {
		return fmt.Errorf("TransactWriteItems failed: %w", err)
	}
	return nil
}

// BatchWrite issues a bulk put/delete call and returns whatever the store
// did not acknowledge.
func (c *Client) BatchWrite(ctx context.Context, requests map[string][]store.WriteRequest) (map[string][]store.WriteRequest, error) {
	requestItems := make(map[string][]types.WriteRequest, len(requests))
	for table, reqs := range requests {
		wrs := make([]types.WriteRequest, 0, len(reqs))
		for _, r := range reqs {
			if r.PutItem != nil {
				wrs = append(wrs, types.WriteRequest{
					PutRequest: &types.PutRequest{Item: r.PutItem},
				})
			} else {
				wrs = append(wrs, types.WriteRequest{
					DeleteRequest: &types.DeleteRequest{Key: r.DeleteKey},
				})
			}
		}
		requestItems[table] = wrs
	}

	out, err := c.api.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
		RequestItems: requestItems,
	})
	if err != nil {
		return nil, fmt.Errorf("BatchWriteItem failed: %w", err)
	}

	if len(out.UnprocessedItems) == 0 {
		return nil, nil
	}
	unprocessed := make(map[string][]store.WriteRequest, len(out.UnprocessedItems))
	for table, wrs := range out.UnprocessedItems {
		reqs := make([]store.WriteRequest, 0, len(wrs))
		for _, w := range wrs {
			if w.PutRequest != nil {
				reqs = append(reqs, store.WriteRequest{PutItem: w.PutRequest.Item})
			} else if w.DeleteRequest != nil {
				reqs = append(reqs, store.WriteRequest{DeleteKey: w.DeleteRequest.Key})
			}
		}
		unprocessed[table] = reqs
	}
	return unprocessed, nil
}

// The store rejects empty expression attribute maps, so omit them entirely.

func nonEmptyNames(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}

func nonEmptyValues(m map[string]types.AttributeValue) map[string]types.AttributeValue {
	if len(m) == 0 {
		return nil
	}
	return m
}
