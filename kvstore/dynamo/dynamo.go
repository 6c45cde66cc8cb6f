// Package dynamo implements kvstore.Store on top of Amazon DynamoDB.
//
// Table schema:
//   - Partition key: k (string) - the record key
//   - Attribute:     v (binary) - the encoded record
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name quadgo \
//	  --attribute-definitions AttributeName=k,AttributeType=S \
//	  --key-schema AttributeName=k,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/quadgo/kvstore"
)

// Client is the narrow interface of DynamoDB operations the store uses.
// It is satisfied by *dynamodb.Client and easy to fake in tests.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements kvstore.Store for DynamoDB.
type Store struct {
	client Client
	table  string
}

// New creates a DynamoDB-backed store using the given table.
func New(client Client, table string) *Store {
	return &Store{client: client, table: table}
}

// Get returns the value stored under key, or kvstore.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: get %s: %w", key, err)
	}
	if resp.Item == nil {
		return nil, kvstore.ErrNotFound
	}

	valAttr, ok := resp.Item["v"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("dynamo: get %s: missing or invalid value attribute", key)
	}
	return valAttr.Value, nil
}

// Put writes value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: key},
			"v": &types.AttributeValueMemberB{Value: value},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamo: put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamo: delete %s: %w", key, err)
	}
	return nil
}

// List returns all keys with the given prefix.
//
// DynamoDB has no ordered key scan over a partition-keyed table, so this is
// a full table scan with a begins_with filter. It exists for tooling and
// tests; the tree itself never lists keys.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var startKey map[string]types.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName:            aws.String(s.table),
			ProjectionExpression: aws.String("k"),
			ExclusiveStartKey:    startKey,
		}
		if prefix != "" {
			input.FilterExpression = aws.String("begins_with(k, :p)")
			input.ExpressionAttributeValues = map[string]types.AttributeValue{
				":p": &types.AttributeValueMemberS{Value: prefix},
			}
		}

		resp, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("dynamo: list %s: %w", prefix, err)
		}
		for _, item := range resp.Items {
			keyAttr, ok := item["k"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			if prefix == "" || strings.HasPrefix(keyAttr.Value, prefix) {
				keys = append(keys, keyAttr.Value)
			}
		}

		if resp.LastEvaluatedKey == nil {
			break
		}
		startKey = resp.LastEvaluatedKey
	}
	return keys, nil
}

// Close is a no-op; the lifecycle of the DynamoDB client belongs to the
// caller.
func (s *Store) Close() error { return nil }
