//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package ddbtest mocks AWS DynamoDB API used by the storage. Each mock
// implements exactly one call, asserts its input and replies with fixture.
package ddbtest

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/dynastore"
	"github.com/fogfish/dynastore/service/ddb"
)

// HashKey used by mocked tables
const HashKey = "id"

func mock[T dynastore.Thing](mock ddb.DynamoDB) *ddb.Storage[T] {
	return ddb.Must(
		ddb.New[T](
			ddb.WithTable("test"),
			ddb.WithHashKey(HashKey),
			ddb.WithService(mock),
		),
	)
}

/*
GetItem mocks
*/
func GetItem[T dynastore.Thing](
	expectKey map[string]types.AttributeValue,
	returnVal map[string]types.AttributeValue,
) *ddb.Storage[T] {
	return mock[T](&ddbGetItem{expectKey: expectKey, returnVal: returnVal})
}

type ddbGetItem struct {
	ddb.DynamoDB
	expectKey map[string]types.AttributeValue
	returnVal map[string]types.AttributeValue
}

func (mock *ddbGetItem) GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if !reflect.DeepEqual(mock.expectKey, input.Key) {
		return nil, errors.New("unexpected entity")
	}

	return &dynamodb.GetItemOutput{Item: mock.returnVal}, nil
}

/*
PutItem mock
*/
func PutItem[T dynastore.Thing](
	expectVal map[string]types.AttributeValue,
) *ddb.Storage[T] {
	return mock[T](&ddbPutItem{expectVal: expectVal})
}

type ddbPutItem struct {
	ddb.DynamoDB
	expectVal map[string]types.AttributeValue
}

func (mock *ddbPutItem) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if !reflect.DeepEqual(mock.expectVal, input.Item) {
		return nil, errors.New("unexpected entity")
	}
	return &dynamodb.PutItemOutput{}, nil
}

/*
DeleteItem mock
*/
func DeleteItem[T dynastore.Thing](
	expectKey map[string]types.AttributeValue,
	returnVal map[string]types.AttributeValue,
) *ddb.Storage[T] {
	return mock[T](&ddbDeleteItem{expectKey: expectKey, returnVal: returnVal})
}

type ddbDeleteItem struct {
	ddb.DynamoDB
	expectKey map[string]types.AttributeValue
	returnVal map[string]types.AttributeValue
}

func (mock *ddbDeleteItem) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if !reflect.DeepEqual(mock.expectKey, input.Key) {
		return nil, errors.New("unexpected entity")
	}

	if mock.returnVal == nil {
		return nil, &types.ConditionalCheckFailedException{}
	}

	return &dynamodb.DeleteItemOutput{Attributes: mock.returnVal}, nil
}

/*
UpdateItem mock, the mock captures the request
*/
func UpdateItem[T dynastore.Thing](
	expectKey map[string]types.AttributeValue,
	returnVal map[string]types.AttributeValue,
	request **dynamodb.UpdateItemInput,
) *ddb.Storage[T] {
	return mock[T](&ddbUpdateItem{
		expectKey: expectKey,
		returnVal: returnVal,
		request:   request,
	})
}

type ddbUpdateItem struct {
	ddb.DynamoDB
	expectKey map[string]types.AttributeValue
	returnVal map[string]types.AttributeValue
	request   **dynamodb.UpdateItemInput
}

func (mock *ddbUpdateItem) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if mock.request != nil {
		*mock.request = input
	}

	if !reflect.DeepEqual(mock.expectKey, input.Key) {
		return nil, errors.New("unexpected entity key")
	}

	if mock.returnVal == nil {
		return nil, &types.ConditionalCheckFailedException{}
	}

	return &dynamodb.UpdateItemOutput{Attributes: mock.returnVal}, nil
}

/*
Scan mock, replies pages one by one
*/
func Scan[T dynastore.Thing](
	expectFilter *string,
	pages ...[]map[string]types.AttributeValue,
) *ddb.Storage[T] {
	return mock[T](&ddbScan{expectFilter: expectFilter, pages: pages})
}

type ddbScan struct {
	ddb.DynamoDB
	expectFilter *string
	pages        [][]map[string]types.AttributeValue
}

func (mock *ddbScan) Scan(ctx context.Context, input *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if !reflect.DeepEqual(mock.expectFilter, input.FilterExpression) {
		return nil, errors.New("unexpected filter")
	}

	page := 0
	if input.ExclusiveStartKey != nil {
		cursor, ok := input.ExclusiveStartKey["page"].(*types.AttributeValueMemberN)
		if !ok {
			return nil, errors.New("unexpected cursor")
		}
		for page < len(mock.pages) && cursor.Value != pageOf(page) {
			page++
		}
	}

	if page >= len(mock.pages) {
		return &dynamodb.ScanOutput{}, nil
	}

	var lastEvaluatedKey map[string]types.AttributeValue
	if page+1 < len(mock.pages) {
		lastEvaluatedKey = map[string]types.AttributeValue{
			"page": &types.AttributeValueMemberN{Value: pageOf(page + 1)},
		}
	}

	return &dynamodb.ScanOutput{
		Count:            int32(len(mock.pages[page])),
		ScannedCount:     int32(len(mock.pages[page])),
		Items:            mock.pages[page],
		LastEvaluatedKey: lastEvaluatedKey,
	}, nil
}

func pageOf(i int) string {
	return string(rune('0' + i))
}

/*
Unavailable mock fails every call
*/
func Unavailable[T dynastore.Thing]() *ddb.Storage[T] {
	return mock[T](ddbUnavailable{})
}

type ddbUnavailable struct{}

var errUnavailable = errors.New("service unavailable")

func (ddbUnavailable) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return nil, errUnavailable
}

func (ddbUnavailable) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return nil, errUnavailable
}

func (ddbUnavailable) DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return nil, errUnavailable
}

func (ddbUnavailable) UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return nil, errUnavailable
}

func (ddbUnavailable) Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return nil, errUnavailable
}

/*
Constraints mock accepts writes only if condition binds name to "xxx"
*/
func Constraints[T dynastore.Thing](
	returnVal map[string]types.AttributeValue,
) *ddb.Storage[T] {
	return mock[T](&ddbConstraints{returnVal: returnVal})
}

type ddbConstraints struct {
	ddb.DynamoDB
	returnVal map[string]types.AttributeValue
}

func (ddbConstraints) assert(values map[string]types.AttributeValue) error {
	for k, v := range values {
		if !strings.HasPrefix(k, ":__name_") {
			continue
		}

		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == "xxx" {
			return nil
		}
	}

	return &types.ConditionalCheckFailedException{}
}

func (mock ddbConstraints) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if err := mock.assert(input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	return &dynamodb.PutItemOutput{}, nil
}

func (mock ddbConstraints) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if err := mock.assert(input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	return &dynamodb.DeleteItemOutput{Attributes: mock.returnVal}, nil
}

func (mock ddbConstraints) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if err := mock.assert(input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	return &dynamodb.UpdateItemOutput{Attributes: mock.returnVal}, nil
}
