//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Remove discards the entity from the table, returns the removed entity.
// Removal of unknown entity fails with NotFound.
func (db *Storage[T]) Remove(ctx context.Context, key T, opts ...interface{ Constraint(T) }) (T, error) {
	gen, err := db.codec.EncodeKey(key)
	if err != nil {
		return db.undefined, errInvalidKey.New(err)
	}

	cond := newExpression(nil, nil)
	cond.unary("attribute_exists", db.codec.hashKey)
	if err := maybeConditionExpression(cond, opts); err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	req := &dynamodb.DeleteItemInput{
		Key:                       gen,
		TableName:                 db.table,
		ConditionExpression:       cond.Expression(),
		ExpressionAttributeNames:  cond.Names(),
		ExpressionAttributeValues: cond.Values(),
		ReturnValues:              types.ReturnValueAllOld,
	}

	val, err := db.service.DeleteItem(ctx, req)
	if err != nil {
		if recoverConditionalCheckFailedException(err) {
			if len(opts) == 0 {
				return db.undefined, errNotFound(err, key.HashKey())
			}
			return db.undefined, errPreConditionFailed(err, key.HashKey(), false, true)
		}
		return db.undefined, errUnavailable(err)
	}

	if len(val.Attributes) == 0 {
		return db.undefined, errNotFound(nil, key.HashKey())
	}

	obj, err := db.codec.Decode(val.Attributes)
	if err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	return obj, nil
}
