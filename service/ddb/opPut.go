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
)

// Put writes entity
func (db *Storage[T]) Put(ctx context.Context, entity T, opts ...interface{ Constraint(T) }) error {
	gen, err := db.codec.Encode(entity)
	if err != nil {
		return errInvalidEntity.New(err)
	}

	cond := newExpression(nil, nil)
	if err := maybeConditionExpression(cond, opts); err != nil {
		return errInvalidEntity.New(err)
	}

	req := &dynamodb.PutItemInput{
		Item:                      gen,
		TableName:                 db.table,
		ConditionExpression:       cond.Expression(),
		ExpressionAttributeNames:  cond.Names(),
		ExpressionAttributeValues: cond.Values(),
	}

	_, err = db.service.PutItem(ctx, req)
	if err != nil {
		if recoverConditionalCheckFailedException(err) {
			return errPreConditionFailed(err, entity.HashKey(), true, false)
		}
		return errUnavailable(err)
	}

	return nil
}
