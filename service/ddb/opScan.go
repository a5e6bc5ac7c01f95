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

// Scan reads all entities of the table, constraints are applied as
// filter expression. The scan follows pages until the table is exhausted.
func (db *Storage[T]) Scan(ctx context.Context, opts ...interface{ Constraint(T) }) ([]T, error) {
	filter := newExpression(nil, nil)
	if err := maybeConditionExpression(filter, opts); err != nil {
		return nil, errInvalidEntity.New(err)
	}

	req := &dynamodb.ScanInput{
		TableName:                 db.table,
		ProjectionExpression:      db.schema.Projection,
		ExpressionAttributeNames:  db.schema.names(filter.Names()),
		FilterExpression:          filter.Expression(),
		ExpressionAttributeValues: filter.Values(),
	}

	seq := make([]T, 0)
	for {
		val, err := db.service.Scan(ctx, req)
		if err != nil {
			return nil, errUnavailable(err)
		}

		for _, item := range val.Items {
			obj, err := db.codec.Decode(item)
			if err != nil {
				return nil, errInvalidEntity.New(err)
			}
			seq = append(seq, obj)
		}

		if len(val.LastEvaluatedKey) == 0 {
			return seq, nil
		}
		req.ExclusiveStartKey = val.LastEvaluatedKey
	}
}
