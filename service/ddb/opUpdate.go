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
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/dynastore"
)

// Update applies the compiled partial update to the entity and returns
// new values. The entity must exist, the update never creates one.
func (db *Storage[T]) Update(ctx context.Context, instr dynastore.Instruction, opts ...interface{ Constraint(T) }) (T, error) {
	key, err := db.codec.EncodeHashKey(instr.Key)
	if err != nil {
		return db.undefined, errInvalidKey.New(err)
	}

	if instr.Expression == "" || len(instr.Names) == 0 {
		return db.undefined, errInvalidUpdate.New(fmt.Errorf("empty update of %s", instr.Key))
	}

	names := make(map[string]string, len(instr.Names)+1)
	for k, v := range instr.Names {
		names[k] = v
	}

	values := make(map[string]types.AttributeValue, len(instr.Values))
	for k, v := range instr.Values {
		lit, err := attributevalue.Marshal(v)
		if err != nil {
			return db.undefined, errInvalidEntity.New(err)
		}
		values[k] = lit
	}

	cond := newExpression(names, values)
	cond.unary("attribute_exists", db.codec.hashKey)
	if err := maybeConditionExpression(cond, opts); err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	returnValues := types.ReturnValueNone
	if instr.ReturnAll {
		returnValues = types.ReturnValueAllNew
	}

	req := &dynamodb.UpdateItemInput{
		Key:                       key,
		TableName:                 db.table,
		UpdateExpression:          aws.String(instr.Expression),
		ConditionExpression:       cond.Expression(),
		ExpressionAttributeNames:  cond.Names(),
		ExpressionAttributeValues: cond.Values(),
		ReturnValues:              returnValues,
	}

	val, err := db.service.UpdateItem(ctx, req)
	if err != nil {
		if recoverConditionalCheckFailedException(err) {
			return db.undefined, errPreConditionFailed(err, instr.Key, false, true)
		}
		return db.undefined, errUnavailable(err)
	}

	if !instr.ReturnAll {
		return db.undefined, nil
	}

	obj, err := db.codec.Decode(val.Attributes)
	if err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	return obj, nil
}
