//
// Copyright (C) 2019 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/curie/v2"
	"github.com/fogfish/dynastore"
)

// Codec is utility to encode/decode objects to dynamo representation
type codec[T dynastore.Thing] struct {
	hashKey   string
	undefined T
}

func newCodec[T dynastore.Thing](hashKey string) *codec[T] {
	return &codec[T]{hashKey: hashKey}
}

// EncodeKey to dynamo representation
func (codec codec[T]) EncodeKey(key dynastore.Thing) (map[string]types.AttributeValue, error) {
	return codec.EncodeHashKey(key.HashKey())
}

// EncodeHashKey to dynamo representation
func (codec codec[T]) EncodeHashKey(hashKey curie.IRI) (map[string]types.AttributeValue, error) {
	if hashKey == "" {
		return nil, fmt.Errorf("invalid key of %T, hashkey cannot be empty", codec.undefined)
	}

	return map[string]types.AttributeValue{
		codec.hashKey: &types.AttributeValueMemberS{Value: string(hashKey)},
	}, nil
}

// Encode object to dynamo representation
func (codec codec[T]) Encode(entity T) (map[string]types.AttributeValue, error) {
	gen, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, err
	}

	if v, has := gen[codec.hashKey]; !has || isNull(v) {
		return nil, fmt.Errorf("invalid entity of %T, attribute %s is not defined", entity, codec.hashKey)
	}

	return gen, nil
}

// Decode dynamo representation to object
func (codec codec[T]) Decode(gen map[string]types.AttributeValue) (T, error) {
	if _, has := gen[codec.hashKey]; !has {
		return codec.undefined, fmt.Errorf("invalid DDB schema, attribute %s is not defined", codec.hashKey)
	}

	var entity T
	if err := attributevalue.UnmarshalMap(gen, &entity); err != nil {
		return codec.undefined, err
	}

	return entity, nil
}

func isNull(v types.AttributeValue) bool {
	_, ok := v.(*types.AttributeValueMemberNULL)
	return ok
}
