//
// Copyright (C) 2019 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package ddb implements key-value storage of records at AWS DynamoDB table
// with single attribute primary key.
package ddb

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/fogfish/dynastore"
	"github.com/fogfish/opts"
)

// Storage type
type Storage[T dynastore.Thing] struct {
	service   DynamoDB
	table     *string
	codec     *codec[T]
	schema    *schema[T]
	undefined T
}

var _ dynastore.KeyVal[dynastore.Thing] = (*Storage[dynastore.Thing])(nil)

// Must constraint for api factory
func Must[T dynastore.Thing](keyval *Storage[T], err error) *Storage[T] {
	if err != nil {
		panic(err)
	}

	return keyval
}

// New creates instance of DynamoDB api
func New[T dynastore.Thing](opt ...Option) (*Storage[T], error) {
	c := optsDefault()
	if err := opts.Apply(&c, opt); err != nil {
		return nil, err
	}

	if c.service == nil {
		if err := optsDefaultDDB(&c); err != nil {
			return nil, err
		}
	}

	if err := c.checkRequired(); err != nil {
		return nil, err
	}

	return &Storage[T]{
		service: c.service,
		table:   aws.String(c.table),
		codec:   newCodec[T](c.hashKey),
		schema:  newSchema[T](),
	}, nil
}
