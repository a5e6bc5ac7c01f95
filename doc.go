//
// Copyright (C) 2019 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package dynastore implements a REST backend of users and products on top of
// AWS DynamoDB, Cognito and S3.
//
// The heart of the library is the partial update compiler (see package patch).
// It translates an untrusted field map supplied by the client into a safe,
// storage agnostic Instruction:
//
//	c := patch.Must(patch.New[User](patch.WithKey("userId")))
//	req, err := c.Compile(key, &existing, map[string]any{"name": "Alice"})
//
//	// SET #field0 = :value0, #field1 = :value1
//	//   #field0 ⟼ name,      :value0 ⟼ "Alice"
//	//   #field1 ⟼ updatedAt, :value1 ⟼ 1700000000000
//
// The compiler never writes the primary key or the creation timestamp and
// always stamps the modification time. The instruction is applied by storage
// that implements KeyVal trait (see package service/ddb)
//
//	trait KeyVal[T] {
//	  def get(key: T): T
//	  def put(entity: T): Unit
//	  def update(req: Instruction): T
//	  def remove(key: T): T
//	  def scan(filter: Constraint[T]*): Seq[T]
//	}
//
// The storage is injected into HTTP handlers together with identity provider
// (service/cognito) and assets host (service/s3).
package dynastore
