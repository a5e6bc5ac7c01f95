//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

//
// The file implements dynamodb specific constraints
//

package ddb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/dynastore"
	"github.com/fogfish/golem/hseq"
)

// Constraint is a function that applies conditional expression to storage
// request. It is a condition expression for writes and a filter expression
// for scans.
type Constraint[T any] struct {
	fun string
	key string
	val any
}

func (Constraint[T]) Constraint(T) {}

// Attribute the constraint is applied to
func (c Constraint[T]) Attribute() string { return c.key }

// Operator of the constraint: comparison or attribute function
func (c Constraint[T]) Operator() string { return c.fun }

// Value of the constraint, it is nil for attribute functions
func (c Constraint[T]) Value() any { return c.val }

// ClauseFor declares type descriptor to express Storage I/O Constraints.
//
// Let's consider a following example:
//
//	type Product struct {
//	  ID    curie.IRI `dynamodbav:"prodId"`
//	  Owner curie.IRI `dynamodbav:"userId,omitempty"`
//	}
//
// How to define a filter expression on the field Owner? Golang struct defines
// and refers the field by `Owner` but DynamoDB stores it under the attribute
// `userId`. The clause binds the struct field with its attribute once:
//
//	var owner = ddb.ClauseFor[Product, curie.IRI]("Owner")
//
//	owner.Eq("User-joe@example.com")
//	owner.NotExists()
func ClauseFor[T dynastore.Thing, A any](field string) Clause[T, A] {
	return hseq.FMap1(
		hseq.New[T](field),
		newClause[T, A],
	)
}

func newClause[T dynastore.Thing, A any](t hseq.Type[T]) Clause[T, A] {
	tag := t.StructField.Tag.Get("dynamodbav")
	if tag == "" {
		panic(fmt.Errorf("field %s of type %T do not have `dynamodbav` tag", t.Name, *new(T)))
	}

	return Clause[T, A]{key: strings.Split(tag, ",")[0]}
}

// Clause builds constraints for the attribute
type Clause[T dynastore.Thing, A any] struct{ key string }

// Eq is equal constraint
//
//	name.Eq(x) ⟼ Field = :value
func (c Clause[T, A]) Eq(val A) Constraint[T] {
	return Constraint[T]{fun: "=", key: c.key, val: val}
}

// Ne is non equal constraint
//
//	name.Ne(x) ⟼ Field <> :value
func (c Clause[T, A]) Ne(val A) Constraint[T] {
	return Constraint[T]{fun: "<>", key: c.key, val: val}
}

// Lt is less than constraint
//
//	name.Lt(x) ⟼ Field < :value
func (c Clause[T, A]) Lt(val A) Constraint[T] {
	return Constraint[T]{fun: "<", key: c.key, val: val}
}

// Le is less or equal constraint
//
//	name.Le(x) ⟼ Field <= :value
func (c Clause[T, A]) Le(val A) Constraint[T] {
	return Constraint[T]{fun: "<=", key: c.key, val: val}
}

// Gt is greater than constraint
//
//	name.Gt(x) ⟼ Field > :value
func (c Clause[T, A]) Gt(val A) Constraint[T] {
	return Constraint[T]{fun: ">", key: c.key, val: val}
}

// Ge is greater or equal constraint
//
//	name.Ge(x) ⟼ Field >= :value
func (c Clause[T, A]) Ge(val A) Constraint[T] {
	return Constraint[T]{fun: ">=", key: c.key, val: val}
}

// Exists attribute constraint
//
//	name.Exists(x) ⟼ attribute_exists(name)
func (c Clause[T, A]) Exists() Constraint[T] {
	return Constraint[T]{fun: "attribute_exists", key: c.key}
}

// NotExists attribute constraint
//
//	name.NotExists(x) ⟼ attribute_not_exists(name)
func (c Clause[T, A]) NotExists() Constraint[T] {
	return Constraint[T]{fun: "attribute_not_exists", key: c.key}
}

//
// Internal implementation of conditional expressions for dynamo db
//

type expression struct {
	names  map[string]string
	values map[string]types.AttributeValue
	terms  []string
}

func newExpression(names map[string]string, values map[string]types.AttributeValue) *expression {
	if names == nil {
		names = map[string]string{}
	}
	if values == nil {
		values = map[string]types.AttributeValue{}
	}

	return &expression{names: names, values: values}
}

func (e *expression) unary(fun, key string) {
	ekey := "#__" + key + "__"
	e.names[ekey] = key
	e.terms = append(e.terms, fun+"("+ekey+")")
}

func (e *expression) dyadic(fun, key string, val any) error {
	lit, err := attributevalue.Marshal(val)
	if err != nil {
		return err
	}

	ekey := "#__" + key + "__"
	eval := ":__" + key + "_" + strconv.Itoa(len(e.terms)) + "__"
	e.names[ekey] = key
	e.values[eval] = lit
	e.terms = append(e.terms, ekey+" "+fun+" "+eval)
	return nil
}

// Expression is nil when no terms are defined
func (e *expression) Expression() *string {
	if len(e.terms) == 0 {
		return nil
	}
	return aws.String(strings.Join(e.terms, " and "))
}

// Unfortunately empty maps are not accepted by DynamoDB
func (e *expression) Names() map[string]string {
	if len(e.names) == 0 {
		return nil
	}
	return e.names
}

// Unfortunately empty maps are not accepted by DynamoDB
func (e *expression) Values() map[string]types.AttributeValue {
	if len(e.values) == 0 {
		return nil
	}
	return e.values
}

func maybeConditionExpression[T dynastore.Thing](
	e *expression,
	config []interface{ Constraint(T) },
) error {
	for _, opt := range config {
		switch c := opt.(type) {
		case Constraint[T]:
			if c.key == "" {
				continue
			}

			if c.val == nil {
				e.unary(c.fun, c.key)
				continue
			}

			if err := e.dyadic(c.fun, c.key, c.val); err != nil {
				return err
			}
		}
	}

	return nil
}
