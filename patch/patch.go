//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package patch compiles partial updates of records. The client supplies
// an untrusted map of attributes, the compiler filters protected attributes,
// stamps the modification time and assigns placeholders to names and values.
//
//	{"name": "Alice", "createdAt": 999}
//	  ⟼ SET #field0 = :value0, #field1 = :value1
//	      #field0 ⟼ name,      :value0 ⟼ "Alice"
//	      #field1 ⟼ updatedAt, :value1 ⟼ <now in epoch millis>
package patch

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fogfish/dynastore"
	"github.com/fogfish/golem/hseq"
	"github.com/fogfish/opts"
)

// Compiler of partial updates for records of type T
type Compiler[T dynastore.Thing] struct {
	Options
	excluded map[string]struct{}
	declared map[string]struct{}
}

// Must constraint for compiler factory
func Must[T dynastore.Thing](c *Compiler[T], err error) *Compiler[T] {
	if err != nil {
		panic(err)
	}

	return c
}

// New creates compiler of partial updates for type T
func New[T dynastore.Thing](opt ...Option) (*Compiler[T], error) {
	c := optsDefault()
	if err := opts.Apply(&c, opt); err != nil {
		return nil, err
	}

	if err := c.checkRequired(); err != nil {
		return nil, err
	}

	excluded := map[string]struct{}{
		c.key:       {},
		c.createdAt: {},
		c.updatedAt: {},
	}
	for _, attr := range c.protected {
		excluded[attr] = struct{}{}
	}

	declared := attributesOf[T]()
	if c.strict {
		for _, attr := range []string{c.key, c.updatedAt} {
			if _, has := declared[attr]; !has {
				return nil, errInvalidSchema.New(nil, attr)
			}
		}
	}

	return &Compiler[T]{
		Options:  c,
		excluded: excluded,
		declared: declared,
	}, nil
}

// Compile translates the field map into update instruction for the record
// addressed by the key. The existing record must be fetched by the caller,
// it proves that record exists.
func (c *Compiler[T]) Compile(key T, existing *T, fields map[string]any) (dynastore.Instruction, error) {
	hashKey := key.HashKey()
	if hashKey == "" {
		return dynastore.Instruction{}, errInvalidKey.New(nil)
	}

	if existing == nil || (*existing).HashKey() != hashKey {
		return dynastore.Instruction{}, errPreConditionFailed(hashKey)
	}

	attrs := make([]string, 0, len(fields)+1)
	for attr := range fields {
		if _, has := c.excluded[attr]; has {
			continue
		}

		if attr == "" {
			return dynastore.Instruction{}, errUnknownAttribute(attr)
		}

		if c.strict {
			if _, has := c.declared[attr]; !has {
				return dynastore.Instruction{}, errUnknownAttribute(attr)
			}
		}

		attrs = append(attrs, attr)
	}

	// the modification timestamp alone is not an update
	if len(attrs) == 0 {
		return dynastore.Instruction{}, errEmptyUpdate(hashKey)
	}

	attrs = append(attrs, c.updatedAt)
	sort.Strings(attrs)

	now := c.clock().UnixMilli()
	names := make(map[string]string, len(attrs))
	values := make(map[string]any, len(attrs))
	update := make([]string, len(attrs))

	for i, attr := range attrs {
		ekey := "#field" + strconv.Itoa(i)
		eval := ":value" + strconv.Itoa(i)

		names[ekey] = attr
		if attr == c.updatedAt {
			values[eval] = now
		} else {
			values[eval] = fields[attr]
		}
		update[i] = ekey + " = " + eval
	}

	return dynastore.Instruction{
		Key:        hashKey,
		Expression: "SET " + strings.Join(update, ", "),
		Names:      names,
		Values:     values,
		Attributes: attrs,
		ReturnAll:  true,
	}, nil
}

// attributesOf decodes storage attribute names of the type from `dynamodbav` tags
func attributesOf[T any]() map[string]struct{} {
	seq := hseq.FMap(
		hseq.New[T](),
		func(t hseq.Type[T]) string {
			tag := t.StructField.Tag.Get("dynamodbav")
			if tag == "" {
				return t.Name
			}
			return strings.Split(tag, ",")[0]
		},
	)

	attrs := make(map[string]struct{}, len(seq))
	for _, attr := range seq {
		if attr != "" && attr != "-" {
			attrs[attr] = struct{}{}
		}
	}

	return attrs
}
