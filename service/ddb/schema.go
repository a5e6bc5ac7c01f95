//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package ddb

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/fogfish/dynastore"
	"github.com/fogfish/golem/hseq"
)

// schema decodes type into projection expression, storage reads only
// attributes declared by the type.
type schema[T dynastore.Thing] struct {
	ExpectedAttributeNames map[string]string
	Projection             *string
}

func newSchema[T dynastore.Thing]() *schema[T] {
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

	names := make(map[string]string, len(seq))
	attrs := make([]string, 0, len(seq))

	for _, x := range seq {
		if x == "" || x == "-" {
			continue
		}
		name := "#__" + x + "__"
		names[name] = x
		attrs = append(attrs, name)
	}

	return &schema[T]{
		ExpectedAttributeNames: names,
		Projection:             aws.String(strings.Join(attrs, ", ")),
	}
}

// names merges projection names with expression names
func (s *schema[T]) names(expr map[string]string) map[string]string {
	names := make(map[string]string, len(s.ExpectedAttributeNames)+len(expr))
	for k, v := range s.ExpectedAttributeNames {
		names[k] = v
	}
	for k, v := range expr {
		names[k] = v
	}
	return names
}
