//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package patch

import (
	"fmt"

	"github.com/fogfish/curie/v2"
	"github.com/fogfish/faults"
)

const (
	errInvalidKey    = faults.Type("invalid key")
	errInvalidSchema = faults.Safe1[string]("invalid schema, attribute %s is not declared")
)

// record is absent or it is not the one being addressed
func errPreConditionFailed(key curie.IRI) error {
	return &preConditionFailed{key: key}
}

type preConditionFailed struct{ key curie.IRI }

func (e *preConditionFailed) Error() string {
	return fmt.Sprintf("Pre Condition Failed (%s)", e.key)
}

func (e *preConditionFailed) PreConditionFailed() bool { return true }

func (e *preConditionFailed) NotFound() string { return string(e.key) }

// nothing to update
func errEmptyUpdate(key curie.IRI) error {
	return &emptyUpdate{key: key}
}

type emptyUpdate struct{ key curie.IRI }

func (e *emptyUpdate) Error() string {
	return fmt.Sprintf("Empty Update (%s)", e.key)
}

func (e *emptyUpdate) EmptyUpdate() bool { return true }

// attribute is not declared by the type
func errUnknownAttribute(attr string) error {
	return &unknownAttribute{attr: attr}
}

type unknownAttribute struct{ attr string }

func (e *unknownAttribute) Error() string {
	return fmt.Sprintf("Unknown Attribute (%q)", e.attr)
}

func (e *unknownAttribute) UnknownAttribute() string { return e.attr }
