//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package ddb

import (
	"errors"
	"fmt"

	"github.com/fogfish/curie/v2"
	"github.com/fogfish/faults"
)

const (
	errServiceIO     = faults.Type("service i/o failed")
	errInvalidKey    = faults.Type("invalid key")
	errInvalidEntity = faults.Type("invalid entity")
	errInvalidUpdate = faults.Type("invalid update instruction")
)

// storage service is not available
func errUnavailable(err error) error {
	return &unavailable{err: errServiceIO.New(err)}
}

type unavailable struct{ err error }

func (e *unavailable) Error() string { return e.err.Error() }

func (e *unavailable) Unwrap() error { return e.err }

func (e *unavailable) StorageUnavailable() bool { return true }

// NotFound is an error to handle unknown elements
func errNotFound(err error, key curie.IRI) error {
	return &notFound{err: err, key: key}
}

type notFound struct {
	key curie.IRI
	err error
}

func (e *notFound) Error() string {
	return fmt.Sprintf("Not Found (%s)", e.key)
}

func (e *notFound) Unwrap() error { return e.err }

func (e *notFound) NotFound() string { return string(e.key) }

// conditional expression is failed
func errPreConditionFailed(err error, key curie.IRI, conflict bool, gone bool) error {
	return &preConditionFailed{err: err, key: key, conflict: conflict, gone: gone}
}

type preConditionFailed struct {
	key      curie.IRI
	conflict bool
	gone     bool
	err      error
}

func (e *preConditionFailed) Error() string {
	return fmt.Sprintf("Pre Condition Failed (%s)", e.key)
}

func (e *preConditionFailed) Unwrap() error { return e.err }

func (e *preConditionFailed) PreConditionFailed() bool { return true }

func (e *preConditionFailed) Conflict() bool { return e.conflict }

func (e *preConditionFailed) Gone() bool { return e.gone }

// recover AWS ErrorCode
func recoverConditionalCheckFailedException(err error) bool {
	var e interface{ ErrorCode() string }

	ok := errors.As(err, &e)
	return ok && e.ErrorCode() == "ConditionalCheckFailedException"
}
