//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package cognito

import (
	"errors"
	"fmt"

	"github.com/fogfish/faults"
)

const (
	errServiceIO    = faults.Type("service i/o failed")
	errInvalidToken = faults.Type("invalid token")
	errNoSession    = faults.Safe1[string]("no session is issued for %s")
)

// identity provider is not available
func errUnavailable(err error) error {
	return &unavailable{err: errServiceIO.New(err)}
}

type unavailable struct{ err error }

func (e *unavailable) Error() string { return e.err.Error() }

func (e *unavailable) Unwrap() error { return e.err }

func (e *unavailable) StorageUnavailable() bool { return true }

// account is not known
func errNotFound(err error, username string) error {
	return &notFound{err: err, username: username}
}

type notFound struct {
	username string
	err      error
}

func (e *notFound) Error() string {
	return fmt.Sprintf("Not Found (%s)", e.username)
}

func (e *notFound) Unwrap() error { return e.err }

func (e *notFound) NotFound() string { return e.username }

// account already exists
func errConflict(err error, username string) error {
	return &conflict{err: err, username: username}
}

type conflict struct {
	username string
	err      error
}

func (e *conflict) Error() string {
	return fmt.Sprintf("Conflict (%s)", e.username)
}

func (e *conflict) Unwrap() error { return e.err }

func (e *conflict) Conflict() bool { return true }

// credentials or token are not accepted
func errUnauthorized(err error) error {
	return &unauthorized{err: err}
}

type unauthorized struct{ err error }

func (e *unauthorized) Error() string {
	if e.err == nil {
		return "Unauthorized"
	}
	return fmt.Sprintf("Unauthorized: %s", e.err)
}

func (e *unauthorized) Unwrap() error { return e.err }

func (e *unauthorized) Unauthorized() bool { return true }

// input is rejected by identity provider (e.g. password policy)
func errInvalidInput(err error) error {
	return &invalidInput{err: err}
}

type invalidInput struct{ err error }

func (e *invalidInput) Error() string { return e.err.Error() }

func (e *invalidInput) Unwrap() error { return e.err }

func (e *invalidInput) InvalidInput() bool { return true }

// recover AWS ErrorCode
func errorCodeOf(err error) string {
	var e interface{ ErrorCode() string }

	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return ""
}
