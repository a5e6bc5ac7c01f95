//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package s3

import (
	"fmt"

	"github.com/fogfish/faults"
)

const (
	errServiceIO    = faults.Type("service i/o failed")
	errInvalidAsset = faults.Safe1[string]("invalid asset %s")
)

// the asset is not an image
func errUnsupportedMedia(file string) error {
	return &unsupportedMedia{file: file}
}

type unsupportedMedia struct{ file string }

func (e *unsupportedMedia) Error() string {
	return fmt.Sprintf("Unsupported Media (%s), only .jpg, .jpeg and .png are accepted", e.file)
}

func (e *unsupportedMedia) UnsupportedMedia() string { return e.file }

// storage service is not available
func errUnavailable(err error) error {
	return &unavailable{err: errServiceIO.New(err)}
}

type unavailable struct{ err error }

func (e *unavailable) Error() string { return e.err.Error() }

func (e *unavailable) Unwrap() error { return e.err }

func (e *unavailable) StorageUnavailable() bool { return true }
