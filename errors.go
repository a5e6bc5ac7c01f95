//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package dynastore

import "errors"

// Storage and compiler errors are opaque types. The client recovers the
// failure kind through the behaviour it exposes rather than its type.

// IsNotFound checks if the record is unknown to storage
func IsNotFound(err error) bool {
	var e interface{ NotFound() string }
	return errors.As(err, &e)
}

// IsPreConditionFailed checks if the conditional write or update is
// rejected because the record does not satisfy the condition (e.g. it is gone)
func IsPreConditionFailed(err error) bool {
	var e interface{ PreConditionFailed() bool }
	return errors.As(err, &e) && e.PreConditionFailed()
}

// IsConflict checks if the conditional write conflicts with existing record
func IsConflict(err error) bool {
	var e interface{ Conflict() bool }
	return errors.As(err, &e) && e.Conflict()
}

// IsEmptyUpdate checks if the partial update has nothing to write
func IsEmptyUpdate(err error) bool {
	var e interface{ EmptyUpdate() bool }
	return errors.As(err, &e) && e.EmptyUpdate()
}

// IsUnknownAttribute checks if the partial update refers to attribute
// that is not declared by the record type
func IsUnknownAttribute(err error) bool {
	var e interface{ UnknownAttribute() string }
	return errors.As(err, &e)
}

// IsStorageUnavailable checks if the storage service call has failed
func IsStorageUnavailable(err error) bool {
	var e interface{ StorageUnavailable() bool }
	return errors.As(err, &e) && e.StorageUnavailable()
}

// IsUnauthorized checks if credentials or token are rejected
func IsUnauthorized(err error) bool {
	var e interface{ Unauthorized() bool }
	return errors.As(err, &e) && e.Unauthorized()
}

// IsForbidden checks if the caller is not allowed to act on the record
func IsForbidden(err error) bool {
	var e interface{ Forbidden() bool }
	return errors.As(err, &e) && e.Forbidden()
}

// IsInvalidInput checks if input is rejected by the service
func IsInvalidInput(err error) bool {
	var e interface{ InvalidInput() bool }
	return errors.As(err, &e) && e.InvalidInput()
}

// IsUnsupportedMedia checks if the uploaded file is not an accepted image
func IsUnsupportedMedia(err error) bool {
	var e interface{ UnsupportedMedia() string }
	return errors.As(err, &e)
}
