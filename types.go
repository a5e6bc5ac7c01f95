//
// Copyright (C) 2019 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

//
// The file declares public types of the library
//

package dynastore

import (
	"context"

	"github.com/fogfish/curie/v2"
)

//-----------------------------------------------------------------------------
//
// Thing
//
//-----------------------------------------------------------------------------

// Thing is the most generic item type used by the library to
// abstract writable/readable records into storage services.
//
// The interface declares anything that have a unique identifier,
// the primary key of the record.
type Thing interface {
	HashKey() curie.IRI
}

//-----------------------------------------------------------------------------
//
// Update Instruction
//
//-----------------------------------------------------------------------------

// Instruction is a storage agnostic description of the atomic partial update
// of exactly one record. Field names and values are never inlined into the
// expression, they are referenced through placeholders:
//
//	SET #field0 = :value0, #field1 = :value1
//
// The instruction is produced by the patch compiler and consumed by storage.
type Instruction struct {
	// Primary key of the record, used for addressing only
	Key curie.IRI

	// Update expression referencing placeholders
	Expression string

	// Name placeholders ⟼ attribute names
	Names map[string]string

	// Value placeholders ⟼ attribute values
	Values map[string]any

	// Attributes written by the instruction, in placeholder order
	Attributes []string

	// Demand storage to return the fully updated record
	ReturnAll bool
}

//-----------------------------------------------------------------------------
//
// Storage
//
//-----------------------------------------------------------------------------

// KeyValGetter defines read by key notation
type KeyValGetter[T Thing] interface {
	Get(ctx context.Context, key T) (T, error)
}

// KeyValScanner defines sequential read of records with optional filter
type KeyValScanner[T Thing] interface {
	Scan(ctx context.Context, opts ...interface{ Constraint(T) }) ([]T, error)
}

// KeyValReader a generic key-value trait to read domain objects
type KeyValReader[T Thing] interface {
	KeyValGetter[T]
	KeyValScanner[T]
}

// KeyValWriter defines a generic key-value writer
type KeyValWriter[T Thing] interface {
	Put(ctx context.Context, entity T, opts ...interface{ Constraint(T) }) error
	Update(ctx context.Context, req Instruction, opts ...interface{ Constraint(T) }) (T, error)
	Remove(ctx context.Context, key T, opts ...interface{ Constraint(T) }) (T, error)
}

// KeyVal is a generic key-value trait to access domain objects.
type KeyVal[T Thing] interface {
	KeyValReader[T]
	KeyValWriter[T]
}
