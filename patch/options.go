//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package patch

import (
	"time"

	"github.com/fogfish/opts"
)

// Option type to configure the compiler
type Option = opts.Option[Options]

// Compiler Options
type Options struct {
	key       string
	createdAt string
	updatedAt string
	protected []string
	strict    bool
	clock     func() time.Time
}

func (c *Options) checkRequired() error {
	return opts.Required(c,
		WithKey(""),
		WithCreatedAt(""),
		WithUpdatedAt(""),
	)
}

var (
	// Name of primary key attribute, it is excluded from the update
	WithKey = opts.ForName[Options, string]("key")

	// Name of creation timestamp attribute, default one is "createdAt".
	// It is excluded from the update.
	WithCreatedAt = opts.ForName[Options, string]("createdAt")

	// Name of modification timestamp attribute, default one is "updatedAt".
	// It is always set by the compiler.
	WithUpdatedAt = opts.ForName[Options, string]("updatedAt")

	// Additional attributes that are silently excluded from the update
	WithProtected = opts.ForType[Options, []string]()

	// Demand that compiler "knows" all attributes of the type, unknown
	// attributes are rejected. It is enabled by default.
	WithStrictType = opts.ForName[Options, bool]("strict")

	// Clock used to stamp modification time
	WithClock = opts.ForType[Options, func() time.Time]()
)

func optsDefault() Options {
	return Options{
		createdAt: "createdAt",
		updatedAt: "updatedAt",
		strict:    true,
		clock:     time.Now,
	}
}
