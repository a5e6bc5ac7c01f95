//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package api implements REST interface to users, products and
// authentication. Partial updates of records are compiled by the patch
// compiler and applied by the key-value storage.
package api

import (
	"context"
	"time"

	"github.com/fogfish/dynastore"
	"github.com/fogfish/dynastore/patch"
	"github.com/fogfish/dynastore/service/cognito"
	"github.com/fogfish/dynastore/service/s3"
	"github.com/fogfish/faults"
	"github.com/fogfish/opts"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Identity provider
type Identity interface {
	CreateUser(ctx context.Context, email string) (cognito.Account, error)
	SetPassword(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (cognito.Session, error)
	Lookup(ctx context.Context, email string) (cognito.Account, error)
}

// Verifier of bearer tokens
type Verifier interface {
	Verify(ctx context.Context, token string) (cognito.Claims, error)
}

// Assets host of product images
type Assets interface {
	Upload(ctx context.Context, file s3.File) (s3.Asset, error)
	Destroy(ctx context.Context, id string) error
}

// Option type to configure the api
type Option = opts.Option[Options]

// Config Options
type Options struct {
	users    dynastore.KeyVal[User]
	products dynastore.KeyVal[Product]
	identity Identity
	verifier Verifier
	assets   Assets
	logger   *zap.Logger
	origins  []string
	clock    func() time.Time
}

const errUndefinedOption = faults.Safe1[string]("undefined option, use %s")

func (c *Options) checkRequired() error {
	switch {
	case c.users == nil:
		return errUndefinedOption.New(nil, "WithUsers")
	case c.products == nil:
		return errUndefinedOption.New(nil, "WithProducts")
	case c.identity == nil:
		return errUndefinedOption.New(nil, "WithIdentity")
	case c.verifier == nil:
		return errUndefinedOption.New(nil, "WithVerifier")
	case c.assets == nil:
		return errUndefinedOption.New(nil, "WithAssets")
	}

	return nil
}

var (
	// Set storage of user profiles
	WithUsers = opts.ForType[Options, dynastore.KeyVal[User]]()

	// Set storage of products
	WithProducts = opts.ForType[Options, dynastore.KeyVal[Product]]()

	// Set identity provider
	WithIdentity = opts.ForType[Options, Identity]()

	// Set verifier of bearer tokens
	WithVerifier = opts.ForType[Options, Verifier]()

	// Set host of images
	WithAssets = opts.ForType[Options, Assets]()

	// Set logger, default one discards logs
	WithLogger = opts.ForType[Options, *zap.Logger]()

	// Set allowed CORS origins, default is any
	WithOrigins = opts.ForName[Options, []string]("origins")

	// Set clock used for timestamps
	WithClock = opts.ForType[Options, func() time.Time]()
)

func optsDefault() Options {
	return Options{
		logger:  zap.NewNop(),
		origins: []string{"*"},
		clock:   time.Now,
	}
}

// API of the service
type API struct {
	Options
	userPatch    *patch.Compiler[User]
	productPatch *patch.Compiler[Product]
	validate     *validator.Validate
}

// New creates api
func New(opt ...Option) (*API, error) {
	c := optsDefault()
	if err := opts.Apply(&c, opt); err != nil {
		return nil, err
	}

	if err := c.checkRequired(); err != nil {
		return nil, err
	}

	userPatch, err := patch.New[User](
		patch.WithKey(UserKey),
		patch.WithClock(c.clock),
	)
	if err != nil {
		return nil, err
	}

	productPatch, err := patch.New[Product](
		patch.WithKey(ProductKey),
		patch.WithProtected(productProtected),
		patch.WithClock(c.clock),
	)
	if err != nil {
		return nil, err
	}

	return &API{
		Options:      c,
		userPatch:    userPatch,
		productPatch: productPatch,
		validate:     newValidator(),
	}, nil
}
