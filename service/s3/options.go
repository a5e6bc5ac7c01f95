//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fogfish/opts"
)

// S3 declares AWS API used by the asset store
type S3 interface {
	PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Option type to configure the asset store
type Option = opts.Option[Options]

// Config Options
type Options struct {
	bucket  string
	folder  string
	baseURL string
	service S3
}

func (c *Options) checkRequired() error {
	return opts.Required(c,
		WithBucket(""),
		WithFolder(""),
	)
}

var (
	// Set S3 bucket for assets
	WithBucket = opts.ForName[Options, string]("bucket")

	// Set folder for assets, default one is "serverless-practice"
	WithFolder = opts.ForName[Options, string]("folder")

	// Set public base url of the bucket (e.g. CDN distribution)
	WithBaseURL = opts.ForName[Options, string]("baseURL")

	// Set S3 client for the store
	WithService = opts.ForType[Options, S3]()

	// Configure store's S3 client using provided the aws.Config
	WithConfig = opts.FMap(optsFromConfig)

	// Use default aws.Config for S3 client
	WithDefaultS3 = opts.From(optsDefaultS3)
)

func optsDefault() Options {
	return Options{
		folder: "serverless-practice",
	}
}

func optsDefaultS3(c *Options) error {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return err
	}

	return optsFromConfig(c, cfg)
}

func optsFromConfig(c *Options, cfg aws.Config) error {
	if c.service == nil {
		c.service = s3.NewFromConfig(cfg)
	}
	return nil
}
