//
// Copyright (C) 2019 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package s3 implements image asset host on top of AWS S3. Assets are kept
// under the key `upload/<folder>/<id><ext>`, transformed variants of the
// asset are addressed by the path segment that follows `/upload`.
package s3

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fogfish/opts"
	"github.com/google/uuid"
)

// File is an image to be uploaded
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Asset is uploaded image
type Asset struct {
	ID  string
	URL string
}

// Variant of the asset's url with transformation segment, e.g.
//
//	https://host/upload/demo/a.png ⟼ https://host/upload/c_scale,w_250/f_auto/demo/a.png
func (a Asset) Variant(transform string) string {
	if transform == "" {
		return a.URL
	}

	head, tail, has := strings.Cut(a.URL, "/upload/")
	if !has {
		return a.URL
	}

	return head + "/upload/" + strings.Trim(transform, "/") + "/" + tail
}

// Well-known transformations
const (
	Thumbnail = "c_scale,w_250/f_auto"
	Display   = "c_scale,w_1200/q_auto"
)

var media = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Store of image assets
type Store struct {
	service S3
	bucket  *string
	folder  string
	baseURL string
}

// Must constraint for api factory
func Must(store *Store, err error) *Store {
	if err != nil {
		panic(err)
	}

	return store
}

// New creates asset store
func New(opt ...Option) (*Store, error) {
	c := optsDefault()
	if err := opts.Apply(&c, opt); err != nil {
		return nil, err
	}

	if c.service == nil {
		if err := optsDefaultS3(&c); err != nil {
			return nil, err
		}
	}

	if err := c.checkRequired(); err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(c.baseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", c.bucket)
	}

	return &Store{
		service: c.service,
		bucket:  aws.String(c.bucket),
		folder:  strings.Trim(c.folder, "/"),
		baseURL: baseURL,
	}, nil
}

// Upload image to the store
func (store *Store) Upload(ctx context.Context, file File) (Asset, error) {
	ext := strings.ToLower(path.Ext(file.Name))
	contentType, has := media[ext]
	if !has {
		return Asset{}, errUnsupportedMedia(file.Name)
	}

	if file.Body == nil {
		return Asset{}, errInvalidAsset.New(nil, file.Name)
	}

	if file.ContentType != "" {
		if t, _, err := mime.ParseMediaType(file.ContentType); err == nil && strings.HasPrefix(t, "image/") {
			contentType = t
		}
	}

	id := store.folder + "/" + uuid.NewString() + ext
	key := "upload/" + id

	req := &s3.PutObjectInput{
		Bucket:      store.bucket,
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(contentType),
	}

	if _, err := store.service.PutObject(ctx, req); err != nil {
		return Asset{}, errUnavailable(err)
	}

	return Asset{ID: id, URL: store.baseURL + "/" + key}, nil
}

// Destroy removes image from the store
func (store *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return errInvalidAsset.New(nil, id)
	}

	req := &s3.DeleteObjectInput{
		Bucket: store.bucket,
		Key:    aws.String("upload/" + strings.TrimPrefix(id, "/")),
	}

	if _, err := store.service.DeleteObject(ctx, req); err != nil {
		return errUnavailable(err)
	}

	return nil
}
