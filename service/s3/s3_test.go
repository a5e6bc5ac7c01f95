//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package s3_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fogfish/dynastore"
	assets "github.com/fogfish/dynastore/service/s3"
	"github.com/fogfish/it/v2"
)

type s3PutObject struct {
	assets.S3
	request *s3.PutObjectInput
}

func (mock *s3PutObject) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	mock.request = input
	return &s3.PutObjectOutput{}, nil
}

type s3DeleteObject struct {
	assets.S3
	request *s3.DeleteObjectInput
}

func (mock *s3DeleteObject) DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	mock.request = input
	return &s3.DeleteObjectOutput{}, nil
}

type s3Unavailable struct{}

func (s3Unavailable) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, errors.New("service unavailable")
}

func (s3Unavailable) DeleteObject(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return nil, errors.New("service unavailable")
}

func mock(service assets.S3, opt ...assets.Option) *assets.Store {
	return assets.Must(
		assets.New(
			append([]assets.Option{
				assets.WithBucket("test"),
				assets.WithService(service),
			}, opt...)...,
		),
	)
}

func TestNew(t *testing.T) {
	t.Run("NoBucket", func(t *testing.T) {
		_, err := assets.New(assets.WithService(s3Unavailable{}))
		it.Then(t).ShouldNot(it.Nil(err))
	})

	t.Run("StatelessService", func(t *testing.T) {
		_, err := assets.New(
			assets.WithBucket("test"),
			assets.WithService(s3Unavailable{}),
		)
		it.Then(t).Should(it.Nil(err))
	})
}

func TestUpload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s3 := &s3PutObject{}
		store := mock(s3)

		asset, err := store.Upload(context.Background(),
			assets.File{Name: "photo.PNG", Body: strings.NewReader("png")},
		)
		it.Then(t).Should(
			it.Nil(err),
			it.True(strings.HasPrefix(asset.ID, "serverless-practice/")),
			it.True(strings.HasSuffix(asset.ID, ".png")),
			it.Equal(asset.URL, "https://test.s3.amazonaws.com/upload/"+asset.ID),
			it.Equal(*s3.request.Bucket, "test"),
			it.Equal(*s3.request.Key, "upload/"+asset.ID),
			it.Equal(*s3.request.ContentType, "image/png"),
		)
	})

	t.Run("BaseURL", func(t *testing.T) {
		store := mock(&s3PutObject{},
			assets.WithFolder("demo"),
			assets.WithBaseURL("https://cdn.example.com/"),
		)

		asset, err := store.Upload(context.Background(),
			assets.File{Name: "photo.jpeg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")},
		)
		it.Then(t).Should(
			it.Nil(err),
			it.True(strings.HasPrefix(asset.URL, "https://cdn.example.com/upload/demo/")),
		)
	})

	t.Run("UniqueID", func(t *testing.T) {
		store := mock(&s3PutObject{})

		a, _ := store.Upload(context.Background(), assets.File{Name: "a.jpg", Body: strings.NewReader("a")})
		b, _ := store.Upload(context.Background(), assets.File{Name: "a.jpg", Body: strings.NewReader("a")})
		it.Then(t).ShouldNot(it.Equal(a.ID, b.ID))
	})

	t.Run("UnsupportedMedia", func(t *testing.T) {
		s3 := &s3PutObject{}
		store := mock(s3)

		_, err := store.Upload(context.Background(),
			assets.File{Name: "doc.pdf", Body: strings.NewReader("pdf")},
		)

		var e interface{ UnsupportedMedia() string }
		it.Then(t).Should(
			it.True(errors.As(err, &e)),
			it.Equal(e.UnsupportedMedia(), "doc.pdf"),
			it.True(s3.request == nil),
		)
	})

	t.Run("Unavailable", func(t *testing.T) {
		store := mock(s3Unavailable{})

		_, err := store.Upload(context.Background(),
			assets.File{Name: "photo.png", Body: strings.NewReader("png")},
		)
		it.Then(t).Should(it.True(dynastore.IsStorageUnavailable(err)))
	})
}

func TestDestroy(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s3 := &s3DeleteObject{}
		store := mock(s3)

		err := store.Destroy(context.Background(), "serverless-practice/a.png")
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(*s3.request.Key, "upload/serverless-practice/a.png"),
		)
	})

	t.Run("NoID", func(t *testing.T) {
		store := mock(&s3DeleteObject{})

		err := store.Destroy(context.Background(), "")
		it.Then(t).ShouldNot(it.Nil(err))
	})

	t.Run("Unavailable", func(t *testing.T) {
		store := mock(s3Unavailable{})

		err := store.Destroy(context.Background(), "serverless-practice/a.png")
		it.Then(t).Should(it.True(dynastore.IsStorageUnavailable(err)))
	})
}

func TestVariant(t *testing.T) {
	asset := assets.Asset{
		ID:  "demo/a.png",
		URL: "https://test.s3.amazonaws.com/upload/demo/a.png",
	}

	it.Then(t).Should(
		it.Equal(asset.Variant(assets.Thumbnail), "https://test.s3.amazonaws.com/upload/c_scale,w_250/f_auto/demo/a.png"),
		it.Equal(asset.Variant(assets.Display), "https://test.s3.amazonaws.com/upload/c_scale,w_1200/q_auto/demo/a.png"),
		it.Equal(asset.Variant(""), asset.URL),
		it.Equal(assets.Asset{URL: "https://example.com/a.png"}.Variant(assets.Thumbnail), "https://example.com/a.png"),
	)
}
