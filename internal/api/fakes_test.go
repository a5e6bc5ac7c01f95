//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fogfish/curie/v2"
	"github.com/fogfish/dynastore"
	"github.com/fogfish/dynastore/service/cognito"
	"github.com/fogfish/dynastore/service/s3"
)

//
// In-memory key-value storage, it applies compiled instructions to
// the JSON form of records. JSON and table attributes share names.
//

type keyval[T dynastore.Thing] struct {
	mu  sync.Mutex
	seq map[curie.IRI]T
}

func newKeyVal[T dynastore.Thing](seq ...T) *keyval[T] {
	kv := &keyval[T]{seq: map[curie.IRI]T{}}
	for _, x := range seq {
		kv.seq[x.HashKey()] = x
	}
	return kv
}

type term interface {
	Attribute() string
	Operator() string
	Value() any
}

func (kv *keyval[T]) Get(ctx context.Context, key T) (T, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	val, has := kv.seq[key.HashKey()]
	if !has {
		return *new(T), &fault{kind: "not found", key: key.HashKey()}
	}
	return val, nil
}

func (kv *keyval[T]) Put(ctx context.Context, entity T, opts ...interface{ Constraint(T) }) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	for _, opt := range opts {
		if c, ok := opt.(term); ok && c.Operator() == "attribute_not_exists" {
			if _, has := kv.seq[entity.HashKey()]; has {
				return &fault{kind: "conflict", key: entity.HashKey()}
			}
		}
	}

	kv.seq[entity.HashKey()] = entity
	return nil
}

func (kv *keyval[T]) Update(ctx context.Context, instr dynastore.Instruction, opts ...interface{ Constraint(T) }) (T, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	val, has := kv.seq[instr.Key]
	if !has {
		return *new(T), &fault{kind: "gone", key: instr.Key}
	}

	attrs := toMap(val)
	for ekey, attr := range instr.Names {
		eval := ":value" + strings.TrimPrefix(ekey, "#field")
		attrs[attr] = instr.Values[eval]
	}

	obj, err := fromMap[T](attrs)
	if err != nil {
		return *new(T), err
	}

	kv.seq[instr.Key] = obj
	return obj, nil
}

func (kv *keyval[T]) Remove(ctx context.Context, key T, opts ...interface{ Constraint(T) }) (T, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	val, has := kv.seq[key.HashKey()]
	if !has {
		return *new(T), &fault{kind: "not found", key: key.HashKey()}
	}

	delete(kv.seq, key.HashKey())
	return val, nil
}

func (kv *keyval[T]) Scan(ctx context.Context, opts ...interface{ Constraint(T) }) ([]T, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	seq := make([]T, 0, len(kv.seq))
	for _, val := range kv.seq {
		attrs := toMap(val)
		matched := true
		for _, opt := range opts {
			if c, ok := opt.(term); ok && c.Operator() == "=" {
				matched = matched && fmt.Sprint(attrs[c.Attribute()]) == fmt.Sprint(c.Value())
			}
		}
		if matched {
			seq = append(seq, val)
		}
	}
	return seq, nil
}

func toMap(val any) map[string]any {
	b, _ := json.Marshal(val)
	attrs := map[string]any{}
	_ = json.Unmarshal(b, &attrs)
	return attrs
}

func fromMap[T any](attrs map[string]any) (T, error) {
	var val T
	b, err := json.Marshal(attrs)
	if err != nil {
		return val, err
	}
	err = json.Unmarshal(b, &val)
	return val, err
}

type fault struct {
	kind string
	key  curie.IRI
}

func (e *fault) Error() string { return e.kind + " " + string(e.key) }

func (e *fault) NotFound() string { return string(e.key) }

func (e *fault) PreConditionFailed() bool { return e.kind != "not found" }

func (e *fault) Conflict() bool { return e.kind == "conflict" }

//
// Identity provider and token verifier, tokens are `token-<email>`
//

type identity struct {
	mu       sync.Mutex
	accounts map[string]string
}

func newIdentity() *identity {
	return &identity{accounts: map[string]string{
		"joe@example.com": "Secret#123",
		"bob@example.com": "Secret#456",
	}}
}

func (id *identity) CreateUser(ctx context.Context, email string) (cognito.Account, error) {
	id.mu.Lock()
	defer id.mu.Unlock()

	if _, has := id.accounts[email]; has {
		return cognito.Account{}, &fault{kind: "conflict", key: curie.IRI(email)}
	}
	id.accounts[email] = ""

	return cognito.Account{Username: email, Enabled: true}, nil
}

func (id *identity) SetPassword(ctx context.Context, email, password string) error {
	id.mu.Lock()
	defer id.mu.Unlock()

	id.accounts[email] = password
	return nil
}

func (id *identity) Login(ctx context.Context, email, password string) (cognito.Session, error) {
	id.mu.Lock()
	defer id.mu.Unlock()

	if secret, has := id.accounts[email]; !has || secret != password {
		return cognito.Session{}, unauthorized{}
	}

	return cognito.Session{IDToken: "token-" + email}, nil
}

func (id *identity) Lookup(ctx context.Context, email string) (cognito.Account, error) {
	id.mu.Lock()
	defer id.mu.Unlock()

	if _, has := id.accounts[email]; !has {
		return cognito.Account{}, &fault{kind: "not found", key: curie.IRI(email)}
	}

	return cognito.Account{
		Username:   email,
		Attributes: map[string]string{"email": email},
		Enabled:    true,
	}, nil
}

type verifier struct{}

func (verifier) Verify(ctx context.Context, token string) (cognito.Claims, error) {
	email, has := strings.CutPrefix(token, "token-")
	if !has || email == "" {
		return cognito.Claims{}, unauthorized{}
	}

	return cognito.Claims{Email: email, TokenUse: "id"}, nil
}

type unauthorized struct{}

func (unauthorized) Error() string { return "Unauthorized" }

func (unauthorized) Unauthorized() bool { return true }

//
// S3 API mock behind the real asset store
//

type bucket struct {
	s3.S3
	mu      sync.Mutex
	objects map[string]bool
	failing bool
}

func newAssets() (*bucket, *s3.Store) {
	mock := &bucket{objects: map[string]bool{}}
	store := s3.Must(
		s3.New(
			s3.WithBucket("test"),
			s3.WithFolder("demo"),
			s3.WithBaseURL("https://cdn.example.com"),
			s3.WithService(mock),
		),
	)
	return mock, store
}

func (mock *bucket) PutObject(ctx context.Context, input *awss3.PutObjectInput, opts ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	mock.objects[*input.Key] = true
	return &awss3.PutObjectOutput{}, nil
}

func (mock *bucket) DeleteObject(ctx context.Context, input *awss3.DeleteObjectInput, opts ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if mock.failing {
		return nil, fmt.Errorf("service unavailable")
	}

	delete(mock.objects, *input.Key)
	return &awss3.DeleteObjectOutput{}, nil
}

func (mock *bucket) has(key string) bool {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	return mock.objects[key]
}
