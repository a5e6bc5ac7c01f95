//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api

import (
	"github.com/fogfish/curie/v2"
	"github.com/fogfish/dynastore/service/ddb"
)

// User profile, keyed by `User-<email>`. JSON and table attributes share
// names, clients patch the record using table attributes.
type User struct {
	ID        string `json:"userId" dynamodbav:"userId"`
	Name      string `json:"name,omitempty" dynamodbav:"name,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

func (u User) HashKey() curie.IRI { return curie.IRI(u.ID) }

// Product, keyed by `Prod-<uuid>`, owned by user
type Product struct {
	ID            string `json:"prodId" dynamodbav:"prodId"`
	Name          string `json:"name,omitempty" dynamodbav:"name,omitempty"`
	Description   string `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Owner         string `json:"userId,omitempty" dynamodbav:"userId,omitempty"`
	ImageID       string `json:"imageId,omitempty" dynamodbav:"imageId,omitempty"`
	OriginalImage string `json:"originalImage,omitempty" dynamodbav:"originalImage,omitempty"`
	ThumbURL      string `json:"thumbUrl,omitempty" dynamodbav:"thumbUrl,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
	CreatedAt     int64  `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`
	UpdatedAt     int64  `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

func (p Product) HashKey() curie.IRI { return curie.IRI(p.ID) }

const (
	// Hash key attribute of users table
	UserKey = "userId"

	// Hash key attribute of products table
	ProductKey = "prodId"
)

var (
	userID    = ddb.ClauseFor[User, string]("ID")
	productID = ddb.ClauseFor[Product, string]("ID")
	owner     = ddb.ClauseFor[Product, string]("Owner")
)

// product attributes assigned by the service only
var productProtected = []string{"userId", "imageId", "originalImage", "thumbUrl", "imageUrl"}

func userIDOf(email string) string { return "User-" + email }
