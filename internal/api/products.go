//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fogfish/dynastore/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20

type newProduct struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// GET /prod
func (api *API) listProducts(w http.ResponseWriter, r *http.Request) {
	seq, err := api.products.Scan(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": seq})
}

// GET /prod/user/{userId}
func (api *API) listProductsOf(w http.ResponseWriter, r *http.Request) {
	seq, err := api.products.Scan(r.Context(),
		owner.Eq(chi.URLParam(r, "userId")),
	)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": seq})
}

// GET /prod/{prodId}
func (api *API) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := api.products.Get(r.Context(), Product{ID: chi.URLParam(r, "prodId")})
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// POST /prod, multipart form with name, description and image
func (api *API) createProduct(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsOf(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+maxBodySize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		api.fail(w, r, errBadRequest(err))
		return
	}

	req := newProduct{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
	}
	if err := api.validateStruct(req); err != nil {
		api.fail(w, r, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		api.fail(w, r, errBadRequest(errors.New("image is required")))
		return
	}
	defer file.Close()

	asset, err := api.assets.Upload(r.Context(), s3.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		api.fail(w, r, err)
		return
	}

	product := Product{
		ID:            "Prod-" + uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Owner:         userIDOf(claims.Email),
		ImageID:       asset.ID,
		OriginalImage: asset.URL,
		ThumbURL:      asset.Variant(s3.Thumbnail),
		ImageURL:      asset.Variant(s3.Display),
		CreatedAt:     api.clock().UnixMilli(),
	}

	if err := api.products.Put(r.Context(), product, productID.NotExists()); err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// PATCH /prod/{prodId}
func (api *API) patchProduct(w http.ResponseWriter, r *http.Request) {
	key := Product{ID: chi.URLParam(r, "prodId")}

	fields, err := decodePatch[Product](r)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	product, err := api.products.Get(r.Context(), key)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.ownerOf(r, product.Owner); err != nil {
		api.fail(w, r, err)
		return
	}

	instr, err := api.productPatch.Compile(key, &product, fields)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	val, err := api.products.Update(r.Context(), instr)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, val)
}

// DELETE /prod/{prodId}
func (api *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	key := Product{ID: chi.URLParam(r, "prodId")}

	product, err := api.products.Get(r.Context(), key)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.ownerOf(r, product.Owner); err != nil {
		api.fail(w, r, err)
		return
	}

	if _, err := api.products.Remove(r.Context(), key); err != nil {
		api.fail(w, r, err)
		return
	}

	if product.ImageID != "" {
		if err := api.assets.Destroy(r.Context(), product.ImageID); err != nil {
			api.logger.Warn("image is left behind",
				zap.String("prodId", product.ID),
				zap.String("imageId", product.ImageID),
				zap.Error(err),
			)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Deleted the prod",
		"item":    product,
	})
}
