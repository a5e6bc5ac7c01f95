//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/fogfish/dynastore/service/cognito"
)

type claimsKey struct{}

// ClaimsOf returns claims of the authenticated caller
func ClaimsOf(ctx context.Context) (cognito.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(cognito.Claims)
	return claims, ok
}

// authenticate verifies bearer token, claims are stored in the request context
func (api *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			api.fail(w, r, errUnauthorized("There is no token, authorization denied"))
			return
		}

		claims, err := api.verifier.Verify(r.Context(), token)
		if err != nil {
			api.fail(w, r, errUnauthorized("Token is not valid"))
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /auth
func (api *API) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.validateStruct(req); err != nil {
		api.fail(w, r, err)
		return
	}

	session, err := api.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "Successfully logged in",
		"access_token": "Bearer " + session.IDToken,
	})
}

// GET /auth
func (api *API) whoami(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsOf(r.Context())

	account, err := api.identity.Lookup(r.Context(), claims.Email)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}
