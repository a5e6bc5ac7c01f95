//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type signUp struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// GET /users
func (api *API) listUsers(w http.ResponseWriter, r *http.Request) {
	seq, err := api.users.Scan(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": seq})
}

// GET /users/{userId}
func (api *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := api.users.Get(r.Context(), User{ID: chi.URLParam(r, "userId")})
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// POST /users
func (api *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req signUp
	if err := decodeJSON(r, &req); err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.validateStruct(req); err != nil {
		api.fail(w, r, err)
		return
	}

	account, err := api.identity.CreateUser(r.Context(), req.Email)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.identity.SetPassword(r.Context(), req.Email, req.Password); err != nil {
		api.fail(w, r, err)
		return
	}

	user := User{
		ID:        userIDOf(req.Email),
		Name:      req.Name,
		CreatedAt: api.clock().UnixMilli(),
	}

	if err := api.users.Put(r.Context(), user, userID.NotExists()); err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        account,
		"userProfile": user,
	})
}

// PATCH /users/{userId}
func (api *API) patchUser(w http.ResponseWriter, r *http.Request) {
	key := User{ID: chi.URLParam(r, "userId")}

	fields, err := decodePatch[User](r)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	user, err := api.users.Get(r.Context(), key)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.ownerOf(r, user.ID); err != nil {
		api.fail(w, r, err)
		return
	}

	instr, err := api.userPatch.Compile(key, &user, fields)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	val, err := api.users.Update(r.Context(), instr)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, val)
}

// DELETE /users/{userId}
func (api *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	key := User{ID: chi.URLParam(r, "userId")}

	user, err := api.users.Get(r.Context(), key)
	if err != nil {
		api.fail(w, r, err)
		return
	}

	if err := api.ownerOf(r, user.ID); err != nil {
		api.fail(w, r, err)
		return
	}

	if _, err := api.users.Remove(r.Context(), key); err != nil {
		api.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted the user"})
}

// the caller acts only on records it owns
func (api *API) ownerOf(r *http.Request, owner string) error {
	claims, ok := ClaimsOf(r.Context())
	if !ok {
		return errUnauthorized("Unauthorized")
	}

	if userIDOf(claims.Email) != owner {
		return errForbidden(owner)
	}

	return nil
}
