//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fogfish/dynastore"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, status int, val any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(val)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail responds with status code derived from error behaviour
func (api *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case dynastore.IsUnauthorized(err):
		writeError(w, http.StatusUnauthorized, err.Error())
	case dynastore.IsForbidden(err):
		writeError(w, http.StatusForbidden, err.Error())
	case dynastore.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	case dynastore.IsNotFound(err), dynastore.IsPreConditionFailed(err):
		writeError(w, http.StatusNotFound, err.Error())
	case dynastore.IsEmptyUpdate(err),
		dynastore.IsUnknownAttribute(err),
		dynastore.IsUnsupportedMedia(err),
		dynastore.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		api.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// decodeJSON reads request body into val
func decodeJSON(r *http.Request, val any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return errBadRequest(err)
	}

	if err := json.Unmarshal(body, val); err != nil {
		return errBadRequest(fmt.Errorf("malformed json: %w", err))
	}

	return nil
}

// decodePatch reads request body as set of attributes to update. The body
// is also decoded into the record type so that values of wrong type are
// rejected before they reach the storage.
func decodePatch[T any](r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, errBadRequest(err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errBadRequest(fmt.Errorf("malformed json: %w", err))
	}

	var typed T
	if err := json.Unmarshal(body, &typed); err != nil {
		var e *json.UnmarshalTypeError
		if errors.As(err, &e) {
			return nil, errBadRequest(fmt.Errorf("invalid type of %s", e.Field))
		}
		return nil, errBadRequest(err)
	}

	return fields, nil
}

//
// errors specific to http interface
//

func errBadRequest(err error) error {
	return &badRequest{err: err}
}

type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }

func (e *badRequest) Unwrap() error { return e.err }

func (e *badRequest) InvalidInput() bool { return true }

func errForbidden(key string) error {
	return &forbidden{key: key}
}

type forbidden struct{ key string }

func (e *forbidden) Error() string { return fmt.Sprintf("Forbidden (%s)", e.key) }

func (e *forbidden) Forbidden() bool { return true }

func errUnauthorized(msg string) error {
	return &unauthorized{msg: msg}
}

type unauthorized struct{ msg string }

func (e *unauthorized) Error() string { return e.msg }

func (e *unauthorized) Unauthorized() bool { return true }
