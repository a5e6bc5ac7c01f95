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
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router of the api
func (api *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(api.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: api.origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/", hello)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", api.listUsers)
		r.Post("/", api.createUser)
		r.Get("/{userId}", api.getUser)

		r.Group(func(r chi.Router) {
			r.Use(api.authenticate)
			r.Patch("/{userId}", api.patchUser)
			r.Delete("/{userId}", api.deleteUser)
		})
	})

	r.Route("/prod", func(r chi.Router) {
		r.Get("/", api.listProducts)
		r.Get("/{prodId}", api.getProduct)
		r.Get("/user/{userId}", api.listProductsOf)

		r.Group(func(r chi.Router) {
			r.Use(api.authenticate)
			r.Post("/", api.createProduct)
			r.Patch("/{prodId}", api.patchProduct)
			r.Delete("/{prodId}", api.deleteProduct)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/", api.login)
		r.With(api.authenticate).Get("/", api.whoami)
	})

	return r
}

func hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from root!"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func (api *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t := time.Now()

		next.ServeHTTP(ww, r)

		api.logger.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(t)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
