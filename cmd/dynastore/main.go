//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Command dynastore serves REST api of users, products and authentication
// backed by DynamoDB tables, Cognito User Pool and S3 bucket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/fogfish/dynastore/internal/api"
	"github.com/fogfish/dynastore/internal/config"
	"github.com/fogfish/dynastore/service/cognito"
	"github.com/fogfish/dynastore/service/ddb"
	"github.com/fogfish/dynastore/service/s3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")

	// level of zero config is info
	logger, lerr := newLogger(cfg.LogLevel)
	if lerr != nil {
		panic(lerr)
	}
	defer logger.Sync()

	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	conf := zap.NewProductionConfig()
	conf.Level = lvl
	return conf.Build()
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	conf, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return err
	}

	service, err := newAPI(ctx, cfg, conf, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           service.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdown); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("api listening",
		zap.String("addr", srv.Addr),
		zap.Strings("cors", cfg.CORSOrigins),
		zap.String("region", cfg.Region),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func newAPI(ctx context.Context, cfg config.Config, conf aws.Config, logger *zap.Logger) (*api.API, error) {
	users, err := ddb.New[api.User](
		ddb.WithConfig(conf),
		ddb.WithTable(cfg.UsersTable),
		ddb.WithHashKey(api.UserKey),
	)
	if err != nil {
		return nil, err
	}

	products, err := ddb.New[api.Product](
		ddb.WithConfig(conf),
		ddb.WithTable(cfg.ProductTable),
		ddb.WithHashKey(api.ProductKey),
	)
	if err != nil {
		return nil, err
	}

	assets, err := s3.New(
		s3.WithConfig(conf),
		s3.WithBucket(cfg.AssetBucket),
		s3.WithFolder(cfg.AssetFolder),
		s3.WithBaseURL(cfg.AssetBaseURL),
	)
	if err != nil {
		return nil, err
	}

	identity, err := cognito.New(
		cognito.WithConfig(conf),
		cognito.WithUserPool(cfg.UserPool),
		cognito.WithClient(cfg.Client),
	)
	if err != nil {
		return nil, err
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{cognito.JWKS(conf.Region, cfg.UserPool)})
	if err != nil {
		return nil, err
	}

	verifier, err := cognito.NewVerifier(
		cognito.WithIssuer(cognito.Issuer(conf.Region, cfg.UserPool)),
		cognito.WithAudience(cfg.Client),
		cognito.WithKeyfunc(jwks.Keyfunc),
	)
	if err != nil {
		return nil, err
	}

	return api.New(
		api.WithUsers(users),
		api.WithProducts(products),
		api.WithIdentity(identity),
		api.WithVerifier(verifier),
		api.WithAssets(assets),
		api.WithLogger(logger),
		api.WithOrigins(cfg.CORSOrigins),
	)
}
