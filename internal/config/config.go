//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package config reads process configuration from environment. The `.env`
// file is loaded when present, variables defined by the process win.
package config

import (
	"os"
	"strings"

	"github.com/fogfish/faults"
	"github.com/joho/godotenv"
)

const (
	errMissingEnv = faults.Safe1[string]("missing required env %s")
	errDotEnv     = faults.Safe1[string]("failed to load %s")
)

// Config of the service
type Config struct {
	UsersTable   string
	ProductTable string
	UserPool     string
	Client       string
	Region       string
	AssetBucket  string
	AssetFolder  string
	AssetBaseURL string
	Port         string
	CORSOrigins  []string
	LogLevel     string
}

// Load config from environment, files are optional `.env` files to be
// loaded before environment is read.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, errDotEnv.New(err, file)
		}
	}

	required := map[string]*string{}
	c := Config{
		Region:       os.Getenv("AWS_REGION"),
		AssetFolder:  getenv("ASSET_FOLDER", "serverless-practice"),
		AssetBaseURL: os.Getenv("ASSET_BASE_URL"),
		Port:         getenv("PORT", "8080"),
		CORSOrigins:  origins(getenv("CORS_ORIGIN", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}

	required["USERS_TABLE"] = &c.UsersTable
	required["PROD_TABLE"] = &c.ProductTable
	required["USER_POOL_ID"] = &c.UserPool
	required["CLIENT_ID"] = &c.Client
	required["ASSET_BUCKET"] = &c.AssetBucket

	for _, key := range []string{"USERS_TABLE", "PROD_TABLE", "USER_POOL_ID", "CLIENT_ID", "ASSET_BUCKET"} {
		val := os.Getenv(key)
		if val == "" {
			return Config{}, errMissingEnv.New(nil, key)
		}
		*required[key] = val
	}

	if c.Region == "" {
		c.Region = regionOf(c.UserPool)
	}

	return c, nil
}

func getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// comma separated list of origins
func origins(val string) []string {
	seq := []string{}
	for _, x := range strings.Split(val, ",") {
		if o := strings.TrimRight(strings.TrimSpace(x), "/"); o != "" {
			seq = append(seq, o)
		}
	}
	return seq
}

// user pool id is prefixed with region, e.g. eu-west-1_AbCdE
func regionOf(userPool string) string {
	region, _, has := strings.Cut(userPool, "_")
	if !has {
		return ""
	}
	return region
}
