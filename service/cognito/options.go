//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/fogfish/opts"
)

// Cognito declares AWS API used by the identity client
type Cognito interface {
	AdminCreateUser(context.Context, *cognitoidentityprovider.AdminCreateUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error)
	AdminSetUserPassword(context.Context, *cognitoidentityprovider.AdminSetUserPasswordInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error)
	AdminInitiateAuth(context.Context, *cognitoidentityprovider.AdminInitiateAuthInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminInitiateAuthOutput, error)
	AdminGetUser(context.Context, *cognitoidentityprovider.AdminGetUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminGetUserOutput, error)
}

// Option type to configure the client
type Option = opts.Option[Options]

// Config Options
type Options struct {
	userPool string
	client   string
	service  Cognito
}

func (c *Options) checkRequired() error {
	return opts.Required(c,
		WithUserPool(""),
		WithClient(""),
	)
}

var (
	// Set Cognito User Pool
	WithUserPool = opts.ForName[Options, string]("userPool")

	// Set App Client of the User Pool, the client must allow ADMIN_NO_SRP_AUTH
	WithClient = opts.ForName[Options, string]("client")

	// Set Cognito client
	WithService = opts.ForType[Options, Cognito]()

	// Configure Cognito client using provided the aws.Config
	WithConfig = opts.FMap(optsFromConfig)

	// Use default aws.Config for Cognito client
	WithDefaultCognito = opts.From(optsDefaultCognito)
)

func optsDefaultCognito(c *Options) error {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return err
	}

	return optsFromConfig(c, cfg)
}

func optsFromConfig(c *Options, cfg aws.Config) error {
	if c.service == nil {
		c.service = cognitoidentityprovider.NewFromConfig(cfg)
	}
	return nil
}
