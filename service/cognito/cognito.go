//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

// Package cognito implements identity operations on top of AWS Cognito
// User Pool: admin sign-up, password login and verification of id tokens.
package cognito

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/fogfish/opts"
)

// Account of the user at identity provider
type Account struct {
	Username   string            `json:"username"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Status     string            `json:"status,omitempty"`
	Enabled    bool              `json:"enabled"`
	CreatedAt  *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time        `json:"updatedAt,omitempty"`
}

// Session is a set of tokens issued by identity provider
type Session struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Client of Cognito User Pool
type Client struct {
	service  Cognito
	userPool *string
	client   *string
}

// Must constraint for api factory
func Must(c *Client, err error) *Client {
	if err != nil {
		panic(err)
	}

	return c
}

// New creates Cognito client
func New(opt ...Option) (*Client, error) {
	c := Options{}
	if err := opts.Apply(&c, opt); err != nil {
		return nil, err
	}

	if c.service == nil {
		if err := optsDefaultCognito(&c); err != nil {
			return nil, err
		}
	}

	if err := c.checkRequired(); err != nil {
		return nil, err
	}

	return &Client{
		service:  c.service,
		userPool: aws.String(c.userPool),
		client:   aws.String(c.client),
	}, nil
}

// CreateUser registers account with verified email, the invitation
// message is suppressed.
func (c *Client) CreateUser(ctx context.Context, email string) (Account, error) {
	req := &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId: c.userPool,
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
		MessageAction: types.MessageActionTypeSuppress,
	}

	val, err := c.service.AdminCreateUser(ctx, req)
	if err != nil {
		switch errorCodeOf(err) {
		case "UsernameExistsException", "AliasExistsException":
			return Account{}, errConflict(err, email)
		case "InvalidParameterException":
			return Account{}, errInvalidInput(err)
		}
		return Account{}, errUnavailable(err)
	}

	if val.User == nil {
		return Account{Username: email}, nil
	}

	return Account{
		Username:   aws.ToString(val.User.Username),
		Attributes: attributesOf(val.User.Attributes),
		Status:     string(val.User.UserStatus),
		Enabled:    val.User.Enabled,
		CreatedAt:  val.User.UserCreateDate,
		UpdatedAt:  val.User.UserLastModifiedDate,
	}, nil
}

// SetPassword assigns permanent password to the account
func (c *Client) SetPassword(ctx context.Context, email, password string) error {
	req := &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: c.userPool,
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	}

	if _, err := c.service.AdminSetUserPassword(ctx, req); err != nil {
		switch errorCodeOf(err) {
		case "InvalidPasswordException", "InvalidParameterException":
			return errInvalidInput(err)
		case "UserNotFoundException":
			return errNotFound(err, email)
		}
		return errUnavailable(err)
	}

	return nil
}

// Login authenticates the account using password
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	req := &cognitoidentityprovider.AdminInitiateAuthInput{
		AuthFlow:   types.AuthFlowTypeAdminNoSrpAuth,
		UserPoolId: c.userPool,
		ClientId:   c.client,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	}

	val, err := c.service.AdminInitiateAuth(ctx, req)
	if err != nil {
		switch errorCodeOf(err) {
		case "NotAuthorizedException", "UserNotFoundException", "UserNotConfirmedException", "PasswordResetRequiredException":
			return Session{}, errUnauthorized(err)
		}
		return Session{}, errUnavailable(err)
	}

	if val.AuthenticationResult == nil {
		return Session{}, errUnauthorized(errNoSession.New(nil, email))
	}

	return Session{
		IDToken:      aws.ToString(val.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(val.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(val.AuthenticationResult.RefreshToken),
		ExpiresIn:    time.Duration(val.AuthenticationResult.ExpiresIn) * time.Second,
	}, nil
}

// Lookup account by username (email)
func (c *Client) Lookup(ctx context.Context, email string) (Account, error) {
	req := &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: c.userPool,
		Username:   aws.String(email),
	}

	val, err := c.service.AdminGetUser(ctx, req)
	if err != nil {
		if errorCodeOf(err) == "UserNotFoundException" {
			return Account{}, errNotFound(err, email)
		}
		return Account{}, errUnavailable(err)
	}

	return Account{
		Username:   aws.ToString(val.Username),
		Attributes: attributesOf(val.UserAttributes),
		Status:     string(val.UserStatus),
		Enabled:    val.Enabled,
		CreatedAt:  val.UserCreateDate,
		UpdatedAt:  val.UserLastModifiedDate,
	}, nil
}

func attributesOf(seq []types.AttributeType) map[string]string {
	if len(seq) == 0 {
		return nil
	}

	attrs := make(map[string]string, len(seq))
	for _, x := range seq {
		attrs[aws.ToString(x.Name)] = aws.ToString(x.Value)
	}
	return attrs
}
