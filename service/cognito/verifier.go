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
	"fmt"

	"github.com/fogfish/opts"
	"github.com/golang-jwt/jwt/v5"
)

// Claims of Cognito id token
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Username      string `json:"cognito:username,omitempty"`
	TokenUse      string `json:"token_use"`
	jwt.RegisteredClaims
}

// Issuer of tokens for the user pool
func Issuer(region, userPool string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPool)
}

// JWKS is url of the user pool's signing keys
func JWKS(region, userPool string) string {
	return Issuer(region, userPool) + "/.well-known/jwks.json"
}

// VerifierOption type to configure the verifier
type VerifierOption = opts.Option[VerifierOptions]

// VerifierOptions of token verification
type VerifierOptions struct {
	issuer   string
	audience string
	keyfunc  jwt.Keyfunc
	methods  []string
}

func (c *VerifierOptions) checkRequired() error {
	return opts.Required(c,
		WithIssuer(""),
		WithKeyfunc(nil),
	)
}

var (
	// Expected issuer of the token, see Issuer
	WithIssuer = opts.ForName[VerifierOptions, string]("issuer")

	// Expected audience of the token, it is App Client of the User Pool
	WithAudience = opts.ForName[VerifierOptions, string]("audience")

	// Source of signing keys (e.g. JWKS)
	WithKeyfunc = opts.ForType[VerifierOptions, jwt.Keyfunc]()

	// Accepted signing methods, default one is RS256
	WithSigningMethods = opts.ForName[VerifierOptions, []string]("methods")
)

// Verifier of id tokens
type Verifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// MustVerifier constraint for api factory
func MustVerifier(v *Verifier, err error) *Verifier {
	if err != nil {
		panic(err)
	}

	return v
}

// NewVerifier creates verifier of id tokens
func NewVerifier(opt ...VerifierOption) (*Verifier, error) {
	c := VerifierOptions{methods: []string{jwt.SigningMethodRS256.Alg()}}
	if err := opts.Apply(&c, opt); err != nil {
		return nil, err
	}

	if err := c.checkRequired(); err != nil {
		return nil, err
	}

	popts := []jwt.ParserOption{
		jwt.WithValidMethods(c.methods),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	}
	if c.audience != "" {
		popts = append(popts, jwt.WithAudience(c.audience))
	}

	return &Verifier{
		keyfunc: c.keyfunc,
		parser:  jwt.NewParser(popts...),
	}, nil
}

// Verify validates signature and claims of the id token
func (v *Verifier) Verify(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, errUnauthorized(errInvalidToken.New(nil))
	}

	var claims Claims
	if _, err := v.parser.ParseWithClaims(token, &claims, v.keyfunc); err != nil {
		return Claims{}, errUnauthorized(errInvalidToken.New(err))
	}

	if claims.TokenUse != "id" {
		return Claims{}, errUnauthorized(errInvalidToken.New(fmt.Errorf("token_use %q is not accepted", claims.TokenUse)))
	}

	if claims.Email == "" {
		return Claims{}, errUnauthorized(errInvalidToken.New(fmt.Errorf("email is not defined")))
	}

	return claims, nil
}
