//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package cognito_test

import (
	"context"
	"testing"
	"time"

	"github.com/fogfish/dynastore"
	"github.com/fogfish/dynastore/service/cognito"
	"github.com/fogfish/it/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	secret = []byte("secret")
	issuer = cognito.Issuer("eu-west-1", "eu-west-1_test")
)

func sign(t *testing.T, claims cognito.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func idToken(email string) cognito.Claims {
	return cognito.Claims{
		Email:         email,
		EmailVerified: true,
		Username:      "b5c0e1d8",
		TokenUse:      "id",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "b5c0e1d8",
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{"client"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func verifier() *cognito.Verifier {
	return cognito.MustVerifier(
		cognito.NewVerifier(
			cognito.WithIssuer(issuer),
			cognito.WithAudience("client"),
			cognito.WithSigningMethods([]string{"HS256"}),
			cognito.WithKeyfunc(func(*jwt.Token) (any, error) { return secret, nil }),
		),
	)
}

func TestIssuer(t *testing.T) {
	it.Then(t).Should(
		it.Equal(issuer, "https://cognito-idp.eu-west-1.amazonaws.com/eu-west-1_test"),
		it.Equal(cognito.JWKS("eu-west-1", "eu-west-1_test"), issuer+"/.well-known/jwks.json"),
	)
}

func TestNewVerifier(t *testing.T) {
	_, err := cognito.NewVerifier(cognito.WithIssuer(issuer))
	it.Then(t).ShouldNot(it.Nil(err))
}

func TestVerify(t *testing.T) {
	v := verifier()

	t.Run("Success", func(t *testing.T) {
		claims, err := v.Verify(context.Background(), sign(t, idToken("joe@example.com")))
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(claims.Email, "joe@example.com"),
			it.Equal(claims.Subject, "b5c0e1d8"),
			it.Equal(claims.TokenUse, "id"),
		)
	})

	t.Run("NoToken", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "")
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "not.a.token")
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("Signature", func(t *testing.T) {
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, idToken("joe@example.com")).SignedString([]byte("other"))
		_, err := v.Verify(context.Background(), token)
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("Expired", func(t *testing.T) {
		claims := idToken("joe@example.com")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

		_, err := v.Verify(context.Background(), sign(t, claims))
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("Issuer", func(t *testing.T) {
		claims := idToken("joe@example.com")
		claims.Issuer = "https://example.com"

		_, err := v.Verify(context.Background(), sign(t, claims))
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("Audience", func(t *testing.T) {
		claims := idToken("joe@example.com")
		claims.Audience = jwt.ClaimStrings{"other"}

		_, err := v.Verify(context.Background(), sign(t, claims))
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("AccessToken", func(t *testing.T) {
		claims := idToken("joe@example.com")
		claims.TokenUse = "access"

		_, err := v.Verify(context.Background(), sign(t, claims))
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})

	t.Run("NoEmail", func(t *testing.T) {
		_, err := v.Verify(context.Background(), sign(t, idToken("")))
		it.Then(t).Should(it.True(dynastore.IsUnauthorized(err)))
	})
}
