//
// Copyright (C) 2022 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/dynastore
//

package api

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// the rule never fails to register, the tag is static
	_ = v.RegisterValidation("password", strongPassword)

	return v
}

// strong password has at least 8 characters, lower and upper case
// letters, a digit and a symbol
func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len([]rune(password)) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}

func (api *API) validateStruct(val any) error {
	err := api.validate.Struct(val)
	if err == nil {
		return nil
	}

	var seq validator.ValidationErrors
	if !errors.As(err, &seq) {
		return errBadRequest(err)
	}

	fields := make([]string, len(seq))
	for i, fe := range seq {
		fields[i] = fe.Field() + " (" + fe.Tag() + ")"
	}

	return errBadRequest(errors.New("invalid " + strings.Join(fields, ", ")))
}
