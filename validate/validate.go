// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validate decodes request bodies strictly and checks them against
// the `validate` struct tags declared in package models. Only the first
// failure is reported, phrased with the field's JSON name.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// Error is a client-correctable problem with one field of a request
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error for checks that struct tags cannot express
func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Validator wraps a configured go-playground validator and its English
// translator. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		panic("validate: register translations: " + err.Error())
	}

	mustRegister(v, trans, "phone", "{0} must be a valid phone number", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v, trans: trans}
}

func mustRegister(v *validator.Validate, trans ut.Translator, tag, text string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validate: register " + tag + ": " + err.Error())
	}

	err := v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
	if err != nil {
		panic("validate: translate " + tag + ": " + err.Error())
	}
}

// Struct validates s and returns the first failure as an *Error
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	return &Error{
		Field:   fieldPath(fe.Namespace()),
		Message: fe.Translate(v.trans),
	}
}

// fieldPath drops the struct name from a namespace like "DPQueryRequest.query.type"
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}
