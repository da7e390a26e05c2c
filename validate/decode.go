// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// MaxBodyBytes caps every JSON request body
const MaxBodyBytes = 10 << 20

var (
	ErrMalformedBody = errors.New("invalid JSON")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// Decode reads one JSON object from r into dst. Unknown fields and type
// mismatches come back as *Error; an empty body leaves dst untouched.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeError(err)
	}
	if dec.More() {
		return ErrMalformedBody
	}
	return nil
}

func decodeError(err error) error {
	var (
		maxErr  *http.MaxBytesError
		typeErr *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &maxErr):
		return ErrBodyTooLarge
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &Error{
			Field:   typeErr.Field,
			Message: typeMessage(typeErr),
		}
	}

	if field, ok := unknownField(err); ok {
		return &Error{Field: field, Message: field + " is not allowed"}
	}
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

// unknownField pulls the name out of encoding/json's `json: unknown field "x"`
func unknownField(err error) (string, bool) {
	quoted, found := strings.CutPrefix(err.Error(), "json: unknown field ")
	if !found {
		return "", false
	}
	name, uerr := strconv.Unquote(quoted)
	if uerr != nil {
		return "", false
	}
	return name, true
}

// typeMessage tells a fractional or oversized number in an integer field
// apart from a value of the wrong JSON type
func typeMessage(e *json.UnmarshalTypeError) string {
	num, isNumber := strings.CutPrefix(e.Value, "number ")
	if isNumber && isInteger(e.Type) {
		f, err := strconv.ParseFloat(num, 64)
		if err == nil && f == math.Trunc(f) {
			return e.Field + " is out of range"
		}
		return e.Field + " must be an integer"
	}
	return fmt.Sprintf("%s must be %s", e.Field, jsonKind(e.Type))
}

func isInteger(t reflect.Type) bool {
	if t == nil {
		return false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
