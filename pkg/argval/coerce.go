// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argval

import (
	"fmt"
	"strconv"
	"strings"
)

// CoerceError is returned when a raw token does not match the expected Type.
type CoerceError struct {
	Raw  string
	Type Type
	Err  error // Underlying strconv error, if any
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("invalid %s %q", Noun(e.Type), e.Raw)
}

func (e *CoerceError) Unwrap() error {
	return e.Err
}

// Noun describes a type in error messages ("unsigned integer", "enum", ...).
func Noun(t Type) string {
	switch t := t.(type) {
	case Enum:
		return "enum"
	case Primitive:
		switch t {
		case INum:
			return "signed integer"
		case UNum:
			return "unsigned integer"
		case Real:
			return "real"
		case Bool:
			return "boolean"
		}
	}
	return "value"
}

// Coerce converts a raw command-line token into a Value of type t.
//
// Numbers must consume the whole token and are always read in base 10. A
// single leading '+' is allowed for every numeric type.
// Booleans accept "true"/"false" in any case as well as "1"/"0". Enum
// tokens must match a key exactly and keep the key as a string value.
// Any (or a nil Type) keeps the token unchanged.
func Coerce(raw string, t Type) (Value, error) {
	fail := func(err error) (Value, error) {
		return Value{}, &CoerceError{Raw: raw, Type: t, Err: err}
	}
	switch t := t.(type) {
	case nil:
		return String(raw), nil
	case Enum:
		if _, ok := t.Lookup(raw); !ok {
			return fail(nil)
		}
		return String(raw), nil
	case Primitive:
		switch t {
		case INum:
			i, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fail(err)
			}
			return Int(i), nil
		case UNum:
			u, err := strconv.ParseUint(strings.TrimPrefix(raw, "+"), 10, 64)
			if err != nil {
				return fail(err)
			}
			return Uint(u), nil
		case Real:
			if !isDecimalReal(raw) {
				return fail(nil)
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fail(err)
			}
			return Float(f), nil
		case Bool:
			switch {
			case strings.EqualFold(raw, "true") || raw == "1":
				return Boolean(true), nil
			case strings.EqualFold(raw, "false") || raw == "0":
				return Boolean(false), nil
			}
			return fail(nil)
		}
		return String(raw), nil
	}
	return fail(nil)
}

// isDecimalReal rejects the forms strconv.ParseFloat accepts beyond plain
// base-10 notation: hex mantissas, underscores, infinities and NaN.
func isDecimalReal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == 'e', c == 'E', c == '+', c == '-':
		default:
			return false
		}
	}
	return true
}
