// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argval defines the scalar values and types shared by the schema
// and the argument matcher.
package argval

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTypeMismatch is matched by every error returned from a Value accessor
// that was called for a kind the value cannot be represented as.
var ErrTypeMismatch = errors.New("value type mismatch")

// Kind is the stored representation of a Value.
type Kind uint8

const (
	KindUNum Kind = iota
	KindINum
	KindReal
	KindBool
	KindStr
)

func (k Kind) String() string {
	switch k {
	case KindUNum:
		return "unsigned-number"
	case KindINum:
		return "signed-number"
	case KindReal:
		return "real"
	case KindBool:
		return "boolean"
	case KindStr:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// TypeMismatchError is returned when a Value is read as a kind it does not hold.
type TypeMismatchError struct {
	Want Kind // The accessor that was used
	Have Kind // The stored kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value is a %s, not a %s", e.Have, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// Value is a single argument value. It is used both for raw tokens (always
// strings) and for values coerced against a Type.
//
// The zero Value is the unsigned number 0.
type Value struct {
	kind Kind
	u    uint64
	i    int64
	f    float64
	b    bool
	s    string
}

// Uint returns an unsigned number value.
func Uint(u uint64) Value {
	return Value{kind: KindUNum, u: u}
}

// Int returns a signed number value. Non-negative numbers are stored as
// unsigned numbers, so they satisfy both IsUNum and IsINum.
func Int(i int64) Value {
	if i >= 0 {
		return Value{kind: KindUNum, u: uint64(i)}
	}
	return Value{kind: KindINum, i: i}
}

// Float returns a real value.
func Float(f float64) Value {
	return Value{kind: KindReal, f: f}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindStr, s: s}
}

// Kind reports the stored representation.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUNum() bool { return v.kind == KindUNum }

func (v Value) IsINum() bool { return v.kind == KindUNum || v.kind == KindINum }

func (v Value) IsReal() bool {
	return v.kind == KindUNum || v.kind == KindINum || v.kind == KindReal
}

func (v Value) IsBool() bool { return v.kind == KindBool }

func (v Value) IsStr() bool { return v.kind == KindStr }

// UNum returns the value as an unsigned number.
func (v Value) UNum() (uint64, error) {
	if v.kind == KindUNum {
		return v.u, nil
	}
	return 0, v.mismatch(KindUNum)
}

// INum returns the value as a signed number. Unsigned numbers above
// math.MaxInt64 cannot be represented and are reported as a mismatch.
func (v Value) INum() (int64, error) {
	switch v.kind {
	case KindUNum:
		if int64(v.u) >= 0 {
			return int64(v.u), nil
		}
	case KindINum:
		return v.i, nil
	}
	return 0, v.mismatch(KindINum)
}

// Real returns the value as a float, widening integers.
func (v Value) Real() (float64, error) {
	switch v.kind {
	case KindReal:
		return v.f, nil
	case KindUNum:
		return float64(v.u), nil
	case KindINum:
		return float64(v.i), nil
	}
	return 0, v.mismatch(KindReal)
}

func (v Value) Bool() (bool, error) {
	if v.kind == KindBool {
		return v.b, nil
	}
	return false, v.mismatch(KindBool)
}

func (v Value) Str() (string, error) {
	if v.kind == KindStr {
		return v.s, nil
	}
	return "", v.mismatch(KindStr)
}

func (v Value) mismatch(want Kind) error {
	return &TypeMismatchError{Want: want, Have: v.kind}
}

// String renders the value the way it is shown in help text.
func (v Value) String() string {
	switch v.kind {
	case KindUNum:
		return strconv.FormatUint(v.u, 10)
	case KindINum:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return v.s
}

// Any returns the stored Go value: uint64, int64, float64, bool or string.
func (v Value) Any() any {
	switch v.kind {
	case KindUNum:
		return v.u
	case KindINum:
		return v.i
	case KindReal:
		return v.f
	case KindBool:
		return v.b
	}
	return v.s
}
