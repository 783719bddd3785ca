// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argval

import (
	"errors"
	"fmt"
)

// Type describes what a raw argument must look like. It is either a
// Primitive or an Enum. A nil Type behaves like Any.
type Type interface {
	// Name is the short type name used in help text ("uint", "enum", ...).
	Name() string
	isType()
}

// Primitive is a built-in scalar type.
type Primitive uint8

const (
	Any Primitive = iota
	INum
	UNum
	Real
	Bool
)

func (Primitive) isType() {}

func (p Primitive) Name() string {
	switch p {
	case INum:
		return "int"
	case UNum:
		return "uint"
	case Real:
		return "real"
	case Bool:
		return "bool"
	}
	return "any"
}

func (p Primitive) String() string { return p.Name() }

// EnumEntry is one admissible key of an Enum.
type EnumEntry struct {
	Key         string
	Description string
}

// Enum is an ordered set of admissible keys.
type Enum []EnumEntry

func (Enum) isType() {}

func (Enum) Name() string { return "enum" }

// Lookup returns the entry with the given key.
func (e Enum) Lookup(key string) (EnumEntry, bool) {
	for _, entry := range e {
		if entry.Key == key {
			return entry, true
		}
	}
	return EnumEntry{}, false
}

// Keys returns the keys in declaration order.
func (e Enum) Keys() []string {
	keys := make([]string, len(e))
	for i, entry := range e {
		keys[i] = entry.Key
	}
	return keys
}

// Validate checks that the enum is non-empty and its keys are non-empty and unique.
func (e Enum) Validate() error {
	if len(e) == 0 {
		return errors.New("enum must not be empty")
	}
	seen := make(map[string]bool, len(e))
	for _, entry := range e {
		if entry.Key == "" {
			return errors.New("enum keys must not be empty")
		}
		if seen[entry.Key] {
			return fmt.Errorf("enum key %q is declared twice", entry.Key)
		}
		seen[entry.Key] = true
	}
	return nil
}

// TypeName returns t.Name(), treating nil as Any.
func TypeName(t Type) string {
	if t == nil {
		return Any.Name()
	}
	return t.Name()
}

// Admits reports whether an already constructed value (for example a
// default) is acceptable for t without further coercion.
func Admits(t Type, v Value) bool {
	switch t := t.(type) {
	case nil:
		return true
	case Enum:
		s, err := v.Str()
		if err != nil {
			return false
		}
		_, ok := t.Lookup(s)
		return ok
	case Primitive:
		switch t {
		case Bool:
			return v.IsBool()
		case Real:
			return v.IsReal()
		case INum:
			return v.IsINum()
		case UNum:
			return v.IsUNum()
		}
		return true
	}
	return false
}
