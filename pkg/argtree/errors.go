// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every error Validate returns. It indicates a
	// mistake by the schema author, not by the user.
	ErrConfig = errors.New("invalid argument schema")

	// ErrParse is matched by every error caused by the user's arguments.
	ErrParse = errors.New("invalid arguments")

	// ErrHelp is matched by a PrintRequest for the help text.
	ErrHelp = errors.New("help requested")

	// ErrVersion is matched by a PrintRequest for the version text.
	ErrVersion = errors.New("version requested")
)

// ConfigError is returned by Validate when the schema is inconsistent.
type ConfigError struct {
	Entity string // The offending node, e.g. "option 'out'"; may be empty
	Msg    string
}

func (e *ConfigError) Error() string {
	if e.Entity == "" {
		return e.Msg
	}
	return e.Entity + ": " + e.Msg
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(entity, format string, args ...any) error {
	return &ConfigError{Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// ParseError is returned by Parse when the arguments do not match the schema.
// The message is meant to be shown to the user as is.
type ParseError struct {
	Msg string
	Err error // Underlying coercion error, if any
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// PrintKind says which text a PrintRequest carries.
type PrintKind uint8

const (
	PrintHelp PrintKind = iota
	PrintVersion
)

// PrintRequest is returned by Parse when the user asked for the help or
// version text. Callers print Text and exit successfully.
type PrintRequest struct {
	Kind PrintKind
	Text string
}

func (e *PrintRequest) Error() string {
	if e.Kind == PrintVersion {
		return ErrVersion.Error()
	}
	return ErrHelp.Error()
}

func (e *PrintRequest) Is(target error) bool {
	switch target {
	case ErrHelp:
		return e.Kind == PrintHelp
	case ErrVersion:
		return e.Kind == PrintVersion
	}
	return false
}
