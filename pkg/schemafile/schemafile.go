// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads argument schemas from YAML, TOML or JSON files.
//
// Files describe everything argtree.Config can express except constraint
// callbacks, which only exist in code.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	json "github.com/goccy/go-json"
	"github.com/yeetrun/argtree/pkg/argtree"
	"gopkg.in/yaml.v3"
)

// SupportedFormat is the range of document format versions this package
// understands.
const SupportedFormat = "^1"

// Format is a file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// ErrUnsupportedFormat is returned for documents whose format version is
// outside SupportedFormat.
var ErrUnsupportedFormat = errors.New("unsupported schema format")

// FormatOf picks the syntax from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("cannot tell the syntax of %q from its extension", path)
}

// Document is the file representation of an argtree.Config.
type Document struct {
	Format       string          `yaml:"format" toml:"format" json:"format"`
	Menu         bool            `yaml:"menu" toml:"menu" json:"menu"`
	Program      string          `yaml:"program" toml:"program" json:"program"`
	Version      string          `yaml:"version" toml:"version" json:"version"`
	Description  string          `yaml:"description" toml:"description" json:"description"`
	GroupLabel   string          `yaml:"group_label" toml:"group_label" json:"group_label"`
	HelpEntry    *EntryDoc       `yaml:"help_entry" toml:"help_entry" json:"help_entry"`
	VersionEntry *EntryDoc       `yaml:"version_entry" toml:"version_entry" json:"version_entry"`
	Help         []HelpDoc       `yaml:"help" toml:"help" json:"help"`
	Options      []OptionDoc     `yaml:"options" toml:"options" json:"options"`
	Positionals  []PositionalDoc `yaml:"positionals" toml:"positionals" json:"positionals"`
	Min          *uint           `yaml:"min" toml:"min" json:"min"`
	Max          *uint           `yaml:"max" toml:"max" json:"max"`
	Endpoints    []EndpointDoc   `yaml:"endpoints" toml:"endpoints" json:"endpoints"`
	Groups       []GroupDoc      `yaml:"groups" toml:"groups" json:"groups"`
}

type EntryDoc struct {
	Name         string `yaml:"name" toml:"name" json:"name"`
	Abbreviation string `yaml:"abbreviation" toml:"abbreviation" json:"abbreviation"`
	Description  string `yaml:"description" toml:"description" json:"description"`
}

type HelpDoc struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	Text string `yaml:"text" toml:"text" json:"text"`
}

type EnumDoc struct {
	Key         string `yaml:"key" toml:"key" json:"key"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

type PayloadDoc struct {
	Name     string    `yaml:"name" toml:"name" json:"name"`
	Type     string    `yaml:"type" toml:"type" json:"type"`
	Values   []EnumDoc `yaml:"values" toml:"values" json:"values"`
	Defaults []any     `yaml:"defaults" toml:"defaults" json:"defaults"`
}

type OptionDoc struct {
	Name         string      `yaml:"name" toml:"name" json:"name"`
	Abbreviation string      `yaml:"abbreviation" toml:"abbreviation" json:"abbreviation"`
	Description  string      `yaml:"description" toml:"description" json:"description"`
	Payload      *PayloadDoc `yaml:"payload" toml:"payload" json:"payload"`
	Min          *uint       `yaml:"min" toml:"min" json:"min"`
	Max          *uint       `yaml:"max" toml:"max" json:"max"`
	Use          []string    `yaml:"use" toml:"use" json:"use"`
}

type PositionalDoc struct {
	Name        string    `yaml:"name" toml:"name" json:"name"`
	Type        string    `yaml:"type" toml:"type" json:"type"`
	Values      []EnumDoc `yaml:"values" toml:"values" json:"values"`
	Description string    `yaml:"description" toml:"description" json:"description"`
	Default     any       `yaml:"default" toml:"default" json:"default"`
}

type EndpointDoc struct {
	ID          int             `yaml:"id" toml:"id" json:"id"`
	Description string          `yaml:"description" toml:"description" json:"description"`
	Positionals []PositionalDoc `yaml:"positionals" toml:"positionals" json:"positionals"`
	Min         *uint           `yaml:"min" toml:"min" json:"min"`
	Max         *uint           `yaml:"max" toml:"max" json:"max"`
}

type GroupDoc struct {
	Name         string          `yaml:"name" toml:"name" json:"name"`
	ID           string          `yaml:"id" toml:"id" json:"id"`
	Description  string          `yaml:"description" toml:"description" json:"description"`
	Abbreviation string          `yaml:"abbreviation" toml:"abbreviation" json:"abbreviation"`
	GroupLabel   string          `yaml:"group_label" toml:"group_label" json:"group_label"`
	Use          []string        `yaml:"use" toml:"use" json:"use"`
	Help         []HelpDoc       `yaml:"help" toml:"help" json:"help"`
	Positionals  []PositionalDoc `yaml:"positionals" toml:"positionals" json:"positionals"`
	Min          *uint           `yaml:"min" toml:"min" json:"min"`
	Max          *uint           `yaml:"max" toml:"max" json:"max"`
	Endpoints    []EndpointDoc   `yaml:"endpoints" toml:"endpoints" json:"endpoints"`
	Groups       []GroupDoc      `yaml:"groups" toml:"groups" json:"groups"`
}

// Decode parses data in the given syntax. Unknown fields are rejected.
func Decode(data []byte, f Format) (*Document, error) {
	var doc Document
	switch f {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case TOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("unknown fields: %s", strings.Join(keys, ", "))
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown syntax %q", f)
	}
	if err := checkFormat(doc.Format); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkFormat(format string) error {
	if format == "" {
		return fmt.Errorf("%w: missing format version", ErrUnsupportedFormat)
	}
	v, err := semver.NewVersion(format)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFormat, format, err)
	}
	c, err := semver.NewConstraint(SupportedFormat)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, v, SupportedFormat)
	}
	return nil
}

// Stdin is read when the path is "-".
var Stdin io.Reader = os.Stdin

// Read decodes the file at path, picking the syntax from its extension, or
// from its content if the extension is not known. The path "-" reads Stdin.
func Read(path string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	f, err := FormatOf(path)
	if err != nil {
		f = Detect(data)
	}
	doc, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Load reads the file at path and converts it to a Config. The result still
// needs to be checked with argtree.Validate.
func Load(path string) (*argtree.Config, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	cfg, err := doc.Config()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
