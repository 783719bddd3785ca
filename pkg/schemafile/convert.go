// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/yeetrun/argtree/pkg/argtree"
	"github.com/yeetrun/argtree/pkg/argval"
)

// Config converts the document into an argtree.Config. It only checks what
// the file syntax itself can get wrong (type names, abbreviations, default
// literals); everything else is left to argtree.Validate.
func (d *Document) Config() (*argtree.Config, error) {
	cfg := &argtree.Config{
		Menu:        d.Menu,
		Program:     d.Program,
		Version:     d.Version,
		Description: d.Description,
		GroupLabel:  d.GroupLabel,
		Help:        helpTexts(d.Help),
		Require:     require(d.Min, d.Max),
	}
	var err error
	if cfg.HelpEntry, err = entry("help_entry", d.HelpEntry); err != nil {
		return nil, err
	}
	if cfg.VersionEntry, err = entry("version_entry", d.VersionEntry); err != nil {
		return nil, err
	}
	for _, od := range d.Options {
		o, err := od.option()
		if err != nil {
			return nil, err
		}
		cfg.Options = append(cfg.Options, o)
	}
	if cfg.Positionals, err = positionals("config", d.Positionals); err != nil {
		return nil, err
	}
	if cfg.Endpoints, err = endpoints("config", d.Endpoints); err != nil {
		return nil, err
	}
	if cfg.Groups, err = groups(d.Groups); err != nil {
		return nil, err
	}
	return cfg, nil
}

func require(lo, hi *uint) *argtree.Require {
	if lo == nil && hi == nil {
		return nil
	}
	r := &argtree.Require{}
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max, r.MaxSet = *hi, true
	}
	return r
}

func helpTexts(docs []HelpDoc) []argtree.HelpText {
	var out []argtree.HelpText
	for _, h := range docs {
		out = append(out, argtree.HelpText{Name: h.Name, Text: h.Text})
	}
	return out
}

func abbreviation(field, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s: abbreviation %q must be a single character", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func entry(field string, e *EntryDoc) (*argtree.SpecialEntry, error) {
	if e == nil {
		return nil, nil
	}
	r, err := abbreviation(field, e.Abbreviation)
	if err != nil {
		return nil, err
	}
	return &argtree.SpecialEntry{Name: e.Name, Abbreviation: r, Description: e.Description}, nil
}

// typeOf resolves a type name. Enum types take their keys from values.
func typeOf(field, name string, values []EnumDoc) (argval.Type, error) {
	if len(values) > 0 && name != "enum" && name != "" {
		return nil, fmt.Errorf("%s: values are only allowed for enum types", field)
	}
	switch name {
	case "", "any":
		if len(values) > 0 {
			return enumOf(values), nil
		}
		return argval.Any, nil
	case "int":
		return argval.INum, nil
	case "uint":
		return argval.UNum, nil
	case "real":
		return argval.Real, nil
	case "bool":
		return argval.Bool, nil
	case "enum":
		return enumOf(values), nil
	}
	return nil, fmt.Errorf("%s: unknown type %q", field, name)
}

func enumOf(values []EnumDoc) argval.Enum {
	e := make(argval.Enum, len(values))
	for i, v := range values {
		e[i] = argval.EnumEntry{Key: v.Key, Description: v.Description}
	}
	return e
}

// value converts a decoded scalar literal to a Value of type t. Decoders
// disagree on number representations (int, int64, uint64, float64), so
// numbers are rendered back to text and coerced like command-line tokens.
func value(field string, raw any, t argval.Type) (argval.Value, error) {
	var text string
	switch v := raw.(type) {
	case string:
		if t == argval.Any {
			return argval.String(v), nil
		}
		text = v
	case bool:
		text = strconv.FormatBool(v)
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	case uint64:
		text = strconv.FormatUint(v, 10)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return argval.Value{}, fmt.Errorf("%s: unsupported default %v of type %T", field, raw, raw)
	}
	val, err := argval.Coerce(text, t)
	if err != nil {
		return argval.Value{}, fmt.Errorf("%s: default: %w", field, err)
	}
	return val, nil
}

func (od OptionDoc) option() (*argtree.Option, error) {
	field := fmt.Sprintf("option %q", od.Name)
	r, err := abbreviation(field, od.Abbreviation)
	if err != nil {
		return nil, err
	}
	o := &argtree.Option{
		Name:         od.Name,
		Description:  od.Description,
		Abbreviation: r,
		Require:      require(od.Min, od.Max),
		Use:          od.Use,
	}
	if pd := od.Payload; pd != nil {
		t, err := typeOf(field, pd.Type, pd.Values)
		if err != nil {
			return nil, err
		}
		p := &argtree.Payload{Name: pd.Name, Type: t}
		for _, raw := range pd.Defaults {
			v, err := value(field, raw, t)
			if err != nil {
				return nil, err
			}
			p.Defaults = append(p.Defaults, v)
		}
		o.Payload = p
	}
	return o, nil
}

func positionals(owner string, docs []PositionalDoc) ([]argtree.Positional, error) {
	var out []argtree.Positional
	for _, pd := range docs {
		field := fmt.Sprintf("%s positional %q", owner, pd.Name)
		t, err := typeOf(field, pd.Type, pd.Values)
		if err != nil {
			return nil, err
		}
		p := argtree.Positional{Name: pd.Name, Type: t, Description: pd.Description}
		if pd.Default != nil {
			v, err := value(field, pd.Default, t)
			if err != nil {
				return nil, err
			}
			p.Default = &v
		}
		out = append(out, p)
	}
	return out, nil
}

func endpoints(owner string, docs []EndpointDoc) ([]*argtree.Endpoint, error) {
	var out []*argtree.Endpoint
	for _, ed := range docs {
		pos, err := positionals(fmt.Sprintf("%s endpoint %d", owner, ed.ID), ed.Positionals)
		if err != nil {
			return nil, err
		}
		out = append(out, &argtree.Endpoint{
			ID:          ed.ID,
			Description: ed.Description,
			Positionals: pos,
			Require:     require(ed.Min, ed.Max),
		})
	}
	return out, nil
}

func groups(docs []GroupDoc) ([]*argtree.Group, error) {
	var out []*argtree.Group
	for _, gd := range docs {
		owner := fmt.Sprintf("group %q", gd.Name)
		r, err := abbreviation(owner, gd.Abbreviation)
		if err != nil {
			return nil, err
		}
		g := &argtree.Group{
			Name:         gd.Name,
			ID:           gd.ID,
			Description:  gd.Description,
			Abbreviation: r,
			GroupLabel:   gd.GroupLabel,
			Help:         helpTexts(gd.Help),
			Use:          gd.Use,
			Require:      require(gd.Min, gd.Max),
		}
		if g.Positionals, err = positionals(owner, gd.Positionals); err != nil {
			return nil, err
		}
		if g.Endpoints, err = endpoints(owner, gd.Endpoints); err != nil {
			return nil, err
		}
		if g.Groups, err = groups(gd.Groups); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
