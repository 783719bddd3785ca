// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import "github.com/yeetrun/argtree/pkg/argval"

// Constraint is an application-defined check that runs after all arguments
// were matched and verified. A non-empty return value rejects the arguments
// and is reported verbatim.
type Constraint func(p *Parsed) string

// Require is a cardinality requirement. Max is only honored when MaxSet is
// true; an explicit Max of 0 means unbounded.
type Require struct {
	Min    uint
	Max    uint
	MaxSet bool
}

// Payload describes the value an option consumes.
type Payload struct {
	Name     string // Display name, e.g. "path" in --out=<path>
	Type     argval.Type
	Defaults []argval.Value
}

// HelpText is a free-form section appended to the help output.
type HelpText struct {
	Name string
	Text string
}

// SpecialEntry designates the option that triggers help or version output.
type SpecialEntry struct {
	Name         string
	Abbreviation rune
	Description  string
}

// Option is a named argument, optionally abbreviated and optionally carrying
// a payload. Options without a payload are flags.
type Option struct {
	Name         string
	Description  string
	Abbreviation rune
	Payload      *Payload
	Require      *Require
	Constraints  []Constraint
	HelpFlag     bool
	VersionFlag  bool
	// Use restricts the option to the groups with these identifiers.
	Use []string
}

// Positional is a value slot identified by its position.
type Positional struct {
	Name        string
	Type        argval.Type
	Description string
	Default     *argval.Value
}

// Endpoint is one admissible positional signature of a leaf node.
type Endpoint struct {
	ID          int
	Description string
	Positionals []Positional
	Require     *Require
	Constraints []Constraint
}

// Group is a sub-command. It either contains child groups or owns
// positionals/endpoints, never both.
type Group struct {
	Name         string
	ID           string // Defaults to Name
	Description  string
	Abbreviation rune
	// GroupLabel names the child groups in messages ("mode" by default).
	GroupLabel string
	Help       []HelpText
	// Use lists the option names this group and its descendants may supply.
	Use         []string
	Groups      []*Group
	Positionals []Positional
	Require     *Require
	Endpoints   []*Endpoint
	Constraints []Constraint
}

// Config is the root of a schema.
type Config struct {
	// Menu marks a schema for input that is not a process command line,
	// such as lines typed into an interactive prompt. Menus have no program
	// name and are matched with Schema.Menu.
	Menu bool

	Program      string
	Version      string
	Description  string
	GroupLabel   string
	Help         []HelpText
	Options      []*Option
	Groups       []*Group
	Positionals  []Positional
	Require      *Require
	Endpoints    []*Endpoint
	Constraints  []Constraint
	HelpEntry    *SpecialEntry
	VersionEntry *SpecialEntry
}

// NewConfig returns a Config with the modifiers applied in order.
func NewConfig(program, version string, mods ...ConfigModifier) *Config {
	c := &Config{Program: program, Version: version}
	for _, m := range mods {
		m.applyConfig(c)
	}
	return c
}

// NewMenu returns a menu Config with the modifiers applied in order.
func NewMenu(version string, mods ...ConfigModifier) *Config {
	c := &Config{Menu: true, Version: version}
	for _, m := range mods {
		m.applyConfig(c)
	}
	return c
}

// NewGroup returns a Group with the modifiers applied in order.
func NewGroup(name string, mods ...GroupModifier) *Group {
	g := &Group{Name: name}
	for _, m := range mods {
		m.applyGroup(g)
	}
	return g
}

// NewOption returns an Option with the modifiers applied in order.
func NewOption(name string, mods ...OptionModifier) *Option {
	o := &Option{Name: name}
	for _, m := range mods {
		m.applyOption(o)
	}
	return o
}

// NewEndpoint returns an Endpoint with the modifiers applied in order.
func NewEndpoint(id int, mods ...EndpointModifier) *Endpoint {
	e := &Endpoint{ID: id}
	for _, m := range mods {
		m.applyEndpoint(e)
	}
	return e
}

// Options, groups and endpoints are modifiers of their parents, so a whole
// schema can be written as one nested expression.

func (o *Option) applyConfig(c *Config) { c.Options = append(c.Options, o) }

func (g *Group) applyConfig(c *Config) { c.Groups = append(c.Groups, g) }

func (g *Group) applyGroup(p *Group) { p.Groups = append(p.Groups, g) }

func (e *Endpoint) applyConfig(c *Config) { c.Endpoints = append(c.Endpoints, e) }

func (e *Endpoint) applyGroup(g *Group) { g.Endpoints = append(g.Endpoints, e) }
