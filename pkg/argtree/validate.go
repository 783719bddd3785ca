// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yeetrun/argtree/pkg/argval"
	"tailscale.com/util/set"
)

// DefaultGroupLabel is the word used for child groups when a node does not
// set GroupLabel.
const DefaultGroupLabel = "mode"

// Validate checks cfg for consistency and returns the normalized schema.
// Every failure is a *ConfigError; no partial schema is ever returned.
// Validate does not modify cfg.
func Validate(cfg *Config) (*Schema, error) {
	if cfg == nil {
		return nil, configErrorf("", "config must not be nil")
	}
	v := &validator{
		s: &Schema{
			menu:        cfg.Menu,
			program:     cfg.Program,
			version:     cfg.Version,
			description: cfg.Description,
			help:        slices.Clone(cfg.Help),
		},
		byName:  make(map[string]int),
		byAbbr:  make(map[rune]string),
		leafIDs: make(map[string]string),
	}
	if err := v.config(cfg); err != nil {
		return nil, err
	}
	return v.s, nil
}

// MustValidate is like Validate but panics on error. It is meant for
// schemas declared as package-level variables.
func MustValidate(cfg *Config) *Schema {
	s, err := Validate(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

type validator struct {
	s *Schema

	opts    []*option      // declaration order
	optUse  [][]string     // group ids, parallel to opts
	byName  map[string]int // index into opts
	byAbbr  map[rune]string
	grpUse  [][]string        // option names, parallel to s.groups
	leafIDs map[string]string // leaf id -> entity that claimed it
}

func (v *validator) config(cfg *Config) error {
	const entity = "config"
	switch {
	case cfg.Menu && cfg.Program != "":
		return configErrorf(entity, "a menu cannot have a program name")
	case !cfg.Menu && cfg.Program == "":
		return configErrorf(entity, "program name must not be empty")
	}
	if cfg.Version == "" {
		return configErrorf(entity, "version must not be empty")
	}
	if err := checkHelpTexts(entity, cfg.Help); err != nil {
		return err
	}
	root := &group{
		index:       rootGroup,
		parent:      -1,
		label:       groupLabel(cfg.GroupLabel),
		constraints: slices.Clone(cfg.Constraints),
	}
	v.s.groups = append(v.s.groups, root)
	v.grpUse = append(v.grpUse, nil)

	if cfg.Menu {
		if err := v.menuEntries(cfg.HelpEntry, cfg.VersionEntry); err != nil {
			return err
		}
	} else {
		if e := cfg.HelpEntry; e != nil {
			o := &Option{Name: e.Name, Abbreviation: e.Abbreviation, Description: e.Description, HelpFlag: true}
			if err := v.addOption("help entry", o); err != nil {
				return err
			}
		}
		if e := cfg.VersionEntry; e != nil {
			o := &Option{Name: e.Name, Abbreviation: e.Abbreviation, Description: e.Description, VersionFlag: true}
			if err := v.addOption("version entry", o); err != nil {
				return err
			}
		}
	}
	for _, o := range cfg.Options {
		if o == nil {
			return configErrorf(entity, "option must not be nil")
		}
		if err := v.addOption("option", o); err != nil {
			return err
		}
	}
	if err := v.node(root, entity, cfg.Groups, cfg.Positionals, cfg.Require, cfg.Endpoints); err != nil {
		return err
	}
	if err := v.propagate(); err != nil {
		return err
	}
	v.finish()
	return nil
}

// menuEntries registers the help and version words of a menu.
func (v *validator) menuEntries(help, version *SpecialEntry) error {
	for _, e := range []*SpecialEntry{help, version} {
		if e == nil {
			continue
		}
		me := menuEntry{name: e.Name, abbr: e.Abbreviation, version: e == version}
		entity := fmt.Sprintf("%s entry '%s'", me.kind(), e.Name)
		if err := checkName(entity, e.Name); err != nil {
			return err
		}
		if utf8.RuneCountInString(e.Name) < 2 {
			return configErrorf(entity, "name must be at least two characters long")
		}
		if e.Abbreviation != 0 {
			if err := checkAbbreviation(entity, e.Abbreviation); err != nil {
				return err
			}
		}
		if err := v.checkMenuClash(entity, e.Name, e.Abbreviation); err != nil {
			return err
		}
		v.s.entries = append(v.s.entries, me)
		if !me.version {
			v.s.helpName = me.name
		}
	}
	return nil
}

// checkMenuClash rejects a name or abbreviation that a menu would read as
// its help or version word.
func (v *validator) checkMenuClash(entity, name string, abbr rune) error {
	for _, e := range v.s.entries {
		if name == e.name {
			return configErrorf(entity, "name clashes with the %s entry", e.kind())
		}
		if abbr != 0 && abbr == e.abbr {
			return configErrorf(entity, "abbreviation '%c' clashes with the %s entry", abbr, e.kind())
		}
	}
	return nil
}

func groupLabel(l string) string {
	return strings.ToLower(cmp.Or(l, DefaultGroupLabel))
}

func checkName(entity, name string) error {
	switch {
	case name == "":
		return configErrorf(entity, "name must not be empty")
	case strings.HasPrefix(name, "-"):
		return configErrorf(entity, "name must not start with '-'")
	case strings.ContainsRune(name, '='):
		return configErrorf(entity, "name must not contain '='")
	}
	return nil
}

func checkAbbreviation(entity string, r rune) error {
	switch r {
	case '-', '=', ' ', '\t':
		return configErrorf(entity, "invalid abbreviation %q", r)
	}
	return nil
}

func checkType(entity string, t argval.Type) error {
	switch t := t.(type) {
	case nil:
	case argval.Enum:
		if err := t.Validate(); err != nil {
			return configErrorf(entity, "%v", err)
		}
	case argval.Primitive:
		if t > argval.Bool {
			return configErrorf(entity, "unknown type %d", uint8(t))
		}
	default:
		return configErrorf(entity, "unsupported type %T", t)
	}
	return nil
}

func checkHelpTexts(entity string, help []HelpText) error {
	for _, h := range help {
		if h.Name == "" || h.Text == "" {
			return configErrorf(entity, "help sections need a name and a text")
		}
	}
	return nil
}

func (v *validator) addOption(kind string, o *Option) error {
	entity := fmt.Sprintf("%s '%s'", kind, o.Name)
	if err := checkName(entity, o.Name); err != nil {
		return err
	}
	if _, dup := v.byName[o.Name]; dup {
		return configErrorf(entity, "declared twice")
	}
	if o.Abbreviation != 0 {
		if err := checkAbbreviation(entity, o.Abbreviation); err != nil {
			return err
		}
		if other, dup := v.byAbbr[o.Abbreviation]; dup {
			return configErrorf(entity, "abbreviation '%c' is already used by option '%s'", o.Abbreviation, other)
		}
	}
	if o.HelpFlag && o.VersionFlag {
		return configErrorf(entity, "cannot print both help and version")
	}
	if (o.HelpFlag || o.VersionFlag) && o.Payload != nil {
		return configErrorf(entity, "help and version options cannot take a payload")
	}
	if v.s.menu && (o.HelpFlag || o.VersionFlag) {
		return configErrorf(entity, "menus request help and version with HelpEntry and VersionEntry")
	}

	opt := &option{
		name:        o.Name,
		description: o.Description,
		abbr:        o.Abbreviation,
		help:        o.HelpFlag,
		version:     o.VersionFlag,
		constraints: slices.Clone(o.Constraints),
		declared:    make(set.Set[int]),
		users:       make(set.Set[int]),
	}
	if p := o.Payload; p != nil {
		if p.Name == "" {
			return configErrorf(entity, "payload name must not be empty")
		}
		if err := checkType(entity, p.Type); err != nil {
			return err
		}
		opt.min, opt.max = optionBounds(o.Require)
		for _, d := range p.Defaults {
			if !argval.Admits(p.Type, d) {
				return configErrorf(entity, "default '%s' is not a valid %s", d, argval.Noun(p.Type))
			}
		}
		if n := len(p.Defaults); n > 0 && (n < opt.min || (opt.max > 0 && n > opt.max)) {
			return configErrorf(entity, "%d default values do not satisfy the option's cardinality", n)
		}
		opt.payload = &Payload{Name: p.Name, Type: p.Type, Defaults: slices.Clone(p.Defaults)}
	} else if o.Require != nil {
		return configErrorf(entity, "a flag cannot carry a cardinality requirement")
	}

	if opt.help && v.s.helpName == "" {
		v.s.helpName = opt.name
	}
	v.byName[opt.name] = len(v.opts)
	if opt.abbr != 0 {
		v.byAbbr[opt.abbr] = opt.name
	}
	v.opts = append(v.opts, opt)
	v.optUse = append(v.optUse, slices.Clone(o.Use))
	return nil
}

// optionBounds returns the cardinality of a payload option.
func optionBounds(r *Require) (lo, hi int) {
	if r == nil {
		return 0, 1
	}
	lo = int(r.Min)
	switch {
	case !r.MaxSet:
		return lo, max(lo, 1)
	case r.Max == 0:
		return lo, 0
	}
	return lo, max(lo, int(r.Max))
}

// node fills in g from the fields shared by Config and Group.
func (v *validator) node(g *group, entity string, groups []*Group, pos []Positional, req *Require, eps []*Endpoint) error {
	if len(groups) > 0 {
		if len(pos) > 0 || req != nil || len(eps) > 0 {
			return configErrorf(entity, "cannot have both a %s and positional arguments", g.label)
		}
		g.byName = make(map[string]int, len(groups))
		g.byAbbr = make(map[rune]int)
		for _, c := range groups {
			if c == nil {
				return configErrorf(entity, "%s must not be nil", g.label)
			}
			if err := v.addGroup(g, c); err != nil {
				return err
			}
		}
		return nil
	}

	ids := make(set.Set[int])
	if len(pos) > 0 || req != nil || len(eps) == 0 {
		ep, err := buildEndpoint(entity, 0, "", pos, req, nil)
		if err != nil {
			return err
		}
		ids.Add(0)
		g.endpoints = append(g.endpoints, ep)
	}
	for _, e := range eps {
		if e == nil {
			return configErrorf(entity, "endpoint must not be nil")
		}
		if ids.Contains(e.ID) {
			return configErrorf(entity, "endpoint %d declared twice", e.ID)
		}
		ids.Add(e.ID)
		ep, err := buildEndpoint(fmt.Sprintf("%s endpoint %d", entity, e.ID), e.ID, e.Description, e.Positionals, e.Require, e.Constraints)
		if err != nil {
			return err
		}
		g.endpoints = append(g.endpoints, ep)
	}
	return nil
}

func buildEndpoint(entity string, id int, desc string, pos []Positional, req *Require, cs []Constraint) (*endpoint, error) {
	for i, p := range pos {
		if p.Name == "" {
			return nil, configErrorf(entity, "positional %d has no name", i)
		}
		pe := fmt.Sprintf("%s positional '%s'", entity, p.Name)
		if err := checkType(pe, p.Type); err != nil {
			return nil, err
		}
		if p.Default != nil && !argval.Admits(p.Type, *p.Default) {
			return nil, configErrorf(pe, "default '%s' is not a valid %s", *p.Default, argval.Noun(p.Type))
		}
	}
	n := len(pos)
	lo := n
	if req != nil && n > 0 {
		lo = int(req.Min)
	}
	hi := max(lo, n)
	if req != nil && req.MaxSet {
		if req.Max == 0 {
			hi = 0
		} else {
			hi = max(hi, int(req.Max))
		}
	}
	return &endpoint{
		id:          id,
		description: desc,
		positionals: slices.Clone(pos),
		min:         lo,
		max:         hi,
		constraints: slices.Clone(cs),
	}, nil
}

func (v *validator) addGroup(parent *group, c *Group) error {
	entity := fmt.Sprintf("%s '%s'", parent.label, c.Name)
	if err := checkName(entity, c.Name); err != nil {
		return err
	}
	if _, dup := parent.byName[c.Name]; dup {
		return configErrorf(entity, "declared twice")
	}
	if c.Abbreviation != 0 {
		if err := checkAbbreviation(entity, c.Abbreviation); err != nil {
			return err
		}
		if _, dup := parent.byAbbr[c.Abbreviation]; dup {
			return configErrorf(entity, "abbreviation '%c' is already used by another %s", c.Abbreviation, parent.label)
		}
	}
	if v.s.menu {
		if err := v.checkMenuClash(entity, c.Name, c.Abbreviation); err != nil {
			return err
		}
	}
	if err := checkHelpTexts(entity, c.Help); err != nil {
		return err
	}
	g := &group{
		index:       len(v.s.groups),
		parent:      parent.index,
		depth:       parent.depth + 1,
		name:        c.Name,
		id:          cmp.Or(c.ID, c.Name),
		description: c.Description,
		abbr:        c.Abbreviation,
		label:       groupLabel(c.GroupLabel),
		help:        slices.Clone(c.Help),
		constraints: slices.Clone(c.Constraints),
	}
	v.s.groups = append(v.s.groups, g)
	v.grpUse = append(v.grpUse, slices.Clone(c.Use))
	parent.children = append(parent.children, g.index)
	parent.byName[g.name] = g.index
	if g.abbr != 0 {
		parent.byAbbr[g.abbr] = g.index
	}

	if err := v.node(g, entity, c.Groups, c.Positionals, c.Require, c.Endpoints); err != nil {
		return err
	}
	if g.container() {
		return nil
	}
	if other, dup := v.leafIDs[g.id]; dup {
		return configErrorf(entity, "identifier '%s' is already used by %s", g.id, other)
	}
	v.leafIDs[g.id] = entity
	return nil
}

// propagate resolves Use references in both directions and computes the
// scope of every option.
func (v *validator) propagate() error {
	for gi, names := range v.grpUse {
		for _, name := range names {
			oi, ok := v.byName[name]
			if !ok {
				g := v.s.groups[gi]
				return configErrorf(fmt.Sprintf("%s '%s'", v.s.groups[g.parent].label, g.name), "uses undefined option '%s'", name)
			}
			v.opts[oi].declared.Add(gi)
		}
	}
	for oi, ids := range v.optUse {
		for _, id := range ids {
			found := false
			for gi := rootGroup + 1; gi < len(v.s.groups); gi++ {
				if v.s.groups[gi].id == id {
					v.opts[oi].declared.Add(gi)
					found = true
				}
			}
			if !found {
				return configErrorf(fmt.Sprintf("option '%s'", v.opts[oi].name), "uses undefined group '%s'", id)
			}
		}
	}
	for _, o := range v.opts {
		for d := range o.declared {
			for g := d; g > rootGroup; g = v.s.parentOf(g) {
				o.users.Add(g)
			}
		}
		o.restricted = len(o.users) > 0
		o.users.Add(rootGroup)
	}
	return nil
}

func (v *validator) finish() {
	opts := slices.Clone(v.opts)
	slices.SortFunc(opts, func(a, b *option) int { return strings.Compare(a.name, b.name) })
	v.s.options = opts
	v.s.byName = make(map[string]int, len(opts))
	v.s.byAbbr = make(map[rune]int)
	for i, o := range opts {
		v.s.byName[o.name] = i
		if o.abbr != 0 {
			v.s.byAbbr[o.abbr] = i
		}
	}
}
