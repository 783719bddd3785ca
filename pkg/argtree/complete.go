// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"slices"

	"github.com/posener/complete/v2"
	"github.com/yeetrun/argtree/pkg/argval"
)

// Completer returns a shell completer for the schema. Install it with
// complete.Complete(s.Program(), s.Completer()) at the top of main.
func (s *Schema) Completer() complete.Completer {
	return completer{s: s, gi: rootGroup}
}

// completer implements complete.Completer for one group of a schema.
type completer struct {
	s  *Schema
	gi int
}

func (c completer) SubCmdList() []string {
	var names []string
	for _, ci := range c.s.groups[c.gi].children {
		names = append(names, c.s.groups[ci].name)
	}
	return names
}

func (c completer) SubCmdGet(cmd string) complete.Completer {
	ci, ok := c.s.child(c.gi, cmd)
	if !ok {
		return nil
	}
	return completer{s: c.s, gi: ci}
}

// FlagList returns the names and abbreviations of the options usable in
// the group.
func (c completer) FlagList() []string {
	var names []string
	for _, o := range c.s.options {
		if !c.s.inScope(o, c.gi) {
			continue
		}
		names = append(names, o.name)
		if o.abbr != 0 {
			names = append(names, string(o.abbr))
		}
	}
	return names
}

func (c completer) FlagGet(flag string) complete.Predictor {
	oi, ok := c.s.byName[flag]
	if !ok {
		r := []rune(flag)
		if len(r) != 1 {
			return nil
		}
		if oi, ok = c.s.byAbbr[r[0]]; !ok {
			return nil
		}
	}
	o := c.s.options[oi]
	if o.flag() || !c.s.inScope(o, c.gi) {
		return nil
	}
	return predictType(o.typ())
}

// ArgsGet predicts positionals from the enum keys of the group's
// endpoints.
func (c completer) ArgsGet() complete.Predictor {
	var keys []string
	for _, ep := range c.s.groups[c.gi].endpoints {
		for _, p := range ep.positionals {
			if e, ok := p.Type.(argval.Enum); ok {
				keys = append(keys, e.Keys()...)
			}
		}
	}
	if len(keys) == 0 {
		return nil
	}
	slices.Sort(keys)
	return predictSet(slices.Compact(keys))
}

func predictType(t argval.Type) complete.Predictor {
	switch t := t.(type) {
	case argval.Enum:
		return predictSet(t.Keys())
	case argval.Primitive:
		if t == argval.Bool {
			return predictSet([]string{"true", "false"})
		}
	}
	return complete.PredictFunc(func(string) []string { return nil })
}

func predictSet(values []string) complete.Predictor {
	return complete.PredictFunc(func(string) []string { return values })
}
