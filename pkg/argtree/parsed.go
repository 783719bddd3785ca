// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"slices"

	"github.com/yeetrun/argtree/pkg/argval"
	"tailscale.com/util/set"
)

// Parsed is the result of a successful Parse. It is only handed to
// constraints and callers once all values were coerced to their types.
type Parsed struct {
	program     string
	flags       set.Set[string]
	options     map[string][]argval.Value
	positionals []argval.Value
	group       string
	endpoint    int
}

// Program returns the program name derived from args[0].
func (p *Parsed) Program() string { return p.program }

// Flag reports whether the flag with the given name was supplied.
func (p *Parsed) Flag(name string) bool { return p.flags.Contains(name) }

// Flags returns the supplied flags in sorted order.
func (p *Parsed) Flags() []string {
	out := make([]string, 0, len(p.flags))
	for f := range p.flags {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Options returns the values of a payload option, in the order they were
// given, or its defaults if it was not given.
func (p *Parsed) Options(name string) []argval.Value {
	return slices.Clone(p.options[name])
}

// Option returns the i-th value of a payload option.
func (p *Parsed) Option(name string, i int) (argval.Value, bool) {
	vs := p.options[name]
	if i < 0 || i >= len(vs) {
		return argval.Value{}, false
	}
	return vs[i], true
}

// OptionNames returns the names of all options that have values, sorted.
func (p *Parsed) OptionNames() []string {
	out := make([]string, 0, len(p.options))
	for name := range p.options {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Positionals returns the coerced positional values.
func (p *Parsed) Positionals() []argval.Value {
	return slices.Clone(p.positionals)
}

// Positional returns the i-th positional value.
func (p *Parsed) Positional(i int) (argval.Value, bool) {
	if i < 0 || i >= len(p.positionals) {
		return argval.Value{}, false
	}
	return p.positionals[i], true
}

// Group returns the identifier of the selected leaf group, or "" when the
// schema has no groups.
func (p *Parsed) Group() string { return p.group }

// Endpoint returns the id of the endpoint that accepted the positionals.
func (p *Parsed) Endpoint() int { return p.endpoint }
