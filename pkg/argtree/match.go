// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"strings"

	"github.com/yeetrun/argtree/pkg/argval"
	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// ParseOptions tunes ParseWith.
type ParseOptions struct {
	// HelpWidth is the line width of a requested help text. Zero means
	// DefaultHelpWidth.
	HelpWidth int
}

// Parse matches args against the schema. args[0] is the invoked program
// path and is only used to derive the program name.
//
// On success it returns the coerced arguments. Otherwise the error is a
// *PrintRequest when help or version output was requested, or a
// *ParseError describing the first problem with the arguments.
func (s *Schema) Parse(args []string) (*Parsed, error) {
	return s.ParseWith(args, ParseOptions{})
}

// ParseWith is like Parse with explicit options.
func (s *Schema) ParseWith(args []string, opts ParseOptions) (*Parsed, error) {
	if s.menu {
		return nil, configErrorf("", "schema is a menu and must be matched with Menu")
	}
	m := &matcher{s: s, opts: opts, args: args, unknown: -1}
	var arg0 string
	if len(args) > 0 {
		arg0 = args[0]
		m.idx = 1
	}
	m.program = ProgramName(arg0, s.program)
	m.scan()
	return m.decide()
}

// Menu matches the words of a menu input against a schema declared with
// NewMenu. Unlike Parse, args holds no program path.
//
// The help and version entries are bare words, recognized as the first
// word, right after a group was selected, or while a group still has to be
// chosen. Anywhere else they are ordinary positionals, and "--help" is an
// unknown option.
func (s *Schema) Menu(args []string) (*Parsed, error) {
	return s.MenuWith(args, ParseOptions{})
}

// MenuWith is like Menu with explicit options.
func (s *Schema) MenuWith(args []string, opts ParseOptions) (*Parsed, error) {
	if !s.menu {
		return nil, configErrorf("", "schema has a program and must be matched with Parse")
	}
	m := &matcher{s: s, opts: opts, args: args, unknown: -1, special: true}
	m.scan()
	return m.decide()
}

// matcher is the state of a single Parse call.
type matcher struct {
	s    *Schema
	opts ParseOptions
	args []string

	idx     int // next token
	program string
	active  int // current group index
	locked  bool
	unknown int // index of the first unmatched group token, -1 if none

	// special is set in menus while the next word may be a help or
	// version entry.
	special bool

	flags   set.Set[string]
	options map[string][]string
	raw     []string

	err     *ParseError // first scan error, reported after help/version
	help    bool
	version bool
}

func (m *matcher) fail(err *ParseError) {
	if m.err == nil {
		m.err = err
	}
}

// scan collects all tokens without deciding anything yet.
func (m *matcher) scan() {
	for m.idx < len(m.args) {
		tok := m.args[m.idx]
		m.idx++
		if m.s.menu && m.entry(tok) {
			continue
		}
		m.special = false
		if !m.locked {
			if tok == "--" {
				m.locked = true
				continue
			}
			if len(tok) > 1 && tok[0] == '-' {
				m.optional(tok)
				continue
			}
		}
		if m.s.groups[m.active].container() && m.unknown < 0 {
			if c, ok := m.s.child(m.active, tok); ok {
				m.active = c
				m.special = true
				continue
			}
			m.unknown = m.idx - 1
		}
		m.raw = append(m.raw, tok)
	}
}

// entry records tok if it is a menu's help or version word at a position
// where one is allowed.
func (m *matcher) entry(tok string) bool {
	if !m.special && !m.s.groups[m.active].container() {
		return false
	}
	for _, e := range m.s.entries {
		if !e.matches(tok) {
			continue
		}
		if e.version {
			m.version = true
		} else {
			m.help = true
		}
		return true
	}
	return false
}

func (m *matcher) optional(tok string) {
	head, payload, inline := strings.Cut(tok, "=")
	used := false
	if name, long := strings.CutPrefix(head, "--"); long {
		oi, ok := m.s.byName[name]
		if !ok {
			m.fail(parseErrorf("unknown option '--%s'", name))
			return
		}
		used = m.take(m.s.options[oi], payload, inline)
	} else {
		abbrs := []rune(head[1:])
		for i, r := range abbrs {
			oi, ok := m.s.byAbbr[r]
			if !ok {
				m.fail(parseErrorf("unknown option '-%c'", r))
				continue
			}
			opt := m.s.options[oi]
			if !opt.flag() && i < len(abbrs)-1 {
				m.fail(parseErrorf("option '-%c' takes a value and must come last in '%s'", r, head))
				continue
			}
			if m.take(opt, payload, inline) {
				used = true
			}
		}
	}
	if inline && !used {
		m.fail(parseErrorf("value '%s' in '%s' is not used by any option", payload, tok))
	}
}

// take records one occurrence of opt and reports whether the inline
// payload was consumed.
func (m *matcher) take(opt *option, payload string, inline bool) bool {
	if opt.flag() {
		mak.Set(&m.flags, opt.name, struct{}{})
		m.help = m.help || opt.help
		m.version = m.version || opt.version
		return false
	}
	if !inline {
		if m.idx >= len(m.args) {
			m.fail(parseErrorf("option '--%s' requires a value", opt.name))
			return false
		}
		payload = m.args[m.idx]
		m.idx++
	}
	mak.Set(&m.options, opt.name, append(m.options[opt.name], payload))
	return inline
}

// decide turns the collected state into the outcome. Help wins over
// version, and both win over every error.
func (m *matcher) decide() (*Parsed, error) {
	if m.help {
		return nil, &PrintRequest{Kind: PrintHelp, Text: m.s.helpText(m.program, m.active, m.opts.HelpWidth)}
	}
	if m.version {
		return nil, &PrintRequest{Kind: PrintVersion, Text: m.s.versionText(m.program)}
	}
	g := m.s.groups[m.active]
	if m.unknown >= 0 {
		return nil, parseErrorf("unknown %s '%s'", g.label, m.args[m.unknown])
	}
	if m.err != nil {
		return nil, m.err
	}
	if g.container() {
		return nil, parseErrorf("missing %s", g.label)
	}

	p := &Parsed{program: m.program, flags: m.flags}
	if m.active != rootGroup {
		p.group = g.id
	}
	ep, err := m.positionals(g, p)
	if err != nil {
		return nil, err
	}
	if err := m.optionals(p); err != nil {
		return nil, err
	}
	if err := m.constraints(ep, p); err != nil {
		return nil, err
	}
	return p, nil
}

// where names the active group for messages, or "" at the root.
func (m *matcher) where() string {
	if m.active == rootGroup {
		return ""
	}
	g := m.s.groups[m.active]
	return fmt.Sprintf("%s '%s'", m.s.groups[g.parent].label, g.name)
}

func coerceError(name string, err error) *ParseError {
	if ce, ok := err.(*argval.CoerceError); ok {
		return &ParseError{
			Msg: fmt.Sprintf("invalid %s '%s' for argument '%s'", argval.Noun(ce.Type), ce.Raw, name),
			Err: err,
		}
	}
	return &ParseError{Msg: fmt.Sprintf("argument '%s': %v", name, err), Err: err}
}

// positionals selects the first endpoint of g that accepts the collected
// tokens. If none does, the error of the first endpoint is returned.
func (m *matcher) positionals(g *group, p *Parsed) (*endpoint, error) {
	var first error
	for _, ep := range g.endpoints {
		vals, err := m.bind(ep)
		if err == nil {
			p.positionals = vals
			p.endpoint = ep.id
			return ep, nil
		}
		if first == nil {
			first = err
		}
	}
	return nil, first
}

func (m *matcher) bind(ep *endpoint) ([]argval.Value, error) {
	n := len(ep.positionals)
	out := make([]argval.Value, 0, max(len(m.raw), n))
	for i, tok := range m.raw {
		if n == 0 || (ep.max > 0 && i >= ep.max) {
			if w := m.where(); w != "" {
				return nil, parseErrorf("unrecognized argument '%s' for %s", tok, w)
			}
			return nil, parseErrorf("unrecognized argument '%s'", tok)
		}
		slot := ep.positionals[min(i, n-1)]
		if tok == "" && slot.Default != nil {
			out = append(out, *slot.Default)
			continue
		}
		v, err := argval.Coerce(tok, slot.Type)
		if err != nil {
			return nil, coerceError(slot.Name, err)
		}
		out = append(out, v)
	}
	for i := len(out); i < n && ep.positionals[i].Default != nil; i++ {
		out = append(out, *ep.positionals[i].Default)
	}
	if len(out) < ep.min {
		return nil, parseErrorf("argument '%s' is missing", ep.positionals[min(len(out), n-1)].Name)
	}
	return out, nil
}

// optionals checks scope and cardinality of every option and coerces the
// collected values.
func (m *matcher) optionals(p *Parsed) error {
	for _, opt := range m.s.options {
		vals := m.options[opt.name]
		if !m.s.inScope(opt, m.active) {
			if len(vals) > 0 || m.flags.Contains(opt.name) {
				return parseErrorf("argument '%s' not meant for %s", opt.name, m.where())
			}
			continue
		}
		if opt.flag() {
			continue
		}
		if len(vals) == 0 && len(opt.payload.Defaults) > 0 {
			mak.Set(&p.options, opt.name, opt.payload.Defaults)
			continue
		}
		if len(vals) < opt.min {
			return parseErrorf("argument '%s' is missing", opt.name)
		}
		if opt.max > 0 && len(vals) > opt.max {
			return parseErrorf("argument '%s' may be specified at most %d times", opt.name, opt.max)
		}
		if len(vals) == 0 {
			continue
		}
		coerced := make([]argval.Value, 0, len(vals))
		for _, raw := range vals {
			v, err := argval.Coerce(raw, opt.typ())
			if err != nil {
				return coerceError(opt.name, err)
			}
			coerced = append(coerced, v)
		}
		mak.Set(&p.options, opt.name, coerced)
	}
	return nil
}

// constraints runs the application checks: global ones, then the group
// chain from the root down, then the endpoint, then every supplied option.
func (m *matcher) constraints(ep *endpoint, p *Parsed) error {
	run := func(cs []Constraint) error {
		for _, c := range cs {
			if msg := c(p); msg != "" {
				return &ParseError{Msg: msg}
			}
		}
		return nil
	}
	if err := run(m.s.groups[rootGroup].constraints); err != nil {
		return err
	}
	for _, g := range m.s.chain(m.active) {
		if err := run(g.constraints); err != nil {
			return err
		}
	}
	if err := run(ep.constraints); err != nil {
		return err
	}
	for _, opt := range m.s.options {
		if len(m.options[opt.name]) == 0 && !m.flags.Contains(opt.name) {
			continue
		}
		if err := run(opt.constraints); err != nil {
			return err
		}
	}
	return nil
}
