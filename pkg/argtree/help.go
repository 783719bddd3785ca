// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yeetrun/argtree/pkg/argval"
)

const (
	// DefaultHelpWidth is the line width of help text unless overridden.
	DefaultHelpWidth = 100

	// helpLeft is the column descriptions start at.
	helpLeft = 32

	// minHelpWidth keeps descriptions readable on very narrow terminals.
	minHelpWidth = helpLeft + 24
)

// Help renders the help text for the group reached by following groupPath
// (group names or abbreviations) from the root. args[0], if present, is
// used for the program name.
func (s *Schema) Help(args []string, groupPath ...string) (string, error) {
	return s.HelpWidth(args, DefaultHelpWidth, groupPath...)
}

// HelpWidth is like Help but wraps lines at width.
func (s *Schema) HelpWidth(args []string, width int, groupPath ...string) (string, error) {
	gi := rootGroup
	for _, name := range groupPath {
		c, ok := s.child(gi, name)
		if !ok {
			return "", parseErrorf("unknown %s '%s'", s.groups[gi].label, name)
		}
		gi = c
	}
	return s.helpText(s.programFrom(args), gi, width), nil
}

// VersionText renders the version text, for example "prog version 1.2.3".
func (s *Schema) VersionText(args []string) string {
	return s.versionText(s.programFrom(args))
}

func (s *Schema) programFrom(args []string) string {
	if s.menu || len(args) == 0 {
		return s.program
	}
	return ProgramName(args[0], s.program)
}

func (s *Schema) versionText(program string) string {
	if s.menu {
		return "version " + s.version
	}
	return fmt.Sprintf("%s version %s", program, s.version)
}

// helpWriter accumulates word-wrapped text.
type helpWriter struct {
	b     strings.Builder
	col   int
	width int
}

func (w *helpWriter) newline(blank bool) {
	if w.b.Len() == 0 {
		return
	}
	if !strings.HasSuffix(w.b.String(), "\n") {
		w.b.WriteByte('\n')
	}
	if blank {
		w.b.WriteByte('\n')
	}
	w.col = 0
}

func (w *helpWriter) pad(col int) {
	for w.col < col {
		w.b.WriteByte(' ')
		w.col++
	}
}

func (w *helpWriter) breakTo(col int) {
	w.b.WriteByte('\n')
	w.col = 0
	w.pad(col)
}

// token writes s, moving to a new line first if it would overflow.
func (w *helpWriter) token(s string) {
	n := utf8.RuneCountInString(s)
	if w.col > 0 && w.col+n > w.width {
		w.breakTo(0)
	}
	w.b.WriteString(s)
	w.col += n
}

// word writes s separated from the previous token by a space.
func (w *helpWriter) word(s string) {
	if w.col > 0 {
		if w.col+1+utf8.RuneCountInString(s) > w.width {
			w.breakTo(0)
		} else {
			w.b.WriteByte(' ')
			w.col++
		}
	}
	w.token(s)
}

// text writes s starting at column indent. Wrapped and explicitly broken
// lines continue at indent+hang.
func (w *helpWriter) text(s string, indent, hang int) {
	if strings.TrimSpace(s) == "" {
		return
	}
	if indent > 0 {
		if w.col >= indent {
			w.breakTo(0)
		}
		w.pad(indent)
	}
	wrap := indent + hang
	fresh := true
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			w.breakTo(wrap)
			fresh = true
		}
		for _, word := range strings.Fields(line) {
			n := utf8.RuneCountInString(word)
			sep := 1
			if fresh {
				sep = 0
			}
			if w.col > wrap && w.col+sep+n > w.width {
				w.breakTo(wrap)
				sep = 0
			}
			if sep == 1 {
				w.b.WriteByte(' ')
				w.col++
			}
			w.b.WriteString(word)
			w.col += n
			fresh = false
		}
	}
}

func title(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func limitString(lo, hi int) string {
	switch {
	case lo == 0 && hi == 0:
		return ""
	case lo > 0 && hi > 0:
		if lo == hi {
			return fmt.Sprintf(" [%dx]", lo)
		}
		return fmt.Sprintf(" [%d <= _ <= %d]", lo, hi)
	case lo > 0:
		return fmt.Sprintf(" [>= %d]", lo)
	}
	return fmt.Sprintf(" [<= %d]", hi)
}

func typeTag(t argval.Type) string {
	if t == nil || t == argval.Any {
		return ""
	}
	return " [" + t.Name() + "]"
}

func (w *helpWriter) enumKeys(t argval.Type) {
	e, ok := t.(argval.Enum)
	if !ok {
		return
	}
	for _, entry := range e {
		w.newline(false)
		w.text(fmt.Sprintf("- [%s]: %s", entry.Key, entry.Description), helpLeft, 0)
	}
}

func (w *helpWriter) defaults(vals []argval.Value) {
	if len(vals) == 0 {
		return
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	w.newline(false)
	w.text("Defaults to: "+strings.Join(parts, ", "), helpLeft, 0)
}

func (w *helpWriter) sections(help []HelpText) {
	for _, h := range help {
		w.newline(true)
		w.text(h.Name, 0, 0)
		w.text(h.Text, helpLeft, 0)
	}
}

// nestedPositionals reports whether any leaf below gi takes positionals.
func (s *Schema) nestedPositionals(gi int) bool {
	g := s.groups[gi]
	for _, ep := range g.endpoints {
		if len(ep.positionals) > 0 {
			return true
		}
	}
	for _, c := range g.children {
		if s.nestedPositionals(c) {
			return true
		}
	}
	return false
}

// helpText renders the help for the active group gi.
func (s *Schema) helpText(program string, gi, width int) string {
	if width <= 0 {
		width = DefaultHelpWidth
	}
	w := &helpWriter{width: max(width, minHelpWidth)}
	g := s.groups[gi]
	chain := s.chain(gi)

	s.usage(w, program, g, chain)

	if s.description != "" {
		w.newline(true)
		w.text(s.description, 4, 0)
	}
	for _, c := range chain {
		if c.description == "" {
			continue
		}
		w.newline(true)
		w.text(fmt.Sprintf("%s: %s", title(s.groups[c.parent].label), c.name), 0, 0)
		w.text(c.description, 4, 0)
	}

	if g.container() {
		w.newline(true)
		w.text(fmt.Sprintf("Options for [%s]:", g.label), 0, 0)
		for _, ci := range g.children {
			c := s.groups[ci]
			left := "  " + c.name
			if c.abbr != 0 {
				left = fmt.Sprintf("  %c, %s", c.abbr, c.name)
			}
			w.newline(false)
			w.text(left, 0, 0)
			w.text(c.description, helpLeft, 1)
		}
	} else {
		for _, ep := range g.endpoints {
			s.positionalHelp(w, g, ep)
		}
	}

	var req, opt bool
	for _, o := range s.options {
		if !s.inScope(o, gi) {
			continue
		}
		if o.min > 0 {
			req = true
		} else {
			opt = true
		}
	}
	if req {
		w.newline(true)
		w.text("Required arguments:", 0, 0)
		s.optionHelp(w, g, true)
	}
	if opt {
		w.newline(true)
		w.text("Optional arguments:", 0, 0)
		s.optionHelp(w, g, false)
	}

	w.sections(s.help)
	for _, c := range chain {
		w.sections(c.help)
	}
	return w.b.String()
}

func (s *Schema) usage(w *helpWriter, program string, g *group, chain []*group) {
	first, next := "Usage: ", "   or: "
	if s.menu {
		first, next = "Input>", "   or>"
	}
	line := func(prefix string, ep *endpoint) {
		w.token(prefix)
		if !s.menu {
			w.token(program)
		}
		for _, c := range chain {
			w.word(c.name)
		}
		if g.container() {
			w.word("[" + g.label + "]")
		}
		optional := false
		for _, o := range s.options {
			if !s.inScope(o, g.index) {
				continue
			}
			if o.min == 0 {
				optional = true
				continue
			}
			w.word(fmt.Sprintf("--%s=<%s>", o.name, o.payload.Name))
		}
		if optional {
			w.word("[options...]")
		}
		if ep == nil {
			if s.nestedPositionals(g.index) {
				w.word("[params...]")
			}
			return
		}
		n := len(ep.positionals)
		for i, p := range ep.positionals {
			tok := p.Name
			if i == n-1 && ep.catchAll() {
				tok += "..."
			}
			if i >= ep.min {
				tok = "[" + tok + "]"
			}
			w.word(tok)
		}
	}

	if g.container() {
		line(first, nil)
		return
	}
	for i, ep := range g.endpoints {
		if i == 0 {
			line(first, ep)
			continue
		}
		w.newline(false)
		line(next, ep)
	}
}

func (s *Schema) positionalHelp(w *helpWriter, g *group, ep *endpoint) {
	n := len(ep.positionals)
	if n == 0 {
		return
	}
	w.newline(true)
	if g.index == rootGroup {
		w.text("Positional arguments:", 0, 0)
	} else {
		w.text(fmt.Sprintf("Positional arguments for %s [%s]:", s.groups[g.parent].label, g.name), 0, 0)
	}
	if len(g.endpoints) > 1 && ep.description != "" {
		w.newline(false)
		w.text(ep.description, 2, 0)
	}
	for i, p := range ep.positionals {
		w.newline(false)
		w.text("  "+p.Name+typeTag(p.Type), 0, 0)
		desc := p.Description
		if i == n-1 && ep.catchAll() {
			hi := 0
			if ep.max > 0 {
				hi = ep.max - i
			}
			desc += limitString(max(ep.min-i, 0), hi)
		}
		w.text(desc, helpLeft, 1)
		w.enumKeys(p.Type)
		if p.Default != nil {
			w.defaults([]argval.Value{*p.Default})
		}
	}
}

func (s *Schema) optionHelp(w *helpWriter, g *group, required bool) {
	for _, o := range s.options {
		if (o.min > 0) != required || !s.inScope(o, g.index) {
			continue
		}
		w.newline(false)
		left := "  "
		if o.abbr != 0 {
			left += fmt.Sprintf("-%c, ", o.abbr)
		}
		left += "--" + o.name
		if o.payload != nil {
			left += fmt.Sprintf("=<%s>%s", o.payload.Name, typeTag(o.payload.Type))
		}
		w.text(left, 0, 0)

		desc := o.description
		if o.restricted && g.container() {
			if users := s.usedFor(o, g.index); len(users) > 0 {
				desc += " (Used for: " + strings.Join(users, "|") + ")"
			}
		}
		if o.min != 1 || o.max != 1 {
			hi := 0
			if o.max > 1 {
				hi = o.max
			}
			desc += limitString(o.min, hi)
		}
		w.text(desc, helpLeft, 1)
		if o.payload != nil {
			w.enumKeys(o.payload.Type)
			w.defaults(o.payload.Defaults)
		}
	}
}
