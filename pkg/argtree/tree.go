// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"unicode/utf8"

	"github.com/yeetrun/argtree/pkg/argval"
	"tailscale.com/util/set"
)

// rootGroup is the arena index of the root node.
const rootGroup = 0

// Schema is a validated, normalized argument schema. It is immutable and
// safe for concurrent use by multiple goroutines.
type Schema struct {
	menu        bool
	program     string
	version     string
	description string
	help        []HelpText

	groups []*group // groups[rootGroup] is the root

	options  []*option // sorted by name
	byName   map[string]int
	byAbbr   map[rune]int
	helpName string // name of the first help option, for HelpHint

	entries []menuEntry // help and version words of a menu
}

// menuEntry is a help or version word of a menu. Menus type these as bare
// words instead of options.
type menuEntry struct {
	name    string
	abbr    rune
	version bool
}

func (e menuEntry) kind() string {
	if e.version {
		return "version"
	}
	return "help"
}

// matches reports whether tok is the entry's name or, for single-rune
// tokens, its abbreviation.
func (e menuEntry) matches(tok string) bool {
	r, n := utf8.DecodeRuneInString(tok)
	if n == 0 || n != len(tok) {
		return tok == e.name
	}
	return e.abbr != 0 && r == e.abbr
}

type group struct {
	index       int
	parent      int // -1 for the root
	depth       int
	name        string
	id          string
	description string
	abbr        rune
	label       string // word used for the children of this node
	help        []HelpText

	children []int
	byName   map[string]int
	byAbbr   map[rune]int

	endpoints   []*endpoint // empty for containers
	constraints []Constraint
}

func (g *group) container() bool { return len(g.children) > 0 }

type endpoint struct {
	id          int
	description string
	positionals []Positional
	min, max    int // max == 0 means unbounded
	constraints []Constraint
}

// catchAll reports whether the final positional absorbs extra tokens.
func (e *endpoint) catchAll() bool {
	return len(e.positionals) > 0 && (e.max == 0 || e.max > len(e.positionals))
}

type option struct {
	name        string
	description string
	abbr        rune
	payload     *Payload // nil for flags
	min, max    int      // max == 0 means unbounded
	help        bool
	version     bool
	constraints []Constraint

	declared   set.Set[int] // groups that name the option or that it names
	users      set.Set[int] // declared plus their ancestors plus the root
	restricted bool
}

func (o *option) flag() bool { return o.payload == nil }

func (o *option) typ() argval.Type {
	if o.payload == nil {
		return nil
	}
	return o.payload.Type
}

// Program returns the configured program name.
func (s *Schema) Program() string { return s.program }

// IsMenu reports whether the schema was declared with NewMenu. Menus are
// matched with Menu instead of Parse.
func (s *Schema) IsMenu() bool { return s.menu }

// Version returns the configured version string.
func (s *Schema) Version() string { return s.version }

func (s *Schema) parentOf(gi int) int { return s.groups[gi].parent }

// chain returns the groups from the first child of the root down to gi.
func (s *Schema) chain(gi int) []*group {
	var out []*group
	for g := gi; g > rootGroup; g = s.parentOf(g) {
		out = append(out, s.groups[g])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// child looks up a child of gi by name or, for single-rune tokens, by
// abbreviation.
func (s *Schema) child(gi int, tok string) (int, bool) {
	g := s.groups[gi]
	if c, ok := g.byName[tok]; ok {
		return c, true
	}
	if r := []rune(tok); len(r) == 1 {
		if c, ok := g.byAbbr[r[0]]; ok {
			return c, true
		}
	}
	return 0, false
}

// inScope reports whether opt may be supplied while gi is the active group.
// Options are usable while navigating toward a declared group and inside
// every descendant of one, but never in unrelated siblings.
func (s *Schema) inScope(opt *option, gi int) bool {
	if !opt.restricted || gi == rootGroup || opt.users.Contains(gi) {
		return true
	}
	for g := s.parentOf(gi); g > rootGroup; g = s.parentOf(g) {
		if opt.declared.Contains(g) {
			return true
		}
	}
	return false
}

// usedFor returns the names of the children of gi, in declaration order,
// that opt is usable in.
func (s *Schema) usedFor(opt *option, gi int) []string {
	var out []string
	for _, c := range s.groups[gi].children {
		if s.inScope(opt, c) {
			out = append(out, s.groups[c].name)
		}
	}
	return out
}
