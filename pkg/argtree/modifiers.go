// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import "github.com/yeetrun/argtree/pkg/argval"

// ConfigModifier is applied to a Config by NewConfig.
type ConfigModifier interface {
	applyConfig(*Config)
}

// GroupModifier is applied to a Group by NewGroup.
type GroupModifier interface {
	applyGroup(*Group)
}

// OptionModifier is applied to an Option by NewOption.
type OptionModifier interface {
	applyOption(*Option)
}

// EndpointModifier is applied to an Endpoint by NewEndpoint.
type EndpointModifier interface {
	applyEndpoint(*Endpoint)
}

// DescriptionMod sets the description of any node.
type DescriptionMod string

// Description returns a modifier that sets the description of any node.
func Description(text string) DescriptionMod { return DescriptionMod(text) }

func (m DescriptionMod) applyConfig(c *Config)     { c.Description = string(m) }
func (m DescriptionMod) applyGroup(g *Group)       { g.Description = string(m) }
func (m DescriptionMod) applyOption(o *Option)     { o.Description = string(m) }
func (m DescriptionMod) applyEndpoint(e *Endpoint) { e.Description = string(m) }

// RequireMod sets a cardinality requirement.
type RequireMod Require

// RequireAtLeast requires min occurrences with the default maximum.
func RequireAtLeast(min uint) RequireMod { return RequireMod{Min: min} }

// RequireBetween requires between min and max occurrences. A max of 0
// means unbounded.
func RequireBetween(min, max uint) RequireMod {
	return RequireMod{Min: min, Max: max, MaxSet: true}
}

func (m RequireMod) req() *Require {
	r := Require(m)
	return &r
}

func (m RequireMod) applyConfig(c *Config)     { c.Require = m.req() }
func (m RequireMod) applyGroup(g *Group)       { g.Require = m.req() }
func (m RequireMod) applyOption(o *Option)     { o.Require = m.req() }
func (m RequireMod) applyEndpoint(e *Endpoint) { e.Require = m.req() }

// AbbreviationMod sets the single-rune alias of an option or group.
type AbbreviationMod rune

func Abbreviation(r rune) AbbreviationMod { return AbbreviationMod(r) }

func (m AbbreviationMod) applyGroup(g *Group)   { g.Abbreviation = rune(m) }
func (m AbbreviationMod) applyOption(o *Option) { o.Abbreviation = rune(m) }

// PayloadMod makes an option consume a value.
type PayloadMod Payload

// PayloadOf returns a modifier that gives an option a payload of type t.
// Defaults apply when the option is not given at all.
func PayloadOf(name string, t argval.Type, defaults ...argval.Value) PayloadMod {
	return PayloadMod{Name: name, Type: t, Defaults: defaults}
}

func (m PayloadMod) applyOption(o *Option) {
	p := Payload(m)
	o.Payload = &p
}

// UseMod restricts options to groups. On a group it lists option names; on
// an option it lists group identifiers. Repeated uses append.
type UseMod []string

func Use(names ...string) UseMod { return UseMod(names) }

func (m UseMod) applyGroup(g *Group)   { g.Use = append(g.Use, m...) }
func (m UseMod) applyOption(o *Option) { o.Use = append(o.Use, m...) }

// PositionalMod appends a positional slot.
type PositionalMod Positional

// PositionalArg returns a modifier declaring a positional.
func PositionalArg(name string, t argval.Type, desc string) PositionalMod {
	return PositionalMod{Name: name, Type: t, Description: desc}
}

// PositionalDefault declares a positional that falls back to def when it is
// omitted or given as an empty token.
func PositionalDefault(name string, t argval.Type, desc string, def argval.Value) PositionalMod {
	return PositionalMod{Name: name, Type: t, Description: desc, Default: &def}
}

func (m PositionalMod) applyConfig(c *Config) {
	c.Positionals = append(c.Positionals, Positional(m))
}

func (m PositionalMod) applyGroup(g *Group) {
	g.Positionals = append(g.Positionals, Positional(m))
}

func (m PositionalMod) applyEndpoint(e *Endpoint) {
	e.Positionals = append(e.Positionals, Positional(m))
}

// HelpMod appends a free-form help section.
type HelpMod HelpText

func Help(name, text string) HelpMod { return HelpMod{Name: name, Text: text} }

func (m HelpMod) applyConfig(c *Config) { c.Help = append(c.Help, HelpText(m)) }
func (m HelpMod) applyGroup(g *Group)   { g.Help = append(g.Help, HelpText(m)) }

// GroupLabelMod sets the word used for child groups in messages.
type GroupLabelMod string

func GroupLabel(label string) GroupLabelMod { return GroupLabelMod(label) }

func (m GroupLabelMod) applyConfig(c *Config) { c.GroupLabel = string(m) }
func (m GroupLabelMod) applyGroup(g *Group)   { g.GroupLabel = string(m) }

// EntryMod designates the help or version option of a Config.
type EntryMod struct {
	version bool
	entry   SpecialEntry
}

// HelpEntry registers a flag that prints the help text, e.g.
// HelpEntry("help", 'h'). The abbreviation is optional.
func HelpEntry(name string, abbr ...rune) EntryMod {
	return EntryMod{entry: SpecialEntry{Name: name, Abbreviation: firstRune(abbr), Description: "Print this help text."}}
}

// VersionEntry registers a flag that prints the version text.
func VersionEntry(name string, abbr ...rune) EntryMod {
	return EntryMod{version: true, entry: SpecialEntry{Name: name, Abbreviation: firstRune(abbr), Description: "Print the version."}}
}

func firstRune(rs []rune) rune {
	if len(rs) == 0 {
		return 0
	}
	return rs[0]
}

func (m EntryMod) applyConfig(c *Config) {
	e := m.entry
	if m.version {
		c.VersionEntry = &e
	} else {
		c.HelpEntry = &e
	}
}

// SpecialFlagMod marks an option as a help or version trigger.
type SpecialFlagMod bool

// HelpFlag marks an option as printing the help text.
func HelpFlag() SpecialFlagMod { return false }

// VersionFlag marks an option as printing the version text.
func VersionFlag() SpecialFlagMod { return true }

func (m SpecialFlagMod) applyOption(o *Option) {
	if m {
		o.VersionFlag = true
	} else {
		o.HelpFlag = true
	}
}

// CheckMod attaches a constraint to any node.
type CheckMod Constraint

func Check(c Constraint) CheckMod { return CheckMod(c) }

func (m CheckMod) applyConfig(c *Config) {
	c.Constraints = append(c.Constraints, Constraint(m))
}

func (m CheckMod) applyGroup(g *Group) {
	g.Constraints = append(g.Constraints, Constraint(m))
}

func (m CheckMod) applyOption(o *Option) {
	o.Constraints = append(o.Constraints, Constraint(m))
}

func (m CheckMod) applyEndpoint(e *Endpoint) {
	e.Constraints = append(e.Constraints, Constraint(m))
}

// IDMod overrides the identifier a leaf group reports from Parsed.Group.
type IDMod string

func ID(id string) IDMod { return IDMod(id) }

func (m IDMod) applyGroup(g *Group) { g.ID = string(m) }
