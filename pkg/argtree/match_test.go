// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argtree/pkg/argval"
	"golang.org/x/sync/errgroup"
)

var colorModes = argval.Enum{
	{Key: "auto", Description: "Color when writing to a terminal."},
	{Key: "never", Description: "Never color."},
}

func toolConfig() *Config {
	return NewConfig("prog", "1.2.3",
		Description("Builds and tests things."),
		HelpEntry("help", 'h'),
		VersionEntry("version"),
		NewOption("verbose", Abbreviation('v'), Description("Talk more.")),
		NewOption("jobs",
			Abbreviation('j'),
			Description("Parallel jobs."),
			PayloadOf("n", argval.UNum, argval.Uint(1)),
			Use("build")),
		NewOption("tag", Abbreviation('t'), PayloadOf("tag", nil), RequireBetween(0, 0)),
		NewOption("color", PayloadOf("mode", colorModes)),
		NewGroup("build",
			Abbreviation('b'),
			Description("Build targets."),
			PositionalArg("target", nil, "Target to build.")),
		NewGroup("test",
			Description("Run tests."),
			PositionalArg("pkg", nil, "Packages to test."),
			RequireBetween(0, 0)),
	)
}

func toolSchema(t testing.TB) *Schema {
	t.Helper()
	s, err := Validate(toolConfig())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return s
}

func mustParse(t *testing.T, s *Schema, args ...string) *Parsed {
	t.Helper()
	p, err := s.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", args, err)
	}
	if p == nil {
		t.Fatalf("Parse(%q) returned nil result", args)
	}
	return p
}

func parseError(t *testing.T, s *Schema, args ...string) string {
	t.Helper()
	p, err := s.Parse(args)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", args)
	}
	if p != nil {
		t.Fatalf("Parse(%q) returned a result alongside %v", args, err)
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Parse(%q) error = %#v, want ErrParse", args, err)
	}
	return err.Error()
}

func strs(t *testing.T, vs []argval.Value) []string {
	t.Helper()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestParseRequiredRootOption(t *testing.T) {
	s, err := Validate(NewConfig("prog", "1",
		NewOption("name", PayloadOf("str", nil), RequireAtLeast(1))))
	if err != nil {
		t.Fatal(err)
	}
	msg := parseError(t, s, "prog")
	if !strings.Contains(msg, "name") {
		t.Fatalf("error = %q, want it to mention the option", msg)
	}

	p := mustParse(t, s, "prog", "--name=x")
	if got, _ := p.Option("name", 0); got.String() != "x" {
		t.Fatalf("Option(name, 0) = %v, want x", got)
	}
	if p.Group() != "" {
		t.Fatalf("Group() = %q, want empty for a schema without groups", p.Group())
	}
}

func TestParseSelectsGroup(t *testing.T) {
	s := toolSchema(t)
	p := mustParse(t, s, "prog", "build", "foo")
	if p.Group() != "build" {
		t.Fatalf("Group() = %q, want build", p.Group())
	}
	v, ok := p.Positional(0)
	if !ok {
		t.Fatal("Positional(0) missing")
	}
	if str, err := v.Str(); err != nil || str != "foo" {
		t.Fatalf("Positional(0).Str() = %q, %v, want foo", str, err)
	}
	if got, _ := p.Option("jobs", 0); got != argval.Uint(1) {
		t.Fatalf("jobs default = %v, want 1", got)
	}
}

func TestParseGroupAbbreviation(t *testing.T) {
	p := mustParse(t, toolSchema(t), "prog", "b", "x")
	if p.Group() != "build" {
		t.Fatalf("Group() = %q, want build", p.Group())
	}
}

func TestParseHelpWins(t *testing.T) {
	s := toolSchema(t)
	tests := []struct {
		name string
		args []string
		kind PrintKind
	}{
		{"invalid tokens", []string{"prog", "--help", "--bogus", "-q=1", "extra"}, PrintHelp},
		{"unknown group", []string{"prog", "bogus", "--help"}, PrintHelp},
		{"abbreviation", []string{"prog", "build", "-h"}, PrintHelp},
		{"bundled", []string{"prog", "-vh"}, PrintHelp},
		{"version", []string{"prog", "--version", "nonsense"}, PrintVersion},
		{"help over version", []string{"prog", "--version", "--help"}, PrintHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Parse(tt.args)
			if p != nil {
				t.Fatalf("Parse returned a result alongside a print request")
			}
			var pr *PrintRequest
			if !errors.As(err, &pr) {
				t.Fatalf("error = %v, want *PrintRequest", err)
			}
			if pr.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", pr.Kind, tt.kind)
			}
			if errors.Is(err, ErrParse) {
				t.Fatalf("print request matches ErrParse")
			}
			want := ErrHelp
			if tt.kind == PrintVersion {
				want = ErrVersion
			}
			if !errors.Is(err, want) {
				t.Fatalf("errors.Is(err, %v) = false", want)
			}
		})
	}
}

func TestParseVersionText(t *testing.T) {
	_, err := toolSchema(t).Parse([]string{`C:\bin\tool.exe`, "--version"})
	var pr *PrintRequest
	if !errors.As(err, &pr) {
		t.Fatalf("error = %v, want *PrintRequest", err)
	}
	if pr.Text != "tool.exe version 1.2.3" {
		t.Fatalf("Text = %q", pr.Text)
	}
}

func TestParseHelpForActiveGroup(t *testing.T) {
	_, err := toolSchema(t).Parse([]string{"prog", "build", "--help"})
	var pr *PrintRequest
	if !errors.As(err, &pr) {
		t.Fatalf("error = %v, want *PrintRequest", err)
	}
	if !strings.HasPrefix(pr.Text, "Usage: prog build ") {
		t.Fatalf("help text starts with %q, want the build usage line", strings.SplitN(pr.Text, "\n", 2)[0])
	}
}

func TestParseErrors(t *testing.T) {
	s := toolSchema(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no group", []string{"prog"}, "missing mode"},
		{"unknown group", []string{"prog", "bogus"}, "unknown mode 'bogus'"},
		{"unknown group beats scan error", []string{"prog", "--nope", "bogus"}, "unknown mode 'bogus'"},
		{"unknown long option", []string{"prog", "build", "x", "--nope"}, "unknown option '--nope'"},
		{"unknown abbreviation", []string{"prog", "build", "x", "-vq"}, "unknown option '-q'"},
		{"missing positional", []string{"prog", "build"}, "argument 'target' is missing"},
		{"too many positionals", []string{"prog", "build", "a", "b"}, "unrecognized argument 'b' for mode 'build'"},
		{"restricted option", []string{"prog", "test", "--jobs=2"}, "argument 'jobs' not meant for mode 'test'"},
		{"payload not last", []string{"prog", "build", "x", "-jv", "3"}, "option '-j' takes a value and must come last in '-jv'"},
		{"flag with payload", []string{"prog", "--verbose=yes", "build", "x"}, "value 'yes' in '--verbose=yes' is not used by any option"},
		{"missing value", []string{"prog", "build", "x", "--jobs"}, "option '--jobs' requires a value"},
		{"too many values", []string{"prog", "build", "x", "--jobs=1", "-j", "2"}, "argument 'jobs' may be specified at most 1 times"},
		{"bad number", []string{"prog", "build", "x", "--jobs=-2"}, "invalid unsigned integer '-2' for argument 'jobs'"},
		{"bad enum", []string{"prog", "build", "x", "--color=sometimes"}, "invalid enum 'sometimes' for argument 'color'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseError(t, s, tt.args...); got != tt.want {
				t.Fatalf("error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseEnumPositional(t *testing.T) {
	s := MustValidate(NewConfig("prog", "1",
		NewGroup("paint", PositionalArg("color", colorModes, "Color mode."))))
	msg := parseError(t, s, "prog", "paint", "green")
	if !strings.Contains(msg, "'color'") {
		t.Fatalf("error = %q, want it to name the argument", msg)
	}
	var ce *argval.CoerceError
	_, err := s.Parse([]string{"prog", "paint", "green"})
	if !errors.As(err, &ce) || ce.Raw != "green" {
		t.Fatalf("error = %#v, want it to wrap the CoerceError", err)
	}
	p := mustParse(t, s, "prog", "paint", "never")
	if v, _ := p.Positional(0); v != argval.String("never") {
		t.Fatalf("Positional(0) = %v, want never", v)
	}
}

func TestParseFlags(t *testing.T) {
	s := toolSchema(t)
	p := mustParse(t, s, "prog", "-v", "build", "-v", "x", "--verbose")
	if !p.Flag("verbose") {
		t.Fatal("Flag(verbose) = false")
	}
	if diff := cmp.Diff([]string{"verbose"}, p.Flags()); diff != "" {
		t.Fatalf("Flags() mismatch (-want +got):\n%s", diff)
	}
	if p.Flag("help") {
		t.Fatal("Flag(help) = true")
	}
}

func TestParsePayloadForms(t *testing.T) {
	s := toolSchema(t)
	tests := []struct {
		name string
		args []string
		jobs uint64
	}{
		{"inline long", []string{"prog", "build", "x", "--jobs=4"}, 4},
		{"separate long", []string{"prog", "build", "x", "--jobs", "5"}, 5},
		{"bundle separate", []string{"prog", "build", "x", "-vj", "6"}, 6},
		{"bundle inline", []string{"prog", "build", "x", "-vj=7"}, 7},
		{"before group", []string{"prog", "-j", "8", "build", "x"}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParse(t, s, tt.args...)
			v, ok := p.Option("jobs", 0)
			if !ok {
				t.Fatal("jobs missing")
			}
			if u, err := v.UNum(); err != nil || u != tt.jobs {
				t.Fatalf("jobs = %d, %v, want %d", u, err, tt.jobs)
			}
		})
	}
}

func TestParseValueMayStartWithHyphen(t *testing.T) {
	p := mustParse(t, toolSchema(t), "prog", "test", "--tag", "-x", "--tag=a=b")
	if diff := cmp.Diff([]string{"-x", "a=b"}, strs(t, p.Options("tag"))); diff != "" {
		t.Fatalf("tag mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlinePayloadSplitsAtFirstEquals(t *testing.T) {
	p := mustParse(t, toolSchema(t), "prog", "test", `--tag=a\=b`, "--tag==", "--tag=")
	if diff := cmp.Diff([]string{`a\=b`, "=", ""}, strs(t, p.Options("tag"))); diff != "" {
		t.Fatalf("tag mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLock(t *testing.T) {
	p := mustParse(t, toolSchema(t), "prog", "test", "a", "--", "--help", "-v", "--")
	if diff := cmp.Diff([]string{"a", "--help", "-v", "--"}, strs(t, p.Positionals())); diff != "" {
		t.Fatalf("positionals mismatch (-want +got):\n%s", diff)
	}
	if p.Flag("verbose") {
		t.Fatal("-v after -- was treated as a flag")
	}
}

func TestParseCatchAll(t *testing.T) {
	s := toolSchema(t)
	p := mustParse(t, s, "prog", "test")
	if len(p.Positionals()) != 0 {
		t.Fatalf("Positionals() = %v, want none", p.Positionals())
	}
	p = mustParse(t, s, "prog", "test", "a", "-", "c")
	if diff := cmp.Diff([]string{"a", "-", "c"}, strs(t, p.Positionals())); diff != "" {
		t.Fatalf("positionals mismatch (-want +got):\n%s", diff)
	}
	if _, ok := p.Positional(3); ok {
		t.Fatal("Positional(3) reported ok")
	}
}

func TestParsePositionalDefaults(t *testing.T) {
	s := MustValidate(NewConfig("prog", "1",
		PositionalArg("name", nil, "Name."),
		PositionalDefault("level", argval.UNum, "Level.", argval.Uint(3)),
		PositionalDefault("mode", colorModes, "Mode.", argval.String("auto")),
	))
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"prog", "n"}, []string{"n", "3", "auto"}},
		{[]string{"prog", "n", ""}, []string{"n", "3", "auto"}},
		{[]string{"prog", "n", "", "never"}, []string{"n", "3", "never"}},
		{[]string{"prog", "n", "9"}, []string{"n", "9", "auto"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			p := mustParse(t, s, tt.args...)
			if diff := cmp.Diff(tt.want, strs(t, p.Positionals())); diff != "" {
				t.Fatalf("positionals mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if msg := parseError(t, s, "prog"); msg != "argument 'name' is missing" {
		t.Fatalf("error = %q", msg)
	}
}

func TestParseEndpoints(t *testing.T) {
	s := MustValidate(NewConfig("prog", "1",
		NewGroup("copy",
			NewEndpoint(1,
				Description("Copy a file."),
				PositionalArg("src", nil, ""),
				PositionalArg("dst", nil, "")),
			NewEndpoint(2,
				Description("Copy the n-th snapshot."),
				PositionalArg("n", argval.UNum, ""))),
	))
	p := mustParse(t, s, "prog", "copy", "a", "b")
	if p.Endpoint() != 1 {
		t.Fatalf("Endpoint() = %d, want 1", p.Endpoint())
	}
	p = mustParse(t, s, "prog", "copy", "5")
	if p.Endpoint() != 2 {
		t.Fatalf("Endpoint() = %d, want 2", p.Endpoint())
	}
	if v, _ := p.Positional(0); v != argval.Uint(5) {
		t.Fatalf("Positional(0) = %v, want 5", v)
	}
	if msg := parseError(t, s, "prog", "copy"); msg != "argument 'src' is missing" {
		t.Fatalf("error = %q, want the first endpoint's error", msg)
	}
}

func TestParseConstraintOrder(t *testing.T) {
	var calls []string
	rec := func(name, fail string) Constraint {
		return func(p *Parsed) string {
			calls = append(calls, name)
			if name == fail {
				return name + " failed"
			}
			return ""
		}
	}
	build := func(fail string) *Schema {
		return MustValidate(NewConfig("prog", "1",
			Check(rec("global", fail)),
			NewOption("b", Check(rec("option b", fail))),
			NewOption("a", PayloadOf("x", nil), Check(rec("option a", fail))),
			NewOption("unused", Check(rec("option unused", fail))),
			NewGroup("outer",
				Check(rec("outer", fail)),
				NewGroup("inner",
					Check(rec("inner", fail)),
					NewEndpoint(0, Check(rec("endpoint", fail))))),
		))
	}

	calls = nil
	mustParse(t, build(""), "prog", "outer", "inner", "--a=1", "--b")
	want := []string{"global", "outer", "inner", "endpoint", "option a", "option b"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("constraint order mismatch (-want +got):\n%s", diff)
	}

	calls = nil
	s := build("inner")
	if msg := parseError(t, s, "prog", "outer", "inner"); msg != "inner failed" {
		t.Fatalf("error = %q, want the constraint message verbatim", msg)
	}
	if diff := cmp.Diff([]string{"global", "outer", "inner"}, calls); diff != "" {
		t.Fatalf("constraints after the failing one ran (-want +got):\n%s", diff)
	}
}

func TestParseConstraintSeesValues(t *testing.T) {
	s := MustValidate(NewConfig("prog", "1",
		NewOption("min", PayloadOf("n", argval.INum, argval.Int(0))),
		NewOption("max", PayloadOf("n", argval.INum, argval.Int(10))),
		Check(func(p *Parsed) string {
			lo, _ := p.Option("min", 0)
			hi, _ := p.Option("max", 0)
			l, _ := lo.INum()
			h, _ := hi.INum()
			if l > h {
				return fmt.Sprintf("--min (%d) must not exceed --max (%d)", l, h)
			}
			return ""
		}),
	))
	mustParse(t, s, "prog", "--min=-5")
	if msg := parseError(t, s, "prog", "--min=11"); msg != "--min (11) must not exceed --max (10)" {
		t.Fatalf("error = %q", msg)
	}
}

func nestedConfig() *Config {
	return NewConfig("prog", "1",
		HelpEntry("help"),
		NewOption("force", Description("Overwrite."), Use("add")),
		NewOption("remote-url", PayloadOf("url", nil)),
		NewOption("dry-run"),
		NewGroup("remote",
			Use("remote-url"),
			GroupLabel("Action"),
			NewGroup("add", PositionalArg("name", nil, "")),
			NewGroup("remove", PositionalArg("name", nil, ""))),
		NewGroup("status"),
	)
}

func TestParseScope(t *testing.T) {
	s := MustValidate(nestedConfig())
	ok := [][]string{
		{"prog", "remote", "add", "x", "--force"},
		{"prog", "--force", "remote", "add", "x"},
		// Options declared on a container are usable in its descendants.
		{"prog", "remote", "remove", "x", "--remote-url=u"},
		{"prog", "status", "--dry-run"},
	}
	for _, args := range ok {
		mustParse(t, s, args...)
	}

	bad := []struct {
		args []string
		want string
	}{
		{[]string{"prog", "remote", "remove", "x", "--force"}, "argument 'force' not meant for action 'remove'"},
		{[]string{"prog", "status", "--force"}, "argument 'force' not meant for mode 'status'"},
		{[]string{"prog", "status", "--remote-url=u"}, "argument 'remote-url' not meant for mode 'status'"},
		{[]string{"prog", "remote"}, "missing action"},
		{[]string{"prog", "remote", "list"}, "unknown action 'list'"},
	}
	for _, tt := range bad {
		if got := parseError(t, s, tt.args...); got != tt.want {
			t.Errorf("Parse(%q) error = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestParseGroupID(t *testing.T) {
	s := MustValidate(NewConfig("prog", "1",
		NewGroup("remote", NewGroup("add", ID("remote-add")))))
	if p := mustParse(t, s, "prog", "remote", "add"); p.Group() != "remote-add" {
		t.Fatalf("Group() = %q, want remote-add", p.Group())
	}
}

func TestParseProgram(t *testing.T) {
	s := toolSchema(t)
	tests := []struct {
		arg0 string
		want string
	}{
		{"/usr/local/bin/tool", "tool"},
		{`dir\tool`, "tool"},
		{"tool", "tool"},
		{"/usr/bin/", "prog"},
		{"", "prog"},
	}
	for _, tt := range tests {
		p := mustParse(t, s, tt.arg0, "test")
		if p.Program() != tt.want {
			t.Errorf("Program() for %q = %q, want %q", tt.arg0, p.Program(), tt.want)
		}
	}
	if _, err := s.Parse(nil); err == nil || err.Error() != "missing mode" {
		t.Fatalf("Parse(nil) error = %v, want missing mode", err)
	}
}

func TestParseConcurrent(t *testing.T) {
	s := toolSchema(t)
	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			target := fmt.Sprintf("t%d", i)
			p, err := s.Parse([]string{"prog", "build", target, fmt.Sprintf("--jobs=%d", i)})
			if err != nil {
				return err
			}
			if v, _ := p.Positional(0); v.String() != target {
				return fmt.Errorf("goroutine %d: target = %v", i, v)
			}
			if v, _ := p.Option("jobs", 0); v != argval.Uint(uint64(i)) {
				return fmt.Errorf("goroutine %d: jobs = %v", i, v)
			}
			if _, err := s.Parse([]string{"prog", "test", "--jobs=1"}); !errors.Is(err, ErrParse) {
				return fmt.Errorf("goroutine %d: restricted option accepted: %v", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestHelpHint(t *testing.T) {
	s := toolSchema(t)
	if got, want := HelpHint([]string{"/bin/x"}, s), "Try 'x --help' for more information."; got != want {
		t.Fatalf("HelpHint = %q, want %q", got, want)
	}
	if got, want := HelpHint(nil, s), "Try 'prog --help' for more information."; got != want {
		t.Fatalf("HelpHint = %q, want %q", got, want)
	}
	if got, want := HelpHint(nil, nil), "Try '<program> --help' for more information."; got != want {
		t.Fatalf("HelpHint = %q, want %q", got, want)
	}
	bare := MustValidate(NewConfig("prog", "1"))
	if got := HelpHint(nil, bare); got != "" {
		t.Fatalf("HelpHint without a help option = %q, want empty", got)
	}
}

func menuSchema(t testing.TB) *Schema {
	t.Helper()
	s, err := Validate(NewMenu("2.0",
		HelpEntry("help", 'h'),
		VersionEntry("version"),
		NewOption("verbose", Abbreviation('v')),
		NewGroup("open",
			Abbreviation('o'),
			PositionalArg("file", nil, "Files to open."),
			RequireBetween(1, 0)),
		NewGroup("remote",
			NewGroup("add", PositionalArg("name", nil, "Remote name."))),
	))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return s
}

func TestMenu(t *testing.T) {
	s := menuSchema(t)
	tests := []struct {
		name string
		args []string

		// Exactly one of print, err and group is set.
		print       string // prefix of the requested text
		kind        PrintKind
		err         string
		group       string
		positionals []string
	}{
		{name: "bare help", args: []string{"help"}, print: "Input> [mode] [options...] [params...]\n", kind: PrintHelp},
		{name: "help abbreviation", args: []string{"h"}, print: "Input> [mode]", kind: PrintHelp},
		{name: "bare version", args: []string{"version"}, print: "version 2.0", kind: PrintVersion},
		{name: "help after group", args: []string{"open", "help"}, print: "Input> open [options...] file...\n", kind: PrintHelp},
		{name: "help after group abbreviation", args: []string{"o", "h"}, print: "Input> open", kind: PrintHelp},
		{name: "help after nested group", args: []string{"remote", "add", "help"}, print: "Input> remote add [options...] name\n", kind: PrintHelp},
		{name: "help while group is missing", args: []string{"remote", "bogus", "help"}, print: "Input> remote [mode]", kind: PrintHelp},
		{name: "help as positional", args: []string{"open", "a", "help"}, group: "open", positionals: []string{"a", "help"}},
		{name: "help after option", args: []string{"open", "-v", "help"}, group: "open", positionals: []string{"help"}},
		{name: "help fills slot", args: []string{"remote", "add", "origin", "help"}, err: "unrecognized argument 'help' for mode 'add'"},
		{name: "long help option", args: []string{"--help"}, err: "unknown option '--help'"},
		{name: "short help option", args: []string{"open", "x", "-h"}, err: "unknown option '-h'"},
		{name: "empty input", args: nil, err: "missing mode"},
		{name: "no program word", args: []string{"open", "a"}, group: "open", positionals: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Menu(tt.args)
			switch {
			case tt.print != "":
				var pr *PrintRequest
				if !errors.As(err, &pr) {
					t.Fatalf("Menu(%q) error = %v, want a print request", tt.args, err)
				}
				if pr.Kind != tt.kind || !strings.HasPrefix(pr.Text, tt.print) {
					t.Fatalf("Menu(%q) = kind %d %q, want kind %d with prefix %q", tt.args, pr.Kind, pr.Text, tt.kind, tt.print)
				}
			case tt.err != "":
				if err == nil || !errors.Is(err, ErrParse) || err.Error() != tt.err {
					t.Fatalf("Menu(%q) error = %v, want %q", tt.args, err, tt.err)
				}
			default:
				if err != nil {
					t.Fatalf("Menu(%q) error: %v", tt.args, err)
				}
				if p.Group() != tt.group || p.Program() != "" {
					t.Fatalf("Group() = %q, Program() = %q, want %q and no program", p.Group(), p.Program(), tt.group)
				}
				if diff := cmp.Diff(tt.positionals, strs(t, p.Positionals())); diff != "" {
					t.Fatalf("positionals mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestMenuAndParseDoNotMix(t *testing.T) {
	if _, err := menuSchema(t).Parse([]string{"prog", "open", "a"}); !errors.Is(err, ErrConfig) {
		t.Errorf("Parse on a menu error = %v, want ErrConfig", err)
	}
	if _, err := toolSchema(t).Menu([]string{"build", "x"}); !errors.Is(err, ErrConfig) {
		t.Errorf("Menu on a program schema error = %v, want ErrConfig", err)
	}
}

func TestMenuHelpHint(t *testing.T) {
	if got, want := HelpHint([]string{"/bin/ignored"}, menuSchema(t)), "Try 'help' for more information."; got != want {
		t.Fatalf("HelpHint = %q, want %q", got, want)
	}
}
