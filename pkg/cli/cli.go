// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli connects a validated argtree.Schema to a process: it runs the
// parse, writes help, version and error texts, and maps the outcome to an
// exit code.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/yeetrun/argtree/pkg/argtree"
	"golang.org/x/term"
	"tailscale.com/types/lazy"
)

// Exit codes returned by Run and Report.
const (
	// Continue means the arguments were accepted and the program should go
	// on with the parsed result.
	Continue = -1

	ExitOK    = 0 // help or version was printed
	ExitError = 1 // anything that is not the user's fault
	ExitUsage = 2 // the arguments were rejected
)

// WidthEnv overrides the detected help width.
const WidthEnv = "ARGTREE_WIDTH"

// ColorMode selects when error messages are colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota // color when stderr is a terminal and NO_COLOR is unset
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q, want auto, always or never", s)
}

// Options configure Run and Report. The zero value writes to os.Stdout and
// os.Stderr and detects width and color.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Width is the help text width. Zero means $ARGTREE_WIDTH, then the
	// terminal width of stdout, then argtree.DefaultHelpWidth.
	Width int

	Color ColorMode
}

var (
	isTerminalFn = term.IsTerminal
	getSizeFn    = term.GetSize

	stdoutWidth lazy.SyncValue[int]
)

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// HelpWidth resolves the width used for help texts.
func (o Options) HelpWidth() int {
	if o.Width > 0 {
		return o.Width
	}
	if v := os.Getenv(WidthEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if w := terminalWidth(); w > 0 {
		return w
	}
	return argtree.DefaultHelpWidth
}

// terminalWidth returns the column count of stdout, or 0 if stdout is not
// a terminal. It is only computed once.
func terminalWidth() int {
	return stdoutWidth.Get(func() int {
		fd := int(os.Stdout.Fd())
		if !isTerminalFn(fd) {
			return 0
		}
		cols, _, err := getSizeFn(fd)
		if err != nil {
			return 0
		}
		return cols
	})
}

func (o Options) colored(w io.Writer) bool {
	switch o.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminalFn(int(f.Fd()))
}

// PrintError writes err to stderr, in red if color is enabled.
func (o Options) PrintError(err error) {
	w := o.stderr()
	c := color.New(color.FgRed)
	if o.colored(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	fmt.Fprintln(w, c.Sprint(err.Error()))
}

// Run parses args against s and reports the outcome. It returns the parsed
// arguments and Continue on success; otherwise the result is nil and the
// exit code the process should terminate with. For a menu schema args
// holds only the input words.
func Run(s *argtree.Schema, args []string, opts Options) (*argtree.Parsed, int) {
	match := s.ParseWith
	if s.IsMenu() {
		match = s.MenuWith
	}
	p, err := match(args, argtree.ParseOptions{HelpWidth: opts.HelpWidth()})
	if err != nil {
		return nil, Report(s, args, err, opts)
	}
	return p, Continue
}

// Report writes the outcome of a parse and returns its exit code. Help and
// version texts go to stdout. Parse errors go to stderr followed by the
// help hint. s may be nil if the schema failed to load.
func Report(s *argtree.Schema, args []string, err error, opts Options) int {
	if err == nil {
		return ExitOK
	}
	var pr *argtree.PrintRequest
	if errors.As(err, &pr) {
		fmt.Fprintln(opts.stdout(), pr.Text)
		return ExitOK
	}
	opts.PrintError(err)
	if !errors.Is(err, argtree.ErrParse) {
		return ExitError
	}
	if hint := argtree.HelpHint(args, s); hint != "" {
		fmt.Fprintln(opts.stderr(), hint)
	}
	return ExitUsage
}
