// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"strings"
)

// PlaceholderProgram is the program name used in hints when neither argv
// nor a schema is available.
const PlaceholderProgram = "<program>"

// ProgramName derives the display name from the invoked path by stripping
// everything up to and including the last '/' or '\'. If nothing remains,
// fallback is returned.
func ProgramName(arg0, fallback string) string {
	name := arg0[strings.LastIndexAny(arg0, `/\`)+1:]
	if name == "" {
		return fallback
	}
	return name
}

// HelpHint returns the one-line hint printed below parse errors, for
// example "Try 'prog --help' for more information.". s may be nil when the
// schema itself failed to validate. The hint is empty if s has no help
// option. Menus name their help word, as in "Try 'help' for more
// information.".
func HelpHint(args []string, s *Schema) string {
	prog, help := PlaceholderProgram, "help"
	if s != nil {
		if s.helpName == "" {
			return ""
		}
		if s.menu {
			return fmt.Sprintf("Try '%s' for more information.", s.helpName)
		}
		prog, help = s.program, s.helpName
	}
	if len(args) > 0 {
		prog = ProgramName(args[0], prog)
	}
	return fmt.Sprintf("Try '%s --%s' for more information.", prog, help)
}
