// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtree matches command-line arguments against a hierarchical
// schema of options, nested groups (sub-commands) and typed positionals.
//
// A schema is declared once as a Config, built from nested modifiers:
//
//	var schema = argtree.MustValidate(argtree.NewConfig("tool", "1.0",
//	    argtree.HelpEntry("help", 'h'),
//	    argtree.NewOption("verbose", argtree.Abbreviation('v')),
//	    argtree.NewOption("jobs",
//	        argtree.PayloadOf("n", argval.UNum, argval.Uint(1)),
//	        argtree.Use("build")),
//	    argtree.NewGroup("build",
//	        argtree.Description("Build the targets."),
//	        argtree.PositionalArg("target", nil, "Target to build."),
//	        argtree.RequireBetween(1, 0)),
//	    argtree.NewGroup("clean"),
//	))
//
// Validate checks the Config and produces an immutable Schema that can be
// shared between goroutines. Parse then matches an argv against it:
//
//	parsed, err := schema.Parse(os.Args)
//	var pr *argtree.PrintRequest
//	switch {
//	case errors.As(err, &pr):
//	    fmt.Println(pr.Text)
//	    os.Exit(0)
//	case err != nil:
//	    fmt.Fprintln(os.Stderr, err)
//	    fmt.Fprintln(os.Stderr, argtree.HelpHint(os.Args, schema))
//	    os.Exit(2)
//	}
//
// # Matching
//
// Tokens starting with "--" name one option; tokens starting with a single
// "-" bundle option abbreviations, of which only the last may take a value.
// Values are given inline after "=" or as the next token. The token is
// split at its first "=" and there is no escaping, so "--define=a=b" gives
// the value "a=b". A bare "--" stops option processing. Other tokens first select groups, descending until a
// leaf is reached, and are positionals afterwards.
//
// Help and version requests always win: they are honored even when other
// arguments are invalid.
//
// # Scope
//
// An option is usable everywhere unless it is restricted, either by its own
// Use list of group identifiers or by groups that name it in their Use
// list. A restricted option is accepted while navigating toward one of its
// groups and inside any of their descendants.
//
// # Menus
//
// A schema declared with NewMenu matches input that is not a process
// command line, such as a line typed at a prompt. Menus are matched with
// Menu, have no program name and spell help and version as bare words:
//
//	menu := argtree.MustValidate(argtree.NewMenu("1.0",
//	    argtree.HelpEntry("help", 'h'),
//	    argtree.NewGroup("open",
//	        argtree.PositionalArg("file", nil, "Files to open."),
//	        argtree.RequireBetween(1, 0)),
//	    argtree.NewGroup("quit"),
//	))
//	parsed, err := menu.Menu(strings.Fields(line))
//
// The words are only recognized first, right after a group, or while a
// group still has to be chosen, so "open help" asks for help but
// "open a help" opens two files. Groups of a menu cannot reuse the names
// or abbreviations of its help and version entries.
package argtree
