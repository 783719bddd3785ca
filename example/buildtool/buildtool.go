// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command buildtool shows an argtree schema declared in code.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/posener/complete/v2"
	"github.com/yeetrun/argtree/pkg/argtree"
	"github.com/yeetrun/argtree/pkg/argval"
	"github.com/yeetrun/argtree/pkg/cli"
	"tailscale.com/util/must"
)

var profiles = argval.Enum{
	{Key: "debug", Description: "Unoptimized, with symbols."},
	{Key: "release", Description: "Optimized."},
}

// noDebugRelease rejects --strip for debug builds.
func noDebugRelease(p *argtree.Parsed) string {
	if v, ok := p.Option("profile", 0); ok && v.String() == "debug" && p.Flag("strip") {
		return "--strip cannot be used with the debug profile"
	}
	return ""
}

var schema = must.Get(argtree.Validate(argtree.NewConfig("buildtool", "0.1.0",
	argtree.Description("Builds, tests and cleans a workspace."),
	argtree.HelpEntry("help", 'h'),
	argtree.VersionEntry("version"),
	argtree.GroupLabel("Command"),

	argtree.NewOption("verbose", argtree.Abbreviation('v'), argtree.Description("Print every step.")),
	argtree.NewOption("jobs", argtree.Abbreviation('j'), argtree.Description("Parallel jobs."),
		argtree.PayloadOf("n", argval.UNum, argval.Uint(4)), argtree.Use("build", "test")),
	argtree.NewOption("profile", argtree.Description("Build profile."),
		argtree.PayloadOf("name", profiles, argval.String("debug")), argtree.Use("build")),
	argtree.NewOption("strip", argtree.Description("Strip symbols."), argtree.Use("build")),
	argtree.NewOption("filter", argtree.Abbreviation('f'), argtree.Description("Only run matching tests."),
		argtree.PayloadOf("pattern", nil), argtree.RequireBetween(0, 0), argtree.Use("test")),

	argtree.NewGroup("build", argtree.Abbreviation('b'), argtree.Description("Build targets."),
		argtree.PositionalArg("target", nil, "Targets to build."), argtree.RequireBetween(1, 0),
		argtree.Check(noDebugRelease)),
	argtree.NewGroup("test", argtree.Abbreviation('t'), argtree.Description("Run tests."),
		argtree.PositionalDefault("package", nil, "Package to test.", argval.String("./..."))),
	argtree.NewGroup("clean", argtree.Description("Remove build outputs."),
		argtree.NewEndpoint(1, argtree.Description("Remove everything.")),
		argtree.NewEndpoint(2, argtree.Description("Remove one target's outputs."),
			argtree.PositionalArg("target", nil, "Target to clean."))),
)))

func main() {
	complete.Complete(schema.Program(), schema.Completer())
	p, code := cli.Run(schema, os.Args, cli.Options{})
	if code != cli.Continue {
		os.Exit(code)
	}
	fmt.Println(describe(p))
}

func describe(p *argtree.Parsed) string {
	var parts []string
	switch p.Group() {
	case "build":
		jobs, _ := p.Option("jobs", 0)
		profile, _ := p.Option("profile", 0)
		parts = append(parts, fmt.Sprintf("building %d target(s) with %s jobs, profile %s", len(p.Positionals()), jobs, profile))
	case "test":
		pkg, _ := p.Positional(0)
		parts = append(parts, fmt.Sprintf("testing %s", pkg))
		for _, f := range p.Options("filter") {
			parts = append(parts, fmt.Sprintf("matching %s", f))
		}
	case "clean":
		if p.Endpoint() == 1 {
			parts = append(parts, "cleaning everything")
		} else {
			target, _ := p.Positional(0)
			parts = append(parts, fmt.Sprintf("cleaning %s", target))
		}
	}
	if p.Flag("verbose") {
		parts = append(parts, "verbosely")
	}
	return strings.Join(parts, ", ")
}
