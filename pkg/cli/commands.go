// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/shayne/yargs"
)

// CommandInfo describes a sub-command of the argtree tool.
type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

type CheckFlags struct {
	Verbose bool
}

type RunFlags struct {
	Pretty bool
	Width  int
	Color  ColorMode
}

type UsageFlags struct {
	Width int
}

type checkFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v"`
}

type runFlagsParsed struct {
	Pretty bool   `flag:"pretty"`
	Width  int    `flag:"width" short:"w"`
	Color  string `flag:"color" default:"auto"`
}

type usageFlagsParsed struct {
	Width int `flag:"width" short:"w"`
}

var commandInfos = map[string]CommandInfo{
	"check": {Name: "check", Description: "Validate schema files", Usage: "FILE...", Examples: []string{
		"argtree check tool.yaml",
		"argtree check -v schemas/*.toml",
	}},
	"run": {Name: "run", Description: "Match arguments against a schema and print the result as JSON", Usage: "[--pretty] [--color=auto|always|never] FILE [-- ARGS...]", Examples: []string{
		"argtree run tool.yaml -- build --jobs=4 all",
		"argtree run --pretty tool.json -- --help",
	}, Aliases: []string{"parse"}},
	"usage": {Name: "usage", Description: "Print the help text of a schema", Usage: "[--width=N] FILE [GROUP...]", Examples: []string{
		"argtree usage tool.yaml",
		"argtree usage tool.yaml build",
	}},
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func ToSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseCheck parses the flags of "check" and returns the schema files.
func ParseCheck(args []string) (CheckFlags, []string, error) {
	parsed, err := parseFlags[checkFlagsParsed](trimCommand("check", args))
	if err != nil {
		return CheckFlags{}, nil, err
	}
	return CheckFlags{Verbose: parsed.Flags.Verbose}, parsed.Args, nil
}

// ParseRun parses the flags of "run" and returns the schema file. Program
// arguments are split off by the caller before "--".
func ParseRun(args []string) (RunFlags, string, error) {
	parsed, err := parseFlags[runFlagsParsed](trimCommand("run", args))
	if err != nil {
		return RunFlags{}, "", err
	}
	mode, err := ParseColorMode(parsed.Flags.Color)
	if err != nil {
		return RunFlags{}, "", err
	}
	if err := RequireArgsExactly("run", parsed.Args, 1); err != nil {
		return RunFlags{}, "", err
	}
	flags := RunFlags{
		Pretty: parsed.Flags.Pretty,
		Width:  parsed.Flags.Width,
		Color:  mode,
	}
	return flags, parsed.Args[0], nil
}

// ParseUsage parses the flags of "usage" and returns the schema file and
// the group path.
func ParseUsage(args []string) (UsageFlags, string, []string, error) {
	parsed, err := parseFlags[usageFlagsParsed](trimCommand("usage", args))
	if err != nil {
		return UsageFlags{}, "", nil, err
	}
	if err := RequireArgsAtLeast("usage", parsed.Args, 1); err != nil {
		return UsageFlags{}, "", nil, err
	}
	return UsageFlags{Width: parsed.Flags.Width}, parsed.Args[0], parsed.Args[1:], nil
}

type parsedFlags[T any] struct {
	Flags T
	Args  []string
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut}, nil
}

// trimCommand drops the sub-command name that yargs leaves in front of the
// handler arguments.
func trimCommand(name string, args []string) []string {
	if len(args) > 0 && (args[0] == name || isAlias(name, args[0])) {
		return args[1:]
	}
	return args
}

func isAlias(name, arg string) bool {
	for _, a := range commandInfos[name].Aliases {
		if a == arg {
			return true
		}
	}
	return false
}

// SplitArgsAtDoubleDash splits args at the first "--". The tail is
// returned without the separator.
func SplitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}

func RequireArgsExactly(subcmd string, args []string, count int) error {
	if len(args) != count {
		return fmt.Errorf("'%s' requires exactly %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
