// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argtree checks argument schema files and tries them out against
// command lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argtree/pkg/argtree"
	"github.com/yeetrun/argtree/pkg/cli"
	"github.com/yeetrun/argtree/pkg/schemafile"
	"golang.org/x/sync/errgroup"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// programArgs holds everything after "--". They belong to the schema
	// being tried, not to argtree.
	programArgs []string
)

// exitError carries an exit code for a failure that was already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type globalFlagsParsed struct{}

func main() {
	var args []string
	args, programArgs = cli.SplitArgsAtDoubleDash(os.Args[1:])

	helpConfig := buildHelpConfig()
	if err := yargs.RunSubcommands(context.Background(), args, helpConfig, globalFlagsParsed{}, commandHandlers()); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		cli.Options{Stderr: stderr}.PrintError(err)
		os.Exit(cli.ExitError)
	}
}

func commandHandlers() map[string]yargs.SubcommandHandler {
	return map[string]yargs.SubcommandHandler{
		"check": handleCheck,
		"run":   handleRun,
		"usage": handleUsage,
	}
}

func buildHelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo)
	for name, info := range cli.CommandInfos() {
		subcommands[name] = cli.ToSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argtree",
			Description: "Validate argument schema files and match command lines against them.",
			Examples: []string{
				"argtree check tool.yaml",
				"argtree run tool.yaml -- build --jobs=4 all",
				"argtree usage tool.yaml build",
			},
		},
		SubCommands: subcommands,
	}
}

// loadSchema reads and validates the schema file at path.
func loadSchema(path string) (*argtree.Schema, error) {
	cfg, err := schemafile.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := argtree.Validate(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func handleCheck(ctx context.Context, args []string) error {
	flags, files, err := cli.ParseCheck(args)
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast("check", files, 1); err != nil {
		return err
	}
	errs := make([]error, len(files))
	g, _ := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			_, errs[i] = loadSchema(f)
			return nil
		})
	}
	g.Wait()

	opts := cli.Options{Stdout: stdout, Stderr: stderr}
	failed := 0
	for i, err := range errs {
		if err != nil {
			opts.PrintError(err)
			failed++
			continue
		}
		if flags.Verbose {
			log.Printf("%s: ok", files[i])
		}
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d schema files are invalid\n", failed, len(files))
		return &exitError{code: cli.ExitError}
	}
	return nil
}

func handleRun(_ context.Context, args []string) error {
	flags, file, err := cli.ParseRun(args)
	if err != nil {
		return err
	}
	s, err := loadSchema(file)
	if err != nil {
		return err
	}
	opts := cli.Options{Stdout: stdout, Stderr: stderr, Width: flags.Width, Color: flags.Color}
	argv := programArgs
	if !s.IsMenu() {
		argv = append([]string{s.Program()}, programArgs...)
	}
	p, code := cli.Run(s, argv, opts)
	if code != cli.Continue {
		if code == cli.ExitOK {
			return nil
		}
		return &exitError{code: code}
	}
	return cli.WriteJSON(stdout, cli.Summarize(p), flags.Pretty)
}

func handleUsage(_ context.Context, args []string) error {
	flags, file, groups, err := cli.ParseUsage(args)
	if err != nil {
		return err
	}
	s, err := loadSchema(file)
	if err != nil {
		return err
	}
	width := cli.Options{Width: flags.Width}.HelpWidth()
	text, err := s.HelpWidth(nil, width, groups...)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}
