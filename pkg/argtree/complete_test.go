// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argtree/pkg/argval"
)

func TestCompleterGroups(t *testing.T) {
	c := toolSchema(t).Completer()
	if diff := cmp.Diff([]string{"build", "test"}, c.SubCmdList()); diff != "" {
		t.Errorf("SubCmdList mismatch (-want +got):\n%s", diff)
	}
	if c.SubCmdGet("b") == nil || c.SubCmdGet("test") == nil {
		t.Error("SubCmdGet does not resolve known groups")
	}
	if c.SubCmdGet("nope") != nil {
		t.Error("SubCmdGet resolved an unknown group")
	}
	if got := c.SubCmdGet("build").SubCmdList(); len(got) != 0 {
		t.Errorf("leaf SubCmdList = %v, want none", got)
	}
}

func TestCompleterFlags(t *testing.T) {
	c := toolSchema(t).Completer()
	want := []string{"color", "help", "h", "jobs", "j", "tag", "t", "verbose", "v", "version"}
	if diff := cmp.Diff(want, c.FlagList()); diff != "" {
		t.Errorf("root FlagList mismatch (-want +got):\n%s", diff)
	}
	test := c.SubCmdGet("test")
	want = []string{"color", "help", "h", "tag", "t", "verbose", "v", "version"}
	if diff := cmp.Diff(want, test.FlagList()); diff != "" {
		t.Errorf("test FlagList mismatch (-want +got):\n%s", diff)
	}

	if p := c.FlagGet("verbose"); p != nil {
		t.Error("a flag without payload has a predictor")
	}
	if p := test.FlagGet("j"); p != nil {
		t.Error("an out-of-scope option has a predictor")
	}
	if p := c.FlagGet("nope"); p != nil {
		t.Error("an unknown option has a predictor")
	}
	p := c.FlagGet("color")
	if p == nil {
		t.Fatal("no predictor for an enum option")
	}
	if diff := cmp.Diff([]string{"auto", "never"}, p.Predict("")); diff != "" {
		t.Errorf("color predictions mismatch (-want +got):\n%s", diff)
	}
	if p := c.FlagGet("j"); p == nil || len(p.Predict("")) != 0 {
		t.Error("a number option should have an empty predictor")
	}
}

func TestCompleterArgs(t *testing.T) {
	s := MustValidate(NewConfig("p", "1",
		NewGroup("set",
			PositionalArg("mode", argval.Enum{{Key: "on"}, {Key: "off"}}, ""),
			PositionalArg("level", argval.Enum{{Key: "on"}, {Key: "high"}}, "")),
		NewGroup("say", PositionalArg("text", nil, "")),
	))
	c := s.Completer()
	p := c.SubCmdGet("set").ArgsGet()
	if p == nil {
		t.Fatal("no positional predictor for enum positionals")
	}
	if diff := cmp.Diff([]string{"high", "off", "on"}, p.Predict("")); diff != "" {
		t.Errorf("predictions mismatch (-want +got):\n%s", diff)
	}
	if p := c.SubCmdGet("say").ArgsGet(); p != nil {
		t.Error("free-text positionals have a predictor")
	}
}
