// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/yeetrun/argtree/pkg/argtree"
	"github.com/yeetrun/argtree/pkg/argval"
)

// Result is the JSON shape of an accepted parse.
type Result struct {
	Program     string           `json:"program"`
	Group       string           `json:"group"`
	Endpoint    int              `json:"endpoint"`
	Flags       []string         `json:"flags"`
	Options     map[string][]any `json:"options"`
	Positionals []any            `json:"positionals"`
}

// Summarize converts p into a Result.
func Summarize(p *argtree.Parsed) Result {
	r := Result{
		Program:     p.Program(),
		Group:       p.Group(),
		Endpoint:    p.Endpoint(),
		Flags:       p.Flags(),
		Options:     make(map[string][]any),
		Positionals: values(p.Positionals()),
	}
	for _, name := range p.OptionNames() {
		r.Options[name] = values(p.Options(name))
	}
	return r
}

func values(vs []argval.Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v.Any()
	}
	return out
}

// WriteJSON writes v as a single line, or indented when pretty is set.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
