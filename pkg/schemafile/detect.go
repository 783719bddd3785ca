// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// Detect guesses the syntax of a schema document from its content. It is
// used for stdin and for files whose extension says nothing.
func Detect(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return JSON
	}
	var probe map[string]any
	if _, err := toml.Decode(string(data), &probe); err == nil && len(probe) > 0 {
		return TOML
	}
	// YAML is the fallback, so its decoder reports anything unparsable.
	return YAML
}
