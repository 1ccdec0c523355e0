// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Issue codes.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
)

// Path is a location inside a validated value. Segments are object keys,
// mapping keys or decimal array indices.
type Path []string

// Field returns a new path extended with an object or mapping key.
func (p Path) Field(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Index returns a new path extended with an array index.
func (p Path) Index(i int) Path {
	return p.Field(strconv.Itoa(i))
}

// String renders the path in dotted form, e.g. interfaceComponents.outputPorts.0.name.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Issue is a single validation violation.
type Issue struct {
	Path    Path
	Code    string
	Message string
}

// String renders the issue as "<path>: <message>", or just the message when
// the violation is at the document root.
func (i Issue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Issues is an ordered list of violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := min(len(iss), maxShown)
	for i := range n {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if len(iss) > n {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Strings renders every issue in order.
func (iss Issues) Strings() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.String()
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
