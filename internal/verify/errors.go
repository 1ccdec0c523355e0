// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package verify

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed verification.
type Kind string

const (
	// FileNotFound means the target path does not exist.
	FileNotFound Kind = "FileNotFound"
	// ParseError means the bytes are not a well-formed document.
	ParseError Kind = "ParseError"
	// SchemaValidationError means the document does not match the descriptor model.
	SchemaValidationError Kind = "SchemaValidationError"
	// InternalError covers every other failure.
	InternalError Kind = "InternalError"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrFileNotFound indicates the descriptor path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse indicates malformed JSON or YAML.
	ErrParse = errors.New("parse error")

	// ErrSchemaValidation indicates structural violations of the descriptor model.
	ErrSchemaValidation = errors.New("schema validation error")

	// ErrInternal indicates an unexpected failure inside the pipeline.
	ErrInternal = errors.New("internal error")
)

var sentinels = map[Kind]error{
	FileNotFound:          ErrFileNotFound,
	ParseError:            ErrParse,
	SchemaValidationError: ErrSchemaValidation,
	InternalError:         ErrInternal,
}

// Error is a classified verification failure.
// It wraps the sentinel of its Kind for errors.Is() compatibility.
type Error struct {
	Kind     Kind
	Messages []string // Rendered messages, in order
	Err      error    // Optional underlying error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	sentinel := e.sentinel()
	if len(e.Messages) == 0 {
		return sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", sentinel.Error(), strings.Join(e.Messages, "; "))
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	if s, ok := sentinels[e.Kind]; ok {
		return s
	}
	return ErrInternal
}
