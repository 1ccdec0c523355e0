// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package verify runs the descriptor file pipeline: existence check, read,
// parse, validate and, when strict, lint. Every failure is reported in the
// returned Result; nothing is raised to the caller.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/dacolabs/dpds/internal/lint"
	"github.com/dacolabs/dpds/internal/schema"
	"github.com/rs/zerolog"
)

// Options control a verification run.
type Options struct {
	// Strict enables the best-practice linter on valid descriptors.
	Strict bool
}

// Result is the uniform outcome of a verification run.
type Result struct {
	IsValid bool `json:"isValid"`
	// Errors is nil when the descriptor is valid and never empty otherwise.
	Errors []string `json:"errors"`
	// Warnings is never nil; it is empty unless Strict was set and the
	// descriptor is valid.
	Warnings []string `json:"warnings"`

	Kind       Kind                   `json:"-"`
	Value      any                    `json:"-"`
	Descriptor *descriptor.Descriptor `json:"-"`
}

// Err returns the classified failure, or nil for a valid result.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &Error{Kind: r.Kind, Messages: r.Errors}
}

func failure(kind Kind, msgs ...string) Result {
	return Result{Kind: kind, Errors: msgs, Warnings: []string{}}
}

// File verifies the descriptor stored at path. The parser is chosen from the
// file extension.
func File(ctx context.Context, path string, opts Options) Result {
	log := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Msg("descriptor not found")
			return failure(FileNotFound, "File not found: "+path)
		}
		log.Info().Err(err).Msg("descriptor not accessible")
		return failure(InternalError, "Internal error: "+err.Error())
	}

	log.Debug().Msg("reading descriptor")
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		log.Info().Err(err).Msg("failed to read descriptor")
		return failure(InternalError, "Internal error: "+err.Error())
	}
	return Bytes(ctx, descriptor.ParserFor(path), data, opts)
}

// Bytes verifies an in-memory document.
func Bytes(ctx context.Context, parser descriptor.Parser, data []byte, opts Options) (res Result) {
	log := zerolog.Ctx(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("verification aborted")
			res = failure(InternalError, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failure(InternalError, "Internal error: "+err.Error())
	}

	log.Debug().Str("format", parser.String()).Int("bytes", len(data)).Msg("parsing descriptor")
	v, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		log.Info().Err(err).Msg("descriptor is not well-formed")
		return failure(ParseError, fmt.Sprintf("Invalid %s: %v", parser, err))
	}

	log.Debug().Msg("validating descriptor")
	d, err := descriptor.Decode(v)
	if err != nil {
		if iss, ok := schema.AsIssues(err); ok {
			log.Info().Int("issues", len(iss)).Msg("descriptor failed validation")
			return failure(SchemaValidationError, iss.Strings()...)
		}
		return failure(InternalError, "Internal error: "+err.Error())
	}

	res = Result{IsValid: true, Warnings: []string{}, Value: v, Descriptor: d}
	if opts.Strict {
		res.Warnings = lint.Lint(d)
		log.Debug().Int("warnings", len(res.Warnings)).Msg("linted descriptor")
	}
	return res
}
