// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/dacolabs/dpds/internal/jschema"
	"github.com/dacolabs/dpds/internal/normalize"
	"github.com/dacolabs/dpds/internal/prompts"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrCheckFailed is returned when a normalized schema fails --check.
var ErrCheckFailed = errors.New("schema check failed")

type normalizeOptions struct {
	check bool
	out   string
}

func newNormalizeCmd() *cobra.Command {
	opts := &normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize <schema-path>",
		Short: "Collapse reference unions in a JSON Schema",
		Long: `Load a JSON or YAML JSON Schema document and collapse every
"oneOf" of exactly two references into a single reference, preferring the
concrete type over the generic reference definition. The result is written
as indented JSON to stdout, or to --out.

With --check the result is also checked for local $defs references that do
not resolve and compiled as a draft 2020-12 schema.`,
		Example: `  # Print the normalized schema
  dpds normalize schema.json

  # Write it to a file and check it
  dpds normalize schema.yaml --out build/schema.json --check`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Check references and compile the normalized schema")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write the result to this file instead of stdout")

	return cmd
}

func runNormalize(cmd *cobra.Command, path string, opts *normalizeOptions) error {
	log := zerolog.Ctx(cmd.Context())

	loader := jschema.NewLoader(os.DirFS(filepath.Dir(path)))
	v, err := loader.LoadFile(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	out := normalize.Normalize(v)
	log.Debug().Str("path", path).Msg("normalized schema")

	if opts.check {
		if err := checkSchema(cmd, out); err != nil {
			return err
		}
	}

	if opts.out == "" {
		return descriptor.JSONWriter.Encode(cmd.OutOrStdout(), out)
	}
	if err := descriptor.JSONWriter.WriteFile(opts.out, out, true); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Source", Value: path},
		{Label: "Output", Value: opts.out},
	}, "Schema normalized")
	return nil
}

func checkSchema(cmd *cobra.Command, v any) error {
	var problems []string

	s, err := jschema.FromValue(v)
	if err != nil {
		problems = append(problems, err.Error())
	} else {
		for _, ref := range jschema.DanglingRefs(s) {
			problems = append(problems, "unresolved reference "+ref)
		}
	}
	if err := jschema.Compile(v); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		prompts.PrintFailure(cmd.ErrOrStderr(), "Normalized schema failed checks", problems)
		return ErrCheckFailed
	}
	return nil
}
