// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/dacolabs/dpds/internal/config"
	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/dacolabs/dpds/internal/prompts"
	"github.com/dacolabs/dpds/internal/session"
	"github.com/dacolabs/dpds/internal/verify"
	"github.com/spf13/cobra"
)

type verifyOptions struct {
	strict bool
	output string
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify <path>",
		Short: "Validate a descriptor file",
		Long: `Validate a descriptor file against the descriptor model.
With --strict, valid descriptors are also checked for best practices and
any warnings are reported. The exit code is 1 when the descriptor is invalid
or cannot be read.`,
		Example: `  # Validate a descriptor
  dpds verify dpds.json

  # Include best-practice warnings
  dpds verify dpds.yaml --strict

  # Machine readable result
  dpds verify dpds.json --output json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("strict") {
				opts.strict = s.Config.Strict
			}
			if !cmd.Flags().Changed("output") {
				opts.output = s.Config.Output
			}
			return runVerify(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Report best-practice warnings for valid descriptors")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.OutputText, "Output format (text or json)")

	return cmd
}

func runVerify(cmd *cobra.Command, path string, opts *verifyOptions) error {
	if opts.output != config.OutputText && opts.output != config.OutputJSON {
		return &UsageError{Err: fmt.Errorf("unsupported output format %q", opts.output)}
	}

	res := verify.File(cmd.Context(), path, verify.Options{Strict: opts.strict})
	w := cmd.OutOrStdout()

	if opts.output == config.OutputJSON {
		if err := descriptor.JSONWriter.Encode(w, res); err != nil {
			return err
		}
	} else if res.IsValid {
		prompts.PrintResult(w, []prompts.ResultField{
			{Label: "File", Value: path},
			{Label: "Product", Value: res.Descriptor.Info.Name + " " + res.Descriptor.Info.Version},
		}, "Descriptor is valid")
		prompts.PrintWarnings(w, res.Warnings)
	} else {
		prompts.PrintFailure(w, fmt.Sprintf("Descriptor is invalid (%s)", res.Kind), res.Errors)
	}

	if !res.IsValid {
		return ErrVerificationFailed
	}
	return nil
}
