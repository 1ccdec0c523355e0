// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"errors"

	"github.com/dacolabs/dpds/internal/session"
	"github.com/spf13/cobra"
)

// ErrVerificationFailed is returned after an invalid descriptor has been
// reported. The caller only needs to set the exit code.
var ErrVerificationFailed = errors.New("verification failed")

// UsageError marks errors caused by how the command was invoked: unknown
// commands, wrong arguments and bad flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// IsUsageError reports whether err was caused by the invocation.
func IsUsageError(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

func usageArgs(args cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := args(cmd, a); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dpds",
		Short: "Validate and inspect Data Product Descriptor documents",
		Long: `dpds checks Data Product Descriptor (DPDS) documents against the
descriptor model, reports best-practice warnings, and prepares JSON Schemas
for form renderers.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.PersistentFlags().String(session.FlagConfig, "", "Path to the configuration file (default ./.dpds.yaml when present)")
	rootCmd.PersistentFlags().String(session.FlagLogLevel, "", "Log level: debug, info, warn, error or disabled")

	rootCmd.AddCommand(
		newVerifyCmd(),
		newDisplayCmd(),
		newNormalizeCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
