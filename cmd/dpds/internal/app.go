// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dacolabs/dpds/internal/commands"
	"github.com/dacolabs/dpds/internal/session"
)

// EnvConfig names a configuration file used when --config is not given.
const EnvConfig = "DPDS_CONFIG"

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	rootCmd := commands.NewRootCmd()
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if path := getenv(EnvConfig); path != "" {
		if err := rootCmd.PersistentFlags().Set(session.FlagConfig, path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	cmd, err := rootCmd.ExecuteContextC(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrVerificationFailed), errors.Is(err, commands.ErrCheckFailed):
		// Already reported by the command.
		return 1
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if commands.IsUsageError(err) && cmd != nil {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}
