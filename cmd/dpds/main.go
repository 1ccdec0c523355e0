// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package main is the entry point for the dpds CLI.
package main

import (
	"context"
	"os"

	"github.com/dacolabs/dpds/cmd/dpds/internal"
)

func main() {
	os.Exit(internal.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}
