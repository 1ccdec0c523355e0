// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Command gendocs generates reference documentation for the dpds CLI.
//
// Usage:
//
//	go run ./cmd/gendocs [-format md|man] [output-dir]
//
// Markdown is written to ./docs/cli by default, man pages to ./docs/man.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/dpds/internal/commands"
	"github.com/dacolabs/dpds/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	format := flag.String("format", "md", "Output format: md or man")
	flag.Parse()

	dir := flag.Arg(0)
	if dir == "" {
		dir = "./docs/cli"
		if *format == "man" {
			dir = "./docs/man"
		}
	}

	rootCmd := commands.NewRootCmd()
	rootCmd.DisableAutoGenTag = true

	if err := os.MkdirAll(dir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch *format {
	case "md":
		err = genMarkdown(rootCmd, dir)
	case "man":
		err = doc.GenManTree(rootCmd, &doc.GenManHeader{
			Title:   "DPDS",
			Section: "1",
			Source:  "dpds " + version.Short(),
		}, dir)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Documentation generated in %s\n", dir)
}

// genMarkdown writes one page per command and makes the root page the index.
func genMarkdown(rootCmd *cobra.Command, dir string) error {
	if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
		return err
	}
	oldPath := filepath.Join(dir, rootCmd.Name()+".md")
	newPath := filepath.Join(dir, "index.md")
	if err := os.Rename(oldPath, newPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}
