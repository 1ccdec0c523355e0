// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package prompts provides interactive terminal prompts and styled output
// for CLI commands.
package prompts

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dacolabs/dpds/internal/formats"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// Theme returns the shared huh theme used across all CLI forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form.Base = theme.Form.Base.MarginTop(1)
	theme.Group.Base = theme.Group.Base.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

// ResultField is a label-value pair for PrintResult.
type ResultField struct {
	Label string
	Value string
}

// PrintResult prints a styled summary with green checkmarks and gray labels.
func PrintResult(w io.Writer, fields []ResultField, successMsg string) {
	check := successStyle.Render("✓")

	fmt.Fprintln(w)
	for _, f := range fields {
		fmt.Fprintf(w, "%s %s %s\n", check, labelStyle.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		fmt.Fprintln(w, successStyle.Render("\n"+successMsg))
	}
}

// PrintFailure prints a red headline followed by one line per message.
func PrintFailure(w io.Writer, headline string, messages []string) {
	cross := failureStyle.Render("✗")
	fmt.Fprintln(w, failureStyle.Render(headline))
	for _, m := range messages {
		fmt.Fprintf(w, "  %s %s\n", cross, m)
	}
}

// PrintWarnings prints each warning with a yellow marker. Nothing is printed
// for an empty list.
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	mark := warningStyle.Render("!")
	fmt.Fprintln(w, warningStyle.Render("Warnings:"))
	for _, m := range warnings {
		fmt.Fprintf(w, "  %s %s\n", mark, m)
	}
}

// FormatValidator returns a huh validator requiring a value of format f.
func FormatValidator(f formats.Format, field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		if !f.Match(s) {
			return fmt.Errorf("%s", f.Message(field))
		}
		return nil
	}
}

// OptionalFormatValidator is FormatValidator that also accepts an empty value.
func OptionalFormatValidator(f formats.Format, field string) func(string) error {
	required := FormatValidator(f, field)
	return func(s string) error {
		if s == "" {
			return nil
		}
		return required(s)
	}
}

func requiredValidator(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// PrintList prints a gray title followed by one bulleted line per item.
// Nothing is printed for an empty list.
func PrintList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, labelStyle.Render(title+":"))
	for _, it := range items {
		fmt.Fprintf(w, "  • %s\n", it)
	}
}
