// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/dacolabs/dpds/internal/formats"
)

// InitAnswers holds the values collected for a new descriptor. Fields that
// are already set are used as the form's initial values.
type InitAnswers struct {
	Name    string
	Domain  string
	Version string
	Owner   string
	Port    string
	Format  string
}

// RunInitForm runs the interactive form for the init command.
func RunInitForm(a *InitAnswers) error {
	if a.Version == "" {
		a.Version = "1.0.0"
	}
	if a.Format == "" {
		a.Format = "yaml"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product name").
				Placeholder("e.g., customerOrders").
				Validate(FormatValidator(formats.CamelCase, "name")).
				Value(&a.Name),
			huh.NewInput().
				Title("Domain").
				Placeholder("e.g., org.example.sales").
				Validate(FormatValidator(formats.Domain, "domain")).
				Value(&a.Domain),
			huh.NewInput().
				Title("Version").
				Placeholder("1.0.0").
				Validate(FormatValidator(formats.SemVer, "version")).
				Value(&a.Version),
			huh.NewInput().
				Title("Owner id").
				Placeholder("e.g., sales-team@example.org").
				Validate(requiredValidator("owner")).
				Value(&a.Owner),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output port name (optional)").
				Placeholder("e.g., ordersTable").
				Validate(OptionalFormatValidator(formats.CamelCase, "port")).
				Value(&a.Port),
			huh.NewSelect[string]().
				Title("Descriptor format").
				Options(
					huh.NewOption("YAML (recommended)", "yaml"),
					huh.NewOption("JSON", "json"),
				).
				Value(&a.Format),
		),
	).WithTheme(Theme()).Run()
}
