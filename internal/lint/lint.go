// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package lint reports best-practice warnings for a descriptor that has
// already passed validation. Warnings are advisory and never fatal.
package lint

import (
	"fmt"
	"strconv"

	"github.com/dacolabs/dpds/internal/descriptor"
)

// Warning messages that do not depend on the descriptor contents.
const (
	MissingInfoDescription = "Missing data product description in info"
	NoContactPoints        = "No contact points defined for the data product"
)

// Lint returns the warnings for d in a stable order: info description,
// then each inline output port, then contact points. Referenced output
// ports are skipped. The result is empty, never nil, when d follows every
// practice.
func Lint(d *descriptor.Descriptor) []string {
	warnings := []string{}
	if d == nil {
		return warnings
	}

	if d.Info.Description == "" {
		warnings = append(warnings, MissingInfoDescription)
	}

	for i, p := range d.InterfaceComponents.OutputPorts {
		if p.IsRef() || p.Value == nil {
			continue
		}
		label := portLabel(p.Value, i)
		if p.Value.Description == "" {
			warnings = append(warnings, fmt.Sprintf("Output port %s is missing a description", label))
		}
		if p.Value.Promises == nil {
			warnings = append(warnings, fmt.Sprintf("Output port %s has no promises defined", label))
		}
	}

	if len(d.Info.ContactPoints) == 0 {
		warnings = append(warnings, NoContactPoints)
	}
	return warnings
}

// portLabel names a port by its name, or by its 1-based position.
func portLabel(p *descriptor.Port, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return "#" + strconv.Itoa(i+1)
}
