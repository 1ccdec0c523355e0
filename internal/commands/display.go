// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"

	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/dacolabs/dpds/internal/prompts"
	"github.com/dacolabs/dpds/internal/verify"
	"github.com/spf13/cobra"
)

func newDisplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "display <path>",
		Short: "Print a summary of a descriptor",
		Long: `Validate a descriptor file and print a summary of the data product:
name, version, domain, owner, contact points and ports. Referenced ports
are shown with their reference target. An invalid descriptor is reported
like verify does and the exit code is 1.`,
		Example: `  dpds display dpds.yaml`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(cmd, args[0])
		},
	}
}

func runDisplay(cmd *cobra.Command, path string) error {
	res := verify.File(cmd.Context(), path, verify.Options{})
	w := cmd.OutOrStdout()
	if !res.IsValid {
		prompts.PrintFailure(w, fmt.Sprintf("Descriptor is invalid (%s)", res.Kind), res.Errors)
		return ErrVerificationFailed
	}
	printSummary(w, res.Descriptor)
	return nil
}

func printSummary(w io.Writer, d *descriptor.Descriptor) {
	info := d.Info
	owner := info.Owner.ID
	if info.Owner.Name != "" {
		owner = fmt.Sprintf("%s (%s)", info.Owner.Name, info.Owner.ID)
	}
	fields := []prompts.ResultField{
		{Label: "Name", Value: info.Name},
		{Label: "Version", Value: info.Version},
		{Label: "Domain", Value: info.Domain},
		{Label: "Owner", Value: owner},
		{Label: "Fully qualified name", Value: info.FullyQualifiedName},
	}
	if info.DisplayName != "" {
		fields = append(fields, prompts.ResultField{Label: "Display name", Value: info.DisplayName})
	}
	if info.Description != "" {
		fields = append(fields, prompts.ResultField{Label: "Description", Value: info.Description})
	}
	prompts.PrintResult(w, fields, "")
	fmt.Fprintln(w)

	contacts := make([]string, 0, len(info.ContactPoints))
	for _, cp := range info.ContactPoints {
		contacts = append(contacts, contactLine(cp))
	}
	prompts.PrintList(w, "Contact points", contacts)
	prompts.PrintList(w, "Input ports", portNames(d, d.InterfaceComponents.InputPorts))
	prompts.PrintList(w, "Output ports", portNames(d, d.InterfaceComponents.OutputPorts))
	if len(d.InterfaceComponents.OutputPorts) == 0 {
		fmt.Fprintln(w, "No output ports defined")
	}

	var counts []string
	for _, kind := range []descriptor.PortKind{descriptor.DiscoveryPort, descriptor.ObservabilityPort, descriptor.ControlPort} {
		if n := len(d.InterfaceComponents.Ports(kind)); n > 0 {
			counts = append(counts, fmt.Sprintf("%s: %d", kind.Label(), n))
		}
	}
	prompts.PrintList(w, "Other ports", counts)
}

func contactLine(cp descriptor.ContactPoint) string {
	line := cp.Name
	if line == "" {
		line = "(unnamed)"
	}
	switch {
	case cp.Channel != "" && cp.Address != "":
		line += fmt.Sprintf(" [%s: %s]", cp.Channel, cp.Address)
	case cp.Address != "":
		line += " <" + cp.Address + ">"
	case cp.Channel != "":
		line += " [" + cp.Channel + "]"
	}
	return line
}

func portNames(d *descriptor.Descriptor, ports []descriptor.OrRef[descriptor.Port]) []string {
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		if !p.IsRef() {
			names = append(names, p.Value.Name)
			continue
		}
		name := fmt.Sprintf("<ref: %s>", p.Reference.Ref)
		if target, ok := d.ResolvePort(*p.Reference); ok {
			name = target.Name + " " + name
		}
		names = append(names, name)
	}
	return names
}
