// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/dacolabs/dpds/internal/formats"
	"github.com/dacolabs/dpds/internal/prompts"
	"github.com/dacolabs/dpds/internal/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type initOptions struct {
	name           string
	domain         string
	version        string
	owner          string
	port           string
	format         string
	dir            string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new descriptor",
		Long: `Create a new data product descriptor (dpds.yaml or dpds.json) that
passes validation. Runs interactively by default; use --non-interactive with
--name, --domain and --owner for scripted use. An existing descriptor is
never overwritten.`,
		Example: `  # Interactive mode
  dpds init

  # Non-interactive with an output port
  dpds init --non-interactive --name customerOrders --domain org.example.sales \
    --owner sales-team --port ordersTable

  # JSON descriptor in another directory
  dpds init --non-interactive --name customerOrders --domain org.example \
    --owner sales-team --format json --dir products/orders`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Data product name (camelCase)")
	cmd.Flags().StringVarP(&opts.domain, "domain", "d", "", "Data product domain, e.g. org.example.sales")
	cmd.Flags().StringVarP(&opts.version, "version", "v", "1.0.0", "Data product version")
	cmd.Flags().StringVar(&opts.owner, "owner", "", "Owner id")
	cmd.Flags().StringVar(&opts.port, "port", "", "Name of an output port to scaffold")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "Descriptor format (yaml or json)")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory to write the descriptor to")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --name, --domain and --owner)")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	if opts.nonInteractive {
		if opts.name == "" || opts.domain == "" || opts.owner == "" {
			return errors.New("--name, --domain and --owner are required in non-interactive mode")
		}
	} else {
		answers := prompts.InitAnswers{
			Name:    opts.name,
			Domain:  opts.domain,
			Version: opts.version,
			Owner:   opts.owner,
			Port:    opts.port,
			Format:  opts.format,
		}
		if err := prompts.RunInitForm(&answers); err != nil {
			return err
		}
		opts.name, opts.domain, opts.version = answers.Name, answers.Domain, answers.Version
		opts.owner, opts.port, opts.format = answers.Owner, answers.Port, answers.Format
	}

	var writer descriptor.Writer
	switch opts.format {
	case "yaml":
		writer = descriptor.YAMLWriter
	case "json":
		writer = descriptor.JSONWriter
	default:
		return &UsageError{Err: fmt.Errorf("unsupported format %q (use yaml or json)", opts.format)}
	}

	d, err := scaffold(opts)
	if err != nil {
		return err
	}
	path, err := writer.Write(d, opts.dir)
	if err != nil {
		return err
	}

	fields := []prompts.ResultField{
		{Label: "Name", Value: d.Info.Name},
		{Label: "Fully qualified name", Value: d.Info.FullyQualifiedName},
		{Label: "Version", Value: d.Info.Version},
	}
	if opts.port != "" {
		fields = append(fields, prompts.ResultField{Label: "Output port", Value: opts.port})
	}
	fields = append(fields, prompts.ResultField{Label: "Descriptor", Value: path})
	prompts.PrintResult(cmd.OutOrStdout(), fields, "Data product initialized")
	return nil
}

// scaffold builds the descriptor for opts and checks that it validates.
func scaffold(opts *initOptions) (*descriptor.Descriptor, error) {
	if !formats.SemVer.Match(opts.version) {
		return nil, errors.New(formats.SemVer.Message("version"))
	}
	major, _, _ := strings.Cut(opts.version, ".")
	fqn := fmt.Sprintf("urn:dpds:%s:dataproducts:%s:%s", opts.domain, opts.name, major)

	d := &descriptor.Descriptor{
		DataProductDescriptor: descriptor.Version,
		Info: descriptor.Info{
			FullyQualifiedName: fqn,
			Name:               opts.name,
			Version:            opts.version,
			Domain:             opts.domain,
			Owner:              descriptor.Owner{ID: opts.owner},
		},
		InterfaceComponents: descriptor.InterfaceComponents{
			OutputPorts: []descriptor.OrRef[descriptor.Port]{},
		},
	}
	if opts.port != "" {
		d.InterfaceComponents.OutputPorts = append(d.InterfaceComponents.OutputPorts, descriptor.Inline(descriptor.Port{
			Entity: descriptor.Entity{
				ID:                 uuid.NewString(),
				FullyQualifiedName: fqn + ":outputports:" + opts.port,
				Name:               opts.port,
				Version:            opts.version,
			},
		}))
	}

	checked, err := descriptor.Decode(d.Value())
	if err != nil {
		if iss, ok := schema.AsIssues(err); ok {
			return nil, fmt.Errorf("invalid data product: %s", strings.Join(iss.Strings(), "; "))
		}
		return nil, err
	}
	return checked, nil
}
