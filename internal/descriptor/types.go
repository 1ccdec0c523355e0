// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package descriptor provides the Data Product Descriptor model: its
// structural schema, the typed records decoded from a validated document, and
// parsers and writers for the JSON and YAML encodings.
package descriptor

import "strings"

// Version is the descriptor standard version written by new descriptors.
const Version = "1.0.0"

// Known members of the promises, expectations and obligations bags.
var (
	PromiseKeys     = []string{"platform", "servicesType", "api", "deprecationPolicy", "slo"}
	ExpectationKeys = []string{"audience", "usage"}
	ObligationKeys  = []string{"termsAndConditions", "billingPolicy", "sla"}
)

// Extension is an unrecognized member preserved from a passthrough record.
type Extension struct {
	Key   string
	Value any
}

// Extensions holds the residual members of a passthrough record in ascending
// key order.
type Extensions []Extension

// Get returns the value stored under key.
func (e Extensions) Get(key string) (any, bool) {
	for _, ext := range e {
		if ext.Key == key {
			return ext.Value, true
		}
	}
	return nil, false
}

// Reference points at a reusable definition instead of inlining it.
type Reference struct {
	Ref         string
	MediaType   string
	Description string
	Extensions  Extensions
}

// OrRef holds either an inline T or a Reference. Exactly one of Value and
// Reference is set; a document object is a reference when it carries $ref.
type OrRef[T any] struct {
	Value     *T
	Reference *Reference
}

// IsRef reports whether the reference form is present.
func (o OrRef[T]) IsRef() bool { return o.Reference != nil }

// Inline wraps v as the inline form.
func Inline[T any](v T) OrRef[T] { return OrRef[T]{Value: &v} }

// RefTo returns the reference form pointing at target.
func RefTo[T any](target string) OrRef[T] { return OrRef[T]{Reference: &Reference{Ref: target}} }

// ExternalResource links to a resource outside the descriptor.
type ExternalResource struct {
	Description string
	MediaType   string
	Href        string
	Extensions  Extensions
}

// Owner identifies who is accountable for the data product.
type Owner struct {
	ID         string
	Name       string
	Extensions Extensions
}

// ContactPoint is a channel for reaching the data product team.
type ContactPoint struct {
	Name        string
	Description string
	Channel     string
	Address     string
	Extensions  Extensions
}

// Info contains metadata about the data product.
type Info struct {
	FullyQualifiedName string
	Name               string
	Version            string
	Domain             string
	Owner              Owner
	DisplayName        string
	Description        string
	ContactPoints      []ContactPoint
	Extensions         Extensions
}

// Entity holds the members shared by ports, components and standard definitions.
type Entity struct {
	ID                 string
	FullyQualifiedName string
	EntityType         string
	Name               string
	Version            string
	DisplayName        string
	Description        string
	ComponentGroup     string
	Tags               []string
	ExternalDocs       *ExternalResource
	Extensions         Extensions
}

// Definition is either an inline structured object or a text specification.
type Definition struct {
	Text   string
	Object map[string]any
}

// IsText reports whether the definition is given as text.
func (d Definition) IsText() bool { return d.Object == nil }

// StandardDefinition describes something by pointing at a standard
// specification and providing a definition in its terms.
type StandardDefinition struct {
	Entity
	Specification        string
	SpecificationVersion string
	Definition           Definition
}

// Promises are what a port commits to.
type Promises struct {
	Platform          *OrRef[StandardDefinition]
	ServicesType      *OrRef[StandardDefinition]
	API               *OrRef[StandardDefinition]
	DeprecationPolicy *OrRef[StandardDefinition]
	SLO               *OrRef[StandardDefinition]
	Extensions        Extensions
}

// Expectations are what a port expects from its consumers.
type Expectations struct {
	Audience   *OrRef[StandardDefinition]
	Usage      *OrRef[StandardDefinition]
	Extensions Extensions
}

// Obligations are what consumers must comply with.
type Obligations struct {
	TermsAndConditions *OrRef[StandardDefinition]
	BillingPolicy      *OrRef[StandardDefinition]
	SLA                *OrRef[StandardDefinition]
	Extensions         Extensions
}

// Port is an interface of the data product. All five port kinds share this shape.
type Port struct {
	Entity
	Promises     *OrRef[Promises]
	Expectations *OrRef[Expectations]
	Obligations  *OrRef[Obligations]
}

// PortKind names the collection a port belongs to.
type PortKind string

const (
	InputPort         PortKind = "inputPorts"
	OutputPort        PortKind = "outputPorts"
	DiscoveryPort     PortKind = "discoveryPorts"
	ObservabilityPort PortKind = "observabilityPorts"
	ControlPort       PortKind = "controlPorts"
)

// PortKinds lists the port collections in declaration order.
var PortKinds = []PortKind{InputPort, OutputPort, DiscoveryPort, ObservabilityPort, ControlPort}

// Label returns a human readable name such as "output".
func (k PortKind) Label() string {
	return strings.TrimSuffix(string(k), "Ports")
}

// ApplicationComponent is an internal application of the data product.
type ApplicationComponent struct {
	Entity
	Platform        string
	ApplicationType string
	ConsumesFrom    []string
	ProvidesTo      []string
	DependsOn       []string
}

// InfrastructuralComponent is an internal infrastructure resource.
type InfrastructuralComponent struct {
	Entity
	Platform           string
	InfrastructureType string
	DependsOn          []string
}

// LifecycleTaskInfo describes one task of a lifecycle stage.
type LifecycleTaskInfo struct {
	Name           string
	Order          *float64
	Service        *ExternalResource
	Template       *OrRef[StandardDefinition]
	Configurations *OrRef[map[string]any]
	Extensions     Extensions
}

// InterfaceComponents groups the ports of the data product.
type InterfaceComponents struct {
	InputPorts         []OrRef[Port]
	OutputPorts        []OrRef[Port]
	DiscoveryPorts     []OrRef[Port]
	ObservabilityPorts []OrRef[Port]
	ControlPorts       []OrRef[Port]
	Extensions         Extensions
}

// Ports returns the collection of the given kind.
func (ic InterfaceComponents) Ports(kind PortKind) []OrRef[Port] {
	switch kind {
	case InputPort:
		return ic.InputPorts
	case OutputPort:
		return ic.OutputPorts
	case DiscoveryPort:
		return ic.DiscoveryPorts
	case ObservabilityPort:
		return ic.ObservabilityPorts
	case ControlPort:
		return ic.ControlPorts
	}
	return nil
}

// InternalComponents describes how the data product is built and run.
type InternalComponents struct {
	LifecycleInfo             map[string][]LifecycleTaskInfo
	ApplicationComponents     []OrRef[ApplicationComponent]
	InfrastructuralComponents []OrRef[InfrastructuralComponent]
	Extensions                Extensions
}

// Components holds reusable definitions keyed by name.
type Components struct {
	InputPorts                map[string]Port
	OutputPorts               map[string]Port
	DiscoveryPorts            map[string]Port
	ObservabilityPorts        map[string]Port
	ControlPorts              map[string]Port
	ApplicationComponents     map[string]ApplicationComponent
	InfrastructuralComponents map[string]InfrastructuralComponent
	Extensions                Extensions
}

// Ports returns the reusable ports of the given kind.
func (c Components) Ports(kind PortKind) map[string]Port {
	switch kind {
	case InputPort:
		return c.InputPorts
	case OutputPort:
		return c.OutputPorts
	case DiscoveryPort:
		return c.DiscoveryPorts
	case ObservabilityPort:
		return c.ObservabilityPorts
	case ControlPort:
		return c.ControlPorts
	}
	return nil
}

// Descriptor is the root of a Data Product Descriptor document.
type Descriptor struct {
	DataProductDescriptor string
	Info                  Info
	InterfaceComponents   InterfaceComponents
	InternalComponents    *InternalComponents
	Components            *Components
	Tags                  []string
	ExternalDocs          *ExternalResource
	Extensions            Extensions
}

const componentsRefPrefix = "#/components/"

// ResolvePort looks up a "#/components/<kind>/<name>" reference among the
// descriptor's reusable ports. Other references are not resolved.
func (d *Descriptor) ResolvePort(ref Reference) (*Port, bool) {
	if d.Components == nil {
		return nil, false
	}
	rest, ok := strings.CutPrefix(ref.Ref, componentsRefPrefix)
	if !ok {
		return nil, false
	}
	kind, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" {
		return nil, false
	}
	p, ok := d.Components.Ports(PortKind(kind))[name]
	if !ok {
		return nil, false
	}
	return &p, true
}
