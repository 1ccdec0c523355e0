// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package descriptor

import (
	"fmt"
	"sync"

	"github.com/dacolabs/dpds/internal/formats"
	"github.com/dacolabs/dpds/internal/schema"
)

// Named nodes of the descriptor model.
const (
	NodeDescriptor               = "descriptor"
	NodeInfo                     = "info"
	NodeOwner                    = "owner"
	NodeContactPoint             = "contactPoint"
	NodeReference                = "reference"
	NodeExternalResource         = "externalResource"
	NodeStandardDefinition       = "standardDefinition"
	NodePromises                 = "promises"
	NodeExpectations             = "expectations"
	NodeObligations              = "obligations"
	NodePort                     = "port"
	NodeApplicationComponent     = "applicationComponent"
	NodeInfrastructuralComponent = "infrastructuralComponent"
	NodeLifecycleTaskInfo        = "lifecycleTaskInfo"
	NodeInterfaceComponents      = "interfaceComponents"
	NodeInternalComponents       = "internalComponents"
	NodeComponents               = "components"
)

// Model returns the structural model of a Data Product Descriptor. It is
// built on first use and shared; the model itself is immutable.
var Model = sync.OnceValue(func() *schema.Model {
	m, err := buildModel()
	if err != nil {
		panic(fmt.Sprintf("descriptor: invalid model: %v", err))
	}
	return m
})

// Validate checks v against the descriptor model. See schema.Model.Validate.
func Validate(v any) (any, error) {
	return Model().Validate(v)
}

func buildModel() (*schema.Model, error) {
	b := schema.NewBuilder()

	str := b.String()
	num := b.Number()
	strList := b.Array(str)
	uuid := b.StringFormat(formats.UUID)
	fqn := b.StringFormat(formats.FullyQualifiedName)
	alnum := b.StringFormat(formats.Alphanumeric)
	domain := b.StringFormat(formats.Domain)
	camel := b.StringFormat(formats.CamelCase)
	semver := b.StringFormat(formats.SemVer)
	uri := b.StringFormat(formats.URI)
	uriRef := b.StringFormat(formats.URIReference)
	anyObject := b.Object("", true)

	// Declared up front so the "T or Reference" unions can point at them.
	stdDef := b.Declare(NodeStandardDefinition)
	port := b.Declare(NodePort)
	promises := b.Declare(NodePromises)
	expectations := b.Declare(NodeExpectations)
	obligations := b.Declare(NodeObligations)
	appComp := b.Declare(NodeApplicationComponent)
	infraComp := b.Declare(NodeInfrastructuralComponent)

	ref := b.Object(NodeReference, true,
		schema.Required("$ref", uriRef),
		schema.Optional("mediaType", str),
		schema.Optional("description", str),
	)
	orRef := func(name string, t schema.Handle) schema.Handle {
		return b.Union(name, schema.Arm{Type: t}, schema.Arm{Type: ref, When: "$ref"})
	}

	extRes := b.Object(NodeExternalResource, true,
		schema.Optional("description", str),
		schema.Optional("mediaType", str),
		schema.Required("$href", uri),
	)

	entity := func(extra ...schema.Field) []schema.Field {
		fields := []schema.Field{
			schema.Optional("id", uuid),
			schema.Optional("fullyQualifiedName", fqn),
			schema.Optional("entityType", alnum),
			schema.Required("name", camel),
			schema.Required("version", semver),
			schema.Optional("displayName", str),
			schema.Optional("description", str),
			schema.Optional("componentGroup", str),
			schema.Optional("tags", strList),
			schema.Optional("externalDocs", extRes),
		}
		return append(fields, extra...)
	}

	stdDefOrRef := orRef("standardDefinitionOrReference", stdDef)
	b.Define(stdDef, schema.ObjectNode(true, entity(
		schema.Required("specification", str),
		schema.Optional("specificationVersion", str),
		schema.Required("definition", b.Union("definition",
			schema.Arm{Type: anyObject},
			schema.Arm{Type: str},
		)),
	)...))

	bag := func(keys ...string) schema.Node {
		fields := make([]schema.Field, len(keys))
		for i, k := range keys {
			fields[i] = schema.Optional(k, stdDefOrRef)
		}
		return schema.ObjectNode(true, fields...)
	}
	b.Define(promises, bag(PromiseKeys...))
	b.Define(expectations, bag(ExpectationKeys...))
	b.Define(obligations, bag(ObligationKeys...))

	b.Define(port, schema.ObjectNode(true, entity(
		schema.Optional("promises", orRef("promisesOrReference", promises)),
		schema.Optional("expectations", orRef("expectationsOrReference", expectations)),
		schema.Optional("obligations", orRef("obligationsOrReference", obligations)),
	)...))
	portList := b.Array(orRef("portOrReference", port))

	b.Define(appComp, schema.ObjectNode(true, entity(
		schema.Optional("platform", str),
		schema.Optional("applicationType", str),
		schema.Optional("consumesFrom", strList),
		schema.Optional("providesTo", strList),
		schema.Optional("dependsOn", strList),
	)...))
	b.Define(infraComp, schema.ObjectNode(true, entity(
		schema.Optional("platform", str),
		schema.Optional("infrastructureType", str),
		schema.Optional("dependsOn", strList),
	)...))

	task := b.Object(NodeLifecycleTaskInfo, true,
		schema.Optional("name", str),
		schema.Optional("order", num),
		schema.Optional("service", extRes),
		schema.Optional("template", stdDefOrRef),
		schema.Optional("configurations", orRef("configurationsOrReference", anyObject)),
	)

	ifc := b.Object(NodeInterfaceComponents, true,
		schema.Optional("inputPorts", portList),
		schema.Required("outputPorts", portList),
		schema.Optional("discoveryPorts", portList),
		schema.Optional("observabilityPorts", portList),
		schema.Optional("controlPorts", portList),
	)

	internal := b.Object(NodeInternalComponents, true,
		schema.Optional("lifecycleInfo", b.Map(b.Array(task))),
		schema.Optional("applicationComponents", b.Array(orRef("applicationComponentOrReference", appComp))),
		schema.Optional("infrastructuralComponents", b.Array(orRef("infrastructuralComponentOrReference", infraComp))),
	)

	components := b.Object(NodeComponents, true,
		schema.Optional("inputPorts", b.Map(port)),
		schema.Optional("outputPorts", b.Map(port)),
		schema.Optional("discoveryPorts", b.Map(port)),
		schema.Optional("observabilityPorts", b.Map(port)),
		schema.Optional("controlPorts", b.Map(port)),
		schema.Optional("applicationComponents", b.Map(appComp)),
		schema.Optional("infrastructuralComponents", b.Map(infraComp)),
	)

	owner := b.Object(NodeOwner, true,
		schema.Required("id", str),
		schema.Optional("name", str),
	)
	contact := b.Object(NodeContactPoint, true,
		schema.Optional("name", str),
		schema.Optional("description", str),
		schema.Optional("channel", str),
		schema.Optional("address", str),
	)
	info := b.Object(NodeInfo, true,
		schema.Required("fullyQualifiedName", fqn),
		schema.Required("name", camel),
		schema.Required("version", semver),
		schema.Required("domain", domain),
		schema.Required("owner", owner),
		schema.Optional("displayName", str),
		schema.Optional("description", str),
		schema.Optional("contactPoints", b.Array(contact)),
	)

	root := b.Object(NodeDescriptor, true,
		schema.Required("dataProductDescriptor", semver),
		schema.Required("info", info),
		schema.Required("interfaceComponents", ifc),
		schema.Optional("internalComponents", internal),
		schema.Optional("components", components),
		schema.Optional("tags", strList),
		schema.Optional("externalDocs", extRes),
	)

	return b.Build(root)
}
