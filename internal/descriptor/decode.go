// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package descriptor

import (
	"sort"
)

// Decode validates v against the descriptor model and, on success, returns
// the typed descriptor. Validation failures are returned as schema.Issues.
// Unknown members of every record are kept in its Extensions.
func Decode(v any) (*Descriptor, error) {
	if _, err := Validate(v); err != nil {
		return nil, err
	}
	root, _ := v.(map[string]any)
	return decodeDescriptor(object(root)), nil
}

// object is a validated document object. Accessors tolerate missing members
// and never panic; shape errors are the validator's job.
type object map[string]any

func (o object) str(key string) string {
	s, _ := o[key].(string)
	return s
}

func (o object) obj(key string) (object, bool) {
	m, ok := o[key].(map[string]any)
	return object(m), ok
}

func (o object) list(key string) []any {
	l, _ := o[key].([]any)
	return l
}

func (o object) strs(key string) []string {
	l := o.list(key)
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, e := range l {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (o object) num(key string) *float64 {
	v, ok := o[key]
	if !ok {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case interface{ Float64() (float64, error) }:
		var err error
		if f, err = n.Float64(); err != nil {
			return nil
		}
	default:
		return nil
	}
	return &f
}

// extensions returns the members of o not listed in known, sorted by key.
func (o object) extensions(known ...[]string) Extensions {
	skip := make(map[string]struct{})
	for _, ks := range known {
		for _, k := range ks {
			skip[k] = struct{}{}
		}
	}
	var ext Extensions
	for k, v := range o {
		if _, ok := skip[k]; ok {
			continue
		}
		ext = append(ext, Extension{Key: k, Value: v})
	}
	sort.Slice(ext, func(i, j int) bool { return ext[i].Key < ext[j].Key })
	return ext
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Member names per record, shared by the decoder and the encoder.
var (
	referenceKeys        = []string{"$ref", "mediaType", "description"}
	externalResourceKeys = []string{"description", "mediaType", "$href"}
	ownerKeys            = []string{"id", "name"}
	contactPointKeys     = []string{"name", "description", "channel", "address"}
	infoKeys             = []string{"fullyQualifiedName", "name", "version", "domain", "owner", "displayName", "description", "contactPoints"}
	entityKeys           = []string{"id", "fullyQualifiedName", "entityType", "name", "version", "displayName", "description", "componentGroup", "tags", "externalDocs"}
	stdDefKeys           = []string{"specification", "specificationVersion", "definition"}
	portKeys             = []string{"promises", "expectations", "obligations"}
	appCompKeys          = []string{"platform", "applicationType", "consumesFrom", "providesTo", "dependsOn"}
	infraCompKeys        = []string{"platform", "infrastructureType", "dependsOn"}
	taskKeys             = []string{"name", "order", "service", "template", "configurations"}
	componentKeys        = []string{"inputPorts", "outputPorts", "discoveryPorts", "observabilityPorts", "controlPorts", "applicationComponents", "infrastructuralComponents"}
	internalKeys         = []string{"lifecycleInfo", "applicationComponents", "infrastructuralComponents"}
	rootKeys             = []string{"dataProductDescriptor", "info", "interfaceComponents", "internalComponents", "components", "tags", "externalDocs"}
)

func decodeDescriptor(o object) *Descriptor {
	d := &Descriptor{
		DataProductDescriptor: o.str("dataProductDescriptor"),
		Tags:                  o.strs("tags"),
		Extensions:            o.extensions(rootKeys),
	}
	if info, ok := o.obj("info"); ok {
		d.Info = decodeInfo(info)
	}
	if ic, ok := o.obj("interfaceComponents"); ok {
		d.InterfaceComponents = decodeInterfaceComponents(ic)
	}
	if ic, ok := o.obj("internalComponents"); ok {
		d.InternalComponents = decodeInternalComponents(ic)
	}
	if c, ok := o.obj("components"); ok {
		d.Components = decodeComponents(c)
	}
	if ed, ok := o.obj("externalDocs"); ok {
		d.ExternalDocs = decodeExternalResource(ed)
	}
	return d
}

func decodeInfo(o object) Info {
	info := Info{
		FullyQualifiedName: o.str("fullyQualifiedName"),
		Name:               o.str("name"),
		Version:            o.str("version"),
		Domain:             o.str("domain"),
		DisplayName:        o.str("displayName"),
		Description:        o.str("description"),
		Extensions:         o.extensions(infoKeys),
	}
	if owner, ok := o.obj("owner"); ok {
		info.Owner = Owner{
			ID:         owner.str("id"),
			Name:       owner.str("name"),
			Extensions: owner.extensions(ownerKeys),
		}
	}
	for _, e := range o.list("contactPoints") {
		cp, ok := e.(map[string]any)
		if !ok {
			continue
		}
		c := object(cp)
		info.ContactPoints = append(info.ContactPoints, ContactPoint{
			Name:        c.str("name"),
			Description: c.str("description"),
			Channel:     c.str("channel"),
			Address:     c.str("address"),
			Extensions:  c.extensions(contactPointKeys),
		})
	}
	return info
}

func decodeReference(o object) *Reference {
	return &Reference{
		Ref:         o.str("$ref"),
		MediaType:   o.str("mediaType"),
		Description: o.str("description"),
		Extensions:  o.extensions(referenceKeys),
	}
}

func decodeExternalResource(o object) *ExternalResource {
	return &ExternalResource{
		Description: o.str("description"),
		MediaType:   o.str("mediaType"),
		Href:        o.str("$href"),
		Extensions:  o.extensions(externalResourceKeys),
	}
}

// decodeOrRef applies the $ref discrimination used by the validator.
func decodeOrRef[T any](v any, inline func(object) T) *OrRef[T] {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	o := object(m)
	if _, isRef := o["$ref"]; isRef {
		return &OrRef[T]{Reference: decodeReference(o)}
	}
	t := inline(o)
	return &OrRef[T]{Value: &t}
}

func decodeEntity(o object, extra ...[]string) Entity {
	e := Entity{
		ID:                 o.str("id"),
		FullyQualifiedName: o.str("fullyQualifiedName"),
		EntityType:         o.str("entityType"),
		Name:               o.str("name"),
		Version:            o.str("version"),
		DisplayName:        o.str("displayName"),
		Description:        o.str("description"),
		ComponentGroup:     o.str("componentGroup"),
		Tags:               o.strs("tags"),
		Extensions:         o.extensions(append([][]string{entityKeys}, extra...)...),
	}
	if ed, ok := o.obj("externalDocs"); ok {
		e.ExternalDocs = decodeExternalResource(ed)
	}
	return e
}

func decodeStandardDefinition(o object) StandardDefinition {
	sd := StandardDefinition{
		Entity:               decodeEntity(o, stdDefKeys),
		Specification:        o.str("specification"),
		SpecificationVersion: o.str("specificationVersion"),
	}
	switch def := o["definition"].(type) {
	case map[string]any:
		sd.Definition.Object = def
	case string:
		sd.Definition.Text = def
	}
	return sd
}

func stdDefAt(o object, key string) *OrRef[StandardDefinition] {
	v, ok := o[key]
	if !ok {
		return nil
	}
	return decodeOrRef(v, decodeStandardDefinition)
}

func decodePromises(o object) Promises {
	return Promises{
		Platform:          stdDefAt(o, "platform"),
		ServicesType:      stdDefAt(o, "servicesType"),
		API:               stdDefAt(o, "api"),
		DeprecationPolicy: stdDefAt(o, "deprecationPolicy"),
		SLO:               stdDefAt(o, "slo"),
		Extensions:        o.extensions(PromiseKeys),
	}
}

func decodeExpectations(o object) Expectations {
	return Expectations{
		Audience:   stdDefAt(o, "audience"),
		Usage:      stdDefAt(o, "usage"),
		Extensions: o.extensions(ExpectationKeys),
	}
}

func decodeObligations(o object) Obligations {
	return Obligations{
		TermsAndConditions: stdDefAt(o, "termsAndConditions"),
		BillingPolicy:      stdDefAt(o, "billingPolicy"),
		SLA:                stdDefAt(o, "sla"),
		Extensions:         o.extensions(ObligationKeys),
	}
}

func decodePort(o object) Port {
	p := Port{Entity: decodeEntity(o, portKeys)}
	if v, ok := o["promises"]; ok {
		p.Promises = decodeOrRef(v, decodePromises)
	}
	if v, ok := o["expectations"]; ok {
		p.Expectations = decodeOrRef(v, decodeExpectations)
	}
	if v, ok := o["obligations"]; ok {
		p.Obligations = decodeOrRef(v, decodeObligations)
	}
	return p
}

func decodeApplicationComponent(o object) ApplicationComponent {
	return ApplicationComponent{
		Entity:          decodeEntity(o, appCompKeys),
		Platform:        o.str("platform"),
		ApplicationType: o.str("applicationType"),
		ConsumesFrom:    o.strs("consumesFrom"),
		ProvidesTo:      o.strs("providesTo"),
		DependsOn:       o.strs("dependsOn"),
	}
}

func decodeInfrastructuralComponent(o object) InfrastructuralComponent {
	return InfrastructuralComponent{
		Entity:             decodeEntity(o, infraCompKeys),
		Platform:           o.str("platform"),
		InfrastructureType: o.str("infrastructureType"),
		DependsOn:          o.strs("dependsOn"),
	}
}

func decodeList[T any](l []any, inline func(object) T) []OrRef[T] {
	if l == nil {
		return nil
	}
	out := make([]OrRef[T], 0, len(l))
	for _, e := range l {
		if r := decodeOrRef(e, inline); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func decodeInterfaceComponents(o object) InterfaceComponents {
	return InterfaceComponents{
		InputPorts:         decodeList(o.list("inputPorts"), decodePort),
		OutputPorts:        decodeList(o.list("outputPorts"), decodePort),
		DiscoveryPorts:     decodeList(o.list("discoveryPorts"), decodePort),
		ObservabilityPorts: decodeList(o.list("observabilityPorts"), decodePort),
		ControlPorts:       decodeList(o.list("controlPorts"), decodePort),
		Extensions:         o.extensions(portKindKeys()),
	}
}

func portKindKeys() []string {
	keys := make([]string, len(PortKinds))
	for i, k := range PortKinds {
		keys[i] = string(k)
	}
	return keys
}

func decodeTask(o object) LifecycleTaskInfo {
	t := LifecycleTaskInfo{
		Name:       o.str("name"),
		Order:      o.num("order"),
		Extensions: o.extensions(taskKeys),
	}
	if svc, ok := o.obj("service"); ok {
		t.Service = decodeExternalResource(svc)
	}
	t.Template = stdDefAt(o, "template")
	if v, ok := o["configurations"]; ok {
		t.Configurations = decodeOrRef(v, func(c object) map[string]any { return c })
	}
	return t
}

func decodeInternalComponents(o object) *InternalComponents {
	ic := &InternalComponents{
		ApplicationComponents:     decodeList(o.list("applicationComponents"), decodeApplicationComponent),
		InfrastructuralComponents: decodeList(o.list("infrastructuralComponents"), decodeInfrastructuralComponent),
		Extensions:                o.extensions(internalKeys),
	}
	if stages, ok := o.obj("lifecycleInfo"); ok {
		ic.LifecycleInfo = make(map[string][]LifecycleTaskInfo, len(stages))
		for _, stage := range sortedKeys(stages) {
			tasks, _ := stages[stage].([]any)
			decoded := make([]LifecycleTaskInfo, 0, len(tasks))
			for _, e := range tasks {
				if m, ok := e.(map[string]any); ok {
					decoded = append(decoded, decodeTask(m))
				}
			}
			ic.LifecycleInfo[stage] = decoded
		}
	}
	return ic
}

func decodeMap[T any](o object, key string, inline func(object) T) map[string]T {
	m, ok := o.obj(key)
	if !ok {
		return nil
	}
	out := make(map[string]T, len(m))
	for k, v := range m {
		if e, ok := v.(map[string]any); ok {
			out[k] = inline(e)
		}
	}
	return out
}

func decodeComponents(o object) *Components {
	return &Components{
		InputPorts:                decodeMap(o, "inputPorts", decodePort),
		OutputPorts:               decodeMap(o, "outputPorts", decodePort),
		DiscoveryPorts:            decodeMap(o, "discoveryPorts", decodePort),
		ObservabilityPorts:        decodeMap(o, "observabilityPorts", decodePort),
		ControlPorts:              decodeMap(o, "controlPorts", decodePort),
		ApplicationComponents:     decodeMap(o, "applicationComponents", decodeApplicationComponent),
		InfrastructuralComponents: decodeMap(o, "infrastructuralComponents", decodeInfrastructuralComponent),
		Extensions:                o.extensions(componentKeys),
	}
}
