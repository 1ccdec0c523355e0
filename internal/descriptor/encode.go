// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package descriptor

// Value converts d back into a generic document tree suitable for the
// writers. Extensions are written first so a known member always wins over a
// residual one with the same key. Empty optional strings are omitted.
func (d *Descriptor) Value() map[string]any {
	m := newMembers(d.Extensions)
	m.str("dataProductDescriptor", d.DataProductDescriptor)
	m.set("info", encodeInfo(d.Info))
	m.set("interfaceComponents", encodeInterfaceComponents(d.InterfaceComponents))
	if d.InternalComponents != nil {
		m.set("internalComponents", encodeInternalComponents(*d.InternalComponents))
	}
	if d.Components != nil {
		m.set("components", encodeComponents(*d.Components))
	}
	m.strs("tags", d.Tags)
	if d.ExternalDocs != nil {
		m.set("externalDocs", encodeExternalResource(*d.ExternalDocs))
	}
	return m
}

type members map[string]any

func newMembers(ext Extensions) members {
	m := make(members, len(ext))
	for _, e := range ext {
		m[e.Key] = e.Value
	}
	return m
}

func (m members) set(key string, v any) { m[key] = v }

func (m members) str(key, v string) {
	if v != "" {
		m[key] = v
	}
}

func (m members) strs(key string, v []string) {
	if v == nil {
		return
	}
	l := make([]any, len(v))
	for i, s := range v {
		l[i] = s
	}
	m[key] = l
}

func encodeOrRef[T any](o *OrRef[T], inline func(T) members) (members, bool) {
	switch {
	case o == nil:
		return nil, false
	case o.Reference != nil:
		return encodeReference(*o.Reference), true
	case o.Value != nil:
		return inline(*o.Value), true
	}
	return nil, false
}

func setOrRef[T any](m members, key string, o *OrRef[T], inline func(T) members) {
	if v, ok := encodeOrRef(o, inline); ok {
		m[key] = map[string]any(v)
	}
}

func encodeList[T any](l []OrRef[T], inline func(T) members) []any {
	out := make([]any, 0, len(l))
	for i := range l {
		if v, ok := encodeOrRef(&l[i], inline); ok {
			out = append(out, map[string]any(v))
		}
	}
	return out
}

func encodeMap[T any](m map[string]T, inline func(T) members) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = map[string]any(inline(v))
	}
	return out
}

func encodeReference(r Reference) members {
	m := newMembers(r.Extensions)
	m.set("$ref", r.Ref)
	m.str("mediaType", r.MediaType)
	m.str("description", r.Description)
	return m
}

func encodeExternalResource(r ExternalResource) map[string]any {
	m := newMembers(r.Extensions)
	m.str("description", r.Description)
	m.str("mediaType", r.MediaType)
	m.set("$href", r.Href)
	return m
}

func encodeInfo(info Info) map[string]any {
	m := newMembers(info.Extensions)
	m.set("fullyQualifiedName", info.FullyQualifiedName)
	m.set("name", info.Name)
	m.set("version", info.Version)
	m.set("domain", info.Domain)
	owner := newMembers(info.Owner.Extensions)
	owner.set("id", info.Owner.ID)
	owner.str("name", info.Owner.Name)
	m.set("owner", map[string]any(owner))
	m.str("displayName", info.DisplayName)
	m.str("description", info.Description)
	if info.ContactPoints != nil {
		cps := make([]any, len(info.ContactPoints))
		for i, cp := range info.ContactPoints {
			c := newMembers(cp.Extensions)
			c.str("name", cp.Name)
			c.str("description", cp.Description)
			c.str("channel", cp.Channel)
			c.str("address", cp.Address)
			cps[i] = map[string]any(c)
		}
		m.set("contactPoints", cps)
	}
	return m
}

func encodeEntity(e Entity) members {
	m := newMembers(e.Extensions)
	m.str("id", e.ID)
	m.str("fullyQualifiedName", e.FullyQualifiedName)
	m.str("entityType", e.EntityType)
	m.set("name", e.Name)
	m.set("version", e.Version)
	m.str("displayName", e.DisplayName)
	m.str("description", e.Description)
	m.str("componentGroup", e.ComponentGroup)
	m.strs("tags", e.Tags)
	if e.ExternalDocs != nil {
		m.set("externalDocs", encodeExternalResource(*e.ExternalDocs))
	}
	return m
}

func encodeStandardDefinition(sd StandardDefinition) members {
	m := encodeEntity(sd.Entity)
	m.set("specification", sd.Specification)
	m.str("specificationVersion", sd.SpecificationVersion)
	if sd.Definition.IsText() {
		m.set("definition", sd.Definition.Text)
	} else {
		m.set("definition", sd.Definition.Object)
	}
	return m
}

func encodePromises(p Promises) members {
	m := newMembers(p.Extensions)
	setOrRef(m, "platform", p.Platform, encodeStandardDefinition)
	setOrRef(m, "servicesType", p.ServicesType, encodeStandardDefinition)
	setOrRef(m, "api", p.API, encodeStandardDefinition)
	setOrRef(m, "deprecationPolicy", p.DeprecationPolicy, encodeStandardDefinition)
	setOrRef(m, "slo", p.SLO, encodeStandardDefinition)
	return m
}

func encodeExpectations(e Expectations) members {
	m := newMembers(e.Extensions)
	setOrRef(m, "audience", e.Audience, encodeStandardDefinition)
	setOrRef(m, "usage", e.Usage, encodeStandardDefinition)
	return m
}

func encodeObligations(o Obligations) members {
	m := newMembers(o.Extensions)
	setOrRef(m, "termsAndConditions", o.TermsAndConditions, encodeStandardDefinition)
	setOrRef(m, "billingPolicy", o.BillingPolicy, encodeStandardDefinition)
	setOrRef(m, "sla", o.SLA, encodeStandardDefinition)
	return m
}

func encodePort(p Port) members {
	m := encodeEntity(p.Entity)
	setOrRef(m, "promises", p.Promises, encodePromises)
	setOrRef(m, "expectations", p.Expectations, encodeExpectations)
	setOrRef(m, "obligations", p.Obligations, encodeObligations)
	return m
}

func encodeApplicationComponent(c ApplicationComponent) members {
	m := encodeEntity(c.Entity)
	m.str("platform", c.Platform)
	m.str("applicationType", c.ApplicationType)
	m.strs("consumesFrom", c.ConsumesFrom)
	m.strs("providesTo", c.ProvidesTo)
	m.strs("dependsOn", c.DependsOn)
	return m
}

func encodeInfrastructuralComponent(c InfrastructuralComponent) members {
	m := encodeEntity(c.Entity)
	m.str("platform", c.Platform)
	m.str("infrastructureType", c.InfrastructureType)
	m.strs("dependsOn", c.DependsOn)
	return m
}

func encodeInterfaceComponents(ic InterfaceComponents) map[string]any {
	m := newMembers(ic.Extensions)
	for _, kind := range PortKinds {
		ports := ic.Ports(kind)
		if ports == nil && kind != OutputPort {
			continue
		}
		m.set(string(kind), encodeList(ports, encodePort))
	}
	return m
}

func encodeTask(t LifecycleTaskInfo) map[string]any {
	m := newMembers(t.Extensions)
	m.str("name", t.Name)
	if t.Order != nil {
		m.set("order", *t.Order)
	}
	if t.Service != nil {
		m.set("service", encodeExternalResource(*t.Service))
	}
	setOrRef(m, "template", t.Template, encodeStandardDefinition)
	setOrRef(m, "configurations", t.Configurations, func(c map[string]any) members { return c })
	return m
}

func encodeInternalComponents(ic InternalComponents) map[string]any {
	m := newMembers(ic.Extensions)
	if ic.LifecycleInfo != nil {
		stages := make(map[string]any, len(ic.LifecycleInfo))
		for stage, tasks := range ic.LifecycleInfo {
			l := make([]any, len(tasks))
			for i, t := range tasks {
				l[i] = encodeTask(t)
			}
			stages[stage] = l
		}
		m.set("lifecycleInfo", stages)
	}
	if ic.ApplicationComponents != nil {
		m.set("applicationComponents", encodeList(ic.ApplicationComponents, encodeApplicationComponent))
	}
	if ic.InfrastructuralComponents != nil {
		m.set("infrastructuralComponents", encodeList(ic.InfrastructuralComponents, encodeInfrastructuralComponent))
	}
	return m
}

func encodeComponents(c Components) map[string]any {
	m := newMembers(c.Extensions)
	for _, kind := range PortKinds {
		if ports := c.Ports(kind); ports != nil {
			m.set(string(kind), encodeMap(ports, encodePort))
		}
	}
	if c.ApplicationComponents != nil {
		m.set("applicationComponents", encodeMap(c.ApplicationComponents, encodeApplicationComponent))
	}
	if c.InfrastructuralComponents != nil {
		m.set("infrastructuralComponents", encodeMap(c.InfrastructuralComponents, encodeInfrastructuralComponent))
	}
	return m
}
