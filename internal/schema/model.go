// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema provides a declarative structural schema model and a
// validation engine that checks JSON-compatible values against it.
//
// A Model is an immutable graph of nodes addressed by Handle. Named nodes can
// be declared before they are defined, so definitions that refer to each
// other are expressed as edges in the graph rather than as recursive closures.
package schema

import (
	"errors"
	"fmt"

	"github.com/dacolabs/dpds/internal/formats"
)

// Kind is the structural kind of a node.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindObject
	KindArray
	KindMap
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindUnion:
		return "union"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handle addresses a node inside a Model.
type Handle int

// NoHandle is the zero-value placeholder for an unset element type.
const NoHandle Handle = -1

// Field is a named member of an object node.
type Field struct {
	Key      string
	Type     Handle
	Required bool
}

// Required declares a required object member.
func Required(key string, t Handle) Field {
	return Field{Key: key, Type: t, Required: true}
}

// Optional declares an optional object member.
func Optional(key string, t Handle) Field {
	return Field{Key: key, Type: t}
}

// Arm is one branch of a union node. An arm with a non-empty When key is
// discriminated: it is selected exclusively when the value is an object that
// carries that key, and never tried otherwise.
type Arm struct {
	Type Handle
	When string
}

// Node describes one schema node.
type Node struct {
	Name   string
	Kind   Kind
	Format formats.Format // KindString only
	// Fields are visited in declaration order (KindObject).
	Fields []Field
	// Passthrough objects keep unknown keys; they are never rejected either way.
	Passthrough bool
	Elem        Handle // KindArray, KindMap
	Arms        []Arm  // KindUnion
}

// Model is an immutable schema graph with a root node.
type Model struct {
	nodes []Node
	names map[string]Handle
	root  Handle
}

// Root returns the root node handle.
func (m *Model) Root() Handle { return m.root }

// Node returns the node addressed by h.
func (m *Model) Node(h Handle) Node { return m.nodes[h] }

// Lookup finds a named node.
func (m *Model) Lookup(name string) (Handle, bool) {
	h, ok := m.names[name]
	return h, ok
}

// Len returns the number of nodes in the graph.
func (m *Model) Len() int { return len(m.nodes) }

// Builder assembles a Model.
type Builder struct {
	nodes   []Node
	names   map[string]Handle
	pending map[Handle]string
	errs    []error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		names:   make(map[string]Handle),
		pending: make(map[Handle]string),
	}
}

func (b *Builder) add(n Node) Handle {
	h := Handle(len(b.nodes))
	b.nodes = append(b.nodes, n)
	if n.Name != "" {
		if _, exists := b.names[n.Name]; exists {
			b.errs = append(b.errs, fmt.Errorf("duplicate node name %q", n.Name))
		} else {
			b.names[n.Name] = h
		}
	}
	return h
}

// Declare reserves a named node that is filled in later with Define.
func (b *Builder) Declare(name string) Handle {
	h := b.add(Node{Name: name, Kind: KindAny})
	b.pending[h] = name
	return h
}

// Define fills a node previously reserved with Declare.
func (b *Builder) Define(h Handle, n Node) {
	name, ok := b.pending[h]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("node %d was not declared or is already defined", h))
		return
	}
	n.Name = name
	b.nodes[h] = n
	delete(b.pending, h)
}

// Any accepts every value.
func (b *Builder) Any() Handle { return b.add(Node{Kind: KindAny, Elem: NoHandle}) }

// String accepts strings.
func (b *Builder) String() Handle { return b.add(Node{Kind: KindString, Elem: NoHandle}) }

// StringFormat accepts strings matching f.
func (b *Builder) StringFormat(f formats.Format) Handle {
	return b.add(Node{Kind: KindString, Format: f, Elem: NoHandle})
}

// Number accepts JSON numbers.
func (b *Builder) Number() Handle { return b.add(Node{Kind: KindNumber, Elem: NoHandle}) }

// Boolean accepts true and false.
func (b *Builder) Boolean() Handle { return b.add(Node{Kind: KindBoolean, Elem: NoHandle}) }

// Object adds an object node. An empty name leaves the node anonymous.
func (b *Builder) Object(name string, passthrough bool, fields ...Field) Handle {
	return b.add(Node{Name: name, Kind: KindObject, Fields: fields, Passthrough: passthrough, Elem: NoHandle})
}

// ObjectNode returns an object node for use with Define.
func ObjectNode(passthrough bool, fields ...Field) Node {
	return Node{Kind: KindObject, Fields: fields, Passthrough: passthrough, Elem: NoHandle}
}

// Array adds a sequence whose elements match elem.
func (b *Builder) Array(elem Handle) Handle {
	return b.add(Node{Kind: KindArray, Elem: elem})
}

// Map adds a string-keyed mapping whose values match elem.
func (b *Builder) Map(elem Handle) Handle {
	return b.add(Node{Kind: KindMap, Elem: elem})
}

// Union adds a union node.
func (b *Builder) Union(name string, arms ...Arm) Handle {
	return b.add(Node{Name: name, Kind: KindUnion, Arms: arms, Elem: NoHandle})
}

// Build checks the graph and returns the Model rooted at root.
func (b *Builder) Build(root Handle) (*Model, error) {
	errs := append([]error(nil), b.errs...)
	for h, name := range b.pending {
		errs = append(errs, fmt.Errorf("node %q (%d) declared but never defined", name, h))
	}
	valid := func(h Handle) bool { return h >= 0 && int(h) < len(b.nodes) }
	if !valid(root) {
		errs = append(errs, fmt.Errorf("root handle %d out of range", root))
	}
	for i, n := range b.nodes {
		for _, f := range n.Fields {
			if !valid(f.Type) {
				errs = append(errs, fmt.Errorf("node %d field %q: handle %d out of range", i, f.Key, f.Type))
			}
		}
		if (n.Kind == KindArray || n.Kind == KindMap) && !valid(n.Elem) {
			errs = append(errs, fmt.Errorf("node %d: element handle %d out of range", i, n.Elem))
		}
		for _, a := range n.Arms {
			if !valid(a.Type) {
				errs = append(errs, fmt.Errorf("node %d: union arm handle %d out of range", i, a.Type))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	names := make(map[string]Handle, len(b.names))
	for k, v := range b.names {
		names[k] = v
	}
	return &Model{
		nodes: append([]Node(nil), b.nodes...),
		names: names,
		root:  root,
	}, nil
}
