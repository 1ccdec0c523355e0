// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"sort"
	"strings"
)

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *Schema

// Traverse returns an iterator over all schemas in the tree.
// It handles cycles by tracking visited schemas.
// If resolver is provided, it follows $ref links to their targets.
func Traverse(schema *Schema, resolver RefResolver) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		w := walker{resolver: resolver, yield: yield, visited: make(map[*Schema]struct{})}
		w.walk(schema)
	}
}

type walker struct {
	resolver RefResolver
	yield    func(*Schema) bool
	visited  map[*Schema]struct{}
}

func (w *walker) walk(s *Schema) bool {
	if s == nil {
		return true
	}
	if _, ok := w.visited[s]; ok {
		return true
	}
	w.visited[s] = struct{}{}

	if !w.yield(s) {
		return false
	}
	if s.Ref != "" && w.resolver != nil {
		if !w.walk(w.resolver(s.Ref)) {
			return false
		}
	}

	singles := []*Schema{
		s.AdditionalProperties, s.PropertyNames, s.UnevaluatedProperties,
		s.Items, s.AdditionalItems, s.Contains, s.UnevaluatedItems,
		s.Not, s.If, s.Then, s.Else, s.ContentSchema,
	}
	for _, c := range singles {
		if !w.walk(c) {
			return false
		}
	}
	for _, list := range [][]*Schema{s.PrefixItems, s.AllOf, s.AnyOf, s.OneOf} {
		for _, c := range list {
			if !w.walk(c) {
				return false
			}
		}
	}
	// Maps are walked in key order so callers see a stable sequence.
	for _, m := range []map[string]*Schema{s.Properties, s.PatternProperties, s.DependentSchemas, s.Defs, s.Definitions} {
		for _, k := range sortedKeys(m) {
			if !w.walk(m[k]) {
				return false
			}
		}
	}
	return true
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const defsPrefix = "#/$defs/"

// DefName returns the definition name of a "#/$defs/<name>" reference.
func DefName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, defsPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// DanglingRefs returns, sorted and without duplicates, the "#/$defs/<name>"
// references in root that do not name an entry of root's $defs.
func DanglingRefs(root *Schema) []string {
	if root == nil {
		return nil
	}
	resolver := func(ref string) *Schema {
		if name, ok := DefName(ref); ok {
			return root.Defs[name]
		}
		return nil
	}
	seen := make(map[string]struct{})
	var dangling []string
	for s := range Traverse(root, resolver) {
		name, ok := DefName(s.Ref)
		if !ok {
			continue
		}
		if _, defined := root.Defs[name]; defined {
			continue
		}
		if _, dup := seen[s.Ref]; dup {
			continue
		}
		seen[s.Ref] = struct{}{}
		dangling = append(dangling, s.Ref)
	}
	sort.Strings(dangling)
	return dangling
}
