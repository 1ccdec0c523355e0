// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package normalize simplifies JSON Schema documents for form renderers.
//
// The descriptor schema models "T or Reference" members as a two-branch
// oneOf. Renderers cope poorly with that shape, so Normalize collapses it to
// a plain $ref that prefers the concrete type over the generic reference.
package normalize

// ReferenceDef is the $ref of the generic Reference definition.
const ReferenceDef = "#/$defs/reference"

// Normalize returns a normalized copy of node; node itself is not modified.
//
// An object whose oneOf holds exactly two reference objects is replaced by
// {"$ref": target}, dropping its other keys. The target is the second
// branch when the first points at ReferenceDef, otherwise the first. Every
// other object and array is copied with normalized children, and all other
// values pass through.
//
// The oneOf shape is checked again once the children are normalized, since
// a branch may itself collapse into a reference. This keeps Normalize
// idempotent.
func Normalize(node any) any {
	switch n := node.(type) {
	case map[string]any:
		if target, ok := collapse(n); ok {
			return map[string]any{"$ref": target}
		}
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = Normalize(v)
		}
		if target, ok := collapse(out); ok {
			return map[string]any{"$ref": target}
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = Normalize(v)
		}
		return out
	default:
		return node
	}
}

func collapse(obj map[string]any) (string, bool) {
	branches, ok := obj["oneOf"].([]any)
	if !ok || len(branches) != 2 {
		return "", false
	}
	first, ok := refOf(branches[0])
	if !ok {
		return "", false
	}
	second, ok := refOf(branches[1])
	if !ok {
		return "", false
	}
	if first == ReferenceDef {
		return second, true
	}
	return first, true
}

// refOf reports the target of a reference object: an object with a string $ref.
func refOf(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	ref, ok := obj["$ref"].(string)
	return ref, ok
}
