// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"fmt"
	"sort"
)

// CodeInvalidUnion is reported when a union has no arm applicable to a value.
const CodeInvalidUnion = "invalid_union"

// Validate checks v against the model's root node. On success it returns v
// unchanged; otherwise it returns a non-empty Issues error in preorder: a
// violation at a node comes before violations of its children, and object
// members are visited in declaration order.
func (m *Model) Validate(v any) (any, error) {
	return m.ValidateNode(m.root, v)
}

// ValidateNode checks v against the node addressed by h.
func (m *Model) ValidateNode(h Handle, v any) (any, error) {
	vd := &validator{model: m}
	vd.check(h, v, nil)
	if len(vd.issues) > 0 {
		return nil, vd.issues
	}
	return v, nil
}

type validator struct {
	model  *Model
	issues Issues
}

func (vd *validator) add(p Path, code, msg string) {
	vd.issues = append(vd.issues, Issue{Path: p, Code: code, Message: msg})
}

func (vd *validator) typeMismatch(p Path, expected string, v any) {
	vd.add(p, CodeInvalidType, fmt.Sprintf("Expected %s, received %s", expected, kindOf(v)))
}

func (vd *validator) check(h Handle, v any, p Path) {
	n := vd.model.nodes[h]
	switch n.Kind {
	case KindAny:
	case KindString:
		s, ok := v.(string)
		if !ok {
			vd.typeMismatch(p, "string", v)
			return
		}
		if n.Format != "" && !n.Format.Match(s) {
			vd.add(p, CodeInvalidFormat, n.Format.Message(fieldName(p)))
		}
	case KindNumber:
		if !isNumber(v) {
			vd.typeMismatch(p, "number", v)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			vd.typeMismatch(p, "boolean", v)
		}
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			vd.typeMismatch(p, "object", v)
			return
		}
		for _, f := range n.Fields {
			fv, present := obj[f.Key]
			if !present {
				if f.Required {
					vd.add(p.Field(f.Key), CodeRequired, "Required")
				}
				continue
			}
			vd.check(f.Type, fv, p.Field(f.Key))
		}
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			vd.typeMismatch(p, "array", v)
			return
		}
		for i, elem := range arr {
			vd.check(n.Elem, elem, p.Index(i))
		}
	case KindMap:
		obj, ok := v.(map[string]any)
		if !ok {
			vd.typeMismatch(p, "object", v)
			return
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			vd.check(n.Elem, obj[k], p.Field(k))
		}
	case KindUnion:
		vd.checkUnion(n, v, p)
	}
}

// checkUnion selects a discriminated arm when the value carries its key and
// validates against it alone. Otherwise the undiscriminated arms are tried in
// order; the first one without issues wins, and if none does the first arm's
// issues are reported.
func (vd *validator) checkUnion(n Node, v any, p Path) {
	if obj, ok := v.(map[string]any); ok {
		for _, arm := range n.Arms {
			if arm.When == "" {
				continue
			}
			if _, present := obj[arm.When]; present {
				vd.check(arm.Type, v, p)
				return
			}
		}
	}

	var first Issues
	tried := false
	for _, arm := range n.Arms {
		if arm.When != "" {
			continue
		}
		sub := &validator{model: vd.model}
		sub.check(arm.Type, v, p)
		if len(sub.issues) == 0 {
			return
		}
		if !tried {
			first = sub.issues
			tried = true
		}
	}
	if !tried {
		if len(n.Arms) == 0 {
			return
		}
		vd.add(p, CodeInvalidUnion, "Invalid input")
		return
	}
	vd.issues = append(vd.issues, first...)
}

func fieldName(p Path) string {
	if len(p) == 0 {
		return "value"
	}
	return p[len(p)-1]
}

type number interface {
	Float64() (float64, error)
	Int64() (int64, error)
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case number:
		return true
	}
	return false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if isNumber(v) {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
