// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema loads JSON Schema documents and checks normalized schemas:
// typed traversal, dangling local references, and a draft 2020-12 compile.
package jschema

import (
	"fmt"
	"io/fs"

	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is a typed JSON Schema document.
type Schema = jsonschema.Schema

// Loader loads schema documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile reads a schema document as a generic tree. The format is
// determined from the file extension.
func (l *Loader) LoadFile(filePath string) (any, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	v, err := descriptor.ParserFor(filePath).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return v, nil
}

// FromValue converts a generic tree into a typed Schema.
func FromValue(v any) (*Schema, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &s, nil
}
