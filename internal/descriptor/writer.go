// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package descriptor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FileBase is the base name of a descriptor file written by Writer.Write.
const FileBase = "dpds"

// ErrExists is returned when a write would replace an existing file.
var ErrExists = errors.New("file already exists")

// Writer encodes a document tree.
type Writer struct {
	encode    func(w io.Writer, v any) error
	extension string
}

var (
	// JSONWriter writes documents as indented JSON.
	JSONWriter = Writer{encodeJSON, ".json"}
	// YAMLWriter writes documents as YAML.
	YAMLWriter = Writer{encodeYAML, ".yaml"}
)

// WriterFor picks a writer from the file extension, like ParserFor.
func WriterFor(path string) Writer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLWriter
	default:
		return JSONWriter
	}
}

// Extension returns the file extension including the dot.
func (wr Writer) Extension() string { return wr.extension }

// Encode writes v to w.
func (wr Writer) Encode(w io.Writer, v any) error {
	return wr.encode(w, v)
}

// Write encodes d into dir as dpds.<ext> and returns the written path. An
// existing file is never replaced.
func (wr Writer) Write(d *Descriptor, dir string) (string, error) {
	if d == nil {
		return "", errors.New("nil descriptor")
	}
	path := filepath.Join(dir, FileBase+wr.extension)
	if err := wr.WriteFile(path, d.Value(), false); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile encodes v to path, creating parent directories as needed.
func (wr Writer) WriteFile(path string, v any, overwrite bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644) //nolint:gosec // path is chosen by the user
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return wr.encode(f, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
