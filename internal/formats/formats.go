// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package formats provides the string format predicates used by descriptor
// validation: UUIDs, fully qualified names, identifiers, versions and URIs.
//
// A predicate only judges a value that is present. Absence is never a format
// violation, so Valid reports true for a nil value.
package formats

import (
	"fmt"
	"regexp"
)

// Format names a string format with a fixed pattern.
type Format string

const (
	// UUID is an RFC 4122 textual UUID (8-4-4-4-12 hex digits).
	UUID Format = "uuid"
	// FullyQualifiedName is the DPDS URN:
	// urn:dpds:<namespace>:dataproducts:<name>:<major>[:(input|output)ports:<port>].
	FullyQualifiedName Format = "fqn"
	// Alphanumeric is a non-empty run of ASCII letters and digits.
	Alphanumeric Format = "alphanumeric"
	// Domain is a dotted sequence of labels such as "org.example".
	Domain Format = "domain"
	// CamelCase is an identifier starting with a lower-case letter.
	CamelCase Format = "camelCase"
	// SemVer is a semantic version (https://semver.org).
	SemVer Format = "semver"
	// URI is an absolute URI with a scheme.
	URI Format = "uri"
	// URIReference is an absolute URI, a relative path or a fragment.
	URIReference Format = "uri-reference"
)

var patterns = map[Format]*regexp.Regexp{
	UUID:               regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`),
	FullyQualifiedName: regexp.MustCompile(`^urn:dpds:[A-Za-z0-9][\w.-]*:dataproducts:[\w-]*:\d+(?::(?:input|output)ports:[\w-]*)?$`),
	Alphanumeric:       regexp.MustCompile(`^[A-Za-z0-9]+$`),
	Domain:             regexp.MustCompile(`^[A-Za-z0-9](?:[\w-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[\w-]*[A-Za-z0-9])?)*$`),
	CamelCase:          regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`),
	SemVer: regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`),
	URI:          regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:[^\s]*$`),
	URIReference: regexp.MustCompile(`^(?:[A-Za-z][A-Za-z0-9+.-]*:[^\s]*|[^\s:/?#]*(?:[/?#][^\s]*)?)$`),
}

var messages = map[Format]string{
	UUID:               "%s must be a valid UUID",
	FullyQualifiedName: "%s must be a valid fully qualified name (urn:dpds:<namespace>:dataproducts:<name>:<major-version>)",
	Alphanumeric:       "%s must contain only alphanumeric characters",
	Domain:             "%s must be a valid domain",
	CamelCase:          "%s must be in camelCase format",
	SemVer:             "%s must follow semantic versioning format",
	URI:                "%s must be a valid absolute URI",
	URIReference:       "%s must be a valid URI reference",
}

// Known reports whether f is one of the formats defined by this package.
func (f Format) Known() bool {
	_, ok := patterns[f]
	return ok
}

// Match reports whether s has the shape of f. Unknown formats match anything.
func (f Format) Match(s string) bool {
	re, ok := patterns[f]
	if !ok {
		return true
	}
	return re.MatchString(s)
}

// Valid is the optional-aware predicate: a nil value is always valid.
func (f Format) Valid(s *string) bool {
	if s == nil {
		return true
	}
	return f.Match(*s)
}

// Message returns the violation message for field.
func (f Format) Message(field string) string {
	tmpl, ok := messages[f]
	if !ok {
		return fmt.Sprintf("%s has an invalid %s format", field, f)
	}
	return fmt.Sprintf(tmpl, field)
}
