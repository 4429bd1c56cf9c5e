/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package htmlx builds small HTML fragments as safehtml.HTML values.
//
// Tag and attribute names are fixed by the caller's code and must be plain
// lower-case names. Every attribute value and every Text node is escaped with
// Escape; the only way to insert unescaped markup is Trusted.
package htmlx

import (
	"fmt"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// Attr is a single attribute. Value is always escaped.
type Attr struct {
	Name  string
	Value string
}

// Escape escapes &, <, >, " and ' in s.
func Escape(s string) string {
	return safehtml.HTMLEscaped(s).String()
}

// Text returns s as an escaped text node.
func Text(s string) safehtml.HTML {
	return safehtml.HTMLEscaped(s)
}

// Trusted wraps caller-provided markup without escaping it.
func Trusted(markup string) safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(markup)
}

// Element renders <tag attrs...>children</tag>.
func Element(tag string, attrs []Attr, children ...safehtml.HTML) safehtml.HTML {
	mustBeName(tag)

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	for _, a := range attrs {
		mustBeName(a.Name)
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(Escape(a.Value))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	for _, c := range children {
		sb.WriteString(c.String())
	}
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
	return Trusted(sb.String())
}

// Join concatenates fragments with a literal separator between them.
func Join(parts []safehtml.HTML, sep string) safehtml.HTML {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = p.String()
	}
	return Trusted(strings.Join(strs, Escape(sep)))
}

// Class joins class names, dropping empty ones and surplus whitespace.
func Class(names ...string) string {
	return strings.Join(strings.Fields(strings.Join(names, " ")), " ")
}

func mustBeName(name string) {
	if name == "" {
		panic("htmlx: empty name")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			panic(fmt.Sprintf("htmlx: invalid name %q", name))
		}
	}
}
