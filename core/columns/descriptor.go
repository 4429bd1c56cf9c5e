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

package columns

import (
	"github.com/google/safehtml"
	"github.com/google/tablebridge/core/args"
)

// RenderFunc produces the cell markup for a row. index is the positional row
// index within the bundle data.
type RenderFunc func(row args.Row, index int) safehtml.HTML

// Descriptor describes one rendered column of the table widget.
type Descriptor struct {
	Title      string     `json:"title"`
	Data       *string    `json:"data"` // nil for synthetic columns that are not row-keyed
	Orderable  bool       `json:"orderable"`
	Visible    bool       `json:"visible"`
	Searchable bool       `json:"searchable"`
	ClassName  string     `json:"className,omitempty"`
	Render     RenderFunc `json:"-"`
}

// Key returns the row key of the column and whether it is bound to row data.
func (d Descriptor) Key() (string, bool) {
	if d.Data == nil {
		return "", false
	}
	return *d.Data, true
}

// Build turns column names and per-column flag sets into descriptors, one per
// name and in the same order. Flag set entries that name no column are ignored.
func Build(names, orderable, hidden, searchable []string) []Descriptor {
	isOrderable := toSet(orderable)
	isHidden := toSet(hidden)
	isSearchable := toSet(searchable)

	descriptors := make([]Descriptor, 0, len(names))
	for _, name := range names {
		key := name
		descriptors = append(descriptors, Descriptor{
			Title:      name,
			Data:       &key,
			Orderable:  isOrderable[name],
			Visible:    !isHidden[name],
			Searchable: isSearchable[name],
		})
	}
	return descriptors
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
