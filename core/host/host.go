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

// Package host defines the output port towards the host process and the two
// value shapes published through it.
package host

import (
	"encoding/json"
	"maps"

	"github.com/google/tablebridge/core/args"
)

// Port is the host side of the bridge. Both calls are fire-and-forget.
type Port interface {
	// PublishValue replaces the host's current value.
	PublishValue(v Value)
	// RequestFrameResize asks the host to re-measure the embedding frame.
	RequestFrameResize()
}

// Value is a value published to the host: a SelectionValue or an ActionValue.
// The host tells them apart by the presence of an "action" key.
type Value interface {
	json.Marshaler
	isValue()
}

// SelectionValue is the normalized current selection.
type SelectionValue struct {
	Rows    []args.Row `json:"rows"`
	Indexes []int      `json:"indexes"`
	Count   int        `json:"count"`
}

// NewSelectionValue builds a SelectionValue from parallel rows and indexes.
// Count is always len(rows).
func NewSelectionValue(rows []args.Row, indexes []int) SelectionValue {
	if rows == nil {
		rows = []args.Row{}
	}
	if indexes == nil {
		indexes = []int{}
	}
	return SelectionValue{Rows: rows, Indexes: indexes, Count: len(rows)}
}

// EmptySelection is the value the host holds before any interaction.
func EmptySelection() SelectionValue {
	return NewSelectionValue(nil, nil)
}

func (SelectionValue) isValue() {}

func (v SelectionValue) MarshalJSON() ([]byte, error) {
	type plain SelectionValue
	return json.Marshal(plain(NewSelectionValue(v.Rows, v.Indexes)))
}

// ActionValue is published when an action button is clicked.
type ActionValue struct {
	Row      args.Row
	Action   string
	RowIndex int
}

func (ActionValue) isValue() {}

// Fields returns the row fields merged with "action" and "_rowIndex". The two
// extra keys win over row fields of the same name.
func (v ActionValue) Fields() map[string]any {
	fields := make(map[string]any, len(v.Row)+2)
	maps.Copy(fields, v.Row)
	fields["action"] = v.Action
	fields["_rowIndex"] = v.RowIndex
	return fields
}

func (v ActionValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Fields())
}
