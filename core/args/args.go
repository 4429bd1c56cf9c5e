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

// Package args holds the argument bundle a host supplies once per render
// cycle. A Bundle is never mutated after Parse returns it.
package args

import (
	"encoding/json"
	"errors"
)

// ErrInvalidBundle is returned when the bundle is not a JSON object or one of
// its required fields has the wrong shape.
var ErrInvalidBundle = errors.New("invalid argument bundle")

const (
	DefaultPageLength = 50
	DefaultNonce      = Nonce("0")
)

// DefaultLengthMenu is the page length menu used when the bundle has none.
var DefaultLengthMenu = []int{10, 25, 50, 100}

// Row is one data row keyed by column name. Values are JSON-compatible:
// float64, string, bool, nil, []any or map[string]any.
type Row = map[string]any

// SelectMode is the row selection behaviour of the table.
type SelectMode int

const (
	SelectDisabled SelectMode = iota
	SelectSingle
	SelectMulti
)

func (m SelectMode) String() string {
	switch m {
	case SelectSingle:
		return "single"
	case SelectMulti:
		return "multi"
	default:
		return "disabled"
	}
}

// Enabled reports whether the user can select rows at all.
func (m SelectMode) Enabled() bool {
	return m != SelectDisabled
}

// ParseSelectMode maps the textual selection modes. Anything unknown disables
// selection.
func ParseSelectMode(s string) SelectMode {
	switch s {
	case "single":
		return SelectSingle
	case "multi", "os":
		return SelectMulti
	default:
		return SelectDisabled
	}
}

// Direction is the layout direction of the buttons inside an actions cell.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Button describes one per-row action button.
type Button struct {
	ID        string
	ClassName string
	Title     string
	SVG       string // trusted inline markup, rendered verbatim
	Text      string
}

// ActionsConfig configures the synthetic actions column.
type ActionsConfig struct {
	Buttons     []Button
	InsertIndex int
	// HideWhenSelectSingle is accepted and carried but has no effect yet.
	HideWhenSelectSingle bool
	Direction            Direction
}

// Nonce is the raw JSON token of reset_nonce. Only inequality matters.
type Nonce string

// Bundle is the immutable argument bundle for one render cycle.
type Bundle struct {
	Columns    []string
	Data       []Row
	Orderable  []string
	Hidden     []string
	Searchable []string
	Select     SelectMode
	Actions    *ActionsConfig
	ResetNonce Nonce

	PageLength  int
	LengthMenu  []int
	ScrollX     any
	ScrollY     any
	DeferRender bool
	Layout      json.RawMessage
	Key         string
}

// WithResetNonce returns a shallow copy of the bundle carrying nonce n.
func (b *Bundle) WithResetNonce(n Nonce) *Bundle {
	cp := *b
	cp.ResetNonce = n
	return &cp
}
