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

// Package actions synthesizes the per-row actions column: a non-data column
// whose cells all carry the same fragment of buttons. Clicks are told apart
// by the owning row, not by the markup.
package actions

import (
	"strings"

	"github.com/google/safehtml"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/columns"
	"github.com/google/tablebridge/core/htmlx"
)

// CSS classes and attributes shared with stylesheets and click resolution.
const (
	ClassButton     = "row-action-btn"
	ClassIcon       = "icon-btn"
	ClassText       = "text-btn"
	ClassIconLabel  = "icon-label-btn"
	ClassWrap       = "actions-wrap"
	ClassCell       = "actions-cell"
	ClassLabel      = "btn-label"
	AttrAction      = "data-action"
	ColumnTitle     = "Actions"
	ButtonSelector  = "." + ClassButton
	buttonSeparator = "\n"
)

// RenderButton renders a single button. It reports false when the button has
// neither inline markup nor non-blank label text.
func RenderButton(b args.Button) (safehtml.HTML, bool) {
	hasSVG := b.SVG != ""
	hasText := strings.TrimSpace(b.Text) != ""
	if !hasSVG && !hasText {
		return safehtml.HTML{}, false
	}

	var kind string
	switch {
	case hasSVG && hasText:
		kind = ClassIconLabel
	case hasSVG:
		kind = ClassIcon
	default:
		kind = ClassText
	}

	attrs := []htmlx.Attr{
		{Name: "class", Value: htmlx.Class(ClassButton, kind, b.ClassName)},
		{Name: AttrAction, Value: b.ID},
		{Name: "aria-label", Value: firstNonEmpty(b.Title, b.Text, b.ID)},
	}
	if b.Title != "" {
		attrs = append(attrs, htmlx.Attr{Name: "title", Value: b.Title})
	}

	var content []safehtml.HTML
	if hasSVG {
		content = append(content, htmlx.Trusted(b.SVG))
	}
	if hasText {
		content = append(content, htmlx.Element("span",
			[]htmlx.Attr{{Name: "class", Value: ClassLabel}},
			htmlx.Text(b.Text)))
	}
	return htmlx.Element("button", attrs, content...), true
}

// RenderButtons renders every renderable button, in configured order, inside
// the direction-classed wrapper.
func RenderButtons(cfg *args.ActionsConfig) safehtml.HTML {
	var buttons []safehtml.HTML
	for _, b := range cfg.Buttons {
		if html, ok := RenderButton(b); ok {
			buttons = append(buttons, html)
		}
	}
	direction := cfg.Direction
	if direction == "" {
		direction = args.Horizontal
	}
	return htmlx.Element("div",
		[]htmlx.Attr{{Name: "class", Value: htmlx.Class(ClassWrap, string(direction))}},
		htmlx.Join(buttons, buttonSeparator))
}

// Column returns the synthetic actions column for cfg. The fragment is
// rendered once and shared by every row.
func Column(cfg *args.ActionsConfig) columns.Descriptor {
	fragment := RenderButtons(cfg)
	return columns.Descriptor{
		Title:     ColumnTitle,
		Data:      nil,
		Orderable: false,
		Visible:   true,
		ClassName: ClassCell,
		Render: func(args.Row, int) safehtml.HTML {
			return fragment
		},
	}
}

// Inject splices the actions column into descriptors at cfg.InsertIndex
// clamped into [0, len(descriptors)]. A nil cfg returns descriptors unchanged.
// The input slice is never modified.
func Inject(descriptors []columns.Descriptor, cfg *args.ActionsConfig) []columns.Descriptor {
	if cfg == nil {
		return descriptors
	}
	at := clamp(cfg.InsertIndex, 0, len(descriptors))

	out := make([]columns.Descriptor, 0, len(descriptors)+1)
	out = append(out, descriptors[:at]...)
	out = append(out, Column(cfg))
	out = append(out, descriptors[at:]...)
	return out
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
