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

package demo

import (
	"encoding/json"
	"fmt"

	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/datasources"
)

// Icons used by the action button presets.
const (
	EyeSVG    = `<svg xmlns="http://www.w3.org/2000/svg" height="24px" viewBox="0 -960 960 960" width="24px" fill="#000000"><path d="M480-320q75 0 127.5-52.5T660-500q0-75-52.5-127.5T480-680q-75 0-127.5 52.5T300-500q0 75 52.5 127.5T480-320Zm0-72q-45 0-76.5-31.5T372-500q0-45 31.5-76.5T480-608q45 0 76.5 31.5T588-500q0 45-31.5 76.5T480-392Zm0 192q-146 0-266-81.5T40-500q54-137 174-218.5T480-800q146 0 266 81.5T920-500q-54 137-174 218.5T480-200Z"/></svg>`
	EditSVG   = `<svg xmlns="http://www.w3.org/2000/svg" height="24px" viewBox="0 -960 960 960" width="24px" fill="#000000"><path d="M120-120v-170l528-527q12-11 26.5-17t30.5-6q16 0 31 6t26 18l55 56q12 11 17.5 26t5.5 30q0 16-5.5 30.5T817-647L290-120H120Zm584-528 56-56-56-56-56 56 56 56Z"/></svg>`
	DeleteSVG = `<svg xmlns="http://www.w3.org/2000/svg" height="24px" viewBox="0 -960 960 960" width="24px" fill="#000000"><path d="M280-120q-33 0-56.5-23.5T200-200v-520h-40v-80h200v-40h240v40h200v80h-40v520q0 33-23.5 56.5T680-120H280Zm80-160h80v-360h-80v360Zm160 0h80v-360h-80v360Z"/></svg>`
)

// ButtonSpec is one action button in a table configuration.
type ButtonSpec struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Text      string `json:"text,omitempty"`
	ClassName string `json:"className,omitempty"`
	SVG       string `json:"svg,omitempty"`
}

// ActionsSpec configures the actions column.
type ActionsSpec struct {
	InsertIndex  int          `json:"insertIndex"`
	BtnDirection string       `json:"btndirection,omitempty"`
	Buttons      []ButtonSpec `json:"buttons"`
}

// Options are the per-table settings combined with a dataset into an
// argument bundle. Select is "single", "multi" or false.
type Options struct {
	PageLength  int             `json:"pageLength"`
	LengthMenu  []int           `json:"lengthMenu"`
	Orderable   []string        `json:"orderable"`
	Hidden      []string        `json:"hidden"`
	Searchable  []string        `json:"searchable"`
	Select      any             `json:"select"`
	ScrollX     any             `json:"scrollX"`
	ScrollY     any             `json:"scrollY"`
	DeferRender bool            `json:"deferRender"`
	Layout      json.RawMessage `json:"layout,omitempty"`
	Actions     *ActionsSpec    `json:"actions,omitempty"`
	Key         string          `json:"key,omitempty"`
}

// DefaultOptions returns single selection, 25 rows per page and no
// orderable, hidden or searchable columns.
func DefaultOptions() Options {
	return Options{
		PageLength:  25,
		LengthMenu:  []int{10, 25, 50, 100},
		Select:      "single",
		ScrollX:     false,
		ScrollY:     false,
		DeferRender: true,
	}
}

// BundleJSON encodes ds and opts as an argument bundle.
func BundleJSON(ds *datasources.Dataset, opts Options) ([]byte, error) {
	payload := struct {
		Columns []string   `json:"columns"`
		Data    []args.Row `json:"data"`
		Options
	}{
		Columns: ds.Columns(),
		Data:    ds.Rows,
		Options: opts,
	}
	if payload.Data == nil {
		payload.Data = []args.Row{}
	}
	return json.Marshal(payload)
}

// Bundle encodes ds and opts and parses the result.
func Bundle(ds *datasources.Dataset, opts Options) (*args.Bundle, error) {
	data, err := BundleJSON(ds, opts)
	if err != nil {
		return nil, fmt.Errorf("encoding bundle: %w", err)
	}
	return args.Parse(data)
}

// Preset names accepted by PresetOptions.
const (
	PresetSingle  = "single"
	PresetMulti   = "multi"
	PresetButtons = "buttons"
	PresetIcons   = "icons"
)

// Presets lists the preset names in display order.
var Presets = []string{PresetSingle, PresetMulti, PresetButtons, PresetIcons}

// PresetOptions returns the configuration of a named sample table.
func PresetOptions(name string) (Options, error) {
	opts := DefaultOptions()
	opts.PageLength = 10
	opts.ScrollY = "500"
	opts.Layout = json.RawMessage(`{"top1End":{"buttons":["colvis"]}}`)

	switch name {
	case PresetSingle:
		opts.Orderable = []string{"ID", "NAME", "created_at", "person"}
		opts.Searchable = []string{"ID", "NAME", "person"}
		opts.Key = "table1"
	case PresetMulti:
		opts.Orderable = []string{"ID", "NAME"}
		opts.Searchable = []string{"ID", "NAME"}
		opts.Select = "multi"
		opts.Layout = json.RawMessage(`{"top1End":{"buttons":["colvis","copy","csv"]}}`)
		opts.Key = "multiselect_table"
	case PresetButtons:
		opts.Orderable = []string{"ID", "NAME"}
		opts.Searchable = []string{"ID", "NAME"}
		opts.Select = false
		opts.Actions = &ActionsSpec{
			InsertIndex:  0,
			BtnDirection: "vertical",
			Buttons: []ButtonSpec{
				{ID: "detail", Title: "Detail", Text: "Detail", ClassName: "detail-btn", SVG: EyeSVG},
				{ID: "edit", Title: "Edit", Text: "Edit", ClassName: "edit-btn", SVG: EditSVG},
				{ID: "delete", Title: "Delete", Text: "Delete", ClassName: "delete-btn", SVG: DeleteSVG},
			},
		}
		opts.Key = "buttons_table"
	case PresetIcons:
		opts.Orderable = []string{"ID", "NAME"}
		opts.Searchable = []string{"ID", "NAME"}
		opts.Select = false
		opts.Actions = &ActionsSpec{
			InsertIndex:  6,
			BtnDirection: "horizontal",
			Buttons: []ButtonSpec{
				{ID: "detail", Title: "Detail", ClassName: "detail-btn", SVG: EyeSVG},
				{ID: "edit", Title: "Edit", ClassName: "edit-btn", SVG: EditSVG},
				{ID: "delete", Title: "Delete", ClassName: "delete-btn", SVG: DeleteSVG},
			},
		}
		opts.Key = "buttons_table_without_text"
	default:
		return Options{}, fmt.Errorf("unknown preset %q", name)
	}
	return opts, nil
}
