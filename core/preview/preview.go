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

// Package preview prints one page of a table to a terminal.
package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/bridge"
	"github.com/google/tablebridge/core/columns"
	"github.com/google/tablebridge/core/widget"
)

var (
	colorAccent = lipgloss.Color("#4ecca3")
	colorDim    = lipgloss.Color("#555555")

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Reverse(true)
	borderStyle   = lipgloss.NewStyle().Foreground(colorDim)
	footerStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// Options selects what to show.
type Options struct {
	// Page is zero-based and clamped to the available pages.
	Page   int
	Search string
	// Select marks rows as selected before rendering.
	Select []int
}

// Render writes the requested page of b as a bordered table followed by an
// entries summary. Only visible data columns are printed.
func Render(w io.Writer, b *args.Bundle, opts Options) error {
	t := widget.New(bridge.TableConfig(b))
	if opts.Search != "" {
		t.Search(opts.Search)
	}
	t.SetPage(opts.Page)
	t.Select(opts.Select...)

	var headers, keys []string
	for _, d := range t.Columns() {
		key, bound := d.Key()
		if !bound || !d.Visible {
			continue
		}
		headers = append(headers, d.Title)
		keys = append(keys, key)
	}

	pageRows := t.PageRows()
	rows := make([][]string, 0, len(pageRows))
	for _, index := range pageRows {
		row, _ := t.Row(index)
		cells := make([]string, len(keys))
		for i, key := range keys {
			cells[i] = columns.FormatValue(row[key])
		}
		rows = append(rows, cells)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(pageRows) && t.IsSelected(pageRows[row]):
				return selectedStyle
			default:
				return cellStyle
			}
		})

	if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, footerStyle.Render(Summary(t)))
	return err
}

// Summary describes the visible range, e.g. "Showing 1 to 10 of 25 entries".
func Summary(t *widget.Table) string {
	displayed := len(t.Displayed())
	if displayed == 0 {
		return "Showing 0 to 0 of 0 entries"
	}
	page, pages := t.Page()
	pageRows := len(t.PageRows())
	start := 1
	if t.Length() != widget.AllRows {
		start = page*t.Length() + 1
	}
	summary := fmt.Sprintf("Showing %d to %d of %d entries", start, start+pageRows-1, displayed)
	if displayed != t.NumRows() {
		summary += fmt.Sprintf(" (filtered from %d total entries)", t.NumRows())
	}
	if pages > 1 {
		summary += fmt.Sprintf(" - page %d of %d", page+1, pages)
	}
	return summary
}
