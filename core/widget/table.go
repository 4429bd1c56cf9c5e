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

// Package widget is the table-rendering capability the bridge drives: it
// holds rows and column descriptors, a selection set, client-side paging,
// ordering and search, an event stream, and the rendered DOM node.
//
// A Table is not safe for concurrent use. All calls are expected to come from
// a single UI goroutine.
package widget

import (
	"slices"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/columns"
)

// AllRows as a page length shows every row on one page.
const AllRows = -1

// Config is the widget configuration derived from one argument bundle.
type Config struct {
	Columns    []columns.Descriptor
	Data       []args.Row
	Select     args.SelectMode
	PageLength int
	LengthMenu []int
}

type order struct {
	column int
	desc   bool
}

// Table is an in-memory table widget.
type Table struct {
	cfg Config

	// selected holds row positions in selection order.
	selected []int

	search  string
	ordered *order
	page    int
	length  int
	display []int // row positions after search and ordering

	node *goquery.Document

	listeners []listener
	nextID    uint64
}

// New creates a table and performs the initial draw. No handlers exist yet,
// so the initial draw event reaches nobody.
func New(cfg Config) *Table {
	t := &Table{}
	t.apply(cfg)
	t.length = t.cfg.PageLength
	t.draw()
	return t
}

// Configure replaces columns, data and options for a new render cycle.
// Selected positions that still exist are kept; no select or deselect events
// fire. A length picked by the user survives unless the configured page
// length changes. The table is redrawn.
func (t *Table) Configure(cfg Config) {
	prev := t.cfg.PageLength
	t.apply(cfg)
	if t.cfg.PageLength != prev {
		t.length = t.cfg.PageLength
	}
	t.selected = slices.DeleteFunc(t.selected, func(i int) bool {
		return i >= len(t.cfg.Data)
	})
	if !t.cfg.Select.Enabled() {
		t.selected = nil
	}
	if t.ordered != nil && !t.canOrder(t.ordered.column) {
		t.ordered = nil
	}
	t.draw()
}

func (t *Table) apply(cfg Config) {
	if cfg.PageLength == 0 {
		cfg.PageLength = args.DefaultPageLength
	}
	t.cfg = cfg
}

// Columns returns the column descriptors.
func (t *Table) Columns() []columns.Descriptor {
	return t.cfg.Columns
}

// SelectMode returns the configured selection mode.
func (t *Table) SelectMode() args.SelectMode {
	return t.cfg.Select
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.cfg.Data)
}

// Row returns the data row at position index.
func (t *Table) Row(index int) (args.Row, bool) {
	if index < 0 || index >= len(t.cfg.Data) {
		return nil, false
	}
	return t.cfg.Data[index], true
}

// Selected returns the selected rows and their positions, in selection order.
func (t *Table) Selected() ([]args.Row, []int) {
	rows := make([]args.Row, 0, len(t.selected))
	for _, i := range t.selected {
		rows = append(rows, t.cfg.Data[i])
	}
	return rows, slices.Clone(t.selected)
}

// IsSelected reports whether the row at index is selected.
func (t *Table) IsSelected(index int) bool {
	return slices.Contains(t.selected, index)
}

// Select selects rows by position. In single mode only the last index stays
// selected. Invalid or already selected indexes are skipped. A deselect event
// fires for rows that lose selection, then a select event for new rows.
func (t *Table) Select(indexes ...int) {
	if !t.cfg.Select.Enabled() {
		return
	}
	var added []int
	for _, i := range indexes {
		if i < 0 || i >= len(t.cfg.Data) || t.IsSelected(i) || slices.Contains(added, i) {
			continue
		}
		added = append(added, i)
	}
	if len(added) == 0 {
		return
	}
	if t.cfg.Select == args.SelectSingle {
		added = added[len(added)-1:]
		if len(t.selected) > 0 {
			t.deselect(slices.Clone(t.selected))
		}
	}
	t.selected = append(t.selected, added...)
	t.refresh()
	t.emit(Event{Type: EventSelect, Items: ItemRow, Indexes: added})
}

// Deselect deselects rows by position and fires a deselect event for the
// rows that were selected.
func (t *Table) Deselect(indexes ...int) {
	var removed []int
	for _, i := range indexes {
		if t.IsSelected(i) && !slices.Contains(removed, i) {
			removed = append(removed, i)
		}
	}
	if len(removed) == 0 {
		return
	}
	t.deselect(removed)
}

// DeselectAll clears the selection. A deselect event fires only if something
// was selected.
func (t *Table) DeselectAll() {
	if len(t.selected) == 0 {
		return
	}
	t.deselect(slices.Clone(t.selected))
}

func (t *Table) deselect(removed []int) {
	t.selected = slices.DeleteFunc(t.selected, func(i int) bool {
		return slices.Contains(removed, i)
	})
	t.refresh()
	t.emit(Event{Type: EventDeselect, Items: ItemRow, Indexes: removed})
}

// toggle is the widget's own reaction to a click on a body row: single mode
// replaces the selection, multi mode toggles the row.
func (t *Table) toggle(index int) {
	switch {
	case !t.cfg.Select.Enabled():
	case t.IsSelected(index):
		t.Deselect(index)
	default:
		t.Select(index)
	}
}

// Search filters rows by a case-insensitive substring over searchable
// columns, returns to the first page and redraws.
func (t *Table) Search(term string) {
	t.search = term
	t.page = 0
	t.emit(Event{Type: EventSearch})
	t.draw()
}

// Order sorts by a column. Columns that are not orderable are ignored.
func (t *Table) Order(column int, desc bool) {
	if !t.canOrder(column) {
		return
	}
	t.ordered = &order{column: column, desc: desc}
	t.page = 0
	t.emit(Event{Type: EventOrder})
	t.draw()
}

// SetPage moves to page n, clamped to the available pages.
func (t *Table) SetPage(n int) {
	t.page = n
	t.clampPage()
	t.emit(Event{Type: EventPage})
	t.draw()
}

// SetLength changes the page length. AllRows shows everything; other
// non-positive values are ignored. The first row of the current page stays
// visible.
func (t *Table) SetLength(n int) {
	if n <= 0 && n != AllRows {
		return
	}
	first := t.page * t.length
	t.length = n
	if n == AllRows {
		t.page = 0
	} else {
		t.page = first / n
	}
	t.emit(Event{Type: EventLength})
	t.draw()
}

// Draw recomputes the displayed rows, re-renders the node and fires a draw
// event.
func (t *Table) Draw() {
	t.draw()
}

// Page returns the current zero-based page and the number of pages.
func (t *Table) Page() (page, pages int) {
	return t.page, t.pages()
}

// Length returns the current page length.
func (t *Table) Length() int {
	return t.length
}

// Displayed returns the row positions after search and ordering.
func (t *Table) Displayed() []int {
	return slices.Clone(t.display)
}

// PageRows returns the row positions shown on the current page.
func (t *Table) PageRows() []int {
	if t.length == AllRows {
		return slices.Clone(t.display)
	}
	start := min(t.page*t.length, len(t.display))
	end := min(start+t.length, len(t.display))
	return slices.Clone(t.display[start:end])
}

func (t *Table) draw() {
	t.display = t.filterAndSort()
	t.clampPage()
	t.refresh()
	t.emit(Event{Type: EventDraw})
}

func (t *Table) pages() int {
	if t.length == AllRows || len(t.display) == 0 {
		return 1
	}
	return (len(t.display) + t.length - 1) / t.length
}

func (t *Table) clampPage() {
	t.page = min(max(t.page, 0), t.pages()-1)
}

func (t *Table) canOrder(column int) bool {
	if column < 0 || column >= len(t.cfg.Columns) {
		return false
	}
	d := t.cfg.Columns[column]
	_, bound := d.Key()
	return d.Orderable && bound
}

func (t *Table) filterAndSort() []int {
	term := strings.ToLower(t.search)
	rows := make([]int, 0, len(t.cfg.Data))
	for i, row := range t.cfg.Data {
		if term == "" || t.matches(row, term) {
			rows = append(rows, i)
		}
	}

	if t.ordered != nil {
		key, _ := t.cfg.Columns[t.ordered.column].Key()
		desc := t.ordered.desc
		sort.SliceStable(rows, func(a, b int) bool {
			c := columns.Compare(t.cfg.Data[rows[a]][key], t.cfg.Data[rows[b]][key])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	return rows
}

func (t *Table) matches(row args.Row, term string) bool {
	for _, d := range t.cfg.Columns {
		key, bound := d.Key()
		if !d.Searchable || !bound {
			continue
		}
		if strings.Contains(strings.ToLower(columns.FormatValue(row[key])), term) {
			return true
		}
	}
	return false
}
