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

package widget

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/safehtml"
	"github.com/google/tablebridge/core/columns"
	"github.com/google/tablebridge/core/htmlx"
)

// AttrRow carries the positional row index on every body row.
const AttrRow = "data-dt-row"

const (
	classTable    = "display dataTable"
	classSelected = "selected"
	classEmpty    = "dt-empty"
	emptyMessage  = "No data available in table"
)

// HTML renders the table element for the current page.
func (t *Table) HTML() safehtml.HTML {
	var visible []columns.Descriptor
	for _, d := range t.cfg.Columns {
		if d.Visible {
			visible = append(visible, d)
		}
	}

	headers := make([]safehtml.HTML, 0, len(visible))
	for _, d := range visible {
		headers = append(headers, htmlx.Element("th", classAttr(d.ClassName), htmlx.Text(d.Title)))
	}
	head := htmlx.Element("thead", nil, htmlx.Element("tr", nil, headers...))

	var bodyRows []safehtml.HTML
	for _, index := range t.PageRows() {
		row := t.cfg.Data[index]
		cells := make([]safehtml.HTML, 0, len(visible))
		for _, d := range visible {
			cells = append(cells, htmlx.Element("td", classAttr(d.ClassName), cellContent(d, row, index)))
		}
		attrs := []htmlx.Attr{{Name: AttrRow, Value: strconv.Itoa(index)}}
		if t.IsSelected(index) {
			attrs = append(attrs, htmlx.Attr{Name: "class", Value: classSelected})
		}
		bodyRows = append(bodyRows, htmlx.Element("tr", attrs, cells...))
	}
	if len(bodyRows) == 0 {
		empty := htmlx.Element("td", []htmlx.Attr{
			{Name: "colspan", Value: strconv.Itoa(max(len(visible), 1))},
			{Name: "class", Value: classEmpty},
		}, htmlx.Text(emptyMessage))
		bodyRows = append(bodyRows, htmlx.Element("tr", nil, empty))
	}
	body := htmlx.Element("tbody", nil, bodyRows...)

	return htmlx.Element("table", []htmlx.Attr{{Name: "class", Value: classTable}}, head, body)
}

func cellContent(d columns.Descriptor, row map[string]any, index int) safehtml.HTML {
	if d.Render != nil {
		return d.Render(row, index)
	}
	key, _ := d.Key()
	return htmlx.Text(columns.FormatValue(row[key]))
}

func classAttr(class string) []htmlx.Attr {
	if class == "" {
		return nil
	}
	return []htmlx.Attr{{Name: "class", Value: class}}
}

// refresh rebuilds the DOM node from the current state.
func (t *Table) refresh() {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(t.HTML().String()))
	if err != nil {
		// The reader never fails and the parser accepts any input.
		return
	}
	t.node = doc
}

// Node returns the rendered table element.
func (t *Table) Node() *goquery.Selection {
	if t.node == nil {
		return &goquery.Selection{}
	}
	return t.node.Find("table").First()
}

// RowIndex resolves the positional index of a body row element.
func (t *Table) RowIndex(tr *goquery.Selection) (int, bool) {
	raw, ok := tr.Attr(AttrRow)
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index >= len(t.cfg.Data) {
		return 0, false
	}
	return index, true
}

// RowAt resolves a body row element to its data and positional index.
func (t *Table) RowAt(tr *goquery.Selection) (map[string]any, int, bool) {
	index, ok := t.RowIndex(tr)
	if !ok {
		return nil, 0, false
	}
	return t.cfg.Data[index], index, true
}

// Resolve walks a path of child element indexes from the table element. It
// returns an empty selection when the path leaves the tree.
func (t *Table) Resolve(path []int) *goquery.Selection {
	sel := t.Node()
	for _, i := range path {
		if sel.Length() == 0 {
			break
		}
		sel = sel.Children().Eq(i)
	}
	return sel
}

// Click dispatches a click on target to the click handlers in registration
// order. Unless a handler stops propagation, the widget then applies its own
// row selection for clicks inside a body row.
func (t *Table) Click(target *goquery.Selection) {
	if target == nil || target.Length() == 0 {
		return
	}
	ev := &ClickEvent{Target: target}
	for _, l := range append([]listener(nil), t.listeners...) {
		if ev.stopped {
			return
		}
		if l.typ == EventClick && l.click != nil && t.subscribed(l.id) {
			l.click(ev)
		}
	}
	if ev.stopped {
		return
	}
	tr := target.Closest("tr")
	if index, ok := t.RowIndex(tr); ok {
		t.toggle(index)
	}
}

// ClickPath resolves path with Resolve and dispatches a click on it.
func (t *Table) ClickPath(path []int) {
	t.Click(t.Resolve(path))
}
