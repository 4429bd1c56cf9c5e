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

package args

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Parse decodes a JSON argument bundle. Every field except columns and data is
// optional and falls back to its default. Fields of the wrong type are treated
// as absent, except columns and data which must be arrays when present.
func Parse(data []byte) (*Bundle, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidBundle)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrInvalidBundle, root.Type)
	}

	b := &Bundle{
		Select:      SelectSingle,
		ResetNonce:  DefaultNonce,
		PageLength:  DefaultPageLength,
		LengthMenu:  append([]int(nil), DefaultLengthMenu...),
		DeferRender: true,
		ScrollX:     false,
		ScrollY:     false,
	}

	cols := root.Get("columns")
	if cols.Exists() && !cols.IsArray() {
		return nil, fmt.Errorf("%w: columns must be an array", ErrInvalidBundle)
	}
	b.Columns = stringList(cols)

	rows := root.Get("data")
	if rows.Exists() && !rows.IsArray() {
		return nil, fmt.Errorf("%w: data must be an array", ErrInvalidBundle)
	}
	rows.ForEach(func(_, v gjson.Result) bool {
		b.Data = append(b.Data, parseRow(v))
		return true
	})

	b.Orderable = stringList(root.Get("orderable"))
	b.Hidden = stringList(root.Get("hidden"))
	b.Searchable = stringList(root.Get("searchable"))

	if sel := root.Get("select"); sel.Exists() {
		switch sel.Type {
		case gjson.String:
			b.Select = ParseSelectMode(sel.Str)
		case gjson.True:
			b.Select = SelectSingle
		default:
			b.Select = SelectDisabled
		}
	}

	// Any JSON token is a valid nonce, including null.
	if n := root.Get("reset_nonce"); n.Exists() {
		b.ResetNonce = Nonce(n.Raw)
	}

	if pl := root.Get("pageLength"); pl.Type == gjson.Number && pl.Int() != 0 {
		b.PageLength = int(pl.Int())
	}
	if lm := root.Get("lengthMenu"); lm.IsArray() {
		b.LengthMenu = nil
		lm.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.Number {
				b.LengthMenu = append(b.LengthMenu, int(v.Int()))
			}
			return true
		})
	}
	if sx := root.Get("scrollX"); sx.Exists() {
		b.ScrollX = sx.Value()
	}
	if sy := root.Get("scrollY"); sy.Exists() {
		b.ScrollY = sy.Value()
	}
	if dr := root.Get("deferRender"); dr.IsBool() {
		b.DeferRender = dr.Bool()
	}
	if l := root.Get("layout"); l.Exists() && l.Type != gjson.Null {
		b.Layout = json.RawMessage(l.Raw)
	}
	if k := root.Get("key"); k.Type == gjson.String {
		b.Key = k.Str
	}

	if a := root.Get("actions"); a.IsObject() {
		b.Actions = parseActions(a)
	}
	return b, nil
}

func parseRow(v gjson.Result) Row {
	row := Row{}
	if !v.IsObject() {
		return row
	}
	v.ForEach(func(k, val gjson.Result) bool {
		row[k.String()] = val.Value()
		return true
	})
	return row
}

func parseActions(a gjson.Result) *ActionsConfig {
	cfg := &ActionsConfig{Direction: Horizontal}
	a.Get("buttons").ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		cfg.Buttons = append(cfg.Buttons, Button{
			ID:        str(v.Get("id")),
			ClassName: str(v.Get("className")),
			Title:     str(v.Get("title")),
			SVG:       str(v.Get("svg")),
			Text:      str(v.Get("text")),
		})
		return true
	})
	if idx := a.Get("insertIndex"); idx.Type == gjson.Number {
		cfg.InsertIndex = int(idx.Int())
	}
	cfg.HideWhenSelectSingle = a.Get("hideWhenSelectSingle").Bool()
	if d := a.Get("btndirection"); d.Type == gjson.String && Direction(d.Str) == Vertical {
		cfg.Direction = Vertical
	}
	return cfg
}

// str returns the value only when it is a JSON string.
func str(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		out = append(out, item.String())
		return true
	})
	return out
}
