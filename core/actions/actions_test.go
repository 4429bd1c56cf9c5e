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

package actions

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/columns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eye = `<svg xmlns="http://www.w3.org/2000/svg" height="24px"><path d="M480-320"/></svg>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderButtonKinds(t *testing.T) {
	tests := []struct {
		name   string
		button args.Button
		want   string
	}{
		{
			name:   "text only",
			button: args.Button{ID: "view", Title: "View", Text: "View"},
			want:   `<button class="row-action-btn text-btn" data-action="view" aria-label="View" title="View"><span class="btn-label">View</span></button>`,
		},
		{
			name:   "icon only",
			button: args.Button{ID: "edit", SVG: "<svg/>", ClassName: " edit-btn "},
			want:   `<button class="row-action-btn icon-btn edit-btn" data-action="edit" aria-label="edit"><svg/></button>`,
		},
		{
			name:   "icon and label",
			button: args.Button{ID: "delete", SVG: "<svg/>", Text: "Delete"},
			want:   `<button class="row-action-btn icon-label-btn" data-action="delete" aria-label="Delete"><svg/><span class="btn-label">Delete</span></button>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RenderButton(tt.button)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRenderButtonDropsEmpty(t *testing.T) {
	for _, b := range []args.Button{
		{ID: "nothing"},
		{ID: "blank", Text: "   ", Title: "Blank"},
	} {
		_, ok := RenderButton(b)
		assert.False(t, ok, b.ID)
	}
}

func TestRenderButtonsSkipsContentless(t *testing.T) {
	cfg := &args.ActionsConfig{Buttons: []args.Button{
		{ID: "detail", Text: "Detail"},
		{ID: "ghost"},
		{ID: "delete", SVG: eye},
	}}
	doc := parse(t, RenderButtons(cfg).String())

	buttons := doc.Find("div.actions-wrap.horizontal > button." + ClassButton)
	require.Equal(t, 2, buttons.Length())
	assert.Equal(t, "detail", buttons.Eq(0).AttrOr(AttrAction, ""))
	assert.Equal(t, "delete", buttons.Eq(1).AttrOr(AttrAction, ""))
	assert.Equal(t, 1, buttons.Eq(1).Find("svg path").Length())
}

func TestRenderButtonsVertical(t *testing.T) {
	cfg := &args.ActionsConfig{Direction: args.Vertical, Buttons: []args.Button{{ID: "a", Text: "A"}}}
	assert.True(t, strings.HasPrefix(RenderButtons(cfg).String(), `<div class="actions-wrap vertical">`))
}

func TestRenderButtonEscapesUserText(t *testing.T) {
	b := args.Button{
		ID:        `x"><script>alert(1)</script>`,
		Title:     "<script>alert('t')</script>",
		Text:      "<script>alert(2)</script>",
		ClassName: `c" onclick="evil()`,
	}
	html, ok := RenderButton(b)
	require.True(t, ok)
	out := html.String()

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, `onclick="`)

	// The escaped values round-trip through a real parser untouched.
	btn := parse(t, out).Find("button")
	require.Equal(t, 1, btn.Length())
	assert.Equal(t, b.ID, btn.AttrOr(AttrAction, ""))
	assert.Equal(t, b.Title, btn.AttrOr("title", ""))
	assert.Equal(t, b.Title, btn.AttrOr("aria-label", ""))
	assert.Equal(t, b.Text, btn.Find("span.btn-label").Text())
	assert.Equal(t, 0, btn.Find("script").Length())
}

func TestRenderButtonAriaLabelPriority(t *testing.T) {
	label := func(b args.Button) string {
		html, ok := RenderButton(b)
		require.True(t, ok)
		return parse(t, html.String()).Find("button").AttrOr("aria-label", "")
	}
	assert.Equal(t, "Title", label(args.Button{ID: "id", Title: "Title", Text: "Text"}))
	assert.Equal(t, "Text", label(args.Button{ID: "id", Text: "Text"}))
	assert.Equal(t, "id", label(args.Button{ID: "id", SVG: "<svg/>"}))
}

func TestInjectNil(t *testing.T) {
	descs := columns.Build([]string{"a", "b"}, nil, nil, nil)
	assert.Equal(t, descs, Inject(descs, nil))
}

func TestInjectClampsPosition(t *testing.T) {
	base := columns.Build([]string{"a", "b", "c"}, nil, nil, nil)
	tests := []struct {
		insert int
		want   int
	}{
		{-5, 0},
		{0, 0},
		{2, 2},
		{3, 3},
		{99, 3},
	}
	for _, tt := range tests {
		got := Inject(base, &args.ActionsConfig{InsertIndex: tt.insert, Buttons: []args.Button{{ID: "x", Text: "X"}}})
		require.Len(t, got, len(base)+1)

		d := got[tt.want]
		assert.Equal(t, ColumnTitle, d.Title)
		assert.Nil(t, d.Data)
		assert.False(t, d.Orderable)
		assert.Equal(t, ClassCell, d.ClassName)
		require.NotNil(t, d.Render)

		// Data columns keep their relative order around the insertion point.
		var titles []string
		for i, g := range got {
			if i != tt.want {
				titles = append(titles, g.Title)
			}
		}
		assert.Equal(t, []string{"a", "b", "c"}, titles)
	}
	// The input slice is untouched.
	assert.Len(t, base, 3)
	assert.Equal(t, "a", base[0].Title)
}

func TestColumnRenderIsRowIndependent(t *testing.T) {
	col := Column(&args.ActionsConfig{Buttons: []args.Button{{ID: "delete", Text: "Delete"}}})
	first := col.Render(args.Row{"name": "Al"}, 0)
	second := col.Render(args.Row{"name": "Bo"}, 1)
	assert.Equal(t, first.String(), second.String())
}
