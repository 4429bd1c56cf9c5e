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

package rendering

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/htmlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPage(t *testing.T) {
	r, err := NewPageRenderer()
	require.NoError(t, err)

	table := htmlx.Element("table", []htmlx.Attr{{Name: "class", Value: "display dataTable"}},
		htmlx.Element("tbody", nil, htmlx.Element("tr", nil, htmlx.Element("td", nil, htmlx.Text("Al")))))

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Page{
		ID:    `x"><script>`,
		Title: "People",
		Frame: Frame(table, host.Style{}),
	}))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "People", doc.Find("title").Text())
	assert.Equal(t, `x"><script>`, doc.Find("#instance-id").Text())
	assert.Equal(t, "Al", doc.Find("div."+ClassFrame+" table.dataTable td").Text())
	assert.Equal(t, 1, doc.Find("body > script").Length())
}

func TestFrameStyle(t *testing.T) {
	table := htmlx.Element("table", nil)

	plain := Frame(table, host.Style{})
	assert.Equal(t, `<div class="table-frame"><table></table></div>`, plain.String())

	styled := Frame(table, host.StyleFor(&host.Theme{PrimaryColor: "#f00"}, true))
	assert.Equal(t,
		`<div class="table-frame" style="border: 1px solid #f00; outline: 1px solid #f00"><table></table></div>`,
		styled.String())
}
