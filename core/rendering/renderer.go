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
	"embed"
	"io"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/htmlx"
)

//go:embed templates/*
var templateFS embed.FS

// ClassFrame is the class of the element that wraps the table.
const ClassFrame = "table-frame"

// Page is the view model of an instance page.
type Page struct {
	ID    string
	Title string
	// Frame is the rendered table wrapped with Frame.
	Frame safehtml.HTML
}

// PageRenderer renders instance pages.
type PageRenderer struct {
	pageTemplate *template.Template
}

// NewPageRenderer parses the embedded templates.
func NewPageRenderer() (*PageRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html")
	if err != nil {
		return nil, err
	}

	return &PageRenderer{pageTemplate: pageTemplate}, nil
}

// Render renders a Page to the provided writer
func (r *PageRenderer) Render(w io.Writer, p Page) error {
	return r.pageTemplate.Execute(w, p)
}

// Frame wraps a rendered table in a div carrying the frame style.
func Frame(table safehtml.HTML, style host.Style) safehtml.HTML {
	attrs := []htmlx.Attr{{Name: "class", Value: ClassFrame}}
	if css := styleAttr(style); css != "" {
		attrs = append(attrs, htmlx.Attr{Name: "style", Value: css})
	}
	return htmlx.Element("div", attrs, table)
}

func styleAttr(s host.Style) string {
	var decls []string
	if s.Border != "" {
		decls = append(decls, "border: "+s.Border)
	}
	if s.Outline != "" {
		decls = append(decls, "outline: "+s.Outline)
	}
	return strings.Join(decls, "; ")
}
