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

package preview

import (
	"bytes"
	"testing"

	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/bridge"
	"github.com/google/tablebridge/core/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundle(t *testing.T) *args.Bundle {
	t.Helper()
	b, err := args.Parse([]byte(`{
		"columns": ["name", "age", "secret"],
		"hidden": ["secret"],
		"searchable": ["name"],
		"pageLength": 2,
		"data": [
			{"name":"Al","age":30,"secret":"x1"},
			{"name":"Bo","age":40,"secret":"x2"},
			{"name":"Cy","age":50,"secret":"x3"}
		],
		"actions": {"buttons": [{"id":"view","text":"View"}]}
	}`))
	require.NoError(t, err)
	return b
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, bundle(t), Options{}))
	out := buf.String()

	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Al")
	assert.Contains(t, out, "Bo")
	assert.NotContains(t, out, "Cy", "second page")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "Actions")
	assert.Contains(t, out, "Showing 1 to 2 of 3 entries - page 1 of 2")
}

func TestRenderSecondPageAndSearch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, bundle(t), Options{Page: 1}))
	assert.Contains(t, buf.String(), "Cy")
	assert.Contains(t, buf.String(), "Showing 3 to 3 of 3 entries")

	buf.Reset()
	require.NoError(t, Render(&buf, bundle(t), Options{Search: "b"}))
	assert.Contains(t, buf.String(), "Bo")
	assert.NotContains(t, buf.String(), "Al")
	assert.Contains(t, buf.String(), "(filtered from 3 total entries)")
}

func TestSummaryEmpty(t *testing.T) {
	b := bundle(t)
	b.Data = nil
	tbl := widget.New(bridge.TableConfig(b))
	assert.Equal(t, "Showing 0 to 0 of 0 entries", Summary(tbl))
}
