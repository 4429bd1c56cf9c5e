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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	b, err := Parse([]byte(`{"columns":["name","age"],"data":[{"name":"Al","age":30}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, b.Columns)
	require.Len(t, b.Data, 1)
	assert.Equal(t, Row{"name": "Al", "age": float64(30)}, b.Data[0])
	assert.Equal(t, SelectSingle, b.Select)
	assert.Equal(t, DefaultNonce, b.ResetNonce)
	assert.Equal(t, DefaultPageLength, b.PageLength)
	assert.Equal(t, []int{10, 25, 50, 100}, b.LengthMenu)
	assert.True(t, b.DeferRender)
	assert.Nil(t, b.Actions)
	assert.Nil(t, b.Layout)
}

func TestParseSelectModes(t *testing.T) {
	tests := []struct {
		raw  string
		want SelectMode
	}{
		{`"single"`, SelectSingle},
		{`"multi"`, SelectMulti},
		{`"os"`, SelectMulti},
		{`false`, SelectDisabled},
		{`null`, SelectDisabled},
		{`true`, SelectSingle},
		{`"bogus"`, SelectDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			b, err := Parse([]byte(`{"columns":[],"data":[],"select":` + tt.raw + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Select)
		})
	}
}

func TestParseResetNonceKeepsRawToken(t *testing.T) {
	b, err := Parse([]byte(`{"reset_nonce":null}`))
	require.NoError(t, err)
	assert.Equal(t, Nonce("null"), b.ResetNonce)

	b, err = Parse([]byte(`{"reset_nonce":3}`))
	require.NoError(t, err)
	assert.Equal(t, Nonce("3"), b.ResetNonce)
	assert.NotEqual(t, DefaultNonce, b.ResetNonce)
}

func TestParseActions(t *testing.T) {
	raw := `{
		"columns": ["ID"],
		"data": [],
		"actions": {
			"insertIndex": 6,
			"btndirection": "vertical",
			"hideWhenSelectSingle": true,
			"buttons": [
				{"id": "detail", "title": "Detail", "text": "Detail", "className": "detail-btn", "svg": "<svg/>"},
				{"id": "edit", "text": 42},
				"not-a-button"
			]
		}
	}`
	b, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, b.Actions)

	assert.Equal(t, 6, b.Actions.InsertIndex)
	assert.Equal(t, Vertical, b.Actions.Direction)
	assert.True(t, b.Actions.HideWhenSelectSingle)
	require.Len(t, b.Actions.Buttons, 2)
	assert.Equal(t, Button{ID: "detail", ClassName: "detail-btn", Title: "Detail", SVG: "<svg/>", Text: "Detail"}, b.Actions.Buttons[0])
	// Non-string text is ignored.
	assert.Equal(t, Button{ID: "edit"}, b.Actions.Buttons[1])
}

func TestParseActionsDefaultDirection(t *testing.T) {
	b, err := Parse([]byte(`{"actions":{"buttons":[],"btndirection":"diagonal"}}`))
	require.NoError(t, err)
	require.NotNil(t, b.Actions)
	assert.Equal(t, Horizontal, b.Actions.Direction)
	assert.Equal(t, 0, b.Actions.InsertIndex)
}

func TestParseOptions(t *testing.T) {
	raw := `{"pageLength":10,"lengthMenu":[5,10],"scrollY":"500","deferRender":false,
		"layout":{"top1End":{"buttons":["colvis"]}},"key":"table1"}`
	b, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 10, b.PageLength)
	assert.Equal(t, []int{5, 10}, b.LengthMenu)
	assert.Equal(t, "500", b.ScrollY)
	assert.Equal(t, false, b.ScrollX)
	assert.False(t, b.DeferRender)
	assert.JSONEq(t, `{"top1End":{"buttons":["colvis"]}}`, string(b.Layout))
	assert.Equal(t, "table1", b.Key)
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{`[]`, `{"columns":"name"}`, `{"data":{}}`, `{`} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidBundle)
		})
	}
}

func TestWithResetNonce(t *testing.T) {
	b, err := Parse([]byte(`{"columns":["a"]}`))
	require.NoError(t, err)
	cp := b.WithResetNonce("7")
	assert.Equal(t, Nonce("7"), cp.ResetNonce)
	assert.Equal(t, DefaultNonce, b.ResetNonce)
	assert.Equal(t, b.Columns, cp.Columns)
}
