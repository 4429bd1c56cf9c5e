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

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tablebridge/core/loop"
)

const peopleBundle = `{
	"columns": ["name", "age"],
	"data": [{"name":"Al","age":30},{"name":"Bo","age":40},{"name":"Cy","age":50}],
	"orderable": ["name", "age"],
	"searchable": ["name"],
	"select": "single",
	"key": "people",
	"actions": {"insertIndex": 2, "buttons": [{"id": "delete", "text": "Delete"}]}
}`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	ui := loop.New(loop.Options{FrameInterval: time.Millisecond, SyncTimeout: 2 * time.Second})
	t.Cleanup(ui.Close)
	s, err := NewServer(ui, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func mount(t *testing.T, ts *httptest.Server, bundle string) string {
	t.Helper()
	resp, body := do(t, http.MethodPost, ts.URL+"/api/instances", bundle)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var out struct{ ID string }
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.NotEmpty(t, out.ID)
	return out.ID
}

type snapshot struct {
	Value     map[string]any `json:"value"`
	Resizes   int            `json:"resizes"`
	Published int            `json:"published"`
}

func value(t *testing.T, ts *httptest.Server, id string) snapshot {
	t.Helper()
	resp, body := do(t, http.MethodGet, ts.URL+"/api/instances/"+id+"/value", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var snap snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &snap))
	return snap
}

func event(t *testing.T, ts *httptest.Server, id, ev string) {
	t.Helper()
	resp, body := do(t, http.MethodPost, ts.URL+"/api/instances/"+id+"/events", ev)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, body)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestMountPublishesEmptySelection(t *testing.T) {
	_, ts := newTestServer(t)
	id := mount(t, ts, peopleBundle)

	snap := value(t, ts, id)
	assert.Equal(t, map[string]any{"rows": []any{}, "indexes": []any{}, "count": float64(0)}, snap.Value)
	assert.GreaterOrEqual(t, snap.Published, 1)
	// Immediate request plus the first scheduled frame.
	require.Eventually(t, func() bool { return value(t, ts, id).Resizes >= 2 }, time.Second, 5*time.Millisecond)
}

func TestClickEventsSelectAndAct(t *testing.T) {
	_, ts := newTestServer(t)
	id := mount(t, ts, peopleBundle)

	// table > tbody(1) > tr(1) > td(0)
	event(t, ts, id, `{"type":"click","path":[1,1,0]}`)
	snap := value(t, ts, id)
	assert.Equal(t, float64(1), snap.Value["count"])
	assert.Equal(t, []any{float64(1)}, snap.Value["indexes"])

	// table > tbody(1) > tr(2) > td(2) > div(0) > button(0)
	event(t, ts, id, `{"type":"click","path":[1,2,2,0,0]}`)
	snap = value(t, ts, id)
	assert.Equal(t, map[string]any{"name": "Cy", "age": float64(50), "action": "delete", "_rowIndex": float64(2)}, snap.Value)
}

func TestResetKey(t *testing.T) {
	_, ts := newTestServer(t)
	id := mount(t, ts, peopleBundle)
	other := mount(t, ts, strings.Replace(peopleBundle, `"people"`, `"other"`, 1))

	event(t, ts, id, `{"type":"click","path":[1,0,0]}`)
	event(t, ts, other, `{"type":"click","path":[1,0,0]}`)

	resp, body := do(t, http.MethodPost, ts.URL+"/api/keys/people/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"nonce":1}`, body)

	assert.Equal(t, float64(0), value(t, ts, id).Value["count"])
	assert.Equal(t, float64(1), value(t, ts, other).Value["count"])
}

func TestUpdateWithChangedNonceResets(t *testing.T) {
	_, ts := newTestServer(t)
	bundle := `{"columns":["name"],"data":[{"name":"Al"},{"name":"Bo"}],"reset_nonce":1}`
	id := mount(t, ts, bundle)
	event(t, ts, id, `{"type":"click","path":[1,0,0]}`)
	require.Equal(t, float64(1), value(t, ts, id).Value["count"])

	resp, _ := do(t, http.MethodPut, ts.URL+"/api/instances/"+id+"/args", bundle)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, float64(1), value(t, ts, id).Value["count"])

	resp, _ = do(t, http.MethodPut, ts.URL+"/api/instances/"+id+"/args", strings.Replace(bundle, `"reset_nonce":1`, `"reset_nonce":2`, 1))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, float64(0), value(t, ts, id).Value["count"])
}

func TestUpdateKeyedBundleWithChangedNonceResets(t *testing.T) {
	_, ts := newTestServer(t)
	bundle := `{"columns":["name"],"data":[{"name":"Al"},{"name":"Bo"}],"key":"k","reset_nonce":1}`
	id := mount(t, ts, bundle)
	event(t, ts, id, `{"type":"click","path":[1,0,0]}`)
	require.Equal(t, float64(1), value(t, ts, id).Value["count"])

	resp, _ := do(t, http.MethodPut, ts.URL+"/api/instances/"+id+"/args", bundle)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, float64(1), value(t, ts, id).Value["count"])

	resp, _ = do(t, http.MethodPut, ts.URL+"/api/instances/"+id+"/args", strings.Replace(bundle, `"reset_nonce":1`, `"reset_nonce":2`, 1))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, float64(0), value(t, ts, id).Value["count"])

	// A key reset still clears after the host changed its own nonce.
	event(t, ts, id, `{"type":"click","path":[1,1,0]}`)
	require.Equal(t, float64(1), value(t, ts, id).Value["count"])
	resp, _ = do(t, http.MethodPost, ts.URL+"/api/keys/k/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), value(t, ts, id).Value["count"])
}

func TestWidgetEvents(t *testing.T) {
	s, ts := newTestServer(t)
	id := mount(t, ts, peopleBundle)

	event(t, ts, id, `{"type":"search","term":"bo"}`)
	event(t, ts, id, `{"type":"order","column":1,"desc":true}`)
	event(t, ts, id, `{"type":"length","length":10}`)
	event(t, ts, id, `{"type":"page","page":3}`)
	event(t, ts, id, `{"type":"theme","theme":{"primaryColor":"red"}}`)
	event(t, ts, id, `{"type":"focus"}`)

	resp, body := do(t, http.MethodPost, ts.URL+"/api/instances/"+id+"/events", `{"type":"wiggle"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

	frame, err := s.Frame(t.Context(), id)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(frame.String()))
	require.NoError(t, err)
	assert.Equal(t, "border: 1px solid red; outline: 1px solid red", doc.Find("div.table-frame").AttrOr("style", ""))
	assert.Equal(t, 1, doc.Find("tbody tr").Length())
	assert.Equal(t, "Bo", doc.Find("tbody tr td").First().Text())
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t)
	id := mount(t, ts, peopleBundle)

	resp, body := do(t, http.MethodGet, ts.URL+"/instances/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, id, doc.Find("#instance-id").Text())
	assert.Equal(t, 3, doc.Find("table.dataTable tbody tr").Length())
	assert.Equal(t, 3, doc.Find("button.row-action-btn").Length())
}

func TestUnmount(t *testing.T) {
	_, ts := newTestServer(t)
	id := mount(t, ts, peopleBundle)

	resp, _ := do(t, http.MethodDelete, ts.URL+"/api/instances/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	for _, probe := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/instances/" + id + "/value", ""},
		{http.MethodPost, "/api/instances/" + id + "/events", `{"type":"focus"}`},
		{http.MethodPut, "/api/instances/" + id + "/args", peopleBundle},
		{http.MethodDelete, "/api/instances/" + id, ""},
		{http.MethodGet, "/instances/" + id, ""},
	} {
		resp, body := do(t, probe.method, ts.URL+probe.path, probe.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s: %s", probe.method, probe.path, body)
	}
}

func TestInvalidBundle(t *testing.T) {
	_, ts := newTestServer(t)
	for _, body := range []string{`[]`, `{"columns": 3}`, `not json`} {
		resp, out := do(t, http.MethodPost, ts.URL+"/api/instances", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, out)
	}
}

func TestStoppedLoop(t *testing.T) {
	ui := loop.New(loop.Options{})
	s, err := NewServer(ui, nil)
	require.NoError(t, err)
	ui.Close()

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	resp, _ := do(t, http.MethodPost, ts.URL+"/api/instances", peopleBundle)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
