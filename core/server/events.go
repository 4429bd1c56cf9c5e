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
	"errors"
	"fmt"

	"github.com/google/tablebridge/core/bridge"
	"github.com/google/tablebridge/core/host"
)

// Event types accepted by Dispatch.
const (
	EventClick  = "click"
	EventPage   = "page"
	EventOrder  = "order"
	EventSearch = "search"
	EventLength = "length"
	EventFocus  = "focus"
	EventBlur   = "blur"
	EventTheme  = "theme"
)

// Event is a user interaction forwarded by the page or an API client.
type Event struct {
	Type string `json:"type"`
	// Path locates the click target as child element indexes from the table.
	Path   []int       `json:"path,omitempty"`
	Page   int         `json:"page,omitempty"`
	Column int         `json:"column,omitempty"`
	Desc   bool        `json:"desc,omitempty"`
	Term   string      `json:"term,omitempty"`
	Length int         `json:"length,omitempty"`
	Theme  *host.Theme `json:"theme,omitempty"`
}

// ErrBadEvent is returned for event types Dispatch does not know.
var ErrBadEvent = errors.New("bad event")

func (ev Event) apply(b *bridge.Bridge) error {
	switch ev.Type {
	case EventFocus:
		b.SetFocused(true)
		return nil
	case EventBlur:
		b.SetFocused(false)
		return nil
	case EventTheme:
		b.SetTheme(ev.Theme)
		return nil
	}

	t := b.Table()
	if t == nil {
		return ErrUnknownInstance
	}
	switch ev.Type {
	case EventClick:
		t.ClickPath(ev.Path)
	case EventPage:
		t.SetPage(ev.Page)
	case EventOrder:
		t.Order(ev.Column, ev.Desc)
	case EventSearch:
		t.Search(ev.Term)
	case EventLength:
		t.SetLength(ev.Length)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadEvent, ev.Type)
	}
	return nil
}
