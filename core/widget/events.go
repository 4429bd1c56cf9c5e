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
	"slices"

	"github.com/PuerkitoBio/goquery"
)

// EventType names a widget event.
type EventType string

const (
	EventSelect   EventType = "select"
	EventDeselect EventType = "deselect"
	EventDraw     EventType = "draw"
	EventPage     EventType = "page"
	EventOrder    EventType = "order"
	EventSearch   EventType = "search"
	EventLength   EventType = "length"
	EventClick    EventType = "click"
)

// ItemType is the subtype of select and deselect events.
type ItemType string

const (
	ItemRow    ItemType = "row"
	ItemColumn ItemType = "column"
	ItemCell   ItemType = "cell"
)

// Event is delivered to handlers registered with On.
type Event struct {
	Type    EventType
	Items   ItemType // select and deselect only
	Indexes []int    // select and deselect only
}

// Handler receives widget events.
type Handler func(Event)

// ClickEvent is a click somewhere inside the table node.
type ClickEvent struct {
	// Target is the element the click originated on.
	Target  *goquery.Selection
	stopped bool
}

// StopPropagation keeps the click from reaching the widget's own row
// selection handling and any later click handlers.
func (e *ClickEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler stopped propagation.
func (e *ClickEvent) Stopped() bool {
	return e.stopped
}

// ClickHandler receives clicks on the table node.
type ClickHandler func(*ClickEvent)

// Subscription is a registered handler. Release removes it; releasing twice
// is a no-op.
type Subscription struct {
	table *Table
	id    uint64
	typ   EventType
}

// Release unsubscribes the handler.
func (s *Subscription) Release() {
	if s == nil || s.table == nil {
		return
	}
	s.table.off(s.id)
	s.table = nil
}

type listener struct {
	id    uint64
	typ   EventType
	event Handler
	click ClickHandler
}

// On subscribes h to events of type typ.
func (t *Table) On(typ EventType, h Handler) *Subscription {
	return t.add(listener{typ: typ, event: h})
}

// OnClick subscribes h to clicks on the table node.
func (t *Table) OnClick(h ClickHandler) *Subscription {
	return t.add(listener{typ: EventClick, click: h})
}

// Off is equivalent to s.Release().
func (t *Table) Off(s *Subscription) {
	s.Release()
}

// Listeners returns the number of registered handlers for typ.
func (t *Table) Listeners(typ EventType) int {
	n := 0
	for _, l := range t.listeners {
		if l.typ == typ {
			n++
		}
	}
	return n
}

func (t *Table) add(l listener) *Subscription {
	t.nextID++
	l.id = t.nextID
	t.listeners = append(t.listeners, l)
	return &Subscription{table: t, id: l.id, typ: l.typ}
}

func (t *Table) off(id uint64) {
	t.listeners = slices.DeleteFunc(t.listeners, func(l listener) bool {
		return l.id == id
	})
}

// emit delivers ev to a snapshot of the current handlers, so handlers may
// subscribe or release during delivery.
func (t *Table) emit(ev Event) {
	for _, l := range slices.Clone(t.listeners) {
		if l.typ == ev.Type && l.event != nil && t.subscribed(l.id) {
			l.event(ev)
		}
	}
}

func (t *Table) subscribed(id uint64) bool {
	return slices.ContainsFunc(t.listeners, func(l listener) bool {
		return l.id == id
	})
}
