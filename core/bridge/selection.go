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

package bridge

import (
	"log/slog"

	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/widget"
)

// SelectionSync publishes the widget's current selection to the host on every
// row-level select or deselect. It is idle until Acquire and idle again after
// Release.
type SelectionSync struct {
	port   host.Port
	logger *slog.Logger

	table *widget.Table
	subs  []*widget.Subscription
}

// NewSelectionSync creates an idle synchronizer.
func NewSelectionSync(port host.Port, logger *slog.Logger) *SelectionSync {
	return &SelectionSync{port: port, logger: logger}
}

// Acquire subscribes to t and immediately publishes the current selection.
// A nil table leaves the synchronizer idle.
func (s *SelectionSync) Acquire(t *widget.Table) {
	if t == nil {
		return
	}
	s.Release()
	s.table = t
	s.subs = []*widget.Subscription{
		t.On(widget.EventSelect, s.publishIfRow),
		t.On(widget.EventDeselect, s.publishIfRow),
	}
	s.publish()
}

// Release unsubscribes both event types.
func (s *SelectionSync) Release() {
	for _, sub := range s.subs {
		sub.Release()
	}
	s.subs = nil
	s.table = nil
}

// Subscribed reports whether the synchronizer is listening to a widget.
func (s *SelectionSync) Subscribed() bool {
	return s.table != nil
}

// Reset force-clears the widget selection and publishes the result, even if
// the selection was already empty and no deselect event fired.
func (s *SelectionSync) Reset() {
	if s.table == nil {
		return
	}
	s.table.DeselectAll()
	s.logger.Debug("selection reset")
	s.publish()
}

// publishIfRow ignores column and cell selection.
func (s *SelectionSync) publishIfRow(ev widget.Event) {
	if ev.Items != widget.ItemRow {
		return
	}
	s.publish()
}

// publish re-reads the selection from the widget; nothing is cached.
func (s *SelectionSync) publish() {
	if s.table == nil {
		return
	}
	rows, indexes := s.table.Selected()
	v := host.NewSelectionValue(rows, indexes)
	s.logger.Debug("publishing selection", "count", v.Count)
	s.port.PublishValue(v)
}
