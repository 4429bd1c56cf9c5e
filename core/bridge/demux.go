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

	"github.com/google/tablebridge/core/actions"
	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/widget"
)

// ActionDemux turns clicks on action buttons into ActionValues.
type ActionDemux struct {
	port   host.Port
	logger *slog.Logger

	table *widget.Table
	sub   *widget.Subscription
}

// NewActionDemux creates an idle demultiplexer.
func NewActionDemux(port host.Port, logger *slog.Logger) *ActionDemux {
	return &ActionDemux{port: port, logger: logger}
}

// Acquire listens for clicks on the table node of t.
func (d *ActionDemux) Acquire(t *widget.Table) {
	if t == nil {
		return
	}
	d.Release()
	d.table = t
	d.sub = t.OnClick(d.handleClick)
}

// Release stops listening.
func (d *ActionDemux) Release() {
	d.sub.Release()
	d.sub = nil
	d.table = nil
}

func (d *ActionDemux) handleClick(ev *widget.ClickEvent) {
	if d.table == nil {
		return
	}
	btn := ev.Target.Closest(actions.ButtonSelector)
	if btn.Length() == 0 {
		return
	}
	// The click belongs to the button, not to row selection.
	ev.StopPropagation()

	action := btn.AttrOr(actions.AttrAction, "")

	tr := btn.Closest("tr")
	if tr.Length() == 0 {
		return
	}
	row, index, ok := d.table.RowAt(tr)
	if !ok {
		return
	}
	d.logger.Debug("publishing action", "action", action, "row", index)
	d.port.PublishValue(host.ActionValue{Row: row, Action: action, RowIndex: index})
}
