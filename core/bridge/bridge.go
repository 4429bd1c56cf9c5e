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

// Package bridge is the synchronization engine between a table widget and
// its host. It wires three consumers to one widget instance:
//
//   - SelectionSync publishes the current selection on select/deselect and on
//     host-driven resets.
//   - ActionDemux publishes an ActionValue for clicks on action buttons.
//   - FrameNegotiator requests frame resizes after redraws.
//
// A Bridge is not safe for concurrent use; drive it from a single UI
// goroutine (see package loop).
package bridge

import (
	"log/slog"

	"github.com/google/tablebridge/core/actions"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/columns"
	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/widget"
)

// Options configures a Bridge.
type Options struct {
	Port host.Port
	// Scheduler defers frame resize requests. Nil runs them inline.
	Scheduler Scheduler
	Logger    *slog.Logger
}

// Bridge owns one widget instance and the subscriptions attached to it.
type Bridge struct {
	port   host.Port
	logger *slog.Logger

	selection *SelectionSync
	demux     *ActionDemux
	frames    *FrameNegotiator

	table     *widget.Table
	nonce     args.Nonce
	nonceSeen bool

	theme   *host.Theme
	focused bool
}

// New creates an unmounted bridge.
func New(opts Options) *Bridge {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{
		port:      opts.Port,
		logger:    logger,
		selection: NewSelectionSync(opts.Port, logger),
		demux:     NewActionDemux(opts.Port, logger),
		frames:    NewFrameNegotiator(opts.Port, opts.Scheduler),
	}
}

// TableConfig derives the widget configuration from a bundle. Columns are
// built and the actions column injected before anything else happens.
func TableConfig(b *args.Bundle) widget.Config {
	descriptors := columns.Build(b.Columns, b.Orderable, b.Hidden, b.Searchable)
	descriptors = actions.Inject(descriptors, b.Actions)
	return widget.Config{
		Columns:    descriptors,
		Data:       b.Data,
		Select:     b.Select,
		PageLength: b.PageLength,
		LengthMenu: b.LengthMenu,
	}
}

// Mounted reports whether a widget instance exists.
func (b *Bridge) Mounted() bool {
	return b.table != nil
}

// Table returns the widget instance, or nil before Mount.
func (b *Bridge) Table() *widget.Table {
	return b.table
}

// Render consumes the bundle of one render cycle. The first call creates the
// widget and establishes every subscription; later calls reconfigure the same
// widget. A changed reset nonce clears the selection.
func (b *Bridge) Render(bundle *args.Bundle) {
	cfg := TableConfig(bundle)
	if b.table == nil {
		b.mount(cfg)
	} else {
		b.table.Configure(cfg)
	}
	b.applyNonce(bundle.ResetNonce)
}

func (b *Bridge) mount(cfg widget.Config) {
	b.table = widget.New(cfg)
	b.logger.Debug("widget mounted", "columns", len(cfg.Columns), "rows", len(cfg.Data))

	b.port.RequestFrameResize()
	b.selection.Acquire(b.table)
	b.demux.Acquire(b.table)
	b.frames.Acquire(b.table)
}

// applyNonce resets on the first nonce seen and on every change after that.
func (b *Bridge) applyNonce(n args.Nonce) {
	if b.nonceSeen && n == b.nonce {
		return
	}
	b.nonce = n
	b.nonceSeen = true
	b.selection.Reset()
}

// Unmount releases every subscription and drops the widget. Rendering again
// mounts a fresh widget.
func (b *Bridge) Unmount() {
	b.selection.Release()
	b.demux.Release()
	b.frames.Release()
	b.table = nil
	b.nonceSeen = false
	b.logger.Debug("widget unmounted")
}

// Reset clears the selection as if the reset nonce had changed.
func (b *Bridge) Reset() {
	b.selection.Reset()
}

// SetTheme updates the style hint. A change requests a frame resize.
func (b *Bridge) SetTheme(theme *host.Theme) {
	if sameTheme(b.theme, theme) {
		return
	}
	b.theme = theme
	b.styleChanged()
}

// SetFocused updates the focus state that drives the border highlight.
func (b *Bridge) SetFocused(focused bool) {
	if b.focused == focused {
		return
	}
	b.focused = focused
	b.styleChanged()
}

// Style returns the current frame style.
func (b *Bridge) Style() host.Style {
	return host.StyleFor(b.theme, b.focused)
}

func (b *Bridge) styleChanged() {
	b.port.RequestFrameResize()
}

func sameTheme(a, b *host.Theme) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
