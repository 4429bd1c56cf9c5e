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
	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/widget"
)

// Scheduler defers work on the UI thread.
type Scheduler interface {
	// AnimationFrame runs fn before the next paint.
	AnimationFrame(fn func())
	// Defer runs fn after the current task with zero delay.
	Defer(fn func())
}

// FrameNegotiator asks the host to resize the frame after every redraw-like
// widget event. Each event schedules its own request; there is no debouncing.
// Requests still queued when the negotiator is released are dropped.
type FrameNegotiator struct {
	port  host.Port
	sched Scheduler

	subs []*widget.Subscription
	gen  uint64
}

// NewFrameNegotiator creates an idle negotiator. A nil scheduler runs
// requests inline.
func NewFrameNegotiator(port host.Port, sched Scheduler) *FrameNegotiator {
	if sched == nil {
		sched = inline{}
	}
	return &FrameNegotiator{port: port, sched: sched}
}

// Acquire subscribes to t and schedules one resize for the next frame.
func (f *FrameNegotiator) Acquire(t *widget.Table) {
	if t == nil {
		return
	}
	f.Release()
	gen := f.gen
	onRedraw := func(widget.Event) { f.adjust(gen) }
	f.subs = []*widget.Subscription{
		t.On(widget.EventDraw, onRedraw),
		t.On(widget.EventPage, onRedraw),
		t.On(widget.EventOrder, onRedraw),
		t.On(widget.EventSearch, onRedraw),
		// Length changes relayout after the widget's own pass.
		t.On(widget.EventLength, func(widget.Event) {
			f.sched.Defer(func() { f.adjust(gen) })
		}),
	}
	f.adjust(gen)
}

// Release unsubscribes every event type and invalidates pending requests.
func (f *FrameNegotiator) Release() {
	for _, sub := range f.subs {
		sub.Release()
	}
	f.subs = nil
	f.gen++
}

func (f *FrameNegotiator) adjust(gen uint64) {
	if gen != f.gen {
		return
	}
	f.sched.AnimationFrame(func() {
		if gen == f.gen {
			f.port.RequestFrameResize()
		}
	})
}

// inline runs scheduled work immediately.
type inline struct{}

func (inline) AnimationFrame(fn func()) { fn() }
func (inline) Defer(fn func())          { fn() }
