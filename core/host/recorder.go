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

package host

import (
	"log/slog"
	"sync"
)

// Recorder is a Port that keeps every published value and counts resize
// requests. It is safe for concurrent use, so a transport goroutine can read
// while the UI loop publishes.
type Recorder struct {
	logger *slog.Logger

	mu      sync.Mutex
	values  []Value
	resizes int
}

// NewRecorder creates a Recorder. A nil logger discards debug output.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) PublishValue(v Value) {
	r.mu.Lock()
	r.values = append(r.values, v)
	n := len(r.values)
	r.mu.Unlock()
	r.logger.Debug("value published", "seq", n)
}

func (r *Recorder) RequestFrameResize() {
	r.mu.Lock()
	r.resizes++
	n := r.resizes
	r.mu.Unlock()
	r.logger.Debug("frame resize requested", "seq", n)
}

// Current returns the last published value, or the empty selection when
// nothing has been published yet.
func (r *Recorder) Current() Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return EmptySelection()
	}
	return r.values[len(r.values)-1]
}

// Values returns a copy of every published value in order.
func (r *Recorder) Values() []Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Value(nil), r.values...)
}

// Published returns the number of published values.
func (r *Recorder) Published() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Resizes returns the number of resize requests.
func (r *Recorder) Resizes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resizes
}
