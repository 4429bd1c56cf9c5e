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

// Package loop runs widget work on a single UI goroutine. Bridges and
// widgets are not goroutine-safe; every access goes through a UI.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
)

// ErrStopped is returned when work is submitted to a closed UI.
var ErrStopped = errors.New("ui loop stopped")

const (
	// DefaultFrameInterval approximates one display frame.
	DefaultFrameInterval = 16 * time.Millisecond
	// DefaultSyncTimeout bounds how long Do waits for a result.
	DefaultSyncTimeout = 5 * time.Second
)

// Options configures a UI.
type Options struct {
	FrameInterval time.Duration
	SyncTimeout   time.Duration
	Logger        *slog.Logger
}

// UI is an event loop that serializes widget work. It also schedules
// animation frames and zero-delay tasks, so it can serve as a bridge
// Scheduler.
type UI struct {
	loop          *eventloop.EventLoop
	frameInterval time.Duration
	timeout       time.Duration
	logger        *slog.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// New starts a UI loop. Call Close when done.
func New(opts Options) *UI {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.SyncTimeout < 0 {
		opts.SyncTimeout = 0
	} else if opts.SyncTimeout == 0 {
		opts.SyncTimeout = DefaultSyncTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	u := &UI{
		loop:          eventloop.NewEventLoop(eventloop.EnableConsole(false)),
		frameInterval: opts.FrameInterval,
		timeout:       opts.SyncTimeout,
		logger:        opts.Logger,
		done:          make(chan struct{}),
	}
	u.loop.Start()
	return u
}

// Post schedules fn on the loop without waiting. It reports false when the
// loop is stopped.
func (u *UI) Post(fn func()) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.stopped {
		return false
	}
	return u.loop.RunOnLoop(func(*goja.Runtime) { u.run(fn) })
}

// Do runs fn on the loop and waits for its error. It must not be called from
// the loop itself.
func (u *UI) Do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	if !u.Post(func() { errCh <- call(fn) }) {
		return ErrStopped
	}

	var timeout <-chan time.Time
	if u.timeout > 0 {
		timer := time.NewTimer(u.timeout)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-u.done:
		return ErrStopped
	case <-timeout:
		return fmt.Errorf("ui operation timed out after %v", u.timeout)
	}
}

// AnimationFrame runs fn on the loop after one frame interval.
func (u *UI) AnimationFrame(fn func()) {
	u.after(u.frameInterval, fn)
}

// Defer runs fn on the loop after the current task.
func (u *UI) Defer(fn func()) {
	u.after(0, fn)
}

func (u *UI) after(d time.Duration, fn func()) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.stopped {
		return
	}
	u.loop.SetTimeout(func(*goja.Runtime) { u.run(fn) }, d)
}

// run isolates panics so one failing task does not stop the loop.
func (u *UI) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("ui task panicked", "panic", r)
		}
	}()
	fn()
}

func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ui task panicked: %v", r)
		}
	}()
	return fn()
}

// Close stops the loop and waits for the running task. It is safe to call
// more than once.
func (u *UI) Close() {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return
	}
	u.stopped = true
	close(u.done)
	u.mu.Unlock()
	u.loop.Stop()
}

// Done is closed once Close has been called.
func (u *UI) Done() <-chan struct{} {
	return u.done
}
