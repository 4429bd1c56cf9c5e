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

// Package server exposes bridge instances over HTTP. Every bridge call runs
// on the UI loop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/safehtml"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/bridge"
	"github.com/google/tablebridge/core/host"
	"github.com/google/tablebridge/core/loop"
	"github.com/google/tablebridge/core/rendering"
	"github.com/google/uuid"
)

// ErrUnknownInstance is returned for ids that were never mounted or were
// already unmounted.
var ErrUnknownInstance = errors.New("unknown instance")

// instance is one mounted bridge and the recorder standing in for its host.
// Fields other than id are only touched on the UI loop.
type instance struct {
	id       string
	bridge   *bridge.Bridge
	recorder *host.Recorder
	bundle   *args.Bundle // as sent by the host, before keying
}

// Server represents the application server with all its dependencies
type Server struct {
	ui       *loop.UI
	renderer *rendering.PageRenderer
	logger   *slog.Logger

	mu        sync.RWMutex
	instances map[string]*instance
	// nonces is the per-key reset counter used by ResetKey.
	nonces map[string]int
}

// NewServer creates a server that schedules bridge work on ui.
func NewServer(ui *loop.UI, logger *slog.Logger) (*Server, error) {
	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		ui:        ui,
		renderer:  renderer,
		logger:    logger,
		instances: make(map[string]*instance),
		nonces:    make(map[string]int),
	}, nil
}

// Mount creates a bridge for b and runs its first render cycle.
func (s *Server) Mount(ctx context.Context, b *args.Bundle) (string, error) {
	id := uuid.NewString()
	rec := host.NewRecorder(s.logger.With("instance", id))
	inst := &instance{
		id:       id,
		recorder: rec,
		bridge: bridge.New(bridge.Options{
			Port:      rec,
			Scheduler: s.ui,
			Logger:    s.logger.With("instance", id),
		}),
	}
	eff := s.keyed(b)
	err := s.ui.Do(ctx, func() error {
		inst.bundle = b
		inst.bridge.Render(eff)
		return nil
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.instances[id] = inst
	s.mu.Unlock()
	s.logger.Info("instance mounted", "instance", id, "rows", len(b.Data), "key", b.Key)
	return id, nil
}

// Update runs the next render cycle of an instance.
func (s *Server) Update(ctx context.Context, id string, b *args.Bundle) error {
	inst, err := s.lookup(id)
	if err != nil {
		return err
	}
	eff := s.keyed(b)
	return s.ui.Do(ctx, func() error {
		inst.bundle = b
		inst.bridge.Render(eff)
		return nil
	})
}

// Unmount releases every subscription of an instance and forgets it.
func (s *Server) Unmount(ctx context.Context, id string) error {
	s.mu.Lock()
	inst, ok := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()
	if !ok {
		return ErrUnknownInstance
	}
	err := s.ui.Do(ctx, func() error {
		inst.bridge.Unmount()
		return nil
	})
	s.logger.Info("instance unmounted", "instance", id)
	return err
}

// ResetKey increments the reset nonce of key and re-renders every instance
// created with that key, which clears their selections.
func (s *Server) ResetKey(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	s.nonces[key]++
	nonce := s.nonces[key]
	var targets []*instance
	for _, inst := range s.instances {
		targets = append(targets, inst)
	}
	s.mu.Unlock()

	return nonce, s.ui.Do(ctx, func() error {
		for _, inst := range targets {
			if inst.bundle == nil || inst.bundle.Key != key {
				continue
			}
			inst.bridge.Render(keyedNonce(inst.bundle, nonce))
		}
		return nil
	})
}

// Dispatch applies a user event to an instance.
func (s *Server) Dispatch(ctx context.Context, id string, ev Event) error {
	inst, err := s.lookup(id)
	if err != nil {
		return err
	}
	return s.ui.Do(ctx, func() error {
		return ev.apply(inst.bridge)
	})
}

// Snapshot is the host-side view of an instance.
type Snapshot struct {
	Value     host.Value `json:"value"`
	Resizes   int        `json:"resizes"`
	Published int        `json:"published"`
}

// Value returns the last published value, or the empty selection.
func (s *Server) Value(id string) (Snapshot, error) {
	inst, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Value:     inst.recorder.Current(),
		Resizes:   inst.recorder.Resizes(),
		Published: inst.recorder.Published(),
	}, nil
}

// Frame renders the current table of an instance inside its styled frame.
func (s *Server) Frame(ctx context.Context, id string) (safehtml.HTML, error) {
	inst, err := s.lookup(id)
	if err != nil {
		return safehtml.HTML{}, err
	}
	var frame safehtml.HTML
	err = s.ui.Do(ctx, func() error {
		t := inst.bridge.Table()
		if t == nil {
			return ErrUnknownInstance
		}
		frame = rendering.Frame(t.HTML(), inst.bridge.Style())
		return nil
	})
	return frame, err
}

func (s *Server) lookup(id string) (*instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	if !ok {
		return nil, ErrUnknownInstance
	}
	return inst, nil
}

// keyed combines the bundle's own nonce with the stored counter of its key,
// so a change to either one resets the selection.
func (s *Server) keyed(b *args.Bundle) *args.Bundle {
	if b.Key == "" {
		return b
	}
	s.mu.RLock()
	nonce := s.nonces[b.Key]
	s.mu.RUnlock()
	return keyedNonce(b, nonce)
}

func keyedNonce(b *args.Bundle, counter int) *args.Bundle {
	return b.WithResetNonce(args.Nonce(string(b.ResetNonce) + "/" + strconv.Itoa(counter)))
}
