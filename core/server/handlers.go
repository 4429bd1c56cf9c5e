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
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/loop"
	"github.com/google/tablebridge/core/rendering"
)

// maxBundleBytes bounds request bodies.
const maxBundleBytes = 32 << 20

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/instances/{id}", s.handlePage)

	r.Route("/api", func(api chi.Router) {
		api.Post("/instances", s.handleMount)
		api.Route("/instances/{id}", func(inst chi.Router) {
			inst.Put("/args", s.handleUpdate)
			inst.Post("/events", s.handleEvent)
			inst.Get("/value", s.handleValue)
			inst.Delete("/", s.handleUnmount)
		})
		api.Post("/keys/{key}/reset", s.handleResetKey)
	})
	return r
}

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	b, ok := s.readBundle(w, r)
	if !ok {
		return
	}
	id, err := s.Mount(r.Context(), b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	b, ok := s.readBundle(w, r)
	if !ok {
		return
	}
	if err := s.Update(r.Context(), chi.URLParam(r, "id"), b); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev Event
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBundleBytes)).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid event: " + err.Error()})
		return
	}
	if err := s.Dispatch(r.Context(), chi.URLParam(r, "id"), ev); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Value(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := s.Unmount(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetKey(w http.ResponseWriter, r *http.Request) {
	nonce, err := s.ResetKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"nonce": nonce})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	frame, err := s.Frame(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, rendering.Page{ID: id, Title: "Table " + id, Frame: frame}); err != nil {
		s.logger.Error("rendering page", "instance", id, "error", err)
	}
}

func (s *Server) readBundle(w http.ResponseWriter, r *http.Request) (*args.Bundle, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBundleBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "reading body: " + err.Error()})
		return nil, false
	}
	b, err := args.Parse(data)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return b, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, args.ErrInvalidBundle), errors.Is(err, ErrBadEvent):
		status = http.StatusBadRequest
	case errors.Is(err, ErrUnknownInstance):
		status = http.StatusNotFound
	case errors.Is(err, loop.ErrStopped):
		status = http.StatusServiceUnavailable
	default:
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
