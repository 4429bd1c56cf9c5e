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

package datasources

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// DataSource names a source and the loader configuration used to read it.
type DataSource struct {
	Name       string
	SourceType string
	Config     map[string]string
}

// Manager handles loading and caching of data sources. Sources are
// registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name
	sources map[string]*DataSource

	// Cached datasets indexed by source name - populated lazily
	datasets map[string]*Dataset

	// Registered loaders indexed by source_type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a manager with the CSV, SQLite and PostgreSQL loaders
// registered.
func NewManager() *Manager {
	m := &Manager{
		sources:  make(map[string]*DataSource),
		datasets: make(map[string]*Dataset),
		loaders:  make(map[string]DataSourceLoader),
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewSQLiteLoader())
	m.RegisterLoader(NewPostgresLoader())
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the directory relative file paths are resolved against.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a source. A source with the same name is replaced
// and its cached data dropped.
func (m *Manager) AddSource(source *DataSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
	delete(m.datasets, source.Name)
}

// GetSourceNames returns all registered source names, sorted.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadData loads a source by name, using the cache when possible.
func (m *Manager) LoadData(ctx context.Context, sourceName string) (*Dataset, error) {
	m.mu.RLock()
	if ds, ok := m.datasets[sourceName]; ok {
		m.mu.RUnlock()
		return ds, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("%w: source %q not found", ErrUnknownSource, sourceName)
	}
	loader, hasLoader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("%w: no loader registered for source type %q", ErrUnknownSource, source.SourceType)
	}

	config := resolveConfigPaths(source.Config, baseDir)

	// Step 1: Discover schema from the data source
	schema, err := loader.DiscoverSchema(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to discover schema for source %q: %w", sourceName, err)
	}

	// Step 2: Load data with the discovered schema
	ds, err := loader.Load(ctx, config, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	m.mu.Lock()
	m.datasets[sourceName] = ds
	m.mu.Unlock()

	return ds, nil
}

// InvalidateCache drops the cached data of a source.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.datasets, sourceName)
}

// IsLoaded reports whether a source's data is cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.datasets[sourceName]
	return ok
}

// resolveConfigPaths resolves a relative file_path against baseDir.
func resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	resolved := make(map[string]string, len(config))
	for k, v := range config {
		resolved[k] = v
	}
	if p := resolved["file_path"]; p != "" && p != ":memory:" && baseDir != "" && !filepath.IsAbs(p) {
		resolved["file_path"] = filepath.Join(baseDir, p)
	}
	return resolved
}
