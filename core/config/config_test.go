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

package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8097", cfg.Server.Addr)
	assert.Equal(t, 16*time.Millisecond, cfg.UI.FrameInterval)
	assert.Equal(t, 5*time.Second, cfg.UI.SyncTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "demo", cfg.Datasource.Type)
	assert.Equal(t, "single", cfg.Table.Preset)
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablebridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
ui:
  frame_interval: 32ms
datasource:
  type: csv
  path: people.csv
table:
  page_length: 25
  select: multi
`), 0o644))
	t.Setenv("TABLEBRIDGE_LOGGING_LEVEL", "debug")
	t.Setenv("TABLEBRIDGE_SERVER_ADDR", ":9100")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, 32*time.Millisecond, cfg.UI.FrameInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "csv", cfg.Datasource.Type)
	assert.Equal(t, "people.csv", cfg.Datasource.Path)
	assert.Equal(t, 25, cfg.Table.PageLength)
	assert.Equal(t, "multi", cfg.Table.Select)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrBadLevel)

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "instance", "abc")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "instance=abc")
}
