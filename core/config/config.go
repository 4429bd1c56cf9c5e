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

// Package config loads settings from defaults, an optional YAML file and
// TABLEBRIDGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TABLEBRIDGE_SERVER_ADDR.
const EnvPrefix = "TABLEBRIDGE"

// Configuration is the full set of settings.
type Configuration struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	UI struct {
		FrameInterval time.Duration `mapstructure:"frame_interval"`
		SyncTimeout   time.Duration `mapstructure:"sync_timeout"`
	} `mapstructure:"ui"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Datasource struct {
		// Type is demo, csv, sqlite or postgres.
		Type  string `mapstructure:"type"`
		Path  string `mapstructure:"path"`
		DSN   string `mapstructure:"dsn"`
		Query string `mapstructure:"query"`
	} `mapstructure:"datasource"`
	Table struct {
		PageLength int    `mapstructure:"page_length"`
		Select     string `mapstructure:"select"`
		Preset     string `mapstructure:"preset"`
	} `mapstructure:"table"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.addr", "127.0.0.1:8097")
	v.SetDefault("ui.frame_interval", 16*time.Millisecond)
	v.SetDefault("ui.sync_timeout", 5*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("datasource.type", "demo")
	v.SetDefault("datasource.path", "")
	v.SetDefault("datasource.dsn", "")
	v.SetDefault("datasource.query", "")
	v.SetDefault("table.page_length", 0)
	v.SetDefault("table.select", "")
	v.SetDefault("table.preset", "single")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile, if given, into v and decodes the result.
func Load(v *viper.Viper, cfgFile string) (*Configuration, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}
	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// ErrBadLevel is returned for unknown logging levels.
var ErrBadLevel = errors.New("unknown log level")

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadLevel, s)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
