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

package cmd

import (
	"context"
	"fmt"

	"github.com/google/tablebridge/core/args"
	"github.com/google/tablebridge/core/config"
	"github.com/google/tablebridge/datasources"
	"github.com/google/tablebridge/demo"
)

const sourceName = "main"

// loadDataset reads the configured data source.
func loadDataset(ctx context.Context, cfg *config.Configuration) (*datasources.Dataset, error) {
	if cfg.Datasource.Type == "demo" {
		return demo.Compounds(), nil
	}

	manager := datasources.NewManager()
	manager.AddSource(&datasources.DataSource{
		Name:       sourceName,
		SourceType: cfg.Datasource.Type,
		Config: map[string]string{
			"file_path": cfg.Datasource.Path,
			"dsn":       cfg.Datasource.DSN,
			"query":     cfg.Datasource.Query,
		},
	})
	return manager.LoadData(ctx, sourceName)
}

// tableOptions returns the named preset for the demo data and sortable,
// searchable columns for anything else. Table settings override both.
func tableOptions(cfg *config.Configuration, ds *datasources.Dataset) (demo.Options, error) {
	var opts demo.Options
	if cfg.Datasource.Type == "demo" {
		var err error
		if opts, err = demo.PresetOptions(cfg.Table.Preset); err != nil {
			return demo.Options{}, err
		}
	} else {
		opts = demo.DefaultOptions()
		opts.Orderable = ds.Columns()
		opts.Searchable = ds.Columns()
		opts.Key = sourceName
	}

	if cfg.Table.PageLength > 0 {
		opts.PageLength = cfg.Table.PageLength
	}
	switch cfg.Table.Select {
	case "":
	case "false", "none":
		opts.Select = false
	default:
		opts.Select = cfg.Table.Select
	}
	return opts, nil
}

// loadBundle builds the argument bundle of the configured table.
func loadBundle(ctx context.Context, cfg *config.Configuration) (*args.Bundle, error) {
	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading data source: %w", err)
	}
	opts, err := tableOptions(cfg, ds)
	if err != nil {
		return nil, err
	}
	return demo.Bundle(ds, opts)
}
