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

// Package cmd implements the tablebridge command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/tablebridge/core/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	logLevelFlag string

	v      = config.New()
	appCfg *config.Configuration
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "tablebridge",
	Short: "Serve interactive data tables with row selection and action buttons",
	Long: `tablebridge renders tabular data as an interactive table and reports
row selections and action button clicks back to its host.

Use "serve" to run the HTTP host and "preview" to print a table page in the
terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		l, err := config.NewLogger(os.Stderr, cfg.Logging.Level)
		if err != nil {
			return err
		}
		appCfg, logger = cfg, l
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
	if err := v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
}
