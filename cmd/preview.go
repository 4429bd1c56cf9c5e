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
	"github.com/google/tablebridge/core/preview"
	"github.com/spf13/cobra"
)

var (
	previewPage   int
	previewSearch string
	previewSelect []int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print one page of the configured table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		bundle, err := loadBundle(cmd.Context(), appCfg)
		if err != nil {
			return err
		}
		return preview.Render(cmd.OutOrStdout(), bundle, preview.Options{
			Page:   previewPage,
			Search: previewSearch,
			Select: previewSelect,
		})
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewPage, "page", 0, "zero-based page to print")
	previewCmd.Flags().StringVar(&previewSearch, "search", "", "search term")
	previewCmd.Flags().IntSliceVar(&previewSelect, "select", nil, "row positions to mark as selected")
}
