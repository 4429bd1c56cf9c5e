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

// Package demo provides a sample dataset and the table configurations used
// by the serve and preview commands.
package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/tablebridge/datasources"
)

//go:embed data/compounds.csv
var compoundsCSV string

// Compounds returns the embedded sample dataset with the columns ID, NAME,
// shape, person and created_at.
func Compounds() *datasources.Dataset {
	ds, err := datasources.ReadCSV(strings.NewReader(compoundsCSV))
	if err != nil {
		panic(fmt.Sprintf("failed to import compounds CSV: %v", err))
	}
	return ds
}
