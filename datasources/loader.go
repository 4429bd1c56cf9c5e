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

// Package datasources loads tabular data from CSV files and SQL databases
// into the column list and row records a table bridge renders.
package datasources

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/tablebridge/core/args"
	"github.com/google/uuid"
)

// ErrUnknownSource is returned for source names or types without a
// registration.
var ErrUnknownSource = errors.New("unknown data source")

// ColumnType represents the data type of a column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeFloat64
	TypeBool
	TypeDatetime
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ColumnSchema represents a single column's schema discovered from a data source.
type ColumnSchema struct {
	Name string
	Type ColumnType
}

// TableSchema represents the full table schema discovered from a data source.
type TableSchema struct {
	Columns []*ColumnSchema
}

// Names returns the column names in order.
func (s *TableSchema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Dataset is a loaded table: ordered column names and JSON-compatible rows.
type Dataset struct {
	Schema *TableSchema
	Rows   []args.Row
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return d.Schema.Names()
}

// DataSourceLoader is the interface that all data source loaders must implement.
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g., "csv", "sqlite").
	SourceType() string

	// DiscoverSchema returns the schema discovered from the data source.
	DiscoverSchema(ctx context.Context, config map[string]string) (*TableSchema, error)

	// Load retrieves the rows described by schema.
	Load(ctx context.Context, config map[string]string, schema *TableSchema) (*Dataset, error)
}

// normalize converts a driver value into a JSON-compatible value: numbers
// become float64, times become RFC 3339 strings, byte slices become strings.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(x).String()
	case driver.Valuer:
		inner, err := x.Value()
		if err != nil {
			return nil
		}
		if _, same := inner.(driver.Valuer); same {
			return fmt.Sprint(inner)
		}
		return normalize(inner)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// sqlColumnType maps a database type name to a ColumnType.
func sqlColumnType(name string) ColumnType {
	switch strings.ToLower(name) {
	case "int", "integer", "int2", "int4", "int8", "smallint", "bigint",
		"real", "float", "float4", "float8", "double", "numeric", "decimal":
		return TypeFloat64
	case "bool", "boolean":
		return TypeBool
	case "date", "datetime", "timestamp", "timestamptz":
		return TypeDatetime
	default:
		return TypeString
	}
}
