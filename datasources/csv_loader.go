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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// defaultSampleSize is the number of rows sampled for type detection.
const defaultSampleSize = 100

// CsvLoader implements DataSourceLoader for CSV files. Column types are
// detected from a sample of rows: a column is float64 if every non-empty
// sampled value parses as a number, bool if every one is true/false/yes/no,
// and string otherwise.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
//   - sample_size: Rows sampled for type detection (default: 100)
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// DiscoverSchema reads the file and detects column names and types.
func (l *CsvLoader) DiscoverSchema(ctx context.Context, config map[string]string) (*TableSchema, error) {
	headers, records, err := readCSVFile(config)
	if err != nil {
		return nil, err
	}
	sampleSize := defaultSampleSize
	if n, err := strconv.Atoi(config["sample_size"]); err == nil && n > 0 {
		sampleSize = n
	}
	return detectSchema(headers, records, sampleSize), nil
}

// Load reads every record and converts cells to the schema types. Empty
// cells become null; cells that do not parse keep their text.
func (l *CsvLoader) Load(ctx context.Context, config map[string]string, schema *TableSchema) (*Dataset, error) {
	_, records, err := readCSVFile(config)
	if err != nil {
		return nil, err
	}
	return buildDataset(schema, records), nil
}

// ReadCSV loads CSV data from r with the header in the first record.
func ReadCSV(r io.Reader) (*Dataset, error) {
	headers, records, err := readCSV(r, ',', true)
	if err != nil {
		return nil, err
	}
	return buildDataset(detectSchema(headers, records, defaultSampleSize), records), nil
}

func readCSVFile(config map[string]string) ([]string, [][]string, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, nil, fmt.Errorf("file_path is required")
	}

	hasHeader := config["has_header"] != "false"
	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter = []rune(d)[0]
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return readCSV(file, delimiter, hasHeader)
}

func readCSV(r io.Reader, delimiter rune, hasHeader bool) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}

	if hasHeader {
		headers := make([]string, len(records[0]))
		for i, h := range records[0] {
			headers[i] = strings.TrimSpace(h)
		}
		return headers, records[1:], nil
	}
	headers := make([]string, len(records[0]))
	for i := range headers {
		headers[i] = fmt.Sprintf("column_%d", i+1)
	}
	return headers, records, nil
}

// detectSchema samples data to determine the type of every column.
func detectSchema(headers []string, records [][]string, sampleSize int) *TableSchema {
	rowsToSample := min(sampleSize, len(records))
	schema := &TableSchema{Columns: make([]*ColumnSchema, len(headers))}

	for i, header := range headers {
		isFloat, isBool, hasNonEmpty := true, true, false
		for _, record := range records[:rowsToSample] {
			value := cell(record, i)
			if value == "" {
				continue
			}
			hasNonEmpty = true
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isFloat = false
			}
			if _, ok := parseBool(value); !ok {
				isBool = false
			}
		}

		typ := TypeString
		switch {
		case !hasNonEmpty:
		case isFloat:
			typ = TypeFloat64
		case isBool:
			typ = TypeBool
		}
		schema.Columns[i] = &ColumnSchema{Name: header, Type: typ}
	}
	return schema
}

func buildDataset(schema *TableSchema, records [][]string) *Dataset {
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		row := make(map[string]any, len(schema.Columns))
		for i, col := range schema.Columns {
			row[col.Name] = convert(cell(record, i), col.Type)
		}
		rows = append(rows, row)
	}
	return &Dataset{Schema: schema, Rows: rows}
}

func convert(value string, typ ColumnType) any {
	if value == "" {
		return nil
	}
	switch typ {
	case TypeFloat64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case TypeBool:
		if b, ok := parseBool(value); ok {
			return b
		}
	}
	return value
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	}
	return false, false
}
