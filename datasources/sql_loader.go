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
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLoader implements DataSourceLoader for a query against a SQLite
// database.
//
// Required config keys:
//   - file_path: Path to the database file (":memory:" is accepted)
//   - query: SELECT statement producing the rows
type SQLiteLoader struct {
	// db overrides file_path when set.
	db *sql.DB
}

// NewSQLiteLoader creates a loader that opens file_path on every load.
func NewSQLiteLoader() *SQLiteLoader {
	return &SQLiteLoader{}
}

// NewSQLiteLoaderWithDB creates a loader that queries an open database.
func NewSQLiteLoaderWithDB(db *sql.DB) *SQLiteLoader {
	return &SQLiteLoader{db: db}
}

// SourceType returns "sqlite".
func (l *SQLiteLoader) SourceType() string {
	return "sqlite"
}

// DiscoverSchema runs the query and reads the declared column types.
func (l *SQLiteLoader) DiscoverSchema(ctx context.Context, config map[string]string) (*TableSchema, error) {
	var schema *TableSchema
	err := l.query(ctx, config, func(rows *sql.Rows) error {
		types, err := rows.ColumnTypes()
		if err != nil {
			return fmt.Errorf("reading column types: %w", err)
		}
		schema = &TableSchema{Columns: make([]*ColumnSchema, len(types))}
		for i, t := range types {
			schema.Columns[i] = &ColumnSchema{Name: t.Name(), Type: sqlColumnType(t.DatabaseTypeName())}
		}
		return nil
	})
	return schema, err
}

// Load runs the query and reads every row.
func (l *SQLiteLoader) Load(ctx context.Context, config map[string]string, schema *TableSchema) (*Dataset, error) {
	ds := &Dataset{Schema: schema}
	err := l.query(ctx, config, func(rows *sql.Rows) error {
		values := make([]any, len(schema.Columns))
		ptrs := make([]any, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("scanning row: %w", err)
			}
			ds.Rows = append(ds.Rows, record(schema, values))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (l *SQLiteLoader) query(ctx context.Context, config map[string]string, fn func(*sql.Rows) error) error {
	q := config["query"]
	if q == "" {
		return fmt.Errorf("query is required")
	}
	db := l.db
	if db == nil {
		path := config["file_path"]
		if path == "" {
			return fmt.Errorf("file_path is required")
		}
		var err error
		db, err = sql.Open("sqlite3", path)
		if err != nil {
			return fmt.Errorf("opening sqlite database: %w", err)
		}
		defer db.Close()
	}

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()
	return fn(rows)
}

// PostgresLoader implements DataSourceLoader for a query against
// PostgreSQL.
//
// Required config keys:
//   - dsn: Connection string
//   - query: SELECT statement producing the rows
type PostgresLoader struct{}

// NewPostgresLoader creates a new PostgreSQL loader.
func NewPostgresLoader() *PostgresLoader {
	return &PostgresLoader{}
}

// SourceType returns "postgres".
func (l *PostgresLoader) SourceType() string {
	return "postgres"
}

// DiscoverSchema runs the query and maps the result field types.
func (l *PostgresLoader) DiscoverSchema(ctx context.Context, config map[string]string) (*TableSchema, error) {
	var schema *TableSchema
	err := l.query(ctx, config, func(conn *pgx.Conn, rows pgx.Rows) error {
		fields := rows.FieldDescriptions()
		schema = &TableSchema{Columns: make([]*ColumnSchema, len(fields))}
		for i, f := range fields {
			typ := TypeString
			if t, ok := conn.TypeMap().TypeForOID(f.DataTypeOID); ok {
				typ = sqlColumnType(t.Name)
			}
			schema.Columns[i] = &ColumnSchema{Name: f.Name, Type: typ}
		}
		return nil
	})
	return schema, err
}

// Load runs the query and reads every row.
func (l *PostgresLoader) Load(ctx context.Context, config map[string]string, schema *TableSchema) (*Dataset, error) {
	ds := &Dataset{Schema: schema}
	err := l.query(ctx, config, func(_ *pgx.Conn, rows pgx.Rows) error {
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return fmt.Errorf("reading row: %w", err)
			}
			ds.Rows = append(ds.Rows, record(schema, values))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (l *PostgresLoader) query(ctx context.Context, config map[string]string, fn func(*pgx.Conn, pgx.Rows) error) error {
	dsn, q := config["dsn"], config["query"]
	if dsn == "" {
		return fmt.Errorf("dsn is required")
	}
	if q == "" {
		return fmt.Errorf("query is required")
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()
	return fn(conn, rows)
}

func record(schema *TableSchema, values []any) map[string]any {
	row := make(map[string]any, len(schema.Columns))
	for i, col := range schema.Columns {
		if i < len(values) {
			row[col.Name] = normalize(values[i])
		}
	}
	return row
}
