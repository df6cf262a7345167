package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to driver/dsn and wraps the handle with the matching bun dialect.
func Open(driver, dsn string) (*bun.DB, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case "sqlite", DriverSQLite:
		sqlDB, err := sql.Open(DriverSQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite allows one writer; a single connection keeps transactions serial
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "pg", "postgresql", DriverPostgres:
		sqlDB, err := sql.Open(DriverPostgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}

// Index describes a secondary index created alongside a table.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Table couples a bun model with its indexes.
type Table struct {
	Model   any
	Indexes []Index
}

// EnsureSchema creates every table and index that does not exist yet.
func EnsureSchema(ctx context.Context, db bun.IDB, groups ...[]Table) error {
	for _, group := range groups {
		for _, table := range group {
			if _, err := db.NewCreateTable().Model(table.Model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("create table %T: %w", table.Model, err)
			}
			for _, index := range table.Indexes {
				query := db.NewCreateIndex().
					Model(table.Model).
					Index(index.Name).
					Column(index.Columns...).
					IfNotExists()
				if index.Unique {
					query = query.Unique()
				}
				if _, err := query.Exec(ctx); err != nil {
					return fmt.Errorf("create index %s: %w", index.Name, err)
				}
			}
		}
	}
	return nil
}
