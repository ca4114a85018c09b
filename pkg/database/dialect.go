package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect hides the SQL differences between the supported databases.
type Dialect interface {
	// Name returns the database/sql driver name the dialect targets.
	Name() string

	// PlaceholderFormat returns the bind parameter style used by squirrel.
	PlaceholderFormat() sq.PlaceholderFormat
}

// PostgresDialect targets PostgreSQL through pgx or lib/pq ($1, $2 placeholders).
type PostgresDialect struct {
	Driver string
}

func (d PostgresDialect) Name() string {
	if d.Driver == "" {
		return "pgx"
	}
	return d.Driver
}

func (d PostgresDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Dollar }

// SQLiteDialect targets SQLite through go-sqlite3 (? placeholders).
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string                            { return "sqlite3" }
func (SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Question }

// DialectFor resolves the dialect for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return PostgresDialect{Driver: driver}, nil
	case "sqlite3":
		return SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
