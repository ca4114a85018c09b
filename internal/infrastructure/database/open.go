package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	orm "eduresource-api/pkg/database"
)

// DB is an open database handle together with the dialect used to build
// queries against it.
type DB struct {
	SQL     *sqlx.DB
	Dialect orm.Dialect

	postgres *PostgresDB
}

// Open connects to the database selected by cfg.Driver.
func Open(ctx context.Context, cfg *DBConfig) (*DB, error) {
	dialect, err := orm.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case "pgx":
		pg := NewPostgresDB(cfg)
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		return &DB{
			SQL:      sqlx.NewDb(stdlib.OpenDBFromPool(pg.Pool), "pgx"),
			Dialect:  dialect,
			postgres: pg,
		}, nil

	case "postgres":
		db, err := sqlx.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.MaxConns > 0 {
			db.SetMaxOpenConns(int(cfg.MaxConns))
		}
		db.SetMaxIdleConns(int(cfg.MinConns))
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

		if err := withRetry(ctx, cfg, db.PingContext); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connection failed: %w", err)
		}
		return &DB{SQL: db, Dialect: dialect}, nil

	default:
		dsn := cfg.DSN()
		db, err := sqlx.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// every connection to :memory: is a separate database
		if strings.Contains(dsn, ":memory:") {
			db.SetMaxOpenConns(1)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connection failed: %w", err)
		}
		log.Info().Str("dsn", dsn).Msg("[DATABASE] SQLite database opened")
		return &DB{SQL: db, Dialect: dialect}, nil
	}
}

// Ping verifies the database answers within five seconds.
func (db *DB) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.SQL.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// PoolStats reports pgx pool usage; nil for the other drivers.
func (db *DB) PoolStats() *PoolStats {
	if db.postgres == nil {
		return nil
	}
	stats, err := db.postgres.Stats()
	if err != nil {
		return nil
	}
	return stats
}

func (db *DB) Close() error {
	err := db.SQL.Close()
	if db.postgres != nil {
		db.postgres.Close()
	}
	return err
}
