// Package db opens the Postgres pool and applies the embedded schema.
package db

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

//go:embed schema.sql
var schema string

// Schema returns the embedded DDL
func Schema() string { return schema }

// Connect opens a pool sized by cfg and verifies it
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, errx.Wrap(err, "failed to connect to database", errx.TypeExternal).
			WithDetail("host", cfg.Host).
			WithDetail("name", cfg.Name)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// InitSchema applies the schema. It is safe to run more than once.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errx.Wrap(err, "failed to initialize schema", errx.TypeInternal)
	}
	return nil
}
