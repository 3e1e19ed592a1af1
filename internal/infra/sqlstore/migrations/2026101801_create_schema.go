package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_schema.sql
var createSchemaSQL string

// Migrations holds every schema change. The SQL is kept portable between Postgres and SQLite.
var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createSchemaSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS answer; DROP TABLE IF EXISTS question; DROP TABLE IF EXISTS quiz_tag; DROP TABLE IF EXISTS tag; DROP TABLE IF EXISTS quiz`)
			return err
		},
	)
}
