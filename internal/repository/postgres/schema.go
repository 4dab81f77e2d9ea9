package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the content tables when they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Templates + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			no_parents BOOLEAN NOT NULL DEFAULT FALSE,
			no_children BOOLEAN NOT NULL DEFAULT FALSE,
			parent_template_ids TEXT[] NOT NULL DEFAULT '{}',
			child_template_ids TEXT[] NOT NULL DEFAULT '{}',
			fields JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Pages + ` (
			id UUID PRIMARY KEY,
			parent_id UUID REFERENCES ` + tables.Pages + `(id) ON DELETE CASCADE,
			template_id UUID NOT NULL REFERENCES ` + tables.Templates + `(id),
			name TEXT NOT NULL,
			path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			fields JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(parent_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.UserRoles + ` (
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			PRIMARY KEY (user_id, role)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `pages_parent ON ` + tables.Pages + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `pages_template ON ` + tables.Pages + `(template_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `user_roles_role ON ` + tables.UserRoles + `(role)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the content tables in reverse dependency order.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.UserRoles, tables.Users, tables.Pages, tables.Templates} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
