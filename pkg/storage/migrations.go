package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations holds the schema statements in dependency order. The DDL sticks
// to portable column types so the same statements run on PostgreSQL and on
// the in-memory sqlite databases used in tests.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS spaces (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tier TEXT NOT NULL DEFAULT 'pro',
		public_proposals BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS space_roles (
		id TEXT PRIMARY KEY,
		space_id TEXT NOT NULL REFERENCES spaces(id),
		user_id TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_guest BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (space_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS roles (
		id TEXT PRIMARY KEY,
		space_id TEXT NOT NULL REFERENCES spaces(id),
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS space_role_to_role (
		space_role_id TEXT NOT NULL REFERENCES space_roles(id),
		role_id TEXT NOT NULL REFERENCES roles(id),
		PRIMARY KEY (space_role_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS space_permissions (
		id TEXT PRIMARY KEY,
		space_id TEXT NOT NULL REFERENCES spaces(id),
		operation TEXT NOT NULL,
		user_id TEXT,
		role_id TEXT REFERENCES roles(id),
		for_space BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE TABLE IF NOT EXISTS post_categories (
		id TEXT PRIMARY KEY,
		space_id TEXT NOT NULL REFERENCES spaces(id),
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS post_category_permissions (
		id TEXT PRIMARY KEY,
		post_category_id TEXT NOT NULL REFERENCES post_categories(id),
		permission_level TEXT NOT NULL,
		role_id TEXT REFERENCES roles(id),
		space_id TEXT REFERENCES spaces(id),
		public BOOLEAN NOT NULL DEFAULT FALSE,
		assignee_key TEXT NOT NULL,
		UNIQUE (post_category_id, assignee_key)
	)`,

	`CREATE TABLE IF NOT EXISTS proposals (
		id TEXT PRIMARY KEY,
		space_id TEXT NOT NULL REFERENCES spaces(id),
		created_by TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS proposal_evaluations (
		id TEXT PRIMARY KEY,
		proposal_id TEXT NOT NULL REFERENCES proposals(id),
		idx INTEGER NOT NULL,
		result TEXT,
		UNIQUE (proposal_id, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS proposal_reviewers (
		id TEXT PRIMARY KEY,
		evaluation_id TEXT NOT NULL REFERENCES proposal_evaluations(id),
		user_id TEXT,
		role_id TEXT,
		system_role TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS proposal_evaluation_permissions (
		id TEXT PRIMARY KEY,
		evaluation_id TEXT NOT NULL REFERENCES proposal_evaluations(id),
		operation TEXT NOT NULL,
		user_id TEXT,
		role_id TEXT,
		system_role TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_space_roles_space_user ON space_roles (space_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_category_permissions_category ON post_category_permissions (post_category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_space ON proposals (space_id)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_proposal ON proposal_evaluations (proposal_id)`,
}

// Migrate applies the schema, statement by statement. Every statement is
// idempotent, so re-running on an existing database is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
