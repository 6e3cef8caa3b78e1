package spaces

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE spaces (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			tier TEXT NOT NULL DEFAULT 'pro',
			public_proposals INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE space_roles (
			id TEXT PRIMARY KEY,
			space_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			is_guest INTEGER NOT NULL DEFAULT 0,
			UNIQUE (space_id, user_id)
		);

		CREATE TABLE roles (
			id TEXT PRIMARY KEY,
			space_id TEXT NOT NULL,
			name TEXT NOT NULL
		);

		CREATE TABLE space_role_to_role (
			space_role_id TEXT NOT NULL,
			role_id TEXT NOT NULL,
			PRIMARY KEY (space_role_id, role_id)
		);

		CREATE TABLE space_permissions (
			id TEXT PRIMARY KEY,
			space_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			user_id TEXT,
			role_id TEXT,
			for_space INTEGER NOT NULL DEFAULT 0
		);
	`)
	require.NoError(t, err)

	return db
}

func seedSpace(t *testing.T, db *sql.DB, tier Tier, publicProposals bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO spaces (id, name, tier, public_proposals) VALUES ($1, $2, $3, $4)",
		id, "space-"+id[:8], string(tier), publicProposals)
	require.NoError(t, err)
	return id
}

func seedMember(t *testing.T, db *sql.DB, spaceID, userID string, isAdmin, isGuest bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO space_roles (id, space_id, user_id, is_admin, is_guest) VALUES ($1, $2, $3, $4, $5)",
		id, spaceID, userID, isAdmin, isGuest)
	require.NoError(t, err)
	return id
}

func seedRole(t *testing.T, db *sql.DB, spaceID, name string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO roles (id, space_id, name) VALUES ($1, $2, $3)", id, spaceID, name)
	require.NoError(t, err)
	return id
}

func assignRole(t *testing.T, db *sql.DB, spaceRoleID, roleID string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO space_role_to_role (space_role_id, role_id) VALUES ($1, $2)", spaceRoleID, roleID)
	require.NoError(t, err)
}

func seedSpacePermission(t *testing.T, db *sql.DB, spaceID string, op SpaceOperation, userID, roleID string, forSpace bool) {
	t.Helper()
	var uid, rid interface{}
	if userID != "" {
		uid = userID
	}
	if roleID != "" {
		rid = roleID
	}
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO space_permissions (id, space_id, operation, user_id, role_id, for_space) VALUES ($1, $2, $3, $4, $5, $6)",
		uuid.NewString(), spaceID, string(op), uid, rid, forSpace)
	require.NoError(t, err)
}
