package forum

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/quorumspace/quorum/pkg/access"
	"github.com/quorumspace/quorum/pkg/spaces"
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

		CREATE TABLE post_categories (
			id TEXT PRIMARY KEY,
			space_id TEXT NOT NULL,
			name TEXT NOT NULL
		);

		CREATE TABLE post_category_permissions (
			id TEXT PRIMARY KEY,
			post_category_id TEXT NOT NULL,
			permission_level TEXT NOT NULL,
			role_id TEXT,
			space_id TEXT,
			public INTEGER NOT NULL DEFAULT 0,
			assignee_key TEXT NOT NULL,
			UNIQUE (post_category_id, assignee_key)
		);
	`)
	require.NoError(t, err)

	return db
}

type fixture struct {
	db         *sql.DB
	store      *Store
	spaceStore *spaces.Store
	aggregator *Aggregator
	writer     *Writer
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	store := NewStore(db)
	spaceStore := spaces.NewStore(db)
	resolver := spaces.NewResolver(spaceStore)
	return &fixture{
		db:         db,
		store:      store,
		spaceStore: spaceStore,
		aggregator: NewAggregator(store, resolver),
		writer:     NewWriter(store, spaceStore),
	}
}

func (f *fixture) seedSpace(t *testing.T, tier spaces.Tier) string {
	t.Helper()
	id := uuid.NewString()
	_, err := f.db.Exec("INSERT INTO spaces (id, name, tier) VALUES ($1, $2, $3)", id, "space", string(tier))
	require.NoError(t, err)
	return id
}

func (f *fixture) seedMember(t *testing.T, spaceID, userID string, isAdmin, isGuest bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := f.db.Exec("INSERT INTO space_roles (id, space_id, user_id, is_admin, is_guest) VALUES ($1, $2, $3, $4, $5)",
		id, spaceID, userID, isAdmin, isGuest)
	require.NoError(t, err)
	return id
}

func (f *fixture) seedRole(t *testing.T, spaceID string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := f.db.Exec("INSERT INTO roles (id, space_id, name) VALUES ($1, $2, $3)", id, spaceID, "role")
	require.NoError(t, err)
	return id
}

func (f *fixture) assignRole(t *testing.T, spaceRoleID, roleID string) {
	t.Helper()
	_, err := f.db.Exec("INSERT INTO space_role_to_role (space_role_id, role_id) VALUES ($1, $2)", spaceRoleID, roleID)
	require.NoError(t, err)
}

func (f *fixture) seedCategory(t *testing.T, spaceID string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := f.db.Exec("INSERT INTO post_categories (id, space_id, name) VALUES ($1, $2, $3)", id, spaceID, "general")
	require.NoError(t, err)
	return id
}

func (f *fixture) seedModerateForums(t *testing.T, spaceID, userID string) {
	t.Helper()
	_, err := f.db.Exec("INSERT INTO space_permissions (id, space_id, operation, user_id) VALUES ($1, $2, $3, $4)",
		uuid.NewString(), spaceID, string(spaces.SpaceOperationModerateForums), userID)
	require.NoError(t, err)
}

// seedPermission writes a permission row directly, bypassing the Writer's
// validation, for exercising read paths and structural rows.
func (f *fixture) seedPermission(t *testing.T, categoryID string, level access.PermissionLevel, assignee access.Assignee) string {
	t.Helper()
	var roleID, spaceID interface{}
	public := false
	switch assignee.Group {
	case access.GroupRole:
		roleID = assignee.ID
	case access.GroupSpace:
		spaceID = assignee.ID
	case access.GroupPublic:
		public = true
	}
	id := uuid.NewString()
	_, err := f.db.Exec(
		"INSERT INTO post_category_permissions (id, post_category_id, permission_level, role_id, space_id, public, assignee_key) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		id, categoryID, string(level), roleID, spaceID, public, assignee.Key())
	require.NoError(t, err)
	return id
}

func (f *fixture) permissionCount(t *testing.T, categoryID string) int {
	t.Helper()
	var count int
	err := f.db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM post_category_permissions WHERE post_category_id = $1", categoryID).Scan(&count)
	require.NoError(t, err)
	return count
}
