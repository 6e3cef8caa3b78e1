package proposals

import (
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

		CREATE TABLE proposals (
			id TEXT PRIMARY KEY,
			space_id TEXT NOT NULL,
			created_by TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE proposal_evaluations (
			id TEXT PRIMARY KEY,
			proposal_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			result TEXT,
			UNIQUE (proposal_id, idx)
		);

		CREATE TABLE proposal_reviewers (
			id TEXT PRIMARY KEY,
			evaluation_id TEXT NOT NULL,
			user_id TEXT,
			role_id TEXT,
			system_role TEXT
		);

		CREATE TABLE proposal_evaluation_permissions (
			id TEXT PRIMARY KEY,
			evaluation_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			user_id TEXT,
			role_id TEXT,
			system_role TEXT
		);
	`)
	require.NoError(t, err)

	return db
}

type fixture struct {
	db       *sql.DB
	store    *Store
	resolver *Resolver
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	store := NewStore(db)
	spaceResolver := spaces.NewResolver(spaces.NewStore(db))
	return &fixture{
		db:       db,
		store:    store,
		resolver: NewResolver(store, spaceResolver),
	}
}

func (f *fixture) seedSpace(t *testing.T) string {
	t.Helper()
	id := uuid.NewString()
	_, err := f.db.Exec("INSERT INTO spaces (id, name, tier) VALUES ($1, $2, $3)", id, "space", "pro")
	require.NoError(t, err)
	return id
}

func (f *fixture) setPublicProposals(t *testing.T, spaceID string) {
	t.Helper()
	_, err := f.db.Exec("UPDATE spaces SET public_proposals = 1 WHERE id = $1", spaceID)
	require.NoError(t, err)
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

func (f *fixture) seedProposal(t *testing.T, spaceID, createdBy string, status Status) string {
	t.Helper()
	id := uuid.NewString()
	_, err := f.db.Exec("INSERT INTO proposals (id, space_id, created_by, status) VALUES ($1, $2, $3, $4)",
		id, spaceID, createdBy, string(status))
	require.NoError(t, err)
	return id
}

// seedEvaluation adds a step; a nil result marks it unresolved.
func (f *fixture) seedEvaluation(t *testing.T, proposalID string, idx int, result *EvaluationResult) string {
	t.Helper()
	id := uuid.NewString()
	var res interface{}
	if result != nil {
		res = string(*result)
	}
	_, err := f.db.Exec("INSERT INTO proposal_evaluations (id, proposal_id, idx, result) VALUES ($1, $2, $3, $4)",
		id, proposalID, idx, res)
	require.NoError(t, err)
	return id
}

func assigneeColumns(assignee access.Assignee) (userID, roleID, systemRole interface{}) {
	switch assignee.Group {
	case access.GroupUser:
		return assignee.ID, nil, nil
	case access.GroupRole:
		return nil, assignee.ID, nil
	default:
		return nil, nil, string(assignee.Group)
	}
}

func (f *fixture) seedReviewer(t *testing.T, evaluationID string, assignee access.Assignee) {
	t.Helper()
	userID, roleID, systemRole := assigneeColumns(assignee)
	_, err := f.db.Exec("INSERT INTO proposal_reviewers (id, evaluation_id, user_id, role_id, system_role) VALUES ($1, $2, $3, $4, $5)",
		uuid.NewString(), evaluationID, userID, roleID, systemRole)
	require.NoError(t, err)
}

func (f *fixture) seedStepPermission(t *testing.T, evaluationID string, op access.ProposalOperation, assignee access.Assignee) {
	t.Helper()
	userID, roleID, systemRole := assigneeColumns(assignee)
	_, err := f.db.Exec("INSERT INTO proposal_evaluation_permissions (id, evaluation_id, operation, user_id, role_id, system_role) VALUES ($1, $2, $3, $4, $5, $6)",
		uuid.NewString(), evaluationID, string(op), userID, roleID, systemRole)
	require.NoError(t, err)
}

func resultOf(r EvaluationResult) *EvaluationResult {
	return &r
}
