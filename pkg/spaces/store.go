package spaces

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/quorumspace/quorum/pkg/access"
)

// Store handles space, membership and role persistence
type Store struct {
	db *sql.DB
}

// NewStore creates a new spaces store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetSpace retrieves a space by ID
func (s *Store) GetSpace(ctx context.Context, spaceID string) (*Space, error) {
	query := `
		SELECT id, name, tier, public_proposals, created_at
		FROM spaces
		WHERE id = $1
	`

	var space Space
	err := s.db.QueryRowContext(ctx, query, spaceID).Scan(
		&space.ID,
		&space.Name,
		&space.Tier,
		&space.PublicProposals,
		&space.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, access.NewDataNotFoundError("space", spaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get space: %w", err)
	}

	return &space, nil
}

// GetSpaceRole retrieves the membership record for a user in a space.
// Returns nil without error when the user is not a member.
func (s *Store) GetSpaceRole(ctx context.Context, spaceID, userID string) (*SpaceRole, error) {
	query := `
		SELECT id, space_id, user_id, is_admin, is_guest
		FROM space_roles
		WHERE space_id = $1 AND user_id = $2
	`

	var sr SpaceRole
	err := s.db.QueryRowContext(ctx, query, spaceID, userID).Scan(
		&sr.ID,
		&sr.SpaceID,
		&sr.UserID,
		&sr.IsAdmin,
		&sr.IsGuest,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get space role: %w", err)
	}

	return &sr, nil
}

// GetRole retrieves a role by ID
func (s *Store) GetRole(ctx context.Context, roleID string) (*Role, error) {
	query := `
		SELECT id, space_id, name
		FROM roles
		WHERE id = $1
	`

	var role Role
	err := s.db.QueryRowContext(ctx, query, roleID).Scan(&role.ID, &role.SpaceID, &role.Name)
	if err == sql.ErrNoRows {
		return nil, access.NewDataNotFoundError("role", roleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return &role, nil
}

// GetRoleIDs retrieves the IDs of every role a membership record holds
func (s *Store) GetRoleIDs(ctx context.Context, spaceRoleID string) ([]string, error) {
	query := `
		SELECT role_id
		FROM space_role_to_role
		WHERE space_role_id = $1
		ORDER BY role_id
	`

	rows, err := s.db.QueryContext(ctx, query, spaceRoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role memberships: %w", err)
	}
	defer rows.Close()

	var roleIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan role membership: %w", err)
		}
		roleIDs = append(roleIDs, id)
	}

	return roleIDs, rows.Err()
}

// HasSpaceOperation reports whether the membership carries a space-wide
// operation grant, via a member-wide row, a direct user row, or any held role.
func (s *Store) HasSpaceOperation(ctx context.Context, m *Membership, op SpaceOperation) (bool, error) {
	if m.SpaceRole == nil {
		return false, nil
	}

	conditions := []string{"for_space = true", "user_id = $3"}
	args := []interface{}{m.SpaceID, string(op), m.UserID}

	if len(m.RoleIDs) > 0 {
		placeholders := make([]string, len(m.RoleIDs))
		for i, roleID := range m.RoleIDs {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, roleID)
		}
		conditions = append(conditions, "role_id IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM space_permissions
		WHERE space_id = $1 AND operation = $2 AND (%s)
	`, strings.Join(conditions, " OR "))

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check space operation: %w", err)
	}

	return count > 0, nil
}
