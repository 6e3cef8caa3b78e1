package forum

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quorumspace/quorum/pkg/access"
)

// Store handles post category and category permission persistence
type Store struct {
	db *sql.DB
}

// NewStore creates a new forum store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetCategory retrieves a post category by ID
func (s *Store) GetCategory(ctx context.Context, categoryID string) (*PostCategory, error) {
	query := `
		SELECT id, space_id, name
		FROM post_categories
		WHERE id = $1
	`

	var cat PostCategory
	err := s.db.QueryRowContext(ctx, query, categoryID).Scan(&cat.ID, &cat.SpaceID, &cat.Name)
	if err == sql.ErrNoRows {
		return nil, access.NewPostCategoryNotFoundError(categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post category: %w", err)
	}

	return &cat, nil
}

// ListCategories retrieves every post category in a space
func (s *Store) ListCategories(ctx context.Context, spaceID string) ([]PostCategory, error) {
	query := `
		SELECT id, space_id, name
		FROM post_categories
		WHERE space_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post categories: %w", err)
	}
	defer rows.Close()

	var categories []PostCategory
	for rows.Next() {
		var cat PostCategory
		if err := rows.Scan(&cat.ID, &cat.SpaceID, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan post category: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// GetPermission retrieves a category permission row by ID. Returns nil
// without error when the row does not exist.
func (s *Store) GetPermission(ctx context.Context, permissionID string) (*CategoryPermission, error) {
	query := `
		SELECT id, post_category_id, permission_level, role_id, space_id, public
		FROM post_category_permissions
		WHERE id = $1
	`

	perm, err := scanPermission(s.db.QueryRowContext(ctx, query, permissionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category permission: %w", err)
	}

	return perm, nil
}

// ListPublicPermissions retrieves the public-assignee permission rows for a
// set of categories, the only rows that apply to callers without full
// membership.
func (s *Store) ListPublicPermissions(ctx context.Context, categoryIDs []string) ([]CategoryPermission, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	placeholders, args := inClause(categoryIDs, 0)
	query := fmt.Sprintf(`
		SELECT id, post_category_id, permission_level, role_id, space_id, public
		FROM post_category_permissions
		WHERE public = true AND post_category_id IN (%s)
	`, placeholders)

	return s.queryPermissions(ctx, query, args...)
}

// ListApplicablePermissions retrieves, in one query, every permission row
// that can apply to a full member of spaceID holding roleIDs across the
// given categories: space rows for their space, role rows for any held role,
// and public rows (public grants apply to members too).
func (s *Store) ListApplicablePermissions(ctx context.Context, categoryIDs []string, spaceID string, roleIDs []string) ([]CategoryPermission, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	catPlaceholders, args := inClause(categoryIDs, 0)
	conditions := []string{"public = true", fmt.Sprintf("space_id = $%d", len(args)+1)}
	args = append(args, spaceID)

	if len(roleIDs) > 0 {
		rolePlaceholders, roleArgs := inClause(roleIDs, len(args))
		conditions = append(conditions, fmt.Sprintf("role_id IN (%s)", rolePlaceholders))
		args = append(args, roleArgs...)
	}

	query := fmt.Sprintf(`
		SELECT id, post_category_id, permission_level, role_id, space_id, public
		FROM post_category_permissions
		WHERE post_category_id IN (%s) AND (%s)
	`, catPlaceholders, strings.Join(conditions, " OR "))

	return s.queryPermissions(ctx, query, args...)
}

// UpsertPermission inserts or replaces the grant for (category, assignee
// shape), keyed by the assignee_key uniqueness constraint so concurrent
// upserts serialize to one surviving row.
func (s *Store) UpsertPermission(ctx context.Context, perm *CategoryPermission) error {
	var roleID, spaceID interface{}
	public := false
	switch perm.Assignee.Group {
	case access.GroupRole:
		roleID = perm.Assignee.ID
	case access.GroupSpace:
		spaceID = perm.Assignee.ID
	case access.GroupPublic:
		public = true
	default:
		return access.NewAssignmentNotPermittedError(perm.Assignee.Group)
	}

	if perm.ID == "" {
		perm.ID = uuid.NewString()
	}

	query := `
		INSERT INTO post_category_permissions (id, post_category_id, permission_level, role_id, space_id, public, assignee_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (post_category_id, assignee_key)
		DO UPDATE SET permission_level = EXCLUDED.permission_level
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		perm.ID,
		perm.PostCategoryID,
		string(perm.Level),
		roleID,
		spaceID,
		public,
		perm.Assignee.Key(),
	).Scan(&perm.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert category permission: %w", err)
	}

	return nil
}

// DeletePermission deletes a category permission row by ID
func (s *Store) DeletePermission(ctx context.Context, permissionID string) error {
	query := `DELETE FROM post_category_permissions WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, permissionID); err != nil {
		return fmt.Errorf("failed to delete category permission: %w", err)
	}
	return nil
}

func (s *Store) queryPermissions(ctx context.Context, query string, args ...interface{}) ([]CategoryPermission, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category permissions: %w", err)
	}
	defer rows.Close()

	var perms []CategoryPermission
	for rows.Next() {
		perm, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category permission: %w", err)
		}
		perms = append(perms, *perm)
	}

	return perms, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPermission reconstructs the assignee union from the nullable
// discriminator columns.
func scanPermission(scanner rowScanner) (*CategoryPermission, error) {
	var perm CategoryPermission
	var level string
	var roleID, spaceID sql.NullString
	var public bool

	if err := scanner.Scan(&perm.ID, &perm.PostCategoryID, &level, &roleID, &spaceID, &public); err != nil {
		return nil, err
	}

	perm.Level = access.PermissionLevel(level)
	switch {
	case public:
		perm.Assignee = access.NewPublicAssignee()
	case roleID.Valid:
		perm.Assignee = access.NewRoleAssignee(roleID.String)
	case spaceID.Valid:
		perm.Assignee = access.NewSpaceAssignee(spaceID.String)
	}

	return &perm, nil
}

// inClause builds "$n, $n+1, ..." placeholders starting after offset
// existing args.
func inClause(values []string, offset int) (string, []interface{}) {
	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = fmt.Sprintf("$%d", offset+i+1)
		args[i] = v
	}
	return strings.Join(placeholders, ", "), args
}
