package forum

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quorumspace/quorum/pkg/access"
	"github.com/quorumspace/quorum/pkg/spaces"
)

// assignableGroups are the assignee groups a category permission row may
// carry. Individual users are assignable only in proposal evaluations, not
// here.
var assignableGroups = map[access.AssigneeGroup]bool{
	access.GroupRole:   true,
	access.GroupSpace:  true,
	access.GroupPublic: true,
}

// UpsertInput is a request to create or replace one category grant
type UpsertInput struct {
	PostCategoryID string                 `json:"post_category_id"`
	Level          access.PermissionLevel `json:"permission_level"`
	Assignee       access.Assignee        `json:"assignee"`
}

// Writer validates and persists category permission grants. Validation is
// fail-fast: nothing is written until every check passes.
type Writer struct {
	store       *Store
	spacesStore *spaces.Store
}

// NewWriter creates a new permission assignment writer
func NewWriter(store *Store, spacesStore *spaces.Store) *Writer {
	return &Writer{store: store, spacesStore: spacesStore}
}

// Upsert validates the grant and writes it keyed by the (category, assignee
// shape) uniqueness constraint. Returns the persisted permission.
func (w *Writer) Upsert(ctx context.Context, input UpsertInput) (*CategoryPermission, error) {
	if _, err := uuid.Parse(input.PostCategoryID); err != nil {
		return nil, access.NewInvalidInputError(fmt.Sprintf("post category id %q is not a valid UUID", input.PostCategoryID))
	}

	if input.Level == "" {
		return nil, access.NewInvalidInputError("permission level is required")
	}
	if !input.Level.Valid() {
		return nil, access.NewInvalidInputError(fmt.Sprintf("unrecognized permission level %q", input.Level))
	}
	if input.Level.ComputedOnly() {
		return nil, access.NewUndesirableOperationError(fmt.Sprintf("level %q is computed-only and cannot be assigned", input.Level))
	}
	if input.Level == access.LevelCustom {
		return nil, access.NewUndesirableOperationError("custom permission levels are not supported")
	}

	if err := input.Assignee.Validate(); err != nil {
		return nil, err
	}
	if !assignableGroups[input.Assignee.Group] {
		return nil, access.NewAssignmentNotPermittedError(input.Assignee.Group)
	}

	// Public grants never exceed view. Anything above would hand write
	// access to anonymous callers.
	if input.Assignee.Group == access.GroupPublic && input.Level != access.LevelView {
		return nil, access.NewInsecureOperationError(fmt.Sprintf("public assignees can only be granted view, not %q", input.Level))
	}

	category, err := w.store.GetCategory(ctx, input.PostCategoryID)
	if err != nil {
		return nil, err
	}

	switch input.Assignee.Group {
	case access.GroupSpace:
		if input.Assignee.ID != category.SpaceID {
			return nil, access.NewInsecureOperationError("space assignee does not match the category's space")
		}
	case access.GroupRole:
		role, err := w.spacesStore.GetRole(ctx, input.Assignee.ID)
		if err != nil {
			return nil, err
		}
		if role.SpaceID != category.SpaceID {
			return nil, access.NewInsecureOperationError("role belongs to a different space than the category")
		}
	}

	perm := &CategoryPermission{
		PostCategoryID: input.PostCategoryID,
		Level:          input.Level,
		Assignee:       input.Assignee,
	}
	if err := w.store.UpsertPermission(ctx, perm); err != nil {
		return nil, err
	}

	return perm, nil
}

// Delete removes a category permission row. Deleting a row that does not
// exist is a no-op. Computed-only rows are structural and refuse deletion.
func (w *Writer) Delete(ctx context.Context, permissionID string) error {
	if _, err := uuid.Parse(permissionID); err != nil {
		return access.NewInvalidInputError(fmt.Sprintf("permission id %q is not a valid UUID", permissionID))
	}

	perm, err := w.store.GetPermission(ctx, permissionID)
	if err != nil {
		return err
	}
	if perm == nil {
		return nil
	}

	if perm.Level.ComputedOnly() {
		return access.NewUndesirableOperationError(fmt.Sprintf("level %q rows cannot be deleted individually", perm.Level))
	}

	return w.store.DeletePermission(ctx, permissionID)
}
