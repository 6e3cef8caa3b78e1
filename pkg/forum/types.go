package forum

import (
	"github.com/quorumspace/quorum/pkg/access"
)

// PostCategory is a forum category within a space
type PostCategory struct {
	ID      string `json:"id"`
	SpaceID string `json:"space_id"`
	Name    string `json:"name"`
}

// CategoryPermission is a persisted grant on a post category. At most one
// row exists per (category, assignee shape); the assignee key enforces that.
type CategoryPermission struct {
	ID             string                 `json:"id"`
	PostCategoryID string                 `json:"post_category_id"`
	Level          access.PermissionLevel `json:"permission_level"`
	Assignee       access.Assignee        `json:"assignee"`
}

// ComputedPermissions is the effective operation set for one actor on one
// category: the category-level operations plus the operations posts inside
// the category inherit.
type ComputedPermissions struct {
	Category access.OperationSet[access.CategoryOperation]
	Post     access.OperationSet[access.PostOperation]
}

// PermissionFlags is the wire shape of ComputedPermissions: a full flag map
// over both operation universes.
type PermissionFlags struct {
	Category map[access.CategoryOperation]bool `json:"category_operations"`
	Post     map[access.PostOperation]bool     `json:"post_operations"`
}

// Flags expands the computed sets over their full universes
func (c *ComputedPermissions) Flags() PermissionFlags {
	return PermissionFlags{
		Category: c.Category.Flags(access.CategoryOperations),
		Post:     c.Post.Flags(access.PostOperations),
	}
}

// Empty reports whether the actor can do nothing at all with the category
func (c *ComputedPermissions) Empty() bool {
	return c.Category.Empty() && c.Post.Empty()
}

func emptyPermissions() *ComputedPermissions {
	return &ComputedPermissions{
		Category: access.NewOperationSet[access.CategoryOperation](),
		Post:     access.NewOperationSet[access.PostOperation](),
	}
}

func fullPermissions() *ComputedPermissions {
	return &ComputedPermissions{
		Category: access.NewOperationSet(access.CategoryOperations...),
		Post:     access.NewOperationSet(access.PostOperations...),
	}
}

func levelPermissions(level access.PermissionLevel) *ComputedPermissions {
	return &ComputedPermissions{
		Category: access.CategoryOperationsForLevel(level),
		Post:     access.PostOperationsForLevel(level),
	}
}

// union merges another level's mapped sets into c
func (c *ComputedPermissions) union(level access.PermissionLevel) {
	c.Category.Union(access.CategoryOperationsForLevel(level))
	c.Post.Union(access.PostOperationsForLevel(level))
}

// applyReadonly caps the sets to the read-only ceiling
func (c *ComputedPermissions) applyReadonly() {
	c.Category.Intersect(access.NewOperationSet(access.ReadonlyCategoryOperations...))
	c.Post.Intersect(access.NewOperationSet(access.ReadonlyPostOperations...))
}

// CategoryWithPermissions annotates a category with the actor's computed
// permission flags, the batch aggregation result shape.
type CategoryWithPermissions struct {
	PostCategory
	Permissions PermissionFlags `json:"permissions"`
}
