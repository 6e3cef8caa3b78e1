package forum

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quorumspace/quorum/pkg/access"
	"github.com/quorumspace/quorum/pkg/spaces"
)

// Aggregator computes effective category permissions for an actor
type Aggregator struct {
	store    *Store
	resolver *spaces.Resolver
}

// NewAggregator creates a new category permission aggregator
func NewAggregator(store *Store, resolver *spaces.Resolver) *Aggregator {
	return &Aggregator{store: store, resolver: resolver}
}

// ComputePermissions returns the effective operation sets for one actor on
// one category. An empty actorID is an anonymous caller. A precomputed
// membership may be passed when the caller already resolved it for this
// space.
func (a *Aggregator) ComputePermissions(ctx context.Context, categoryID, actorID string, precomputed *spaces.Membership) (*ComputedPermissions, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, access.NewInvalidInputError(fmt.Sprintf("post category id %q is not a valid UUID", categoryID))
	}

	category, err := a.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	m, err := a.resolver.Resolve(ctx, category.SpaceID, actorID, precomputed)
	if err != nil {
		return nil, err
	}

	perms, err := a.computeForMembership(ctx, m, []string{categoryID})
	if err != nil {
		return nil, err
	}

	if computed, ok := perms[categoryID]; ok {
		return computed, nil
	}
	return emptyPermissions(), nil
}

// PermissionedCategories filters a single-space category list down to the
// categories the actor can see at all, each annotated with computed
// permission flags. The single permission query per batch is what keeps a
// large category listing from going N+1.
func (a *Aggregator) PermissionedCategories(ctx context.Context, categories []PostCategory, actorID string, precomputed *spaces.Membership) ([]CategoryWithPermissions, error) {
	if len(categories) == 0 {
		return []CategoryWithPermissions{}, nil
	}

	spaceID := categories[0].SpaceID
	categoryIDs := make([]string, len(categories))
	for i, cat := range categories {
		if cat.SpaceID != spaceID {
			return nil, access.NewInvalidInputError("batch spans more than one space")
		}
		categoryIDs[i] = cat.ID
	}

	m, err := a.resolver.Resolve(ctx, spaceID, actorID, precomputed)
	if err != nil {
		return nil, err
	}

	perms, err := a.computeForMembership(ctx, m, categoryIDs)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithPermissions, 0, len(categories))
	for _, cat := range categories {
		computed, ok := perms[cat.ID]
		if !ok || computed.Empty() {
			continue
		}
		result = append(result, CategoryWithPermissions{
			PostCategory: cat,
			Permissions:  computed.Flags(),
		})
	}

	return result, nil
}

// computeForMembership evaluates the grant sources in precedence order and
// returns per-category permission sets. Categories the actor has no grant
// for are absent from the map.
func (a *Aggregator) computeForMembership(ctx context.Context, m *spaces.Membership, categoryIDs []string) (map[string]*ComputedPermissions, error) {
	result := make(map[string]*ComputedPermissions, len(categoryIDs))

	// Space admins get everything; read-only downgrade still applies.
	if m.IsAdmin {
		for _, id := range categoryIDs {
			result[id] = a.downgraded(m, fullPermissions())
		}
		return result, nil
	}

	// Anonymous callers, non-members and guests receive public grants only.
	if !m.IsFullMember() {
		rows, err := a.store.ListPublicPermissions(ctx, categoryIDs)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			computed, ok := result[row.PostCategoryID]
			if !ok {
				computed = emptyPermissions()
				result[row.PostCategoryID] = computed
			}
			computed.union(row.Level)
		}
		for id, computed := range result {
			result[id] = a.downgraded(m, computed)
		}
		return result, nil
	}

	// Space-wide forum moderators get the moderator mapping on every
	// category in the space.
	isModerator, err := a.resolver.HasOperation(ctx, m, spaces.SpaceOperationModerateForums)
	if err != nil {
		return nil, err
	}
	if isModerator {
		for _, id := range categoryIDs {
			result[id] = a.downgraded(m, levelPermissions(access.LevelModerator))
		}
		return result, nil
	}

	// Everyone else: additive union of space, role and public grants.
	rows, err := a.store.ListApplicablePermissions(ctx, categoryIDs, m.SpaceID, m.RoleIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		computed, ok := result[row.PostCategoryID]
		if !ok {
			computed = emptyPermissions()
			result[row.PostCategoryID] = computed
		}
		computed.union(row.Level)
	}
	for id, computed := range result {
		result[id] = a.downgraded(m, computed)
	}

	return result, nil
}

func (a *Aggregator) downgraded(m *spaces.Membership, computed *ComputedPermissions) *ComputedPermissions {
	if m.ReadonlySpace {
		computed.applyReadonly()
	}
	return computed
}
