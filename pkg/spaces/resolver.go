package spaces

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quorumspace/quorum/pkg/access"
)

// Resolver computes membership state for an actor in a space
type Resolver struct {
	store *Store
}

// NewResolver creates a new membership resolver
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the membership state for userID in spaceID. An empty
// userID is an anonymous caller. When precomputed carries a matching
// membership it is returned unchanged, so batch callers resolve once per
// space instead of once per resource.
func (r *Resolver) Resolve(ctx context.Context, spaceID, userID string, precomputed *Membership) (*Membership, error) {
	if _, err := uuid.Parse(spaceID); err != nil {
		return nil, access.NewInvalidInputError(fmt.Sprintf("space id %q is not a valid UUID", spaceID))
	}
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			return nil, access.NewInvalidInputError(fmt.Sprintf("user id %q is not a valid UUID", userID))
		}
	}

	if precomputed != nil && precomputed.SpaceID == spaceID && precomputed.UserID == userID {
		return precomputed, nil
	}

	space, err := r.store.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	m := &Membership{
		SpaceID:         spaceID,
		UserID:          userID,
		ReadonlySpace:   space.Readonly(),
		PublicProposals: space.PublicProposals,
	}

	if userID == "" {
		return m, nil
	}

	spaceRole, err := r.store.GetSpaceRole(ctx, spaceID, userID)
	if err != nil {
		return nil, err
	}
	if spaceRole == nil {
		return m, nil
	}

	m.SpaceRole = spaceRole
	m.IsAdmin = spaceRole.IsAdmin

	roleIDs, err := r.store.GetRoleIDs(ctx, spaceRole.ID)
	if err != nil {
		return nil, err
	}
	m.RoleIDs = roleIDs

	return m, nil
}

// HasOperation reports whether the resolved membership carries a space-wide
// operation grant.
func (r *Resolver) HasOperation(ctx context.Context, m *Membership, op SpaceOperation) (bool, error) {
	return r.store.HasSpaceOperation(ctx, m, op)
}
