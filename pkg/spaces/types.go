package spaces

import "time"

// Tier represents a space's subscription tier. Billing itself is external;
// the only signal consumed here is that free-tier spaces are read-only.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Space is a tenant: the container for members, roles, forum categories and
// proposals.
type Space struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Tier            Tier      `json:"tier"`
	PublicProposals bool      `json:"public_proposals"`
	CreatedAt       time.Time `json:"created_at"`
}

// Readonly reports whether grants in this space are downgraded to view-only
func (s *Space) Readonly() bool {
	return s.Tier == TierFree
}

// SpaceRole is a user's membership record in a space. Absence of a row means
// the user is not a member.
type SpaceRole struct {
	ID      string `json:"id"`
	SpaceID string `json:"space_id"`
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	IsGuest bool   `json:"is_guest"`
}

// Role is a space-scoped role that permission rows and proposal reviewers
// can reference.
type Role struct {
	ID      string `json:"id"`
	SpaceID string `json:"space_id"`
	Name    string `json:"name"`
}

// SpaceOperation is a space-wide capability grantable to a user, a role, or
// every member.
type SpaceOperation string

const (
	SpaceOperationModerateForums    SpaceOperation = "moderate_forums"
	SpaceOperationReviewProposals   SpaceOperation = "review_proposals"
	SpaceOperationDeleteAnyProposal SpaceOperation = "delete_any_proposal"
)

// Membership is the resolved membership state for one (space, actor) pair.
// A nil SpaceRole means the actor is anonymous or not a member; such callers
// can still receive public grants.
type Membership struct {
	SpaceID         string     `json:"space_id"`
	UserID          string     `json:"user_id,omitempty"`
	IsAdmin         bool       `json:"is_admin"`
	SpaceRole       *SpaceRole `json:"space_role,omitempty"`
	RoleIDs         []string   `json:"role_ids,omitempty"`
	ReadonlySpace   bool       `json:"readonly_space"`
	PublicProposals bool       `json:"public_proposals"`
}

// IsMember reports whether the actor holds any membership record, guest
// records included.
func (m *Membership) IsMember() bool {
	return m.SpaceRole != nil
}

// IsFullMember reports whether the actor is a non-guest member. Guests never
// satisfy space_member grants.
func (m *Membership) IsFullMember() bool {
	return m.SpaceRole != nil && !m.SpaceRole.IsGuest
}

// HasRole reports whether the actor holds the given role in this space
func (m *Membership) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}
