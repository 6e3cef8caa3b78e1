package proposals

import (
	"context"

	"github.com/quorumspace/quorum/pkg/access"
	"github.com/quorumspace/quorum/pkg/spaces"
)

// AccessRequest carries the inputs for an accessibility computation. An
// empty UserID is an anonymous caller. OnlyAssigned narrows the result to
// proposals the actor is personally assigned to.
type AccessRequest struct {
	SpaceID      string `json:"space_id"`
	UserID       string `json:"user_id,omitempty"`
	OnlyAssigned bool   `json:"only_assigned,omitempty"`
}

// Resolver computes the set of proposals an actor may view in a space.
type Resolver struct {
	store    *Store
	resolver *spaces.Resolver
}

func NewResolver(store *Store, resolver *spaces.Resolver) *Resolver {
	return &Resolver{store: store, resolver: resolver}
}

// AccessibleProposalIDs returns the IDs of every proposal in the space the
// actor may view, in storage order. Denied access means omission from the
// result, never an error.
func (r *Resolver) AccessibleProposalIDs(ctx context.Context, req AccessRequest, precomputed *spaces.Membership) ([]string, error) {
	m, err := r.resolver.Resolve(ctx, req.SpaceID, req.UserID, precomputed)
	if err != nil {
		return nil, err
	}

	proposals, err := r.store.ListBySpace(ctx, req.SpaceID)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for i := range proposals {
		p := &proposals[i]
		if !visible(p, m) {
			continue
		}
		if req.OnlyAssigned && !assigned(p, m) {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// visible evaluates the base accessibility predicate for one proposal.
func visible(p *Proposal, m *spaces.Membership) bool {
	author := isAuthor(p, m)

	// Drafts are author/admin-only. Reviewer assignments and custom step
	// permissions, public included, never reach into a draft.
	if p.Status == StatusDraft {
		return author || m.IsAdmin
	}

	if m.IsAdmin || author {
		return true
	}

	current := p.CurrentEvaluation()
	if current == nil {
		return false
	}
	if reviewerMatch(current, m) {
		return true
	}
	return viewPermissionMatch(current, p, m)
}

// assigned reports whether the actor is personally assigned to the proposal:
// author, or reviewer on the current step. Admins receive no shortcut here.
// A space_member reviewer entry counts every full member as assigned.
func assigned(p *Proposal, m *spaces.Membership) bool {
	if isAuthor(p, m) {
		return true
	}
	current := p.CurrentEvaluation()
	return current != nil && reviewerMatch(current, m)
}

func isAuthor(p *Proposal, m *spaces.Membership) bool {
	return m.UserID != "" && p.CreatedBy == m.UserID
}

// reviewerMatch reports whether the actor is a reviewer on the given step,
// directly, through a role, or through a space_member reviewer entry.
func reviewerMatch(eval *Evaluation, m *spaces.Membership) bool {
	if m.UserID == "" {
		return false
	}
	for _, reviewer := range eval.Reviewers {
		switch reviewer.Group {
		case access.GroupUser:
			if reviewer.ID == m.UserID {
				return true
			}
		case access.GroupRole:
			if m.HasRole(reviewer.ID) {
				return true
			}
		case access.GroupSpaceMember:
			if m.IsFullMember() {
				return true
			}
		}
	}
	return false
}

// viewPermissionMatch evaluates the current step's custom permissions. A
// public view grant admits any caller, anonymous included, regardless of the
// space's public-proposals setting.
func viewPermissionMatch(current *Evaluation, p *Proposal, m *spaces.Membership) bool {
	for _, perm := range current.Permissions {
		if perm.Operation != access.ProposalOperationView {
			continue
		}
		switch perm.Assignee.Group {
		case access.GroupPublic:
			return true
		case access.GroupUser:
			if m.UserID != "" && perm.Assignee.ID == m.UserID {
				return true
			}
		case access.GroupRole:
			if m.HasRole(perm.Assignee.ID) {
				return true
			}
		case access.GroupSpaceMember:
			if m.IsFullMember() {
				return true
			}
		case access.GroupAllReviewers:
			if reviewerOnAnyStep(p, m) {
				return true
			}
		}
	}
	return false
}

// reviewerOnAnyStep reports whether the actor is a reviewer, by id or role,
// on any evaluation step of the proposal, resolved steps included.
// space_member reviewer entries do not count toward all_reviewers.
func reviewerOnAnyStep(p *Proposal, m *spaces.Membership) bool {
	if m.UserID == "" {
		return false
	}
	for i := range p.Evaluations {
		for _, reviewer := range p.Evaluations[i].Reviewers {
			switch reviewer.Group {
			case access.GroupUser:
				if reviewer.ID == m.UserID {
					return true
				}
			case access.GroupRole:
				if m.HasRole(reviewer.ID) {
					return true
				}
			}
		}
	}
	return false
}
