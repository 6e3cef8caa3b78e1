// Package proposals computes which governance proposals an actor may view.
//
// Visibility is a per-proposal predicate over independent grant sources:
// space admin status, authorship, and the proposal's current evaluation step
// (its reviewer list and custom step permissions). Drafts are visible to
// their author and space admins only, no exceptions. Reviewer grants apply
// to the current step only; the all_reviewers permission assignee is the one
// step-agnostic grant, unioning reviewers across every step. A public view
// permission on the current step opens the proposal to any caller, anonymous
// included, independent of the space's public-proposals setting.
//
// The onlyAssigned filter narrows the accessible set to proposals the actor
// is personally assigned to: author or current-step reviewer. A space_member
// reviewer entry makes every full member count as assigned; see DESIGN.md
// for why that oddity is preserved.
package proposals
