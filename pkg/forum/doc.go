// Package forum computes and maintains post category permissions.
//
// # Aggregation
//
// The Aggregator turns persisted permission rows into effective operation
// sets for one actor. Evaluation is ordered: space admins receive the full
// set, actors without full membership receive only public grants, space-wide
// forum moderators receive the moderator mapping, and everyone else receives
// the union of their space, role and public grants. Grants are additive;
// there is no deny. Denied access is an empty set, never an error.
//
// In a read-only (free tier) space every computed set, the admin set
// included, is capped to the view operations.
//
// The batch form filters a single-space category list down to the categories
// the actor can see at all, with one permission query for the whole batch.
//
// # Assignment
//
// The Writer validates and persists individual grants. Only role, space and
// public assignees are assignable at the category level; public grants are
// capped at view; role and space assignees must belong to the category's own
// space; category_admin and moderator are computed-only and are neither
// assignable nor deletable as rows.
package forum
