// Package spaces resolves space membership, the security anchor every higher
// permission check builds on.
//
// A Membership answers, for one (space, actor) pair: is the actor an admin, a
// member, a guest, or anonymous; which roles do they hold in the space; and
// is the space read-only (free tier). Callers evaluating a batch of resources
// from the same space pass the resolved Membership back in to avoid repeated
// lookups; that memoization is explicit and request-scoped, never a shared
// cache.
//
// The package also answers space-wide operation checks (moderate_forums and
// friends), granted to an individual user, a role, or every member of the
// space.
package spaces
