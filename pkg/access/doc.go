// Package access defines the value types shared by every permission
// evaluation path in Quorum: the assignee union, the permission level enum
// and its static operation mappings, operation sets, and the error taxonomy.
//
// # Assignees
//
// An Assignee names who a grant applies to. It is a tagged union
// discriminated by Group:
//
//	access.Assignee{Group: access.GroupRole, ID: roleID}
//	access.Assignee{Group: access.GroupPublic}
//
// Groups user, role and space carry exactly one ID; public, space_member and
// all_reviewers carry none. Validate rejects every other shape.
//
// # Permission levels
//
// A PermissionLevel is a coarse named grant (full_access, view, ...) that the
// static tables in this package expand into fine-grained operation sets, one
// table per resource kind:
//
//	catOps := access.CategoryOperationsForLevel(access.LevelFullAccess)
//	postOps := access.PostOperationsForLevel(access.LevelFullAccess)
//
// Both tables are total over the enum: every level maps to a defined set and
// LevelCustom maps to the empty set. LevelCategoryAdmin and LevelModerator
// are computed-only; they arise from space-wide grants and are never directly
// assignable to a category permission row.
//
// # Errors
//
// The package distinguishes "your request is broken" (InvalidInputError,
// DataNotFoundError, UndesirableOperationError, InsecureOperationError,
// AssignmentNotPermittedError) from "you are not allowed", which read paths
// express as an empty operation set rather than an error.
//
// Everything in this package is pure: no IO, no mutable package state.
package access
