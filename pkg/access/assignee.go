package access

import (
	"fmt"

	"github.com/google/uuid"
)

// AssigneeGroup discriminates the assignee union
type AssigneeGroup string

const (
	GroupUser         AssigneeGroup = "user"
	GroupRole         AssigneeGroup = "role"
	GroupSpace        AssigneeGroup = "space"
	GroupPublic       AssigneeGroup = "public"
	GroupSpaceMember  AssigneeGroup = "space_member"
	GroupAllReviewers AssigneeGroup = "all_reviewers"
)

// Assignee identifies who a grant applies to. Groups user, role and space
// carry the corresponding UUID in ID; the remaining groups carry no ID.
type Assignee struct {
	Group AssigneeGroup `json:"group"`
	ID    string        `json:"id,omitempty"`
}

// NewUserAssignee returns a user assignee
func NewUserAssignee(userID string) Assignee {
	return Assignee{Group: GroupUser, ID: userID}
}

// NewRoleAssignee returns a role assignee
func NewRoleAssignee(roleID string) Assignee {
	return Assignee{Group: GroupRole, ID: roleID}
}

// NewSpaceAssignee returns a space assignee
func NewSpaceAssignee(spaceID string) Assignee {
	return Assignee{Group: GroupSpace, ID: spaceID}
}

// NewPublicAssignee returns the public assignee
func NewPublicAssignee() Assignee {
	return Assignee{Group: GroupPublic}
}

// NewSpaceMemberAssignee returns the space_member assignee
func NewSpaceMemberAssignee() Assignee {
	return Assignee{Group: GroupSpaceMember}
}

// NewAllReviewersAssignee returns the all_reviewers assignee
func NewAllReviewersAssignee() Assignee {
	return Assignee{Group: GroupAllReviewers}
}

// Validate checks that the assignee has exactly the identity shape its group
// requires: user/role/space carry one well-formed UUID, the rest carry none.
func (a Assignee) Validate() error {
	switch a.Group {
	case GroupUser, GroupRole, GroupSpace:
		if a.ID == "" {
			return NewInvalidInputError(fmt.Sprintf("assignee group %q requires an id", a.Group))
		}
		if _, err := uuid.Parse(a.ID); err != nil {
			return NewInvalidInputError(fmt.Sprintf("assignee id %q is not a valid UUID", a.ID))
		}
		return nil
	case GroupPublic, GroupSpaceMember, GroupAllReviewers:
		if a.ID != "" {
			return NewInvalidInputError(fmt.Sprintf("assignee group %q does not carry an id", a.Group))
		}
		return nil
	case "":
		return NewInvalidInputError("assignee group is required")
	default:
		return NewInvalidInputError(fmt.Sprintf("unrecognized assignee group %q", a.Group))
	}
}

// Key returns the canonical shape string used as the uniqueness key for
// persisted permission rows: "role:<id>", "space:<id>", "user:<id>" or the
// bare group name for id-less groups.
func (a Assignee) Key() string {
	switch a.Group {
	case GroupUser, GroupRole, GroupSpace:
		return string(a.Group) + ":" + a.ID
	default:
		return string(a.Group)
	}
}

// String implements fmt.Stringer
func (a Assignee) String() string {
	return a.Key()
}
