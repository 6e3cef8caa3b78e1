package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssigneeValidate(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name     string
		assignee Assignee
		wantErr  bool
	}{
		{"user with id", NewUserAssignee(id), false},
		{"role with id", NewRoleAssignee(id), false},
		{"space with id", NewSpaceAssignee(id), false},
		{"public", NewPublicAssignee(), false},
		{"space_member", NewSpaceMemberAssignee(), false},
		{"all_reviewers", NewAllReviewersAssignee(), false},
		{"user without id", Assignee{Group: GroupUser}, true},
		{"role without id", Assignee{Group: GroupRole}, true},
		{"space without id", Assignee{Group: GroupSpace}, true},
		{"user with malformed id", Assignee{Group: GroupUser, ID: "not-a-uuid"}, true},
		{"public with id", Assignee{Group: GroupPublic, ID: id}, true},
		{"space_member with id", Assignee{Group: GroupSpaceMember, ID: id}, true},
		{"all_reviewers with id", Assignee{Group: GroupAllReviewers, ID: id}, true},
		{"missing group", Assignee{ID: id}, true},
		{"unknown group", Assignee{Group: "team", ID: id}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.assignee.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidInput(err), "expected InvalidInputError, got %T", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssigneeKey(t *testing.T) {
	id := uuid.NewString()

	assert.Equal(t, "role:"+id, NewRoleAssignee(id).Key())
	assert.Equal(t, "space:"+id, NewSpaceAssignee(id).Key())
	assert.Equal(t, "user:"+id, NewUserAssignee(id).Key())
	assert.Equal(t, "public", NewPublicAssignee().Key())
	assert.Equal(t, "space_member", NewSpaceMemberAssignee().Key())
	assert.Equal(t, "all_reviewers", NewAllReviewersAssignee().Key())
}

func TestAssigneeKeyDistinguishesShapes(t *testing.T) {
	// The key is the uniqueness anchor for persisted rows; two different
	// shapes must never collide.
	id := uuid.NewString()
	keys := map[string]bool{}
	for _, a := range []Assignee{
		NewUserAssignee(id),
		NewRoleAssignee(id),
		NewSpaceAssignee(id),
		NewPublicAssignee(),
		NewSpaceMemberAssignee(),
		NewAllReviewersAssignee(),
	} {
		assert.False(t, keys[a.Key()], "duplicate key %q", a.Key())
		keys[a.Key()] = true
	}
}
