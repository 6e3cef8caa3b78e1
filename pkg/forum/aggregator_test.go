package forum

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumspace/quorum/pkg/access"
	"github.com/quorumspace/quorum/pkg/spaces"
)

func TestComputePermissionsAdminGetsEverything(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)
	admin := uuid.NewString()
	f.seedMember(t, spaceID, admin, true, false)

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, admin, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, access.CategoryOperations, computed.Category.Sorted())
	assert.ElementsMatch(t, access.PostOperations, computed.Post.Sorted())
}

func TestComputePermissionsUnionOfGrants(t *testing.T) {
	// Category has {role: full_access}, {space: view}, {public: view}. A
	// member holding the role gets the union, which equals the full_access
	// mapping.
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)

	userID := uuid.NewString()
	spaceRoleID := f.seedMember(t, spaceID, userID, false, false)
	roleID := f.seedRole(t, spaceID)
	f.assignRole(t, spaceRoleID, roleID)

	f.seedPermission(t, categoryID, access.LevelFullAccess, access.NewRoleAssignee(roleID))
	f.seedPermission(t, categoryID, access.LevelView, access.NewSpaceAssignee(spaceID))
	f.seedPermission(t, categoryID, access.LevelView, access.NewPublicAssignee())

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, userID, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		access.CategoryOperationsForLevel(access.LevelFullAccess).Sorted(),
		computed.Category.Sorted())
	assert.ElementsMatch(t,
		access.PostOperationsForLevel(access.LevelFullAccess).Sorted(),
		computed.Post.Sorted())
}

func TestComputePermissionsAnonymousGetsPublicOnly(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)

	roleID := f.seedRole(t, spaceID)
	f.seedPermission(t, categoryID, access.LevelFullAccess, access.NewRoleAssignee(roleID))
	f.seedPermission(t, categoryID, access.LevelView, access.NewPublicAssignee())

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, "", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		access.CategoryOperationsForLevel(access.LevelView).Sorted(),
		computed.Category.Sorted())
}

func TestComputePermissionsAnonymousNoPublicRows(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)
	f.seedPermission(t, categoryID, access.LevelFullAccess, access.NewSpaceAssignee(spaceID))

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, "", nil)
	require.NoError(t, err)

	assert.True(t, computed.Empty())
}

func TestComputePermissionsGuestGetsPublicOnly(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)
	guest := uuid.NewString()
	f.seedMember(t, spaceID, guest, false, true)

	f.seedPermission(t, categoryID, access.LevelFullAccess, access.NewSpaceAssignee(spaceID))
	f.seedPermission(t, categoryID, access.LevelView, access.NewPublicAssignee())

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, guest, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		access.CategoryOperationsForLevel(access.LevelView).Sorted(),
		computed.Category.Sorted())
}

func TestComputePermissionsSpaceWideModerator(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)
	moderator := uuid.NewString()
	f.seedMember(t, spaceID, moderator, false, false)
	f.seedModerateForums(t, spaceID, moderator)

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, moderator, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		access.CategoryOperationsForLevel(access.LevelModerator).Sorted(),
		computed.Category.Sorted())
	assert.False(t, computed.Post.Has(access.PostOperationEditPost))
	assert.True(t, computed.Post.Has(access.PostOperationDeletePost))
}

func TestComputePermissionsReadonlyDowngrade(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierFree)
	categoryID := f.seedCategory(t, spaceID)

	admin := uuid.NewString()
	f.seedMember(t, spaceID, admin, true, false)

	member := uuid.NewString()
	f.seedMember(t, spaceID, member, false, false)
	f.seedPermission(t, categoryID, access.LevelFullAccess, access.NewSpaceAssignee(spaceID))

	for _, userID := range []string{admin, member} {
		computed, err := f.aggregator.ComputePermissions(ctx, categoryID, userID, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, access.ReadonlyCategoryOperations, computed.Category.Sorted())
		assert.ElementsMatch(t, access.ReadonlyPostOperations, computed.Post.Sorted())
	}
}

func TestComputePermissionsMemberWithoutGrants(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	categoryID := f.seedCategory(t, spaceID)
	member := uuid.NewString()
	f.seedMember(t, spaceID, member, false, false)

	computed, err := f.aggregator.ComputePermissions(ctx, categoryID, member, nil)
	require.NoError(t, err)

	// Denied access is an empty set, not an error.
	assert.True(t, computed.Empty())
}

func TestComputePermissionsErrors(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.aggregator.ComputePermissions(ctx, "not-a-uuid", "", nil)
	assert.True(t, access.IsInvalidInput(err))

	_, err = f.aggregator.ComputePermissions(ctx, uuid.NewString(), "", nil)
	assert.True(t, access.IsPostCategoryNotFound(err))
}

func TestPermissionedCategoriesRejectsMultiSpaceBatch(t *testing.T) {
	f := setupFixture(t)

	spaceA := f.seedSpace(t, spaces.TierPro)
	spaceB := f.seedSpace(t, spaces.TierPro)
	batch := []PostCategory{
		{ID: f.seedCategory(t, spaceA), SpaceID: spaceA},
		{ID: f.seedCategory(t, spaceB), SpaceID: spaceB},
	}

	_, err := f.aggregator.PermissionedCategories(context.Background(), batch, "", nil)
	assert.True(t, access.IsInvalidInput(err))
}

func TestPermissionedCategoriesAdminSeesAll(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	admin := uuid.NewString()
	f.seedMember(t, spaceID, admin, true, false)

	var batch []PostCategory
	for i := 0; i < 3; i++ {
		id := f.seedCategory(t, spaceID)
		batch = append(batch, PostCategory{ID: id, SpaceID: spaceID})
	}

	result, err := f.aggregator.PermissionedCategories(ctx, batch, admin, nil)
	require.NoError(t, err)

	require.Len(t, result, 3)
	for _, cat := range result {
		assert.True(t, cat.Permissions.Category[access.CategoryOperationManagePermissions])
	}
}

func TestPermissionedCategoriesFiltersForNonMember(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	visible := f.seedCategory(t, spaceID)
	hidden := f.seedCategory(t, spaceID)
	f.seedPermission(t, visible, access.LevelView, access.NewPublicAssignee())
	f.seedPermission(t, hidden, access.LevelFullAccess, access.NewSpaceAssignee(spaceID))

	batch := []PostCategory{
		{ID: visible, SpaceID: spaceID},
		{ID: hidden, SpaceID: spaceID},
	}

	result, err := f.aggregator.PermissionedCategories(ctx, batch, "", nil)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, visible, result[0].ID)
	assert.True(t, result[0].Permissions.Category[access.CategoryOperationViewPosts])
	assert.False(t, result[0].Permissions.Category[access.CategoryOperationCreatePost])
}

func TestPermissionedCategoriesMemberBatch(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	userID := uuid.NewString()
	spaceRoleID := f.seedMember(t, spaceID, userID, false, false)
	roleID := f.seedRole(t, spaceID)
	f.assignRole(t, spaceRoleID, roleID)

	roleCat := f.seedCategory(t, spaceID)
	spaceCat := f.seedCategory(t, spaceID)
	hiddenCat := f.seedCategory(t, spaceID)
	otherRole := f.seedRole(t, spaceID)

	f.seedPermission(t, roleCat, access.LevelFullAccess, access.NewRoleAssignee(roleID))
	f.seedPermission(t, spaceCat, access.LevelCommentVote, access.NewSpaceAssignee(spaceID))
	f.seedPermission(t, hiddenCat, access.LevelFullAccess, access.NewRoleAssignee(otherRole))

	batch := []PostCategory{
		{ID: roleCat, SpaceID: spaceID},
		{ID: spaceCat, SpaceID: spaceID},
		{ID: hiddenCat, SpaceID: spaceID},
	}

	result, err := f.aggregator.PermissionedCategories(ctx, batch, userID, nil)
	require.NoError(t, err)

	require.Len(t, result, 2)
	byID := map[string]CategoryWithPermissions{}
	for _, cat := range result {
		byID[cat.ID] = cat
	}
	assert.True(t, byID[roleCat].Permissions.Category[access.CategoryOperationCreatePost])
	assert.False(t, byID[spaceCat].Permissions.Category[access.CategoryOperationCreatePost])
	assert.True(t, byID[spaceCat].Permissions.Category[access.CategoryOperationCommentPosts])
	_, hiddenIncluded := byID[hiddenCat]
	assert.False(t, hiddenIncluded)
}

func TestPermissionedCategoriesEmptyInput(t *testing.T) {
	f := setupFixture(t)

	result, err := f.aggregator.PermissionedCategories(context.Background(), nil, "", nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPermissionedCategoriesPrecomputedMembership(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	spaceID := f.seedSpace(t, spaces.TierPro)
	admin := uuid.NewString()
	f.seedMember(t, spaceID, admin, true, false)
	categoryID := f.seedCategory(t, spaceID)

	resolver := spaces.NewResolver(f.spaceStore)
	m, err := resolver.Resolve(ctx, spaceID, admin, nil)
	require.NoError(t, err)

	batch := []PostCategory{{ID: categoryID, SpaceID: spaceID}}
	result, err := f.aggregator.PermissionedCategories(ctx, batch, admin, m)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}
