package access

// PermissionLevel is a coarse named grant on a post category
type PermissionLevel string

const (
	LevelCategoryAdmin PermissionLevel = "category_admin"
	LevelModerator     PermissionLevel = "moderator"
	LevelFullAccess    PermissionLevel = "full_access"
	LevelCommentVote   PermissionLevel = "comment_vote"
	LevelView          PermissionLevel = "view"
	LevelCustom        PermissionLevel = "custom"
)

// PermissionLevels lists every recognized level
var PermissionLevels = []PermissionLevel{
	LevelCategoryAdmin,
	LevelModerator,
	LevelFullAccess,
	LevelCommentVote,
	LevelView,
	LevelCustom,
}

// Valid reports whether the level is a recognized enum value
func (l PermissionLevel) Valid() bool {
	switch l {
	case LevelCategoryAdmin, LevelModerator, LevelFullAccess, LevelCommentVote, LevelView, LevelCustom:
		return true
	}
	return false
}

// ComputedOnly reports whether the level arises only from space-wide grants
// and is never directly assignable to a category permission row.
func (l PermissionLevel) ComputedOnly() bool {
	return l == LevelCategoryAdmin || l == LevelModerator
}

// CategoryOperation is an operation on a post category
type CategoryOperation string

const (
	CategoryOperationCreatePost        CategoryOperation = "create_post"
	CategoryOperationViewPosts         CategoryOperation = "view_posts"
	CategoryOperationCommentPosts      CategoryOperation = "comment_posts"
	CategoryOperationEditCategory      CategoryOperation = "edit_category"
	CategoryOperationDeleteCategory    CategoryOperation = "delete_category"
	CategoryOperationManagePermissions CategoryOperation = "manage_permissions"
)

// CategoryOperations lists the full category operation universe
var CategoryOperations = []CategoryOperation{
	CategoryOperationCreatePost,
	CategoryOperationViewPosts,
	CategoryOperationCommentPosts,
	CategoryOperationEditCategory,
	CategoryOperationDeleteCategory,
	CategoryOperationManagePermissions,
}

// PostOperation is an operation on an individual post within a category
type PostOperation string

const (
	PostOperationViewPost       PostOperation = "view_post"
	PostOperationEditPost       PostOperation = "edit_post"
	PostOperationDeletePost     PostOperation = "delete_post"
	PostOperationPinPost        PostOperation = "pin_post"
	PostOperationLockPost       PostOperation = "lock_post"
	PostOperationAddComment     PostOperation = "add_comment"
	PostOperationDeleteComments PostOperation = "delete_comments"
	PostOperationUpvote         PostOperation = "upvote"
	PostOperationDownvote       PostOperation = "downvote"
)

// PostOperations lists the full post operation universe
var PostOperations = []PostOperation{
	PostOperationViewPost,
	PostOperationEditPost,
	PostOperationDeletePost,
	PostOperationPinPost,
	PostOperationLockPost,
	PostOperationAddComment,
	PostOperationDeleteComments,
	PostOperationUpvote,
	PostOperationDownvote,
}

// categoryOperationsByLevel maps every permission level to the category
// operations it grants. Total over PermissionLevels; custom grants nothing.
var categoryOperationsByLevel = map[PermissionLevel][]CategoryOperation{
	LevelCategoryAdmin: CategoryOperations,
	LevelModerator: {
		CategoryOperationCreatePost,
		CategoryOperationViewPosts,
		CategoryOperationCommentPosts,
	},
	LevelFullAccess: {
		CategoryOperationCreatePost,
		CategoryOperationViewPosts,
		CategoryOperationCommentPosts,
	},
	LevelCommentVote: {
		CategoryOperationViewPosts,
		CategoryOperationCommentPosts,
	},
	LevelView: {
		CategoryOperationViewPosts,
	},
	LevelCustom: {},
}

// postOperationsByLevel maps every permission level to the operations it
// grants on posts inside the category. Moderators can act on other users'
// posts structurally, but editing a post's content stays author-only, so
// moderator grants everything except edit_post.
var postOperationsByLevel = map[PermissionLevel][]PostOperation{
	LevelCategoryAdmin: PostOperations,
	LevelModerator: {
		PostOperationViewPost,
		PostOperationDeletePost,
		PostOperationPinPost,
		PostOperationLockPost,
		PostOperationAddComment,
		PostOperationDeleteComments,
		PostOperationUpvote,
		PostOperationDownvote,
	},
	LevelFullAccess: {
		PostOperationViewPost,
		PostOperationAddComment,
		PostOperationUpvote,
		PostOperationDownvote,
	},
	LevelCommentVote: {
		PostOperationViewPost,
		PostOperationAddComment,
		PostOperationUpvote,
		PostOperationDownvote,
	},
	LevelView: {
		PostOperationViewPost,
	},
	LevelCustom: {},
}

// CategoryOperationsForLevel returns the category operations granted by a
// level. Unrecognized levels grant nothing.
func CategoryOperationsForLevel(level PermissionLevel) OperationSet[CategoryOperation] {
	return NewOperationSet(categoryOperationsByLevel[level]...)
}

// PostOperationsForLevel returns the post operations granted by a level.
// Unrecognized levels grant nothing.
func PostOperationsForLevel(level PermissionLevel) OperationSet[PostOperation] {
	return NewOperationSet(postOperationsByLevel[level]...)
}

// ReadonlyCategoryOperations is the ceiling applied to category grants in a
// read-only space.
var ReadonlyCategoryOperations = []CategoryOperation{CategoryOperationViewPosts}

// ReadonlyPostOperations is the ceiling applied to post grants in a
// read-only space.
var ReadonlyPostOperations = []PostOperation{PostOperationViewPost}

// ProposalOperation is an operation on a proposal, granted per evaluation
// step through custom step permissions. Only view participates in
// accessibility computation.
type ProposalOperation string

const (
	ProposalOperationView               ProposalOperation = "view"
	ProposalOperationComment            ProposalOperation = "comment"
	ProposalOperationEdit               ProposalOperation = "edit"
	ProposalOperationEvaluate           ProposalOperation = "evaluate"
	ProposalOperationMove               ProposalOperation = "move"
	ProposalOperationArchive            ProposalOperation = "archive"
	ProposalOperationCompleteEvaluation ProposalOperation = "complete_evaluation"
)
