package boards

import (
	"context"

	"Agora/internal/core/authz"
	"Agora/internal/core/viewguard"
)

// Service defines the business logic interface for the board workflow.
// It coordinates the post store, pagination, authorization policy, and the
// duplicate-count guard.
type Service interface {
	// List returns one page of a board's posts, optionally filtered by a
	// search. Board id 0 yields ErrInvalidBoard (redirect home, not an error
	// page).
	List(ctx context.Context, req ListRequest) (*ListResponse, error)

	// Detail returns a post with the viewer's advisory flags, counting the
	// view when the guard allows it. The returned token must be handed back
	// to the client transport.
	Detail(ctx context.Context, postID int64, viewer authz.Viewer, tok viewguard.Token) (*DetailResponse, viewguard.Token, error)

	// SaveView backs the new/edit form: board metadata and categories, plus
	// the existing post when editing. Editing someone else's post is
	// ErrForbidden.
	SaveView(ctx context.Context, boardID, postID int64, viewer authz.Viewer) (*SaveViewResponse, error)

	// Save creates a post (PostID zero) or updates an existing one. An
	// update against a vanished post is ErrStaleOrMissing; no new post is
	// created in that case.
	Save(ctx context.Context, viewer authz.Viewer, req SaveRequest) (*RedirectTarget, error)

	// Delete soft-deletes a post. Idempotent: deleting an already-deleted
	// post succeeds without change.
	Delete(ctx context.Context, viewer authz.Viewer, postID int64, page int) (*RedirectTarget, error)

	// Recommend counts a recommend for the post unless the guard's recommend
	// window suppresses it, and reports the resulting count either way.
	Recommend(ctx context.Context, postID int64, tok viewguard.Token) (*RecommendResult, viewguard.Token, error)

	// Admin applies a moderation action ("delete" or "restore") to any post.
	// Admin-only; ErrForbidden otherwise.
	Admin(ctx context.Context, viewer authz.Viewer, postID int64, page int, order string) (*RedirectTarget, error)
}

// PostStore defines the data access interface for posts.
// Implementations apply counter updates as atomic increments so concurrent
// viewers never lose updates.
type PostStore interface {
	// CountMatching returns the number of top-level posts on a board that
	// match the search filter (empty searchType means no filter)
	CountMatching(ctx context.Context, boardID int64, searchType, searchText string) (int64, error)

	// FetchPage returns a slice of top-level posts sorted by creation time
	// descending
	FetchPage(ctx context.Context, boardID int64, searchType, searchText string, offset int64, limit int) ([]*Post, error)

	// FetchByID returns a post by id, ErrNotFound when absent
	FetchByID(ctx context.Context, postID int64) (*Post, error)

	// FetchReplies returns the direct replies to a post, oldest first
	FetchReplies(ctx context.Context, parentID int64) ([]*Post, error)

	// Insert persists a new post and returns its assigned id. Ids are never
	// reused.
	Insert(ctx context.Context, post *Post) (int64, error)

	// UpdateIfExists applies the editable fields to an existing post and
	// reports whether a row was matched. False means the post vanished.
	UpdateIfExists(ctx context.Context, postID int64, fields PostUpdate) (bool, error)

	// SetDeleted sets the soft-delete flag. Safe to repeat.
	SetDeleted(ctx context.Context, postID int64, deleted bool) error

	// IncrementViewCount atomically adds by to a post's view counter
	IncrementViewCount(ctx context.Context, postID int64, by int64) error

	// IncrementRecommendCount atomically adds by to a post's recommend counter
	IncrementRecommendCount(ctx context.Context, postID int64, by int64) error
}

// BoardMetadataStore defines read access to board reference data.
type BoardMetadataStore interface {
	// FetchBoardInfo returns a board's metadata, ErrNotFound when absent.
	// Board id 0 never resolves.
	FetchBoardInfo(ctx context.Context, boardID int64) (*BoardInfo, error)

	// FetchCategories returns the board's category list
	FetchCategories(ctx context.Context, boardID int64) ([]*Category, error)
}
