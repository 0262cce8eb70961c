package boards

import (
	"context"
	"fmt"
	"log"
	"time"

	"Agora/internal/core/authz"
	"Agora/internal/core/pagination"
	"Agora/internal/core/viewguard"
)

type boardService struct {
	posts      PostStore
	meta       BoardMetadataStore
	guard      *viewguard.Guard
	pageSize   int
	windowSize int
}

// NewBoardService creates the board workflow service.
// pageSize and windowSize are fixed per deployment.
func NewBoardService(posts PostStore, meta BoardMetadataStore, guard *viewguard.Guard, pageSize, windowSize int) Service {
	return &boardService{
		posts:      posts,
		meta:       meta,
		guard:      guard,
		pageSize:   pageSize,
		windowSize: windowSize,
	}
}

// List returns one page of a board's posts.
// Flow: validate board -> count matches -> compute window -> fetch slice.
func (s *boardService) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if req.BoardID == 0 {
		return nil, ErrInvalidBoard
	}

	board, err := s.meta.FetchBoardInfo(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}

	total, err := s.posts.CountMatching(ctx, req.BoardID, req.SearchType, req.SearchText)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	window := pagination.Compute(total, req.Page, s.pageSize, s.windowSize)

	posts, err := s.posts.FetchPage(ctx, req.BoardID, req.SearchType, req.SearchText, window.Offset, window.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post page: %w", err)
	}

	return &ListResponse{
		Board:  board,
		Posts:  posts,
		Window: window,
	}, nil
}

// Detail returns a post with viewer flags, counting the view when the guard
// allows it. The increment is applied as an atomic store-side add and folded
// into the returned snapshot, so the caller sees the post as if the increment
// already happened without a second read.
func (s *boardService) Detail(ctx context.Context, postID int64, viewer authz.Viewer, tok viewguard.Token) (*DetailResponse, viewguard.Token, error) {
	post, err := s.posts.FetchByID(ctx, postID)
	if err != nil {
		return nil, tok, err
	}

	// Hard gate: a deleted post is readable by admins only.
	if !authz.CanView(viewer, post.Author, post.Deleted) {
		return nil, tok, ErrForbidden
	}

	countIt, updated := s.guard.ShouldCount(tok, viewguard.NamespaceView, postID, time.Now().UTC())
	if countIt {
		if err := s.posts.IncrementViewCount(ctx, postID, 1); err != nil {
			return nil, tok, fmt.Errorf("failed to increment view count: %w", err)
		}
		post.ViewCount++
	}

	replies, err := s.posts.FetchReplies(ctx, postID)
	if err != nil {
		return nil, tok, fmt.Errorf("failed to fetch replies: %w", err)
	}
	post.Replies = replies

	return &DetailResponse{
		Post:          post,
		IsAdminViewer: viewer.IsAdmin(),
		IsOwnerViewer: authz.IsOwner(viewer, post.Author),
	}, updated, nil
}

// SaveView backs the new/edit form. For edits the existing post is loaded and
// the owner-or-admin gate is applied before anything is prefilled.
func (s *boardService) SaveView(ctx context.Context, boardID, postID int64, viewer authz.Viewer) (*SaveViewResponse, error) {
	if boardID == 0 {
		return nil, ErrInvalidBoard
	}

	board, err := s.meta.FetchBoardInfo(ctx, boardID)
	if err != nil {
		return nil, err
	}

	categories, err := s.meta.FetchCategories(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	resp := &SaveViewResponse{Board: board, Categories: categories}

	if postID != 0 {
		post, err := s.posts.FetchByID(ctx, postID)
		if err != nil {
			return nil, err
		}
		if !authz.CanEditOrDelete(viewer, post.Author) {
			return nil, ErrForbidden
		}
		resp.Post = post
	}

	return resp, nil
}

// Save creates or updates a post and returns the redirect target back to the
// board listing.
func (s *boardService) Save(ctx context.Context, viewer authz.Viewer, req SaveRequest) (*RedirectTarget, error) {
	if req.BoardID == 0 {
		return nil, ErrInvalidBoard
	}

	// The board must exist before anything is persisted against it.
	if _, err := s.meta.FetchBoardInfo(ctx, req.BoardID); err != nil {
		return nil, err
	}

	if err := s.validateCategory(ctx, req.BoardID, req.Category); err != nil {
		return nil, err
	}

	if req.PostID == 0 {
		post := &Post{
			BoardID:   req.BoardID,
			ParentID:  req.ParentID,
			Author:    viewer.Identity,
			Subject:   req.Subject,
			Content:   req.Content,
			Filename:  req.Filename,
			Category:  req.Category,
			CreatedAt: time.Now().UTC(),
		}
		id, err := s.posts.Insert(ctx, post)
		if err != nil {
			return nil, fmt.Errorf("failed to insert post: %w", err)
		}
		log.Printf("[BOARD-SAVE] created post %d on board %d by %s", id, req.BoardID, viewer.Identity)
		return &RedirectTarget{BoardID: req.BoardID, Page: req.Page}, nil
	}

	// Update path. Look the post up first so the ownership gate runs against
	// the stored author, then apply the fields; a vanished row either way is
	// the stale-edit race, not NotFound.
	existing, err := s.posts.FetchByID(ctx, req.PostID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrStaleOrMissing
		}
		return nil, err
	}
	if !authz.CanEditOrDelete(viewer, existing.Author) {
		return nil, ErrForbidden
	}

	ok, err := s.posts.UpdateIfExists(ctx, req.PostID, PostUpdate{
		Subject:  req.Subject,
		Content:  req.Content,
		Filename: req.Filename,
		Category: req.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if !ok {
		return nil, ErrStaleOrMissing
	}

	log.Printf("[BOARD-SAVE] updated post %d on board %d by %s", req.PostID, req.BoardID, viewer.Identity)
	return &RedirectTarget{BoardID: req.BoardID, Page: req.Page}, nil
}

// Delete soft-deletes a post and returns the redirect target to the board
// listing. Deleting an already-deleted post is a no-op success.
func (s *boardService) Delete(ctx context.Context, viewer authz.Viewer, postID int64, page int) (*RedirectTarget, error) {
	post, err := s.posts.FetchByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !authz.CanEditOrDelete(viewer, post.Author) {
		return nil, ErrForbidden
	}

	if !post.Deleted {
		if err := s.posts.SetDeleted(ctx, postID, true); err != nil {
			return nil, fmt.Errorf("failed to delete post: %w", err)
		}
		log.Printf("[BOARD-DELETE] post %d deleted by %s", postID, viewer.Identity)
	}

	return &RedirectTarget{BoardID: post.BoardID, Page: page}, nil
}

// Recommend counts a recommend unless the guard's recommend window suppresses
// it, and reports the resulting count either way.
func (s *boardService) Recommend(ctx context.Context, postID int64, tok viewguard.Token) (*RecommendResult, viewguard.Token, error) {
	post, err := s.posts.FetchByID(ctx, postID)
	if err != nil {
		return nil, tok, err
	}

	countIt, updated := s.guard.ShouldCount(tok, viewguard.NamespaceRecommend, postID, time.Now().UTC())
	if !countIt {
		return &RecommendResult{Count: post.RecommendCount, Counted: false}, tok, nil
	}

	if err := s.posts.IncrementRecommendCount(ctx, postID, 1); err != nil {
		return nil, tok, fmt.Errorf("failed to increment recommend count: %w", err)
	}

	return &RecommendResult{Count: post.RecommendCount + 1, Counted: true}, updated, nil
}

// Admin applies a moderation action to any post. "delete" soft-deletes,
// "restore" clears the flag; both are safe to repeat.
func (s *boardService) Admin(ctx context.Context, viewer authz.Viewer, postID int64, page int, order string) (*RedirectTarget, error) {
	if !viewer.IsAdmin() {
		return nil, ErrForbidden
	}

	post, err := s.posts.FetchByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	switch order {
	case "delete":
		err = s.posts.SetDeleted(ctx, postID, true)
	case "restore":
		err = s.posts.SetDeleted(ctx, postID, false)
	default:
		return nil, NewValidationError("order", fmt.Sprintf("unknown order: %s (valid: delete, restore)", order))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply admin order %q: %w", order, err)
	}

	log.Printf("[BOARD-ADMIN] %s applied %q to post %d", viewer.Identity, order, postID)
	return &RedirectTarget{BoardID: post.BoardID, Page: page}, nil
}

// validateCategory checks an optional category id against the board's list.
// Absent (nil) is always valid; zero is a real id, not absence.
func (s *boardService) validateCategory(ctx context.Context, boardID int64, category *int) error {
	if category == nil {
		return nil
	}

	categories, err := s.meta.FetchCategories(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	for _, c := range categories {
		if c.ID == *category {
			return nil
		}
	}
	return NewValidationError("category", fmt.Sprintf("category %d does not belong to board %d", *category, boardID))
}
