package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"Agora/internal/core/boards"
)

type postgresPostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostgreSQL post store
func NewPostStore(db *sql.DB) boards.PostStore {
	return &postgresPostStore{db: db}
}

const postColumns = `
	post_id, parent_id, board_id, author,
	subject, content, filename, category,
	view_count, recommend_count, deleted, created_at
`

// listingWhere builds the WHERE clause and args shared by CountMatching and
// FetchPage: live top-level posts of one board, optionally search-filtered.
// An empty or unrecognized search type matches everything.
func listingWhere(boardID int64, searchType, searchText string) (string, []interface{}) {
	conditions := []string{"board_id = $1", "parent_id = 0", "NOT deleted"}
	args := []interface{}{boardID}

	if searchText != "" {
		switch searchType {
		case boards.SearchBySubject:
			conditions = append(conditions, "subject ILIKE '%' || $2 || '%'")
			args = append(args, searchText)
		case boards.SearchByContent:
			conditions = append(conditions, "content ILIKE '%' || $2 || '%'")
			args = append(args, searchText)
		case boards.SearchByAuthor:
			conditions = append(conditions, "author = $2")
			args = append(args, searchText)
		}
	}

	return strings.Join(conditions, " AND "), args
}

// CountMatching returns the number of live top-level posts on a board
// matching the search filter.
func (r *postgresPostStore) CountMatching(ctx context.Context, boardID int64, searchType, searchText string) (int64, error) {
	where, args := listingWhere(boardID, searchType, searchText)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM posts WHERE %s`, where)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// FetchPage returns one page of live top-level posts, newest first.
func (r *postgresPostStore) FetchPage(ctx context.Context, boardID int64, searchType, searchText string, offset int64, limit int) ([]*boards.Post, error) {
	where, args := listingWhere(boardID, searchType, searchText)
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts
		WHERE %s
		ORDER BY created_at DESC, post_id DESC
		OFFSET $%d LIMIT $%d
	`, postColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post page: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	return scanPosts(rows)
}

// FetchByID returns a post by id, boards.ErrNotFound when absent.
func (r *postgresPostStore) FetchByID(ctx context.Context, postID int64) (*boards.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE post_id = $1`, postColumns)

	post, err := scanPost(r.db.QueryRowContext(ctx, query, postID))
	if err == sql.ErrNoRows {
		return nil, boards.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

// FetchReplies returns the live direct replies to a post, oldest first.
func (r *postgresPostStore) FetchReplies(ctx context.Context, parentID int64) ([]*boards.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts
		WHERE parent_id = $1 AND NOT deleted
		ORDER BY created_at ASC, post_id ASC
	`, postColumns)

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	return scanPosts(rows)
}

// Insert persists a new post and returns the assigned id. post_id comes from
// a sequence, so ids are never reused even after deletions.
func (r *postgresPostStore) Insert(ctx context.Context, post *boards.Post) (int64, error) {
	query := `
		INSERT INTO posts (
			parent_id, board_id, author,
			subject, content, filename, category, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING post_id
	`

	err := r.db.QueryRowContext(
		ctx, query,
		post.ParentID, post.BoardID, post.Author,
		post.Subject, post.Content, nullString(post.Filename), nullInt(post.Category),
		post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return post.ID, nil
}

// UpdateIfExists applies the editable fields and reports whether a row was
// matched. A vanished row is not an error here; the workflow turns it into
// its stale-edit outcome.
func (r *postgresPostStore) UpdateIfExists(ctx context.Context, postID int64, fields boards.PostUpdate) (bool, error) {
	query := `
		UPDATE posts
		SET subject = $2, content = $3, filename = $4, category = $5
		WHERE post_id = $1 AND NOT deleted
	`

	result, err := r.db.ExecContext(ctx, query,
		postID, fields.Subject, fields.Content, nullString(fields.Filename), nullInt(fields.Category))
	if err != nil {
		return false, fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// SetDeleted sets the soft-delete flag. Repeating the same state is a no-op.
func (r *postgresPostStore) SetDeleted(ctx context.Context, postID int64, deleted bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE posts SET deleted = $2 WHERE post_id = $1`, postID, deleted); err != nil {
		return fmt.Errorf("failed to set deleted flag: %w", err)
	}
	return nil
}

// IncrementViewCount adds by to the view counter in a single UPDATE so
// concurrent viewers never lose increments.
func (r *postgresPostStore) IncrementViewCount(ctx context.Context, postID int64, by int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE posts SET view_count = view_count + $2 WHERE post_id = $1`, postID, by); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// IncrementRecommendCount adds by to the recommend counter atomically.
func (r *postgresPostStore) IncrementRecommendCount(ctx context.Context, postID int64, by int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE posts SET recommend_count = recommend_count + $2 WHERE post_id = $1`, postID, by); err != nil {
		return fmt.Errorf("failed to increment recommend count: %w", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*boards.Post, error) {
	var (
		post     boards.Post
		filename sql.NullString
		category sql.NullInt64
	)

	err := row.Scan(
		&post.ID, &post.ParentID, &post.BoardID, &post.Author,
		&post.Subject, &post.Content, &filename, &category,
		&post.ViewCount, &post.RecommendCount, &post.Deleted, &post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if filename.Valid {
		post.Filename = &filename.String
	}
	if category.Valid {
		c := int(category.Int64)
		post.Category = &c
	}
	return &post, nil
}

func scanPosts(rows *sql.Rows) ([]*boards.Post, error) {
	posts := []*boards.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
