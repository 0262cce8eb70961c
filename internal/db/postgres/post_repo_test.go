package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Agora/internal/core/boards"
)

// setupTestDB connects to the test database and runs migrations. Tests are
// skipped when no test database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "../migrations"), "Failed to run migrations")

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestBoard inserts a board and cleans it (and its posts) up afterwards
func createTestBoard(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	var boardID int64
	require.NoError(t, db.QueryRow(
		`INSERT INTO boards (name) VALUES ($1) RETURNING board_id`, name).Scan(&boardID))

	t.Cleanup(func() {
		_, err := db.Exec(`DELETE FROM posts WHERE board_id = $1`, boardID)
		assert.NoError(t, err)
		_, err = db.Exec(`DELETE FROM boards WHERE board_id = $1`, boardID)
		assert.NoError(t, err)
	})
	return boardID
}

func insertTestPost(t *testing.T, store boards.PostStore, boardID int64, subject string) *boards.Post {
	t.Helper()

	post := &boards.Post{
		BoardID:   boardID,
		Author:    "alice",
		Subject:   subject,
		Content:   "content of " + subject,
		CreatedAt: time.Now().UTC(),
	}
	_, err := store.Insert(context.Background(), post)
	require.NoError(t, err)
	return post
}

func TestPostStore_InsertAndFetch(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)
	boardID := createTestBoard(t, db, "insert-fetch")

	created := insertTestPost(t, store, boardID, "hello")
	require.NotZero(t, created.ID)

	got, err := store.FetchByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Subject)
	assert.Equal(t, "alice", got.Author)
	assert.False(t, got.Deleted)
	assert.Nil(t, got.Category)
	assert.Zero(t, got.ViewCount)
}

func TestPostStore_FetchByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)

	_, err := store.FetchByID(context.Background(), -1)
	assert.ErrorIs(t, err, boards.ErrNotFound)
}

func TestPostStore_CountAndPageWithSearch(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)
	boardID := createTestBoard(t, db, "search")
	ctx := context.Background()

	insertTestPost(t, store, boardID, "go generics")
	insertTestPost(t, store, boardID, "go modules")
	insertTestPost(t, store, boardID, "rust traits")

	count, err := store.CountMatching(ctx, boardID, boards.SearchBySubject, "go")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	page, err := store.FetchPage(ctx, boardID, boards.SearchBySubject, "go", 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// Newest first
	assert.Equal(t, "go modules", page[0].Subject)
}

func TestPostStore_DeletedPostsLeaveListing(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)
	boardID := createTestBoard(t, db, "soft-delete")
	ctx := context.Background()

	post := insertTestPost(t, store, boardID, "doomed")
	require.NoError(t, store.SetDeleted(ctx, post.ID, true))

	count, err := store.CountMatching(ctx, boardID, "", "")
	require.NoError(t, err)
	assert.Zero(t, count)

	// The row survives soft delete
	got, err := store.FetchByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	// Repeating the delete is a no-op
	require.NoError(t, store.SetDeleted(ctx, post.ID, true))
}

func TestPostStore_UpdateIfExists(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)
	boardID := createTestBoard(t, db, "update")
	ctx := context.Background()

	post := insertTestPost(t, store, boardID, "before")

	ok, err := store.UpdateIfExists(ctx, post.ID, boards.PostUpdate{Subject: "after", Content: "edited"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.FetchByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Subject)

	ok, err = store.UpdateIfExists(ctx, -1, boards.PostUpdate{Subject: "x", Content: "y"})
	require.NoError(t, err)
	assert.False(t, ok, "missing post must report no match, not error")
}

func TestPostStore_AtomicIncrements(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)
	boardID := createTestBoard(t, db, "counters")
	ctx := context.Background()

	post := insertTestPost(t, store, boardID, "counted")

	require.NoError(t, store.IncrementViewCount(ctx, post.ID, 1))
	require.NoError(t, store.IncrementViewCount(ctx, post.ID, 1))
	require.NoError(t, store.IncrementRecommendCount(ctx, post.ID, 1))

	got, err := store.FetchByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
	assert.Equal(t, int64(1), got.RecommendCount)
}

func TestPostStore_Replies(t *testing.T) {
	db := setupTestDB(t)
	store := NewPostStore(db)
	boardID := createTestBoard(t, db, "replies")
	ctx := context.Background()

	parent := insertTestPost(t, store, boardID, "thread root")

	reply := &boards.Post{
		BoardID:   boardID,
		ParentID:  parent.ID,
		Author:    "bob",
		Subject:   "re: thread root",
		Content:   "reply content",
		CreatedAt: time.Now().UTC(),
	}
	_, err := store.Insert(ctx, reply)
	require.NoError(t, err)

	// Replies stay out of the top-level listing
	count, err := store.CountMatching(ctx, boardID, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	replies, err := store.FetchReplies(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "bob", replies[0].Author)
}

func TestBoardStore_FetchBoardInfoAndCategories(t *testing.T) {
	db := setupTestDB(t)
	store := NewBoardStore(db)
	boardID := createTestBoard(t, db, "meta")
	ctx := context.Background()

	info, err := store.FetchBoardInfo(ctx, boardID)
	require.NoError(t, err)
	assert.Equal(t, "meta", info.Name)

	// The sentinel id never resolves
	_, err = store.FetchBoardInfo(ctx, 0)
	assert.ErrorIs(t, err, boards.ErrNotFound)

	_, err = db.Exec(`INSERT INTO board_categories (board_id, name) VALUES ($1, 'news')`, boardID)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec(`DELETE FROM board_categories WHERE board_id = $1`, boardID)
	})

	categories, err := store.FetchCategories(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "news", categories[0].Name)
}
