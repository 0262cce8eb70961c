package boards

import (
	"time"

	"Agora/internal/core/pagination"
)

// Post is a board post row. Counters only ever move up while the post lives;
// Deleted hides the post from non-admin readers without removing the row.
type Post struct {
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	Author         string    `json:"author" db:"author"`
	Subject        string    `json:"subject" db:"subject"`
	Content        string    `json:"content" db:"content"`
	Filename       *string   `json:"filename,omitempty" db:"filename"`
	Category       *int      `json:"category,omitempty" db:"category"`
	Replies        []*Post   `json:"replies,omitempty" db:"-"`
	ID             int64     `json:"postId" db:"post_id"`
	ParentID       int64     `json:"parentId" db:"parent_id"`
	BoardID        int64     `json:"boardId" db:"board_id"`
	ViewCount      int64     `json:"viewCount" db:"view_count"`
	RecommendCount int64     `json:"recommendCount" db:"recommend_count"`
	Deleted        bool      `json:"deleted" db:"deleted"`
}

// BoardInfo is read-only board metadata. Board id 0 is the sentinel for
// "no board selected" and never resolves to a real board.
type BoardInfo struct {
	Name string `json:"name" db:"name"`
	ID   int64  `json:"boardId" db:"board_id"`
}

// Category is an optional post classification owned by a board.
type Category struct {
	Name    string `json:"name" db:"name"`
	ID      int    `json:"categoryId" db:"category_id"`
	BoardID int64  `json:"boardId" db:"board_id"`
}

// Search type values accepted by list filtering. Empty means no filter.
const (
	SearchBySubject = "subject"
	SearchByContent = "content"
	SearchByAuthor  = "author"
)

/// ListRequest carries the list operation's input: which board, an optional
// search filter, and the requested page.
type ListRequest struct {
	SearchType string `json:"searchType"`
	SearchText string `json:"searchText"`
	BoardID    int64  `json:"boardId"`
	Page       int    `json:"page"`
}

// ListResponse is one page of a board listing with its navigation window.
type ListResponse struct {
	Board  *BoardInfo        `json:"board"`
	Posts  []*Post           `json:"posts"`
	Window pagination.Window `json:"window"`
}

// DetailResponse is a post snapshot plus the viewer's advisory flags
// ("show the edit button"), already reflecting any view-count increment.
type DetailResponse struct {
	Post          *Post `json:"post"`
	IsAdminViewer bool  `json:"isAdminViewer"`
	IsOwnerViewer bool  `json:"isOwnerViewer"`
}

// SaveRequest carries the save operation's input. PostID zero means create;
// non-zero means update an existing post. Page, when present, is carried into
// the redirect target so the caller lands back on the page it came from.
type SaveRequest struct {
	Subject  string  `json:"subject"`
	Content  string  `json:"content"`
	Filename *string `json:"filename,omitempty"`
	Category *int    `json:"category,omitempty"`
	PostID   int64   `json:"postId"`
	ParentID int64   `json:"parentId"`
	BoardID  int64   `json:"boardId"`
	Page     int     `json:"page"`
}

// SaveViewResponse backs the new/edit form: board metadata, the board's
// categories, and the existing post when editing (nil for a new post).
type SaveViewResponse struct {
	Board      *BoardInfo  `json:"board"`
	Post       *Post       `json:"post,omitempty"`
	Categories []*Category `json:"categories"`
}

// RedirectTarget tells the transport where to send the client after a write:
// back to the board listing, on the page it was viewing.
type RedirectTarget struct {
	BoardID int64 `json:"boardId"`
	Page    int   `json:"page,omitempty"`
}

// RecommendResult reports the recommend count after the operation. Counted is
// false when the dedup guard suppressed the increment; the count is then the
// unchanged value.
type RecommendResult struct {
	Count   int64 `json:"count"`
	Counted bool  `json:"counted"`
}

// PostUpdate is the set of author-editable fields applied on update. Author,
// board, and creation time are immutable after creation.
type PostUpdate struct {
	Subject  string
	Content  string
	Filename *string
	Category *int
}
