package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"Agora/internal/core/boards"
)

type postgresBoardStore struct {
	db *sql.DB
}

// NewBoardStore creates a new PostgreSQL board metadata store
func NewBoardStore(db *sql.DB) boards.BoardMetadataStore {
	return &postgresBoardStore{db: db}
}

// FetchBoardInfo returns a board's metadata. Board id 0 never matches a row,
// so the sentinel resolves to ErrNotFound here; the workflow rejects it
// earlier as ErrInvalidBoard.
func (r *postgresBoardStore) FetchBoardInfo(ctx context.Context, boardID int64) (*boards.BoardInfo, error) {
	var info boards.BoardInfo

	err := r.db.QueryRowContext(ctx,
		`SELECT board_id, name FROM boards WHERE board_id = $1`, boardID,
	).Scan(&info.ID, &info.Name)
	if err == sql.ErrNoRows {
		return nil, boards.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board info: %w", err)
	}
	return &info, nil
}

// FetchCategories returns the board's category list ordered by id.
func (r *postgresBoardStore) FetchCategories(ctx context.Context, boardID int64) ([]*boards.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, board_id, name FROM board_categories WHERE board_id = $1 ORDER BY category_id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	categories := []*boards.Category{}
	for rows.Next() {
		var c boards.Category
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
