package board

import (
	"net/http"
	"strconv"

	"Agora/internal/core/boards"
)

// ListHandler handles board listing requests
type ListHandler struct {
	service boards.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service boards.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList returns one page of a board's posts
// GET /board/list?board={id}&searchType={subject|content|author}&searchText={str}&page={n}
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	boardID, err := strconv.ParseInt(query.Get("board"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid board parameter: must be an integer")
		return
	}

	// An absent or malformed page means the first page; the workflow clamps
	// out-of-range values rather than rejecting them
	page, _ := strconv.Atoi(query.Get("page"))

	resp, err := h.service.List(r.Context(), boards.ListRequest{
		BoardID:    boardID,
		SearchType: query.Get("searchType"),
		SearchText: query.Get("searchText"),
		Page:       page,
	})
	if err == boards.ErrInvalidBoard {
		// "No board selected" goes home, it is not an error page
		writeJSON(w, redirectResponse{Redirect: homeRedirect})
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, resp)
}
