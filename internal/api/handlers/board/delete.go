package board

import (
	"net/http"
	"strconv"

	"Agora/internal/api/middleware"
	"Agora/internal/core/boards"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service boards.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service boards.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete soft-deletes a post and returns the redirect target back to
// the listing. Repeating the delete succeeds without change.
// POST /board/delete?post={id}&page={n}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	postID, err := strconv.ParseInt(query.Get("post"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post parameter: must be an integer")
		return
	}
	page, _ := strconv.Atoi(query.Get("page"))

	target, err := h.service.Delete(r.Context(), middleware.GetViewer(r), postID, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, redirectResponse{Redirect: redirectPath(target)})
}
