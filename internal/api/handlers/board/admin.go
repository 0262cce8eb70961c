package board

import (
	"net/http"
	"strconv"

	"Agora/internal/api/middleware"
	"Agora/internal/core/boards"
)

// AdminHandler handles moderation requests
type AdminHandler struct {
	service boards.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service boards.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// HandleAdmin applies a moderation order to a post. Admin-only; the workflow
// rejects everyone else.
// POST /board/admin?post={id}&page={n}&order={delete|restore}
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	postID, err := strconv.ParseInt(query.Get("post"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post parameter: must be an integer")
		return
	}
	page, _ := strconv.Atoi(query.Get("page"))

	target, err := h.service.Admin(r.Context(), middleware.GetViewer(r), postID, page, query.Get("order"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, redirectResponse{Redirect: redirectPath(target)})
}
