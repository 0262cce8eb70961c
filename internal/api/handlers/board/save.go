package board

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"Agora/internal/api/middleware"
	"Agora/internal/core/boards"
)

// Text bounds enforced at this boundary, matching the column widths
const (
	maxSubjectLength = 125
	maxContentLength = 1000
)

// SaveHandler handles the new/edit form and the save itself
type SaveHandler struct {
	service boards.Service
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(service boards.Service) *SaveHandler {
	return &SaveHandler{service: service}
}

// HandleSaveView backs the new/edit form with board metadata, categories,
// and the existing post when editing
// GET /board/save?board={id}&post={id}
func (h *SaveHandler) HandleSaveView(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	boardID, err := strconv.ParseInt(query.Get("board"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid board parameter: must be an integer")
		return
	}
	// post is optional: absent means a new post
	postID, _ := strconv.ParseInt(query.Get("post"), 10, 64)

	resp, err := h.service.SaveView(r.Context(), boardID, postID, middleware.GetViewer(r))
	if err == boards.ErrInvalidBoard {
		writeJSON(w, redirectResponse{Redirect: homeRedirect})
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, resp)
}

// HandleSave creates or updates a post and returns the redirect target back
// to the listing
// POST /board/save
func (h *SaveHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req boards.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := validateSaveRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	target, err := h.service.Save(r.Context(), middleware.GetViewer(r), req)
	if err == boards.ErrInvalidBoard {
		writeJSON(w, redirectResponse{Redirect: homeRedirect})
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, redirectResponse{Redirect: redirectPath(target)})
}

// validateSaveRequest enforces the boundary's text bounds. The workflow core
// trusts these to have been checked.
func validateSaveRequest(req boards.SaveRequest) error {
	if req.Subject == "" {
		return boards.NewValidationError("subject", "subject is required")
	}
	if len(req.Subject) > maxSubjectLength {
		return boards.NewValidationError("subject",
			fmt.Sprintf("subject too long (max %d characters)", maxSubjectLength))
	}
	if req.Content == "" {
		return boards.NewValidationError("content", "content is required")
	}
	if len(req.Content) > maxContentLength {
		return boards.NewValidationError("content",
			fmt.Sprintf("content too long (max %d characters)", maxContentLength))
	}
	return nil
}
