package board

import (
	"net/http"
	"strconv"

	"Agora/internal/api/middleware"
	"Agora/internal/api/viewtoken"
	"Agora/internal/core/boards"
)

// DetailHandler handles post detail requests
type DetailHandler struct {
	service boards.Service
	tokens  *viewtoken.Transport
}

// NewDetailHandler creates a new detail handler
func NewDetailHandler(service boards.Service, tokens *viewtoken.Transport) *DetailHandler {
	return &DetailHandler{service: service, tokens: tokens}
}

// HandleDetail returns a post with the viewer's flags, counting the view
// unless this client already had one counted within the dedup window
// GET /board/detail?post={id}
func (h *DetailHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.URL.Query().Get("post"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post parameter: must be an integer")
		return
	}

	viewer := middleware.GetViewer(r)
	tok := h.tokens.Load(r)

	resp, updated, err := h.service.Detail(r.Context(), postID, viewer, tok)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// The cookie goes out with the response headers, before the body
	h.tokens.Store(w, r, updated)
	writeJSON(w, resp)
}
