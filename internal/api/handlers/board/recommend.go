package board

import (
	"net/http"
	"strconv"

	"Agora/internal/api/viewtoken"
	"Agora/internal/core/boards"
)

// RecommendHandler handles post recommendation requests
type RecommendHandler struct {
	service boards.Service
	tokens  *viewtoken.Transport
}

// NewRecommendHandler creates a new recommend handler
func NewRecommendHandler(service boards.Service, tokens *viewtoken.Transport) *RecommendHandler {
	return &RecommendHandler{service: service, tokens: tokens}
}

// HandleRecommend counts a recommend for the post unless this client already
// had one counted within the dedup window, and reports the resulting count
// POST /board/recommend?post={id}
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.URL.Query().Get("post"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post parameter: must be an integer")
		return
	}

	tok := h.tokens.Load(r)

	result, updated, err := h.service.Recommend(r.Context(), postID, tok)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.tokens.Store(w, r, updated)
	writeJSON(w, result)
}
