package board

import (
	"fmt"

	"Agora/internal/core/boards"
)

// redirectResponse tells the client where to navigate after a write. The
// sentinel board id resolves to home; successful saves and deletes return to
// the board listing at the page the caller came from.
type redirectResponse struct {
	Redirect string `json:"redirect"`
}

const homeRedirect = "/"

// redirectPath encodes a redirect target as a board listing URL.
func redirectPath(target *boards.RedirectTarget) string {
	path := fmt.Sprintf("/board/list?board=%d", target.BoardID)
	if target.Page > 0 {
		path += fmt.Sprintf("&page=%d", target.Page)
	}
	return path
}
