package board

import (
	"log"
	"net/http"

	"Agora/internal/core/files"
)

// UploadHandler handles image uploads referenced from posts
type UploadHandler struct {
	files files.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(filesService files.Service) *UploadHandler {
	return &UploadHandler{files: filesService}
}

// uploadResponse returns the stored name the client should reference on save
type uploadResponse struct {
	Filename string `json:"filename"`
}

// HandleUpload stores an uploaded image and returns its stored name
// POST /board/image (multipart, field "file")
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// 8MB covers generous image uploads while bounding memory
	r.Body = http.MaxBytesReader(w, r.Body, 8*1024*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Missing file field")
		return
	}
	defer file.Close()

	name, err := h.files.SaveUpload(header.Filename, file)
	if err == files.ErrUnsupportedType {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Unsupported file type")
		return
	}
	if err != nil {
		log.Printf("Failed to store upload: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "Failed to store upload")
		return
	}

	writeJSON(w, uploadResponse{Filename: name})
}
