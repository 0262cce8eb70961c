package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads whose extension is not an
// accepted image type.
var ErrUnsupportedType = errors.New("unsupported file type")

// Service stores uploaded files and hands back the stored name. Posts only
// ever keep that name as a string reference; serving the bytes is the web
// layer's concern.
type Service interface {
	// SaveUpload stores the upload under a fresh name derived from the
	// original's extension and returns the stored name.
	SaveUpload(originalName string, src io.Reader) (string, error)
}

type diskService struct {
	dir string
}

// allowed upload extensions, lowercased
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// NewDiskService stores uploads under dir, creating it if needed.
func NewDiskService(dir string) (Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &diskService{dir: dir}, nil
}

func (s *diskService) SaveUpload(originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	// A uuid name avoids collisions and drops whatever path the client sent.
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return name, nil
}
