// Package upload stores uploaded skin images on the local filesystem.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Service saves uploaded images under a configured directory.
type Service struct {
	dir string
}

// NewService ensures the upload directory exists and returns the service.
func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Service{dir: dir}, nil
}

// Dir returns the directory uploads are stored in.
func (s *Service) Dir() string { return s.dir }

// Save writes the uploaded file under a unique name and returns its path.
// Non-image content is rejected by sniffing the first bytes.
func (s *Service) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", fmt.Errorf("invalid file type, expected an image")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(head); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}
