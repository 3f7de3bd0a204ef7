package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/storage"
)

// Allowed MIME types for image uploads
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// FileService owns the save directory: temp uploads live there for the
// duration of one action, generated images are written there with epoch
// names and optionally mirrored to object storage.
type FileService struct {
	saveDir     string
	maxFileSize int64
	storage     *storage.Client // nil when object storage is not configured
}

// NewFileService creates a FileService rooted at saveDir
func NewFileService(saveDir string, maxFileSize int64, storage *storage.Client) *FileService {
	return &FileService{saveDir: saveDir, maxFileSize: maxFileSize, storage: storage}
}

// SaveUpload writes an uploaded file to the save directory under a unique
// name and returns its path. The caller removes it after the action.
func (s *FileService) SaveUpload(filename string, mimeType string, data io.Reader, sizeBytes int64) (string, error) {
	if sizeBytes > s.maxFileSize {
		return "", fmt.Errorf("file size exceeds maximum of %d bytes", s.maxFileSize)
	}
	if !allowedMimeTypes[mimeType] {
		return "", fmt.Errorf("unsupported mime type: %s", mimeType)
	}

	if err := os.MkdirAll(s.saveDir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	ext := filepath.Ext(filepath.Base(filename))
	path := filepath.Join(s.saveDir, uuid.New().String()+ext)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(data, s.maxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > s.maxFileSize {
		_ = os.Remove(path)
		return "", fmt.Errorf("file size exceeds maximum of %d bytes", s.maxFileSize)
	}

	log.Debug().
		Str("path", path).
		Int64("size", written).
		Msg("Upload saved")

	return path, nil
}

// Remove deletes a temp upload; a missing file is not an error
func (s *FileService) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove temp upload")
	}
}

// SaveGenerated writes a generated image to the save directory as
// <prefix>_<epoch>.png and uploads it to object storage when configured.
// Returns the local path and the object URL (empty without storage).
func (s *FileService) SaveGenerated(ctx context.Context, prefix string, image []byte) (string, string, error) {
	if err := os.MkdirAll(s.saveDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create save dir: %w", err)
	}

	name := fmt.Sprintf("%s_%d.png", prefix, time.Now().Unix())
	path := filepath.Join(s.saveDir, name)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", "", fmt.Errorf("save generated image: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("size", len(image)).
		Msg("Generated image saved")

	var url string
	if s.storage != nil {
		uploaded, err := s.storage.UploadImage(ctx, "generated/"+name, image, "image/png")
		if err != nil {
			// Local copy exists; object storage is best-effort
			log.Warn().Err(err).Str("name", name).Msg("Failed to upload generated image to object storage")
		} else {
			url = uploaded
		}
	}

	return path, url, nil
}
