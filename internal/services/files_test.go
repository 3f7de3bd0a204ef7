package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveUpload(t *testing.T) {
	svc := NewFileService(t.TempDir(), 1024, nil)
	content := []byte("fake image bytes")

	path, err := svc.SaveUpload("photo.png", "image/png", bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("path = %q, want original extension kept", path)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read upload: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Error("saved bytes differ from the upload")
	}
}

func TestSaveUpload_Rejections(t *testing.T) {
	svc := NewFileService(t.TempDir(), 16, nil)

	tests := []struct {
		name     string
		filename string
		mime     string
		data     string
		size     int64
		wantErr  string
	}{
		{"bad mime", "doc.pdf", "application/pdf", "x", 1, "unsupported mime type"},
		{"declared too large", "a.png", "image/png", "x", 1 << 30, "exceeds maximum"},
		{"stream too large", "a.png", "image/png", strings.Repeat("x", 64), 8, "exceeds maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveUpload(tt.filename, tt.mime, strings.NewReader(tt.data), tt.size)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRemove_MissingFile(t *testing.T) {
	svc := NewFileService(t.TempDir(), 1024, nil)
	svc.Remove("") // no-op
	svc.Remove(filepath.Join(t.TempDir(), "never-existed.png"))
}

func TestSaveGenerated_Naming(t *testing.T) {
	dir := t.TempDir()
	svc := NewFileService(dir, 1024, nil)

	path, url, err := svc.SaveGenerated(context.Background(), "text2image", []byte("img"))
	if err != nil {
		t.Fatalf("SaveGenerated: %v", err)
	}
	if url != "" {
		t.Errorf("url = %q, want empty without object storage", url)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "text2image_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("name = %q, want text2image_<epoch>.png", base)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path = %q, want file under the save dir", path)
	}
}
