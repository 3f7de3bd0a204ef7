package invoice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seller-loop/studio/internal/bedrock"
	"github.com/seller-loop/studio/internal/refdata"
)

type fakeConverser struct {
	converse func(ctx context.Context, req *bedrock.ConverseRequest) (string, error)
}

func (f *fakeConverser) Converse(ctx context.Context, req *bedrock.ConverseRequest) (string, error) {
	return f.converse(ctx, req)
}

func writePrompts(t *testing.T, dataDir, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dataDir, "invoice"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "invoice", "prompts.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPrompts_NotFound(t *testing.T) {
	e := NewExtractor(t.TempDir(), "model", nil)
	_, err := e.Prompts()
	if !errors.Is(err, refdata.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExtract_StripsCodeFence(t *testing.T) {
	dataDir := t.TempDir()
	writePrompts(t, dataDir, "Extract the fields.")

	client := &fakeConverser{converse: func(_ context.Context, req *bedrock.ConverseRequest) (string, error) {
		if req.Text != "Extract the fields." {
			t.Errorf("prompt = %q", req.Text)
		}
		return "```json\n{\"total\": \"42.00\"}\n```", nil
	}}
	e := NewExtractor(dataDir, "model", client)

	fields, err := e.Extract(context.Background(), []byte("img"), "png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(fields) != `{"total": "42.00"}` {
		t.Errorf("fields = %s", fields)
	}
}

func TestExtract_RejectsNonJSON(t *testing.T) {
	dataDir := t.TempDir()
	writePrompts(t, dataDir, "Extract the fields.")

	client := &fakeConverser{converse: func(context.Context, *bedrock.ConverseRequest) (string, error) {
		return "I could not read that invoice.", nil
	}}
	e := NewExtractor(dataDir, "model", client)

	if _, err := e.Extract(context.Background(), []byte("img"), "png"); !errors.Is(err, bedrock.ErrParseFailure) {
		t.Errorf("err = %v, want ErrParseFailure", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
