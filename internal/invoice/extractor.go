// Package invoice extracts structured fields from uploaded invoice images
// using a multimodal converse call. The instruction text lives in the data
// directory (data/invoice/prompts.txt) so tax teams can tune it without a
// redeploy.
package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/bedrock"
	"github.com/seller-loop/studio/internal/refdata"
)

// Converser is the single model call the extractor needs
type Converser interface {
	Converse(ctx context.Context, req *bedrock.ConverseRequest) (string, error)
}

// Extractor runs invoice field extraction
type Extractor struct {
	dataDir string
	modelID string
	client  Converser
}

// NewExtractor creates an Extractor using the given multimodal model
func NewExtractor(dataDir, modelID string, client Converser) *Extractor {
	return &Extractor{dataDir: dataDir, modelID: modelID, client: client}
}

// Prompts returns the extraction instruction text from the data directory
func (e *Extractor) Prompts() (string, error) {
	filename := filepath.Join(e.dataDir, "invoice", "prompts.txt")
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", refdata.ErrNotFound, filename)
		}
		return "", fmt.Errorf("read invoice prompts: %w", err)
	}
	return string(data), nil
}

// Extract sends the invoice image with the instruction prompt and returns
// the extracted fields as raw JSON. The image must already be normalized
// for converse transport.
func (e *Extractor) Extract(ctx context.Context, image []byte, format string) (json.RawMessage, error) {
	prompts, err := e.Prompts()
	if err != nil {
		return nil, err
	}

	env := bedrock.NewConverseWithImage(e.modelID, prompts, image, format)
	output, err := e.client.Converse(ctx, env.Converse)
	if err != nil {
		return nil, err
	}

	cleaned := stripCodeFence(output)
	if !json.Valid([]byte(cleaned)) {
		log.Warn().
			Int("output_len", len(output)).
			Msg("Invoice extraction output is not valid JSON")
		return nil, fmt.Errorf("%w: invoice output is not valid JSON", bedrock.ErrParseFailure)
	}
	return json.RawMessage(cleaned), nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models wrap JSON output in despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
