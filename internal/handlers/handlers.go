// Package handlers exposes the studio actions over HTTP. Every decode or
// invocation failure is recovered here and mapped to a (status, message)
// body; nothing propagates past a single user action.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/bedrock"
	"github.com/seller-loop/studio/internal/models"
	"github.com/seller-loop/studio/internal/refdata"
	"github.com/seller-loop/studio/internal/services"
)

const maxMultipartMemory = 32 << 20 // 32MB

// Studio is the service surface the handlers call
type Studio interface {
	GetProduct(asin string) (*models.ProductRecord, error)
	GetReviews(asin string) (*models.ReviewSet, error)
	GenerateListing(ctx context.Context, req *models.ListingRequest, image []byte) (*models.ParsedListing, error)
	VocReport(ctx context.Context, asin, language string) (string, error)
	VocAspectAnalysis(ctx context.Context, asin string, aspect models.VocAspect) (string, error)
	GenerateImage(ctx context.Context, req *models.GenerateImageRequest) (*services.GeneratedImage, error)
	VaryImage(ctx context.Context, positivePrompt string, source []byte) (*services.GeneratedImage, error)
	RemoveBackground(ctx context.Context, source []byte) (*services.GeneratedImage, error)
	OptimizePromptFromText(ctx context.Context, text string) (string, error)
	OptimizePromptFromImage(ctx context.Context, initial string, image []byte) (string, error)
	ExtractInvoice(ctx context.Context, image []byte) (json.RawMessage, error)
	Files() *services.FileService
}

// Handler contains all HTTP handlers
type Handler struct {
	studio Studio
}

// NewHandler creates a new handler
func NewHandler(studio Studio) *Handler {
	return &Handler{studio: studio}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeActionError maps a typed failure to an HTTP code and the
// status/message pair the UI renders. The original error text is preserved
// for diagnostics.
func writeActionError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	var paramErr *bedrock.ParameterError
	var rejected *bedrock.ProviderRejectedError
	var transport *bedrock.TransportError
	switch {
	case errors.Is(err, refdata.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, refdata.ErrMalformedData):
		code = http.StatusInternalServerError
	case errors.As(err, &paramErr), errors.Is(err, bedrock.ErrUnsupportedModel):
		code = http.StatusBadRequest
	case errors.As(err, &rejected),
		errors.As(err, &transport),
		errors.Is(err, bedrock.ErrEmptyResponse),
		errors.Is(err, bedrock.ErrParseFailure):
		code = http.StatusBadGateway
	}

	writeJSON(w, code, map[string]interface{}{
		"status":  1,
		"message": err.Error(),
	})
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func decodeJSONBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// formImage pulls an uploaded image out of a multipart form, routing it
// through the save directory the way the UI flow does: save, read back,
// remove when the request finishes. Returns nil bytes when the field is
// absent and required is false.
func (h *Handler) formImage(r *http.Request, field string, required bool) ([]byte, func(), error) {
	noop := func() {}

	file, header, err := r.FormFile(field)
	if err != nil {
		if required {
			return nil, noop, &bedrock.ParameterError{Reason: "missing file field: " + field}
		}
		return nil, noop, nil
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	path, err := h.studio.Files().SaveUpload(header.Filename, mimeType, file, header.Size)
	if err != nil {
		return nil, noop, &bedrock.ParameterError{Reason: err.Error()}
	}
	cleanup := func() { h.studio.Files().Remove(path) }

	data, err := os.ReadFile(path)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	return data, cleanup, nil
}
