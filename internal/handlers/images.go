package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/models"
	"github.com/seller-loop/studio/internal/services"
)

// GenerateImage handles POST /v1/images/generate (JSON body)
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateImageRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ImageResponse{Status: 1, Message: "invalid request body"})
		return
	}

	result, err := h.studio.GenerateImage(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("model_id", req.ModelID).Msg("Failed to generate image")
		writeActionError(w, err)
		return
	}
	writeImage(w, result)
}

// VaryImage handles POST /v1/images/vary (multipart: image + prompt)
func (h *Handler) VaryImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ImageResponse{Status: 1, Message: "failed to parse multipart form"})
		return
	}

	source, cleanup, err := h.formImage(r, "image", true)
	if err != nil {
		writeActionError(w, err)
		return
	}
	defer cleanup()

	result, err := h.studio.VaryImage(r.Context(), r.FormValue("prompt"), source)
	if err != nil {
		log.Error().Err(err).Msg("Failed to vary image")
		writeActionError(w, err)
		return
	}
	writeImage(w, result)
}

// RemoveBackground handles POST /v1/images/background-removal (multipart: image)
func (h *Handler) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ImageResponse{Status: 1, Message: "failed to parse multipart form"})
		return
	}

	source, cleanup, err := h.formImage(r, "image", true)
	if err != nil {
		writeActionError(w, err)
		return
	}
	defer cleanup()

	result, err := h.studio.RemoveBackground(r.Context(), source)
	if err != nil {
		log.Error().Err(err).Msg("Failed to remove background")
		writeActionError(w, err)
		return
	}
	writeImage(w, result)
}

// OptimizePrompt handles POST /v1/prompts/optimize. With a multipart body
// the attached image grounds the rewrite; with a JSON body only the text is
// optimized.
func (h *Handler) OptimizePrompt(w http.ResponseWriter, r *http.Request) {
	var optimized string
	var err error

	if isMultipart(r) {
		if parseErr := r.ParseMultipartForm(maxMultipartMemory); parseErr != nil {
			writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "failed to parse multipart form"})
			return
		}
		source, cleanup, imgErr := h.formImage(r, "image", true)
		if imgErr != nil {
			writeActionError(w, imgErr)
			return
		}
		defer cleanup()
		optimized, err = h.studio.OptimizePromptFromImage(r.Context(), r.FormValue("text"), source)
	} else {
		var req models.OptimizePromptRequest
		if decodeErr := decodeJSONBody(r, &req); decodeErr != nil {
			writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "invalid request body"})
			return
		}
		optimized, err = h.studio.OptimizePromptFromText(r.Context(), req.Text)
	}

	if err != nil {
		log.Error().Err(err).Msg("Failed to optimize prompt")
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TextResponse{Status: 0, Text: optimized})
}

func writeImage(w http.ResponseWriter, result *services.GeneratedImage) {
	writeJSON(w, http.StatusOK, models.ImageResponse{
		Status: 0,
		Path:   result.Path,
		URL:    result.URL,
		Seed:   result.Seed,
	})
}
