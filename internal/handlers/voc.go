package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/models"
)

// CreateVocReport handles POST /v1/voc/report
func (h *Handler) CreateVocReport(w http.ResponseWriter, r *http.Request) {
	var req models.VocRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "invalid request body"})
		return
	}
	if req.ASIN == "" {
		writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "asin is required"})
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}

	report, err := h.studio.VocReport(r.Context(), req.ASIN, req.Language)
	if err != nil {
		log.Error().Err(err).Str("asin", req.ASIN).Msg("Failed to generate VoC report")
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TextResponse{Status: 0, Text: report})
}

// CreateVocAspect handles POST /v1/voc/aspects/{aspect}
func (h *Handler) CreateVocAspect(w http.ResponseWriter, r *http.Request) {
	aspect := models.VocAspect(mux.Vars(r)["aspect"])
	if !aspect.Valid() {
		writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "unknown aspect: " + string(aspect)})
		return
	}

	var req models.VocRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "invalid request body"})
		return
	}
	if req.ASIN == "" {
		writeJSON(w, http.StatusBadRequest, models.TextResponse{Status: 1, Message: "asin is required"})
		return
	}

	analysis, err := h.studio.VocAspectAnalysis(r.Context(), req.ASIN, aspect)
	if err != nil {
		log.Error().Err(err).Str("asin", req.ASIN).Str("aspect", string(aspect)).Msg("Failed to run aspect analysis")
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TextResponse{Status: 0, Text: analysis})
}
