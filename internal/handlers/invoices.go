package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/models"
)

// ExtractInvoice handles POST /v1/invoices/extract (multipart: file)
func (h *Handler) ExtractInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, models.InvoiceResponse{Status: 1, Message: "failed to parse multipart form"})
		return
	}

	invoice, cleanup, err := h.formImage(r, "file", true)
	if err != nil {
		writeActionError(w, err)
		return
	}
	defer cleanup()

	fields, err := h.studio.ExtractInvoice(r.Context(), invoice)
	if err != nil {
		log.Error().Err(err).Msg("Failed to extract invoice fields")
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.InvoiceResponse{Status: 0, Fields: fields})
}
