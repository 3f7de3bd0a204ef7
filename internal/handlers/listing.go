package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/models"
)

// GetProduct handles GET /v1/reference/products/{asin}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	asin := mux.Vars(r)["asin"]

	record, err := h.studio.GetProduct(asin)
	if err != nil {
		log.Error().Err(err).Str("asin", asin).Msg("Failed to load product record")
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetReviews handles GET /v1/reference/reviews/{asin}
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	asin := mux.Vars(r)["asin"]

	reviews, err := h.studio.GetReviews(asin)
	if err != nil {
		log.Error().Err(err).Str("asin", asin).Msg("Failed to load review set")
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// CreateListing handles POST /v1/listing. Accepts multipart/form-data with
// fields asin, brand, features, language and an optional product image, or a
// plain JSON body without an image.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req models.ListingRequest
	var image []byte

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ListingResponse{Status: 1, Message: "failed to parse multipart form"})
			return
		}
		req = models.ListingRequest{
			ASIN:     r.FormValue("asin"),
			Brand:    r.FormValue("brand"),
			Features: r.FormValue("features"),
			Language: r.FormValue("language"),
		}
		data, cleanup, err := h.formImage(r, "image", false)
		if err != nil {
			writeActionError(w, err)
			return
		}
		defer cleanup()
		image = data
	} else {
		if err := decodeJSONBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ListingResponse{Status: 1, Message: "invalid request body"})
			return
		}
	}

	if req.ASIN == "" {
		writeJSON(w, http.StatusBadRequest, models.ListingResponse{Status: 1, Message: "asin is required"})
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}

	listing, err := h.studio.GenerateListing(r.Context(), &req, image)
	if err != nil {
		log.Error().Err(err).Str("asin", req.ASIN).Msg("Failed to generate listing")
		writeActionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ListingResponse{Status: 0, Listing: listing})
}
