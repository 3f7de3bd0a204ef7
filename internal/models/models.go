package models

import "encoding/json"

// ProductRecord is a stored reference product, read-only after load
type ProductRecord struct {
	Title        string   `json:"title"`
	BulletPoints []string `json:"bullet_points"`
	Description  string   `json:"description"`
}

// ReviewSet holds the raw review entries for a product. Entries are opaque:
// they are interpolated into prompts verbatim, never interpreted.
type ReviewSet struct {
	Entries []json.RawMessage `json:"entries"`
}

// Verbatim renders the review entries exactly as stored, as a JSON array.
// Prompt templates embed this string without truncation.
func (r *ReviewSet) Verbatim() string {
	parts, err := json.Marshal(r.Entries)
	if err != nil {
		return ""
	}
	return string(parts)
}

// ParsedListing is the structured result of a listing generation call.
// Fields missing from the model output default to empty strings.
type ParsedListing struct {
	Title       string `json:"title"`
	Bullets     string `json:"bullets"`
	Description string `json:"description"`
}

// ImagePayload is decoded image content with its encoding format
type ImagePayload struct {
	Data   []byte `json:"-"`
	Format string `json:"format"` // png, jpeg, webp, gif
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// VocAspect identifies one of the fixed per-aspect VoC analyses
type VocAspect string

const (
	AspectPurchaseMotivation     VocAspect = "purchase_motivation"
	AspectUserSuggestions        VocAspect = "user_suggestions"
	AspectNegativeOpinions       VocAspect = "negative_opinions"
	AspectProductExperience      VocAspect = "product_experience"
	AspectStarRatingDistribution VocAspect = "star_rating_distribution"
	AspectUserExpectations       VocAspect = "user_expectations"
)

// Aspects lists the supported VoC aspects in display order
var Aspects = []VocAspect{
	AspectPurchaseMotivation,
	AspectUserSuggestions,
	AspectNegativeOpinions,
	AspectProductExperience,
	AspectStarRatingDistribution,
	AspectUserExpectations,
}

// Valid reports whether a is a known aspect
func (a VocAspect) Valid() bool {
	for _, known := range Aspects {
		if a == known {
			return true
		}
	}
	return false
}

// ListingRequest is the payload for POST /v1/listing
type ListingRequest struct {
	ASIN     string `json:"asin"`
	Brand    string `json:"brand"`
	Features string `json:"features"`
	Language string `json:"language"`
}

// ListingResponse carries the parsed listing back to the UI
type ListingResponse struct {
	Status  int            `json:"status"`
	Listing *ParsedListing `json:"listing,omitempty"`
	Message string         `json:"message,omitempty"`
}

// VocRequest is the payload for POST /v1/voc/report
type VocRequest struct {
	ASIN     string `json:"asin"`
	Language string `json:"language"`
}

// TextResponse is the generic text-task response envelope
type TextResponse struct {
	Status  int    `json:"status"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// GenerateImageRequest is the payload for POST /v1/images/generate
type GenerateImageRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	ModelID        string `json:"model_id"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	Seed           int64  `json:"seed,omitempty"`
	OutputFormat   string `json:"output_format,omitempty"`
}

// ImageResponse carries a saved generated image back to the UI
type ImageResponse struct {
	Status  int    `json:"status"`
	Path    string `json:"path,omitempty"`
	URL     string `json:"url,omitempty"` // set when the image was also uploaded to object storage
	Seed    int64  `json:"seed,omitempty"`
	Message string `json:"message,omitempty"`
}

// OptimizePromptRequest is the payload for POST /v1/prompts/optimize (text form)
type OptimizePromptRequest struct {
	Text string `json:"text"`
}

// InvoiceResponse carries extracted invoice fields as raw JSON
type InvoiceResponse struct {
	Status  int             `json:"status"`
	Fields  json.RawMessage `json:"fields,omitempty"`
	Message string          `json:"message,omitempty"`
}
