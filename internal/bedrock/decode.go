package bedrock

import (
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/seller-loop/studio/internal/models"
)

// ImageResult is a decoded image-model response
type ImageResult struct {
	Seed  int64
	Image []byte
}

type stabilityResponse struct {
	Seeds         []int64   `json:"seeds"`
	FinishReasons []*string `json:"finish_reasons"`
	Images        []string  `json:"images"`
}

// DecodeStabilityResponse decodes a Stability invoke-model response body.
// Any non-null finish reason is a provider rejection.
func DecodeStabilityResponse(body []byte) (*ImageResult, error) {
	var resp stabilityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode stability response: %w", err)
	}

	var reasons []string
	for _, reason := range resp.FinishReasons {
		if reason != nil {
			reasons = append(reasons, *reason)
		}
	}
	if len(reasons) > 0 {
		return nil, &ProviderRejectedError{Reasons: reasons}
	}

	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("%w: no images in stability response", ErrEmptyResponse)
	}
	image, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, fmt.Errorf("decode stability image base64: %w", err)
	}

	var seed int64
	if len(resp.Seeds) > 0 {
		seed = resp.Seeds[0]
	}
	return &ImageResult{Seed: seed, Image: image}, nil
}

type titanResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error"`
}

// titanRequestEcho recovers the seed from the original request body, since
// Titan does not return it in the response.
type titanRequestEcho struct {
	ImageGenerationConfig struct {
		Seed int64 `json:"seed"`
	} `json:"imageGenerationConfig"`
}

// DecodeTitanResponse decodes a Titan invoke-model response body. requestBody
// is the JSON body that was sent; the seed is read back from it.
func DecodeTitanResponse(requestBody, body []byte) (*ImageResult, error) {
	var resp titanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode titan response: %w", err)
	}

	if resp.Error != "" {
		return nil, &ProviderRejectedError{Reasons: []string{resp.Error}}
	}
	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("%w: no images in titan response", ErrEmptyResponse)
	}
	image, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, fmt.Errorf("decode titan image base64: %w", err)
	}

	var echo titanRequestEcho
	if err := json.Unmarshal(requestBody, &echo); err != nil {
		return nil, fmt.Errorf("recover seed from request body: %w", err)
	}
	return &ImageResult{Seed: echo.ImageGenerationConfig.Seed, Image: image}, nil
}

// listingFragment is the restricted XML shape the listing template instructs
// models to emit.
type listingFragment struct {
	Title       string `xml:"title"`
	Bullets     string `xml:"bullets"`
	Description string `xml:"description"`
}

// ParseListing parses the model's listing output, wrapping it in a synthetic
// root element first. Individual missing tags degrade to empty strings; a
// document that does not parse at all is ErrParseFailure with no partial
// fields.
func ParseListing(raw string) (*models.ParsedListing, error) {
	wrapped := "<root>" + raw + "</root>"

	var fragment listingFragment
	if err := xml.Unmarshal([]byte(wrapped), &fragment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	return &models.ParsedListing{
		Title:       strings.TrimSpace(fragment.Title),
		Bullets:     strings.TrimSpace(fragment.Bullets),
		Description: strings.TrimSpace(fragment.Description),
	}, nil
}
