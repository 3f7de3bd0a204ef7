package bedrock

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestDecodeStabilityResponse(t *testing.T) {
	pixel := []byte{0x89, 0x50, 0x4e, 0x47}
	body := []byte(`{
		"seeds": [1234567],
		"finish_reasons": [null],
		"images": ["` + base64.StdEncoding.EncodeToString(pixel) + `"]
	}`)

	result, err := DecodeStabilityResponse(body)
	if err != nil {
		t.Fatalf("DecodeStabilityResponse: %v", err)
	}
	if result.Seed != 1234567 {
		t.Errorf("seed = %d, want 1234567", result.Seed)
	}
	if !bytes.Equal(result.Image, pixel) {
		t.Error("image bytes do not round-trip through base64")
	}
}

func TestDecodeStabilityResponse_FinishReason(t *testing.T) {
	body := []byte(`{
		"seeds": [0],
		"finish_reasons": ["Filter reason: prompt"],
		"images": ["aGk="]
	}`)

	_, err := DecodeStabilityResponse(body)
	var rejected *ProviderRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want ProviderRejectedError", err)
	}
	if len(rejected.Reasons) != 1 || rejected.Reasons[0] != "Filter reason: prompt" {
		t.Errorf("reasons = %v", rejected.Reasons)
	}
}

func TestDecodeStabilityResponse_NoImages(t *testing.T) {
	_, err := DecodeStabilityResponse([]byte(`{"seeds": [], "finish_reasons": [], "images": []}`))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestDecodeTitanResponse_SeedFromRequest(t *testing.T) {
	requestBody := []byte(`{"taskType":"TEXT_IMAGE","imageGenerationConfig":{"seed":99,"width":1024}}`)
	pixel := []byte{0x01, 0x02}
	body := []byte(`{"images": ["` + base64.StdEncoding.EncodeToString(pixel) + `"]}`)

	result, err := DecodeTitanResponse(requestBody, body)
	if err != nil {
		t.Fatalf("DecodeTitanResponse: %v", err)
	}
	if result.Seed != 99 {
		t.Errorf("seed = %d, want 99 recovered from the request body", result.Seed)
	}
	if !bytes.Equal(result.Image, pixel) {
		t.Error("image bytes do not round-trip through base64")
	}
}

func TestDecodeTitanResponse_Error(t *testing.T) {
	body := []byte(`{"images": [], "error": "blocked by content filters"}`)

	_, err := DecodeTitanResponse([]byte(`{}`), body)
	var rejected *ProviderRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want ProviderRejectedError", err)
	}
	if rejected.Reasons[0] != "blocked by content filters" {
		t.Errorf("reasons = %v", rejected.Reasons)
	}
}

func TestDecodeTitanResponse_NoImages(t *testing.T) {
	_, err := DecodeTitanResponse([]byte(`{}`), []byte(`{"images": []}`))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestParseListing(t *testing.T) {
	raw := `Here is your listing:
<title>Acme Wireless Mouse, Silent Clicks</title>
<bullets>ERGONOMIC DESIGN - fits your palm
SILENT CLICKS - quiet operation</bullets>
<description>A comfortable wireless mouse for the office.</description>`

	listing, err := ParseListing(raw)
	if err != nil {
		t.Fatalf("ParseListing: %v", err)
	}
	if listing.Title != "Acme Wireless Mouse, Silent Clicks" {
		t.Errorf("title = %q", listing.Title)
	}
	if !strings.Contains(listing.Bullets, "SILENT CLICKS") {
		t.Errorf("bullets = %q", listing.Bullets)
	}
	if listing.Description != "A comfortable wireless mouse for the office." {
		t.Errorf("description = %q", listing.Description)
	}
}

func TestParseListing_MissingTagDegrades(t *testing.T) {
	listing, err := ParseListing(`<title>Only a title</title><bullets>b1</bullets>`)
	if err != nil {
		t.Fatalf("ParseListing: %v", err)
	}
	if listing.Title != "Only a title" {
		t.Errorf("title = %q", listing.Title)
	}
	if listing.Description != "" {
		t.Errorf("description = %q, want empty for a missing tag", listing.Description)
	}
}

func TestParseListing_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unbalanced tag", `<title>oops</titl>`},
		{"stray close", `</description><title>x</title>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := ParseListing(tt.raw)
			if !errors.Is(err, ErrParseFailure) {
				t.Errorf("err = %v, want ErrParseFailure", err)
			}
			if listing != nil {
				t.Error("malformed output must not yield partial fields")
			}
		})
	}
}
