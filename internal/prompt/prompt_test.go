package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/seller-loop/studio/internal/models"
)

func testRecord() *models.ProductRecord {
	return &models.ProductRecord{
		Title:        "Wireless Mouse",
		BulletPoints: []string{"Ergonomic shape", "Silent clicks", "18-month battery"},
		Description:  "A comfortable wireless mouse for long sessions.",
	}
}

func TestListing_EmbedsRecordVerbatim(t *testing.T) {
	record := testRecord()
	out := Listing(record, "Acme", "ergonomic, silent", "English")

	wantSubstrings := []string{
		record.Title,
		record.Description,
		"Acme",
		"ergonomic, silent",
		"please answer it in English",
	}
	wantSubstrings = append(wantSubstrings, record.BulletPoints...)

	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("listing prompt missing %q", want)
		}
	}
}

func TestListing_StatesTagContract(t *testing.T) {
	out := Listing(testRecord(), "Acme", "silent", "English")
	if !strings.Contains(out, `**Respond in valid XML format with the tags as "title", "bullets", "description"**`) {
		t.Error("listing prompt missing the tag-format contract")
	}
}

func testReviews(t *testing.T) *models.ReviewSet {
	t.Helper()
	entries := []json.RawMessage{
		json.RawMessage(`{"content":{"text":"Great mouse","stars":5}}`),
		json.RawMessage(`{"content":{"text":"Too small for my hand","stars":3}}`),
	}
	return &models.ReviewSet{Entries: entries}
}

func TestVocSummary_EmbedsReviewsVerbatim(t *testing.T) {
	reviews := testReviews(t)
	out := VocSummary(reviews, "Chinese")

	if !strings.Contains(out, reviews.Verbatim()) {
		t.Error("voc prompt missing verbatim review set")
	}
	if !strings.Contains(out, "Voice of Customer (VoC) report") {
		t.Error("voc prompt missing report framing")
	}
	if !strings.Contains(out, "Please also ouput the reuslt in Chinese") {
		t.Error("voc prompt missing language instruction")
	}
}

func TestVocAspect_AllAspectsHaveTemplates(t *testing.T) {
	reviews := testReviews(t)
	for _, aspect := range models.Aspects {
		out, ok := VocAspect(aspect, reviews)
		if !ok {
			t.Errorf("aspect %s: no template", aspect)
			continue
		}
		if !strings.Contains(out, reviews.Verbatim()) {
			t.Errorf("aspect %s: missing verbatim reviews", aspect)
		}
		if !strings.Contains(out, "评论引用") {
			t.Errorf("aspect %s: missing quote field of the output contract", aspect)
		}
	}
}

func TestVocAspect_StarRatingEnumeratesCategories(t *testing.T) {
	out, ok := VocAspect(models.AspectStarRatingDistribution, testReviews(t))
	if !ok {
		t.Fatal("no template for star rating aspect")
	}
	if !strings.Contains(out, "1-5星") {
		t.Error("star rating aspect missing the fixed category enumeration")
	}
}

func TestVocAspect_Unknown(t *testing.T) {
	if _, ok := VocAspect(models.VocAspect("sentiment"), testReviews(t)); ok {
		t.Error("unknown aspect should not resolve to a template")
	}
}

func TestOptimizeFromText(t *testing.T) {
	out := OptimizeFromText("a red mug on a wooden table")
	if !strings.Contains(out, "a red mug on a wooden table") {
		t.Error("optimizer prompt missing source text")
	}
	if !strings.Contains(out, "Use () for emphasis and [] for de-emphasis") {
		t.Error("optimizer prompt missing formatting convention")
	}
	if !strings.Contains(out, "Aim for 50-75 words") {
		t.Error("optimizer prompt missing length bound")
	}
}

func TestOptimizeFromImage(t *testing.T) {
	out := OptimizeFromImage("studio lighting")
	if !strings.Contains(out, "Initial prompt (if any):\nstudio lighting") {
		t.Error("optimizer prompt missing initial prompt")
	}
	if !strings.Contains(out, "image-to-image generation") {
		t.Error("optimizer prompt missing image-to-image framing")
	}
}
