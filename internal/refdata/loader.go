// Package refdata reads stored product and review records from the local
// keyed JSON store (./data/asin_<ASIN>_product.json and friends).
package refdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/models"
)

var (
	// ErrNotFound means no stored record exists for the requested key
	ErrNotFound = errors.New("reference data not found")
	// ErrMalformedData means the stored record is not parseable or lacks the expected shape
	ErrMalformedData = errors.New("reference data malformed")
)

// Loader reads reference records from the data directory. Reads are
// idempotent; callers may memoize by ASIN if they want to.
type Loader struct {
	dataDir string
}

// NewLoader creates a Loader rooted at dataDir
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// productDocument mirrors the stored schema:
// {results: [{content: {title, bullet_points, description}}]}
type productDocument struct {
	Results []struct {
		Content models.ProductRecord `json:"content"`
	} `json:"results"`
}

// reviewDocument keeps review entries opaque; they are only ever
// interpolated into prompts verbatim.
type reviewDocument struct {
	Results []json.RawMessage `json:"results"`
}

// LoadProduct loads the stored product record for an ASIN
func (l *Loader) LoadProduct(asin string) (*models.ProductRecord, error) {
	data, err := l.read("product", asin)
	if err != nil {
		return nil, err
	}

	var doc productDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: product %s: %v", ErrMalformedData, asin, err)
	}
	if len(doc.Results) == 0 {
		return nil, fmt.Errorf("%w: product %s: empty results", ErrMalformedData, asin)
	}

	record := doc.Results[0].Content
	return &record, nil
}

// LoadReviews loads the stored review set for an ASIN
func (l *Loader) LoadReviews(asin string) (*models.ReviewSet, error) {
	data, err := l.read("reviews", asin)
	if err != nil {
		return nil, err
	}

	var doc reviewDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: reviews %s: %v", ErrMalformedData, asin, err)
	}
	if len(doc.Results) == 0 {
		return nil, fmt.Errorf("%w: reviews %s: empty results", ErrMalformedData, asin)
	}

	return &models.ReviewSet{Entries: doc.Results}, nil
}

// read resolves the fixed naming convention asin_<id>_<suffix>.json and
// returns the raw file contents.
func (l *Loader) read(suffix, asin string) ([]byte, error) {
	filename := filepath.Join(l.dataDir, fmt.Sprintf("asin_%s_%s.json", asin, suffix))
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	log.Debug().
		Str("file", filename).
		Int("bytes", len(data)).
		Msg("Reference data loaded")

	return data, nil
}
