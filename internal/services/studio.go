// Package services orchestrates each operator action as one synchronous
// chain: load reference data, build the prompt, adapt the request, invoke
// the model, decode the response. No state is shared across actions.
package services

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/seller-loop/studio/internal/bedrock"
	"github.com/seller-loop/studio/internal/config"
	"github.com/seller-loop/studio/internal/invoice"
	"github.com/seller-loop/studio/internal/media"
	"github.com/seller-loop/studio/internal/models"
	"github.com/seller-loop/studio/internal/prompt"
	"github.com/seller-loop/studio/internal/refdata"
)

// ModelClient is the outbound model surface the service depends on
type ModelClient interface {
	Converse(ctx context.Context, req *bedrock.ConverseRequest) (string, error)
	InvokeImage(ctx context.Context, env *bedrock.RequestEnvelope) (*bedrock.ImageResult, error)
}

// GeneratedImage is a saved image-task result
type GeneratedImage struct {
	Path string
	URL  string
	Seed int64
}

// StudioService implements the operator actions
type StudioService struct {
	loader    *refdata.Loader
	adapter   *bedrock.Adapter
	model     ModelClient
	files     *FileService
	extractor *invoice.Extractor
	cfg       *config.Config
}

// NewStudioService wires the studio actions together
func NewStudioService(loader *refdata.Loader, model ModelClient, files *FileService, cfg *config.Config) *StudioService {
	return &StudioService{
		loader:    loader,
		adapter:   bedrock.NewAdapter(cfg.TitanImageMaxDim),
		model:     model,
		files:     files,
		extractor: invoice.NewExtractor(cfg.DataDir, cfg.VisionModel, model),
		cfg:       cfg,
	}
}

// GetProduct returns the stored reference product for preview
func (s *StudioService) GetProduct(asin string) (*models.ProductRecord, error) {
	return s.loader.LoadProduct(asin)
}

// GetReviews returns the stored review set for preview
func (s *StudioService) GetReviews(asin string) (*models.ReviewSet, error) {
	return s.loader.LoadReviews(asin)
}

// GenerateListing builds and runs the listing prompt. When image bytes are
// supplied the multimodal model sees the product photo alongside the prompt;
// otherwise the plain text model is used.
func (s *StudioService) GenerateListing(ctx context.Context, req *models.ListingRequest, image []byte) (*models.ParsedListing, error) {
	record, err := s.loader.LoadProduct(req.ASIN)
	if err != nil {
		return nil, err
	}

	userPrompt := prompt.Listing(record, req.Brand, req.Features, req.Language)

	var env *bedrock.RequestEnvelope
	if len(image) > 0 {
		normalized, err := media.Normalize(image, s.cfg.ConverseImageMaxDim)
		if err != nil {
			return nil, &bedrock.ParameterError{Reason: "uploaded image is not decodable: " + err.Error()}
		}
		env = bedrock.NewConverseWithImage(s.cfg.VisionModel, userPrompt, normalized.Data, normalized.Format)
	} else {
		env = bedrock.NewConverse(s.cfg.TextModel, userPrompt)
	}

	output, err := s.model.Converse(ctx, env.Converse)
	if err != nil {
		return nil, err
	}

	listing, err := bedrock.ParseListing(output)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("asin", req.ASIN).
		Str("language", req.Language).
		Bool("with_image", len(image) > 0).
		Msg("Listing generated")

	return listing, nil
}

// VocReport builds and runs the full VoC summary prompt
func (s *StudioService) VocReport(ctx context.Context, asin, language string) (string, error) {
	reviews, err := s.loader.LoadReviews(asin)
	if err != nil {
		return "", err
	}
	env := bedrock.NewConverse(s.cfg.TextModel, prompt.VocSummary(reviews, language))
	return s.model.Converse(ctx, env.Converse)
}

// VocAspectAnalysis runs one of the six fixed per-aspect analyses
func (s *StudioService) VocAspectAnalysis(ctx context.Context, asin string, aspect models.VocAspect) (string, error) {
	reviews, err := s.loader.LoadReviews(asin)
	if err != nil {
		return "", err
	}
	aspectPrompt, ok := prompt.VocAspect(aspect, reviews)
	if !ok {
		return "", &bedrock.ParameterError{Reason: "unknown voc aspect: " + string(aspect)}
	}
	env := bedrock.NewConverse(s.cfg.TextModel, aspectPrompt)
	return s.model.Converse(ctx, env.Converse)
}

// GenerateImage runs text-to-image generation and saves the result
func (s *StudioService) GenerateImage(ctx context.Context, req *models.GenerateImageRequest) (*GeneratedImage, error) {
	env, err := s.adapter.AdaptGenerate(req.ModelID, bedrock.ImageParams{
		PositivePrompt: req.Prompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    req.AspectRatio,
		Seed:           req.Seed,
		OutputFormat:   req.OutputFormat,
	})
	if err != nil {
		return nil, err
	}
	return s.invokeAndSave(ctx, env, "text2image")
}

// VaryImage runs image-to-image variation on the SD3 Large model
func (s *StudioService) VaryImage(ctx context.Context, positivePrompt string, source []byte) (*GeneratedImage, error) {
	env, err := s.adapter.AdaptVary(bedrock.SD3LargeModelID, bedrock.ImageParams{
		PositivePrompt: positivePrompt,
		SourceImage:    source,
	})
	if err != nil {
		return nil, err
	}
	return s.invokeAndSave(ctx, env, "variation")
}

// RemoveBackground runs Titan background removal on the source image
func (s *StudioService) RemoveBackground(ctx context.Context, source []byte) (*GeneratedImage, error) {
	env, err := s.adapter.AdaptTitanTask(s.cfg.TitanModel, bedrock.TitanBackgroundRemoval, bedrock.ImageParams{
		SourceImage: source,
	})
	if err != nil {
		return nil, err
	}
	return s.invokeAndSave(ctx, env, "variation")
}

func (s *StudioService) invokeAndSave(ctx context.Context, env *bedrock.RequestEnvelope, prefix string) (*GeneratedImage, error) {
	result, err := s.model.InvokeImage(ctx, env)
	if err != nil {
		return nil, err
	}

	path, url, err := s.files.SaveGenerated(ctx, prefix, result.Image)
	if err != nil {
		return nil, err
	}
	return &GeneratedImage{Path: path, URL: url, Seed: result.Seed}, nil
}

// OptimizePromptFromText rewrites a text description into a Stable
// Diffusion prompt.
func (s *StudioService) OptimizePromptFromText(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", &bedrock.ParameterError{Reason: "text is required"}
	}
	env := bedrock.NewPromptOptimizer(s.cfg.VisionModel, prompt.OptimizeFromText(text), nil, "")
	return s.model.Converse(ctx, env.Converse)
}

// OptimizePromptFromImage rewrites an initial prompt using the attached
// image as grounding.
func (s *StudioService) OptimizePromptFromImage(ctx context.Context, initial string, image []byte) (string, error) {
	normalized, err := media.Normalize(image, s.cfg.ConverseImageMaxDim)
	if err != nil {
		return "", &bedrock.ParameterError{Reason: "uploaded image is not decodable: " + err.Error()}
	}
	env := bedrock.NewPromptOptimizer(s.cfg.VisionModel, prompt.OptimizeFromImage(initial), normalized.Data, normalized.Format)
	return s.model.Converse(ctx, env.Converse)
}

// ExtractInvoice runs invoice field extraction on an uploaded image
func (s *StudioService) ExtractInvoice(ctx context.Context, image []byte) (json.RawMessage, error) {
	normalized, err := media.Normalize(image, s.cfg.ConverseImageMaxDim)
	if err != nil {
		return nil, &bedrock.ParameterError{Reason: "uploaded invoice is not a decodable image: " + err.Error()}
	}
	return s.extractor.Extract(ctx, normalized.Data, normalized.Format)
}

// Files exposes the file service for handler-level temp upload management
func (s *StudioService) Files() *FileService {
	return s.files
}
