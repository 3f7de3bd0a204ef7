// Package bedrock shapes requests for, and decodes responses from, the three
// provider families served through the Bedrock runtime: the Converse text
// API, the Stability image models and the Titan image model. The families
// have incompatible wire schemas, so each request is a tagged union with
// exactly one variant populated; required fields are checked at construction
// time rather than at dispatch.
package bedrock

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seller-loop/studio/internal/media"
)

// Family identifies one of the known provider request/response schemas
type Family int

const (
	FamilyConverse Family = iota
	FamilyStability
	FamilyTitan
)

// SD3LargeModelID is the only Stability model supporting image-to-image
const SD3LargeModelID = "stability.sd3-large-v1:0"

// DetectImageFamily maps an image model id to its provider family.
// Unknown ids are ErrUnsupportedModel, never a silent default.
func DetectImageFamily(modelID string) (Family, error) {
	switch {
	case strings.HasPrefix(modelID, "stability."):
		return FamilyStability, nil
	case strings.HasPrefix(modelID, "amazon.titan-image-generator"):
		return FamilyTitan, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedModel, modelID)
	}
}

// RequestEnvelope is the tagged union over provider families. Exactly one
// variant is non-nil.
type RequestEnvelope struct {
	Converse  *ConverseRequest
	Stability *StabilityRequest
	Titan     *TitanRequest
}

// ModelID returns the target model of whichever variant is populated
func (e *RequestEnvelope) ModelID() string {
	switch {
	case e.Converse != nil:
		return e.Converse.ModelID
	case e.Stability != nil:
		return e.Stability.ModelID
	case e.Titan != nil:
		return e.Titan.ModelID
	}
	return ""
}

// ConverseRequest is the text/multimodal variant
type ConverseRequest struct {
	ModelID     string
	Text        string
	Image       []byte // optional inline image, already normalized
	ImageFormat string // required when Image is set
	MaxTokens   int32
	Temperature float32
	TopP        *float32
	TopK        *int32 // sent via additional model request fields
}

// NewConverse builds a plain text request with the standard inference knobs
func NewConverse(modelID, text string) *RequestEnvelope {
	topP := float32(0.9)
	return &RequestEnvelope{Converse: &ConverseRequest{
		ModelID:     modelID,
		Text:        text,
		MaxTokens:   2048,
		Temperature: 0.5,
		TopP:        &topP,
	}}
}

// NewConverseWithImage builds a multimodal request attaching one image
func NewConverseWithImage(modelID, text string, image []byte, format string) *RequestEnvelope {
	env := NewConverse(modelID, text)
	env.Converse.Image = image
	env.Converse.ImageFormat = format
	return env
}

// NewPromptOptimizer builds the low-temperature request used for image
// prompt optimization (temperature 0.1, top_k 200, no top_p).
func NewPromptOptimizer(modelID, text string, image []byte, format string) *RequestEnvelope {
	topK := int32(200)
	return &RequestEnvelope{Converse: &ConverseRequest{
		ModelID:     modelID,
		Text:        text,
		Image:       image,
		ImageFormat: format,
		MaxTokens:   2048,
		Temperature: 0.1,
		TopK:        &topK,
	}}
}

// StabilityRequest is the Stability image variant. Body marshals straight to
// the wire schema.
type StabilityRequest struct {
	ModelID string
	Body    stabilityBody
}

type stabilityBody struct {
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt"`
	Mode           string   `json:"mode"`
	AspectRatio    string   `json:"aspect_ratio,omitempty"` // dropped for image-to-image
	Seed           int64    `json:"seed"`
	OutputFormat   string   `json:"output_format"`
	Strength       *float64 `json:"strength,omitempty"` // image-to-image only
	Image          string   `json:"image,omitempty"`    // base64 source image
}

// TitanRequest is the Titan image variant, discriminated by taskType
type TitanRequest struct {
	ModelID string
	Body    titanBody
}

type titanBody struct {
	TaskType                    string                  `json:"taskType"`
	TextToImageParams           *titanTextToImage       `json:"textToImageParams,omitempty"`
	ColorGuidedGenerationParams *titanColorGuided       `json:"colorGuidedGenerationParams,omitempty"`
	BackgroundRemovalParams     *titanBackgroundRemoval `json:"backgroundRemovalParams,omitempty"`
	ImageGenerationConfig       *titanGenerationConfig  `json:"imageGenerationConfig,omitempty"`
}

type titanTextToImage struct {
	Text            string  `json:"text"`
	NegativeText    string  `json:"negativeText,omitempty"`
	ConditionImage  string  `json:"conditionImage,omitempty"`
	ControlMode     string  `json:"controlMode,omitempty"`     // CANNY_EDGE | SEGMENTATION
	ControlStrength float64 `json:"controlStrength,omitempty"`
}

type titanColorGuided struct {
	Text           string   `json:"text"`
	NegativeText   string   `json:"negativeText,omitempty"`
	ReferenceImage string   `json:"referenceImage,omitempty"`
	Colors         []string `json:"colors"`
}

type titanBackgroundRemoval struct {
	Image string `json:"image"`
}

type titanGenerationConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Height         int     `json:"height"`
	Width          int     `json:"width"`
	CfgScale       float64 `json:"cfgScale"`
	Seed           int64   `json:"seed"`
}

// TitanTask discriminates the Titan sub-task
type TitanTask string

const (
	TitanGenerate          TitanTask = "image_generation"
	TitanConditioning      TitanTask = "image_conditioning"
	TitanColorGuided       TitanTask = "color_guided_generation"
	TitanBackgroundRemoval TitanTask = "background_removal"
)

// ImageParams carries the caller-supplied knobs for image request shaping.
// Zero values take the documented per-family defaults.
type ImageParams struct {
	PositivePrompt  string
	NegativePrompt  string    // default "low quality"
	AspectRatio     string    // default "1:1", text-to-image only
	Seed            int64
	OutputFormat    string    // default "png"
	Strength        float64   // image-to-image, default 0.75
	SourceImage     []byte    // raw bytes as uploaded
	TitanTask       TitanTask
	Colors          []string
	ControlMode     string    // default CANNY_EDGE
	ControlStrength float64   // default 0.7
}

// Adapter maps logical image tasks to provider request envelopes. Titan
// input images are normalized to PNG under titanMaxDim before inlining.
type Adapter struct {
	titanMaxDim int
}

// NewAdapter creates an Adapter; titanMaxDim is the long-edge cap for Titan
// inline image inputs.
func NewAdapter(titanMaxDim int) *Adapter {
	return &Adapter{titanMaxDim: titanMaxDim}
}

// AdaptGenerate shapes a text-to-image request for the model's family
func (a *Adapter) AdaptGenerate(modelID string, p ImageParams) (*RequestEnvelope, error) {
	family, err := DetectImageFamily(modelID)
	if err != nil {
		return nil, err
	}
	if p.PositivePrompt == "" {
		return nil, &ParameterError{Reason: "positive prompt is required"}
	}

	switch family {
	case FamilyStability:
		return &RequestEnvelope{Stability: &StabilityRequest{
			ModelID: modelID,
			Body: stabilityBody{
				Prompt:         p.PositivePrompt,
				NegativePrompt: defaultString(p.NegativePrompt, "low quality"),
				Mode:           "text-to-image",
				AspectRatio:    defaultString(p.AspectRatio, "1:1"),
				Seed:           p.Seed,
				OutputFormat:   defaultString(p.OutputFormat, "png"),
			},
		}}, nil
	case FamilyTitan:
		return a.adaptTitan(modelID, TitanGenerate, p)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, modelID)
	}
}

// AdaptVary shapes an image-to-image variation request. Only the Stability
// SD3 Large model supports this mode.
func (a *Adapter) AdaptVary(modelID string, p ImageParams) (*RequestEnvelope, error) {
	family, err := DetectImageFamily(modelID)
	if err != nil {
		return nil, err
	}
	if family != FamilyStability || modelID != SD3LargeModelID {
		return nil, &ParameterError{Reason: "image-to-image requires " + SD3LargeModelID}
	}
	if len(p.SourceImage) == 0 {
		return nil, &ParameterError{Reason: "source image is required for image-to-image"}
	}
	if p.PositivePrompt == "" {
		return nil, &ParameterError{Reason: "positive prompt is required"}
	}

	strength := p.Strength
	if strength == 0 {
		strength = 0.75
	}
	return &RequestEnvelope{Stability: &StabilityRequest{
		ModelID: modelID,
		Body: stabilityBody{
			Prompt:         p.PositivePrompt,
			NegativePrompt: defaultString(p.NegativePrompt, "low quality"),
			Mode:           "image-to-image",
			Seed:           p.Seed,
			OutputFormat:   defaultString(p.OutputFormat, "png"),
			Strength:       &strength,
			Image:          base64.StdEncoding.EncodeToString(p.SourceImage),
		},
	}}, nil
}

// AdaptTitanTask shapes a Titan request for the given sub-task
func (a *Adapter) AdaptTitanTask(modelID string, task TitanTask, p ImageParams) (*RequestEnvelope, error) {
	family, err := DetectImageFamily(modelID)
	if err != nil {
		return nil, err
	}
	if family != FamilyTitan {
		return nil, &ParameterError{Reason: fmt.Sprintf("task %s requires a Titan model, got %s", task, modelID)}
	}
	return a.adaptTitan(modelID, task, p)
}

func (a *Adapter) adaptTitan(modelID string, task TitanTask, p ImageParams) (*RequestEnvelope, error) {
	body := titanBody{}

	switch task {
	case TitanGenerate:
		body.TaskType = "TEXT_IMAGE"
		body.TextToImageParams = &titanTextToImage{
			Text:         p.PositivePrompt,
			NegativeText: defaultString(p.NegativePrompt, "low quality"),
		}
		body.ImageGenerationConfig = &titanGenerationConfig{
			NumberOfImages: 1,
			Height:         1024,
			Width:          1024,
			CfgScale:       8.0,
			Seed:           p.Seed,
		}

	case TitanConditioning:
		if p.PositivePrompt == "" {
			return nil, &ParameterError{Reason: "positive prompt is required for image conditioning"}
		}
		conditionImage, err := a.inlinePNG(p.SourceImage, "condition image")
		if err != nil {
			return nil, err
		}
		mode := defaultString(p.ControlMode, "CANNY_EDGE")
		if mode != "CANNY_EDGE" && mode != "SEGMENTATION" {
			return nil, &ParameterError{Reason: "control mode must be CANNY_EDGE or SEGMENTATION"}
		}
		strength := p.ControlStrength
		if strength == 0 {
			strength = 0.7
		}
		body.TaskType = "TEXT_IMAGE"
		body.TextToImageParams = &titanTextToImage{
			Text:            p.PositivePrompt,
			NegativeText:    defaultString(p.NegativePrompt, "low quality"),
			ConditionImage:  conditionImage,
			ControlMode:     mode,
			ControlStrength: strength,
		}
		body.ImageGenerationConfig = &titanGenerationConfig{
			NumberOfImages: 1,
			Height:         512,
			Width:          512,
			CfgScale:       8.0,
		}

	case TitanColorGuided:
		if p.PositivePrompt == "" {
			return nil, &ParameterError{Reason: "positive prompt is required for color-guided generation"}
		}
		if len(p.Colors) == 0 {
			return nil, &ParameterError{Reason: "color list is required for color-guided generation"}
		}
		params := &titanColorGuided{
			Text:         p.PositivePrompt,
			NegativeText: defaultString(p.NegativePrompt, "low quality"),
			Colors:       p.Colors,
		}
		if len(p.SourceImage) > 0 {
			reference, err := a.inlinePNG(p.SourceImage, "reference image")
			if err != nil {
				return nil, err
			}
			params.ReferenceImage = reference
		}
		body.TaskType = "COLOR_GUIDED_GENERATION"
		body.ColorGuidedGenerationParams = params
		body.ImageGenerationConfig = &titanGenerationConfig{
			NumberOfImages: 1,
			Height:         512,
			Width:          512,
			CfgScale:       8.0,
		}

	case TitanBackgroundRemoval:
		inputImage, err := a.inlinePNG(p.SourceImage, "input image")
		if err != nil {
			return nil, err
		}
		body.TaskType = "BACKGROUND_REMOVAL"
		body.BackgroundRemovalParams = &titanBackgroundRemoval{Image: inputImage}

	default:
		return nil, &ParameterError{Reason: fmt.Sprintf("unknown titan task type %q", task)}
	}

	return &RequestEnvelope{Titan: &TitanRequest{ModelID: modelID, Body: body}}, nil
}

// inlinePNG normalizes an input image to PNG under the Titan cap and returns
// it base64 encoded for inline transport.
func (a *Adapter) inlinePNG(source []byte, what string) (string, error) {
	if len(source) == 0 {
		return "", &ParameterError{Reason: what + " is required"}
	}
	normalized, err := media.NormalizePNG(source, a.titanMaxDim)
	if err != nil {
		return "", &ParameterError{Reason: fmt.Sprintf("%s is not a decodable image: %v", what, err)}
	}
	return base64.StdEncoding.EncodeToString(normalized.Data), nil
}

// MarshalBody renders the populated image variant as its wire JSON body.
// Converse envelopes have no JSON body; they map onto SDK call inputs.
func (e *RequestEnvelope) MarshalBody() ([]byte, error) {
	switch {
	case e.Stability != nil:
		return json.Marshal(e.Stability.Body)
	case e.Titan != nil:
		return json.Marshal(e.Titan.Body)
	default:
		return nil, fmt.Errorf("envelope has no image body")
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
