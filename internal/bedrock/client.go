package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/rs/zerolog/log"
)

// Client wraps the Bedrock runtime for the two invocation paths: the
// Converse API for text/multimodal models and raw InvokeModel bodies for the
// image families.
type Client struct {
	runtime *bedrockruntime.Client
}

// NewClient creates a Bedrock runtime client for the given region using the
// default AWS credential chain.
func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().
		Str("region", region).
		Msg("Bedrock client initialized")

	return &Client{runtime: bedrockruntime.NewFromConfig(cfg)}, nil
}

// Converse sends a text or multimodal request and returns the first text
// content block of the output message. A response with no text block is
// ErrEmptyResponse.
func (c *Client) Converse(ctx context.Context, req *ConverseRequest) (string, error) {
	content := []types.ContentBlock{
		&types.ContentBlockMemberText{Value: req.Text},
	}
	if len(req.Image) > 0 {
		content = append(content, &types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: types.ImageFormat(req.ImageFormat),
				Source: &types.ImageSourceMemberBytes{Value: req.Image},
			},
		})
	}

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(req.ModelID),
		Messages: []types.Message{
			{Role: types.ConversationRoleUser, Content: content},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(req.MaxTokens),
			Temperature: aws.Float32(req.Temperature),
			TopP:        req.TopP,
		},
	}
	if req.TopK != nil {
		input.AdditionalModelRequestFields = document.NewLazyDocument(map[string]interface{}{
			"top_k": *req.TopK,
		})
	}

	out, err := c.runtime.Converse(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model_id", req.ModelID).Msg("Converse call failed")
		return "", &TransportError{Err: err}
	}

	message, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(message.Value.Content) == 0 {
		return "", fmt.Errorf("%w: no output message", ErrEmptyResponse)
	}
	for _, block := range message.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			return text.Value, nil
		}
	}
	return "", fmt.Errorf("%w: no text content block", ErrEmptyResponse)
}

// InvokeImage dispatches an image envelope via InvokeModel and decodes the
// response with the family's decoder.
func (c *Client) InvokeImage(ctx context.Context, env *RequestEnvelope) (*ImageResult, error) {
	body, err := env.MarshalBody()
	if err != nil {
		return nil, err
	}
	modelID := env.ModelID()

	log.Info().
		Str("model_id", modelID).
		Int("body_bytes", len(body)).
		Msg("Invoking image model")

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		log.Error().Err(err).Str("model_id", modelID).Msg("InvokeModel call failed")
		return nil, &TransportError{Err: err}
	}

	switch {
	case env.Stability != nil:
		return DecodeStabilityResponse(out.Body)
	case env.Titan != nil:
		return DecodeTitanResponse(body, out.Body)
	default:
		return nil, fmt.Errorf("%w: envelope is not an image request", ErrUnsupportedModel)
	}
}
