package provider

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/adcraft/server/internal/shared/config"
)

// GeminiClient wraps the Gemini image generation API. A connection is
// established per call and released when the call returns.
type GeminiClient struct {
	apiKey string
	model  string
	safety []*genai.SafetySetting
}

var _ ImageGenerator = (*GeminiClient)(nil)

// NewGeminiClient creates an image generation client from configuration.
func NewGeminiClient(cfg config.ImageConfig) *GeminiClient {
	return &GeminiClient{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		safety: safetySettings(cfg.SafetyThreshold),
	}
}

// Model returns the configured model identifier.
func (g *GeminiClient) Model() string {
	return g.model
}

// generationConfig builds the per-request configuration. The image
// model rejects requests that do not ask for the IMAGE modality, so
// both TEXT and IMAGE are always requested.
func (g *GeminiClient) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		Temperature:        genai.Ptr[float32](1.0),
		TopP:               genai.Ptr[float32](1),
		TopK:               genai.Ptr[float32](32),
		MaxOutputTokens:    1024,
		SafetySettings:     g.safety,
	}
}

func (g *GeminiClient) newClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// GenerateImage generates one image for the prompt and returns its
// inline bytes plus any accompanying text part.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return nil, &Error{Provider: "gemini", Op: "new client", Err: err}
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.generationConfig())
	if err != nil {
		return nil, &Error{Provider: "gemini", Op: "generate content", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &Error{Provider: "gemini", Op: "generate content", Err: errors.New("empty response")}
	}

	// The first candidate interleaves text and inline image parts.
	img := &GeneratedImage{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			img.Text += part.Text
		}
		if part.InlineData != nil && len(img.Data) == 0 {
			img.Data = part.InlineData.Data
			img.MIMEType = part.InlineData.MIMEType
		}
	}

	if len(img.Data) == 0 {
		return nil, &Error{Provider: "gemini", Op: "generate content", Err: errors.New("no image data in response")}
	}

	return img, nil
}

// HealthCheck verifies the API key and connectivity with a token count
// request, which is free of generation cost.
func (g *GeminiClient) HealthCheck(ctx context.Context) error {
	client, err := g.newClient(ctx)
	if err != nil {
		return &Error{Provider: "gemini", Op: "health check", Err: err}
	}

	if _, err := client.Models.CountTokens(ctx, g.model, genai.Text("ping"), nil); err != nil {
		return &Error{Provider: "gemini", Op: "health check", Err: err}
	}
	return nil
}

// safetySettings maps a configured threshold name onto all harm
// categories the image model filters on.
func safetySettings(threshold string) []*genai.SafetySetting {
	var level genai.HarmBlockThreshold
	switch strings.ToLower(threshold) {
	case "none":
		level = genai.HarmBlockThresholdBlockNone
	case "low":
		level = genai.HarmBlockThresholdBlockLowAndAbove
	case "high":
		level = genai.HarmBlockThresholdBlockOnlyHigh
	default:
		level = genai.HarmBlockThresholdBlockMediumAndAbove
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, cat := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  cat,
			Threshold: level,
		})
	}
	return settings
}
