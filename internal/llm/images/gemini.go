package images

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"brandsmith/internal/assets"
)

// GeminiGenerator renders images with the Imagen models of the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini images: api key is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = assets.DefaultModel(assets.KindImage, ProviderGemini)
	}
	return &GeminiGenerator{client: c, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*Image, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("imagen generate: %w", err)
	}
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		return &Image{Data: gi.Image.ImageBytes, MIMEType: gi.Image.MIMEType}, nil
	}
	return nil, ErrNoImage
}
