package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"brandsmith/internal/assets"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

type chatCompletionsRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
	Stream     bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Choices []struct {
		Message struct {
			Images []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenRouterGenerator asks an image-capable chat model on OpenRouter for a
// picture.
type OpenRouterGenerator struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewOpenRouterGenerator(apiKey, model string) *OpenRouterGenerator {
	if model == "" {
		model = assets.DefaultModel(assets.KindImage, ProviderOpenRouter)
	}
	return &OpenRouterGenerator{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    openRouterBaseURL,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (g *OpenRouterGenerator) Generate(ctx context.Context, prompt string) (*Image, error) {
	bodyBytes, err := json.Marshal(chatCompletionsRequest{
		Model:      g.Model,
		Messages:   []chatMessage{{Role: "user", Content: prompt}},
		Modalities: []string{"image", "text"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.BaseURL, "/")+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response (%d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("api error (%d): %s", resp.StatusCode, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || len(parsed.Choices[0].Message.Images) == 0 {
		return nil, ErrNoImage
	}

	imageURL := strings.TrimSpace(parsed.Choices[0].Message.Images[0].ImageURL.URL)
	if imageURL == "" {
		return nil, ErrNoImage
	}
	if strings.HasPrefix(imageURL, "data:") {
		raw, mimeType, err := decodeDataURL(imageURL)
		if err != nil {
			return nil, err
		}
		return &Image{Data: raw, MIMEType: mimeType}, nil
	}
	return &Image{URL: imageURL}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
