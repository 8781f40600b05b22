// Package images generates moodboard images from text prompts.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

// Image is a generated picture, either as raw bytes or as a remote URL.
type Image struct {
	Data     []byte
	MIMEType string
	URL      string
}

// Generator turns a prompt into one image.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// ErrNoImage is returned when the provider answered without an image.
var ErrNoImage = errors.New("no image returned")

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderNone       = "none"
)

func decodeDataURL(dataURL string) ([]byte, string, error) {
	const marker = ";base64,"
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, "", errors.New("invalid data URL prefix")
	}
	idx := strings.Index(dataURL, marker)
	if idx < 0 {
		return nil, "", errors.New("data URL missing base64 marker")
	}

	meta := strings.TrimPrefix(dataURL[:idx], "data:")
	payload := dataURL[idx+len(marker):]
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image base64: %w", err)
	}
	return raw, meta, nil
}

// ExtensionFromMIME maps a MIME type to a file extension, defaulting to .png.
func ExtensionFromMIME(mt string) string {
	mt = strings.TrimSpace(strings.ToLower(mt))
	switch mt {
	case "":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	exts, err := mime.ExtensionsByType(mt)
	if err != nil || len(exts) == 0 {
		return ".png"
	}
	return exts[0]
}
