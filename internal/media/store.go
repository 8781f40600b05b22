// Package media stores generated moodboards on disk and serves them.
package media

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"brandsmith/internal/imageconv"
	"brandsmith/internal/llm/images"
	"brandsmith/internal/utils"
)

// PathPrefix is the URL path under which stored files are served.
const PathPrefix = "/media/"

// Store writes images into Dir and addresses them under BaseURL.
type Store struct {
	Dir     string
	BaseURL string
	// Format optionally re-encodes images (png, jpg or webp) before saving.
	Format string
}

func NewStore(dir, baseURL, format string) *Store {
	return &Store{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), Format: format}
}

// Save persists img and returns its public URL. Images that already live at
// a remote URL are returned as is.
func (s *Store) Save(img *images.Image) (string, error) {
	if img == nil {
		return "", images.ErrNoImage
	}
	if img.URL != "" {
		return img.URL, nil
	}
	if len(img.Data) == 0 {
		return "", images.ErrNoImage
	}

	data, ext := img.Data, images.ExtensionFromMIME(img.MIMEType)
	if s.Format != "" {
		converted, convertedExt, err := imageconv.Convert(img.Data, s.Format)
		if err != nil {
			return "", fmt.Errorf("convert moodboard to %s: %w", s.Format, err)
		}
		data, ext = converted, convertedExt
	}

	if err := utils.EnsureDir(s.Dir); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return s.BaseURL + PathPrefix + name, nil
}

// Handler serves stored files. Mount it at PathPrefix.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(PathPrefix, http.FileServer(http.Dir(s.Dir)))
}
