package images

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRouterStub(t *testing.T, status int, body string) *OpenRouterGenerator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatCompletionsRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			assert.Equal(t, []string{"image", "text"}, req.Modalities)
			assert.Equal(t, "moodboard please", req.Messages[0].Content)
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	g := NewOpenRouterGenerator("secret", "")
	g.BaseURL = srv.URL
	return g
}

func TestOpenRouterGenerator_DataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	g := openRouterStub(t, http.StatusOK, `{"choices":[{"message":{"images":[{"image_url":{"url":"data:image/png;base64,`+payload+`"}}]}}]}`)

	img, err := g.Generate(context.Background(), "moodboard please")
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), img.Data)
	require.Equal(t, "image/png", img.MIMEType)
	require.Empty(t, img.URL)
}

func TestOpenRouterGenerator_RemoteURL(t *testing.T) {
	g := openRouterStub(t, http.StatusOK, `{"choices":[{"message":{"images":[{"image_url":{"url":"https://cdn.example/img.png"}}]}}]}`)

	img, err := g.Generate(context.Background(), "moodboard please")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/img.png", img.URL)
}

func TestOpenRouterGenerator_Errors(t *testing.T) {
	g := openRouterStub(t, http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`)
	_, err := g.Generate(context.Background(), "moodboard please")
	require.ErrorContains(t, err, "slow down")

	g = openRouterStub(t, http.StatusOK, `{"choices":[{"message":{"images":[]}}]}`)
	_, err = g.Generate(context.Background(), "moodboard please")
	require.ErrorIs(t, err, ErrNoImage)
}

func TestExtensionFromMIME(t *testing.T) {
	require.Equal(t, ".png", ExtensionFromMIME(""))
	require.Equal(t, ".jpg", ExtensionFromMIME("image/jpeg"))
	require.Equal(t, ".png", ExtensionFromMIME("image/png"))
	require.Equal(t, ".png", ExtensionFromMIME("application/x-unknown-thing"))
}
