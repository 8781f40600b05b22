package media

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"brandsmith/internal/llm/images"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestStore_SaveAndServe(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "http://localhost:8080/", "")
	data := pngBytes(t)

	url, err := store.Save(&images.Image{Data: data, MIMEType: "image/png"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/media/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "http://localhost:8080/media/")
	onDisk, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, data, onDisk)

	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/"+name, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, data, rec.Body.Bytes())
}

func TestStore_SaveConvertsFormat(t *testing.T) {
	store := NewStore(t.TempDir(), "", "jpg")
	url, err := store.Save(&images.Image{Data: pngBytes(t), MIMEType: "image/png"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/media/"))
	require.True(t, strings.HasSuffix(url, ".jpg"))
}

func TestStore_RemoteURLPassesThrough(t *testing.T) {
	store := NewStore(t.TempDir(), "", "")
	url, err := store.Save(&images.Image{URL: "https://cdn.example/a.png"})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/a.png", url)

	_, err = store.Save(&images.Image{})
	require.ErrorIs(t, err, images.ErrNoImage)
}
