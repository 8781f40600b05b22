package imageconv

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 40), B: uint8(y * 40), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertFormats(t *testing.T) {
	src := samplePNG(t)

	cases := []struct {
		format string
		ext    string
	}{
		{"", ".png"},
		{"png", ".png"},
		{"JPG", ".jpg"},
		{"webp", ".webp"},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			out, ext, err := Convert(src, tc.format)
			require.NoError(t, err)
			require.Equal(t, tc.ext, ext)
			require.Equal(t, tc.ext, Extension(out))
		})
	}
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	_, _, err := Convert(samplePNG(t), "tiff")
	require.Error(t, err)
}

func TestConvertRejectsGarbage(t *testing.T) {
	_, _, err := Convert([]byte("not an image"), FormatPNG)
	require.Error(t, err)
	require.Equal(t, ".img", Extension([]byte("nope")))
}
