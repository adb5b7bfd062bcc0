package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestSaveImageResizes(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "/uploads")

	url, err := store.SaveImage(pngBytes(t, 2000, 1000), "sliders", 1200, 600)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/sliders/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	saved, err := imaging.Open(filepath.Join(dir, "sliders", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, 1200, saved.Bounds().Dx())
	assert.Equal(t, 600, saved.Bounds().Dy())
}

func TestSaveImageRejectsGarbage(t *testing.T) {
	store := NewStore(t.TempDir(), "/uploads")
	_, err := store.SaveImage(strings.NewReader("not an image"), "x", 100, 100)
	assert.ErrorIs(t, err, ErrInvalidImage)

	entries, _ := os.ReadDir(store.Dir())
	assert.Empty(t, entries)
}
