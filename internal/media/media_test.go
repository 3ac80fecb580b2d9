package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(pngHeader))
	assert.Equal(t, "application/octet-stream", ContentType([]byte("not an image")))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", Extension(pngHeader))
	assert.Equal(t, ".png", Extension([]byte("not an image")))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report - final", SanitizeFilename("report — final"))
	assert.Equal(t, "rsum", SanitizeFilename("résumé"))
	assert.Equal(t, "say 'hi'", SanitizeFilename("say ‘hi’"))
	assert.Equal(t, "file", SanitizeFilename("日本語"))
	assert.Equal(t, "file", SanitizeFilename(""))
	assert.Equal(t, "ab", SanitizeFilename(`a"b\`))
}

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "photo_translated.png", OutputFilename("photo.jpg", pngHeader))
	assert.Equal(t, "translated.png", OutputFilename("", pngHeader))
	assert.Equal(t, "menu_translated.png", OutputFilename("/uploads/menu.webp", pngHeader))
}
