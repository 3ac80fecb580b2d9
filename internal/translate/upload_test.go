package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAccept(t *testing.T) {
	assert.Equal(t, 2, scoreAccept("image/*"))
	assert.Equal(t, 2, scoreAccept(".png,.jpg,.jpeg"))
	assert.Equal(t, 2, scoreAccept("IMAGE/PNG"))
	assert.Equal(t, 0, scoreAccept(".pdf,.docx,.pptx"))
	assert.Equal(t, 0, scoreAccept("application/pdf"))
	assert.Equal(t, 1, scoreAccept(""))
	assert.Equal(t, 1, scoreAccept("video/*"))
}

func TestPickFileInput(t *testing.T) {
	// The image input must win regardless of DOM order.
	assert.Equal(t, 1, pickFileInput([]string{".pdf,.docx", "image/*"}))
	assert.Equal(t, 0, pickFileInput([]string{"image/*", ".pdf,.docx"}))

	// Document inputs mixed with attribute-less ones: neutral wins.
	assert.Equal(t, 1, pickFileInput([]string{".pdf", "", ".docx"}))

	// Ties keep the first candidate.
	assert.Equal(t, 0, pickFileInput([]string{"image/png", "image/*"}))
	assert.Equal(t, 0, pickFileInput([]string{"", ""}))

	assert.Equal(t, -1, pickFileInput(nil))
}
