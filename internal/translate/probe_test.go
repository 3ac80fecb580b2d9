package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchErrorText(t *testing.T) {
	assert.Equal(t, "", matchErrorText(""))
	assert.Equal(t, "", matchErrorText("Translating your image..."))

	assert.Equal(t, "Can't detect text", matchErrorText("Oops. Can't detect text here"))
	assert.Equal(t, "Cannot detect text", matchErrorText("CANNOT DETECT TEXT in this image"))
	assert.Equal(t, "This language may not be supported",
		matchErrorText("Sorry, this language may not be supported yet"))

	// Both phrases on the page collapse into the combined message.
	assert.Equal(t, "Can't detect text. This language may not be supported.",
		matchErrorText("Can't detect text. This language may not be supported."))
}

func TestImageModeURL(t *testing.T) {
	assert.True(t, imageModeURL.MatchString("https://translate.google.com/?sl=auto&tl=en&op=images"))
	assert.True(t, imageModeURL.MatchString("https://translate.google.com/?op=images"))
	assert.False(t, imageModeURL.MatchString("https://translate.google.com/?op=docs"))
	assert.False(t, imageModeURL.MatchString("https://translate.google.com/"))
}
