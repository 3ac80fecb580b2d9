package translate

import (
	"strings"
	"time"

	"github.com/go-rod/rod"
)

// Accept-attribute tokens used to rank candidate file inputs. The translate
// page can expose several inputs (document translation accepts pdf/office
// formats); the image input must win regardless of DOM order.
var (
	imageAcceptTokens    = []string{"image", ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif"}
	documentAcceptTokens = []string{".pdf", ".pptx", ".docx", ".xlsx", "application/pdf"}
)

// scoreAccept ranks a file input's accept attribute: image types first,
// document types last, anything else neutral.
func scoreAccept(accept string) int {
	value := strings.ToLower(accept)
	for _, token := range imageAcceptTokens {
		if strings.Contains(value, token) {
			return 2
		}
	}
	for _, token := range documentAcceptTokens {
		if strings.Contains(value, token) {
			return 0
		}
	}
	return 1
}

// pickFileInput returns the index of the best-scoring accept attribute,
// keeping the first seen on ties. It returns -1 for an empty list.
func pickFileInput(accepts []string) int {
	bestIdx := -1
	bestScore := -1
	for idx, accept := range accepts {
		if score := scoreAccept(accept); score > bestScore {
			bestScore = score
			bestIdx = idx
		}
	}
	return bestIdx
}

// selectAndUpload waits for a file input to attach, picks the most
// image-like candidate, and submits the temporary image file to it.
func selectAndUpload(page *rod.Page, imagePath string, timeout time.Duration) error {
	// Element blocks until at least one file input is attached.
	if _, err := page.Timeout(timeout).Element("input[type=file]"); err != nil {
		return errNavigation("no file input appeared on translate page: %v", err)
	}

	inputs, err := page.Elements("input[type=file]")
	if err != nil || len(inputs) == 0 {
		return &UploadError{msg: "no file input found on translate page"}
	}

	accepts := make([]string, len(inputs))
	for idx, input := range inputs {
		accept, err := input.Attribute("accept")
		if err == nil && accept != nil {
			accepts[idx] = *accept
		}
	}

	best := pickFileInput(accepts)
	if best < 0 {
		return &UploadError{msg: "no file input found on translate page"}
	}

	if err := inputs[best].Timeout(timeout).SetFiles([]string{imagePath}); err != nil {
		return &UploadError{msg: "failed to submit image to file input: " + err.Error()}
	}

	return nil
}
