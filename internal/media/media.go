// Package media provides output naming helpers: image format sniffing for
// content types/extensions and ASCII-safe filename sanitization for HTTP
// headers.
package media

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ContentType returns the sniffed media type of the image bytes, or
// application/octet-stream when the format is not a known image.
func ContentType(data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "image/") {
		return mt.String()
	}
	return "application/octet-stream"
}

// Extension returns the file extension for the sniffed image format,
// defaulting to ".png" for unknown payloads.
func Extension(data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "image/") && mt.Extension() != "" {
		return mt.Extension()
	}
	return ".png"
}

// unicode punctuation commonly found in user filenames, folded to ASCII so
// Content-Disposition headers stay valid.
var asciiReplacer = strings.NewReplacer(
	" ", " ", // narrow no-break space
	" ", " ", // non-breaking space
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
)

// SanitizeFilename folds a filename to ASCII-safe characters.
func SanitizeFilename(name string) string {
	name = asciiReplacer.Replace(name)

	var b strings.Builder
	for _, r := range name {
		if r > 127 || r == '"' || r == '\\' {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "file"
	}
	return out
}

// OutputFilename builds the download filename for a translated image,
// deriving the extension from the output bytes.
func OutputFilename(originalName string, data []byte) string {
	ext := Extension(data)
	if originalName == "" {
		return "translated" + ext
	}

	base := filepath.Base(originalName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = SanitizeFilename(base)
	return base + "_translated" + ext
}
