package translate

import (
	"encoding/base64"
	"strings"
)

// NormalizeBase64 decodes a base64 image payload. The input may be a bare
// base64 string or a data URL of the form data:<mime>;base64,<payload>.
// Embedded whitespace is ignored and missing padding is restored before
// decoding; strict decoding is attempted first, then a permissive pass.
func NormalizeBase64(data string) ([]byte, error) {
	if data == "" {
		return nil, errInput("base64 input is empty")
	}

	value := strings.TrimSpace(data)
	if strings.HasPrefix(value, "data:") {
		idx := strings.Index(value, ",")
		if idx < 0 {
			return nil, errInput("invalid data URL for base64 input")
		}
		value = value[idx+1:]
	}

	value = strings.Join(strings.Fields(value), "")

	if missing := len(value) % 4; missing != 0 {
		value += strings.Repeat("=", 4-missing)
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}

	// Tolerate payloads with stray characters or URL-safe alphabets the
	// strict decoder rejects.
	if decoded, uerr := base64.URLEncoding.DecodeString(value); uerr == nil {
		return decoded, nil
	}
	if decoded, lerr := base64.RawStdEncoding.DecodeString(strings.TrimRight(value, "=")); lerr == nil {
		return decoded, nil
	}

	return nil, errInput("invalid base64 image input: %v", err)
}

// resolveInput enforces the bytes-XOR-base64 contract and returns the
// decoded image bytes.
func resolveInput(imageBytes []byte, imageBase64 string) ([]byte, error) {
	hasBytes := len(imageBytes) > 0
	hasBase64 := imageBase64 != ""

	if hasBytes == hasBase64 {
		return nil, errInput("provide exactly one of image bytes or image base64")
	}

	if hasBase64 {
		return NormalizeBase64(imageBase64)
	}
	return imageBytes, nil
}
