package translate

import "fmt"

// InputError reports invalid, missing, or ambiguous image input. It maps to
// a client error at the API layer and is never retried.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func errInput(format string, args ...interface{}) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// NavigationError reports that the translate UI could not be reached or
// driven into the expected state (consent, mode switch, file input).
type NavigationError struct {
	msg string
}

func (e *NavigationError) Error() string { return e.msg }

func errNavigation(format string, args ...interface{}) error {
	return &NavigationError{msg: fmt.Sprintf(format, args...)}
}

// UploadError reports that no usable file input was found for the image.
type UploadError struct {
	msg string
}

func (e *UploadError) Error() string { return e.msg }

// UIError reports a failure message shown by the translation UI itself,
// e.g. undetectable text or an unsupported language. It is an expected,
// client-correctable failure, not a system fault.
type UIError struct {
	Message        string
	ScreenshotPath string
}

func (e *UIError) Error() string {
	if e.ScreenshotPath != "" {
		return fmt.Sprintf("%s (screenshot: %s)", e.Message, e.ScreenshotPath)
	}
	return e.Message
}

// TimeoutError reports that no terminal signal appeared before the job
// deadline.
type TimeoutError struct {
	ScreenshotPath string
}

func (e *TimeoutError) Error() string {
	if e.ScreenshotPath != "" {
		return fmt.Sprintf("timed out waiting for translation to finish (screenshot: %s)", e.ScreenshotPath)
	}
	return "timed out waiting for translation to finish"
}

// ExtractionError reports that the translated image could not be captured
// through any delivery channel.
type ExtractionError struct {
	msg string
}

func (e *ExtractionError) Error() string { return e.msg }

func errExtraction(format string, args ...interface{}) error {
	return &ExtractionError{msg: fmt.Sprintf(format, args...)}
}
