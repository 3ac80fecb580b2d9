package translate

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultBaseURL is the translate UI entry point.
const DefaultBaseURL = "https://translate.google.com/"

var imageModeURL = regexp.MustCompile(`[?&]op=images`)

var consentMatchers = []matcher{
	byText("button", "(?i)accept all"),
	byText("button", "(?i)i agree"),
	byText("button", "(?i)agree"),
	byText("button", "(?i)accept"),
	bySelector("#introAgreeButton"),
	bySelector("button[aria-label='Accept all']"),
}

var imageModeMatchers = []matcher{
	byText("[role=tab]", "(?i)images"),
	byText("button", "(?i)(image translation|images)"),
	bySelector("button[aria-label='Image translation']"),
	byText("button", "(?i)images"),
}

// openImageTranslate loads the translate UI and switches it into image
// translation mode. It returns a NavigationError when no candidate
// affordance gets the page there.
func openImageTranslate(ctx context.Context, page *rod.Page, baseURL string, timeout time.Duration, pause Delay) error {
	bounded := page.Timeout(timeout)
	wait := bounded.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := bounded.Navigate(baseURL); err != nil {
		return errNavigation("failed to open %s: %v", baseURL, err)
	}
	wait()

	pause.Wait(ctx)
	dismissConsent(page)
	pause.Wait(ctx)

	for _, m := range imageModeMatchers {
		if !clickFirst(page, []matcher{m}) {
			continue
		}
		if waitForImageMode(ctx, page, timeout) {
			pause.Wait(ctx)
			return nil
		}
	}

	// The UI may already be in image mode (deep link or sticky state).
	if urlIndicatesImageMode(page) {
		return nil
	}

	return errNavigation("could not open image translate page")
}

// dismissConsent clicks the first visible consent button in the main
// document or any frame. Absence of a consent dialog is not an error.
func dismissConsent(page *rod.Page) {
	el := findVisibleInFrames(page, consentMatchers)
	if el == nil {
		return
	}
	_ = el.Timeout(clickTimeout).Click(proto.InputMouseButtonLeft, 1)
}

// waitForImageMode waits briefly for the URL to reflect image mode, falling
// back to probing for an image-accepting file input.
func waitForImageMode(ctx context.Context, page *rod.Page, timeout time.Duration) bool {
	wait := 5 * time.Second
	if timeout < wait {
		wait = timeout
	}

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if urlIndicatesImageMode(page) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(250 * time.Millisecond):
		}
	}

	return hasImageFileInput(page)
}

func urlIndicatesImageMode(page *rod.Page) bool {
	info, err := page.Info()
	if err != nil {
		return false
	}
	return imageModeURL.MatchString(info.URL)
}

// hasImageFileInput reports whether any file input on the page declares an
// image-accepting type.
func hasImageFileInput(page *rod.Page) bool {
	inputs, err := page.Elements("input[type=file]")
	if err != nil || len(inputs) == 0 {
		return false
	}

	for _, input := range inputs {
		accept, err := input.Attribute("accept")
		if err != nil || accept == nil {
			continue
		}
		value := strings.ToLower(*accept)
		for _, token := range imageAcceptTokens {
			if strings.Contains(value, token) {
				return true
			}
		}
	}
	return false
}
