package translate

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// The automated UI exposes no stable contract, so every lookup is an
// ordered list of fallback matchers tried in priority order. A matcher that
// fails (selector miss, inaccessible frame) is skipped, and only exhaustion
// of the whole list means "not found".

// matcher locates one candidate element, either by CSS selector or by a
// selector narrowed with a text/ARIA regex.
type matcher struct {
	selector string
	pattern  string // optional case-insensitive js regex on element text
}

func bySelector(selector string) matcher {
	return matcher{selector: selector}
}

func byText(selector, pattern string) matcher {
	return matcher{selector: selector, pattern: pattern}
}

const clickTimeout = 2 * time.Second

// findVisible returns the first visible element matched by the ordered
// matcher list, or nil.
func findVisible(page *rod.Page, matchers []matcher) *rod.Element {
	for _, m := range matchers {
		if el := visibleMatch(page, m); el != nil {
			return el
		}
	}
	return nil
}

// findVisibleInFrames tries the matcher list against the main document
// first, then against every embedded frame.
func findVisibleInFrames(page *rod.Page, matchers []matcher) *rod.Element {
	if el := findVisible(page, matchers); el != nil {
		return el
	}

	iframes, err := page.Elements("iframe")
	if err != nil {
		return nil
	}
	for _, iframe := range iframes {
		frame, err := iframe.Frame()
		if err != nil {
			continue
		}
		if el := findVisible(frame, matchers); el != nil {
			return el
		}
	}
	return nil
}

func visibleMatch(page *rod.Page, m matcher) *rod.Element {
	var (
		has bool
		el  *rod.Element
		err error
	)

	p := page.Timeout(clickTimeout)
	if m.pattern != "" {
		has, el, err = p.HasR(m.selector, m.pattern)
	} else {
		has, el, err = p.Has(m.selector)
	}
	if err != nil || !has || el == nil {
		return nil
	}

	visible, err := el.Visible()
	if err != nil || !visible {
		return nil
	}
	// The element was found through a deadline-bounded page clone; detach
	// that deadline so callers scope their own.
	return el.CancelTimeout()
}

// clickFirst clicks the first visible match with a short bounded timeout.
// It reports whether a click happened; failures are swallowed so the caller
// can try the next candidate.
func clickFirst(page *rod.Page, matchers []matcher) bool {
	el := findVisible(page, matchers)
	if el == nil {
		return false
	}
	if err := el.Timeout(clickTimeout).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false
	}
	return true
}
