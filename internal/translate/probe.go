package translate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
)

// Failure phrases the translate UI is known to render.
var translationErrorMessages = []string{
	"Can't detect text",
	"Cannot detect text",
	"This language may not be supported",
}

var downloadMatchers = []matcher{
	byText("button", "(?i)download"),
	byText("a", "(?i)download"),
	bySelector("button[aria-label*='Download']"),
	bySelector("a[aria-label*='Download']"),
}

var labeledResultMatchers = []matcher{
	bySelector("img[alt*='Translated' i]"),
	bySelector("img[aria-label*='translation' i]"),
	bySelector("img[aria-label*='translated' i]"),
}

// candidateImageJS enumerates sufficiently-large rendered images and
// returns the preferred (explicitly labeled) one, or the last candidate.
const candidateImageJS = `() => {
	const imgs = Array.from(document.querySelectorAll('img'))
		.filter(img => img.src && img.naturalWidth > 50 && img.naturalHeight > 50)
		.map(img => ({
			src: img.src,
			alt: img.alt || '',
			aria: img.getAttribute('aria-label') || ''
		}));

	if (!imgs.length) {
		return { preferred: false, src: '' };
	}

	const preferred = imgs.find(item => /translated|translation/i.test(item.alt + ' ' + item.aria));
	if (preferred) {
		return { preferred: true, src: preferred.src };
	}

	return { preferred: false, src: imgs[imgs.length - 1].src };
}`

const bodyTextJS = `() => (document.body && document.body.innerText) ? document.body.innerText : ''`

// rodProbe implements PageProbe against a live rod page.
type rodProbe struct {
	page    *rod.Page
	workDir string
}

func newRodProbe(page *rod.Page, workDir string) *rodProbe {
	return &rodProbe{page: page, workDir: workDir}
}

func (p *rodProbe) DownloadVisible() bool {
	return findVisible(p.page, downloadMatchers) != nil
}

func (p *rodProbe) LabeledResultVisible() bool {
	return findVisible(p.page, labeledResultMatchers) != nil
}

func (p *rodProbe) ErrorText() string {
	res, err := p.page.Eval(bodyTextJS)
	if err != nil {
		return ""
	}
	return matchErrorText(res.Value.Str())
}

// matchErrorText scans page text for known failure phrases.
func matchErrorText(body string) string {
	if body == "" {
		return ""
	}

	lower := strings.ToLower(body)
	hasDetect := strings.Contains(lower, "can't detect text") || strings.Contains(lower, "cannot detect text")
	hasLang := strings.Contains(lower, "language may not be supported")
	if hasDetect && hasLang {
		return "Can't detect text. This language may not be supported."
	}

	for _, message := range translationErrorMessages {
		if strings.Contains(lower, strings.ToLower(message)) {
			return message
		}
	}
	return ""
}

func (p *rodProbe) CandidateImage() (string, bool) {
	res, err := p.page.Eval(candidateImageJS)
	if err != nil {
		return "", false
	}
	src := res.Value.Get("src").Str()
	labeled := res.Value.Get("preferred").Bool()
	return src, labeled
}

// CaptureScreenshot writes a full-page screenshot into the work dir. Best
// effort: an empty path means capture failed.
func (p *rodProbe) CaptureScreenshot(label string) string {
	if err := os.MkdirAll(p.workDir, 0o755); err != nil {
		return ""
	}

	bin, err := p.page.Screenshot(true, nil)
	if err != nil {
		return ""
	}

	path := filepath.Join(p.workDir, fmt.Sprintf("translate_error_%s_%d.png", label, time.Now().Unix()))
	if err := os.WriteFile(path, bin, 0o644); err != nil {
		return ""
	}
	return path
}
