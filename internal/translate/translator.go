package translate

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lenslate/lenslate/internal/browser"
	"github.com/lenslate/lenslate/internal/media"
)

// DefaultTimeout bounds the whole UI interaction when the request does not
// carry one.
const DefaultTimeout = 90 * time.Second

// SessionSource hands out exclusive browser sessions. Acquire may suspend
// the caller until a session is available.
type SessionSource interface {
	Acquire(ctx context.Context) (*browser.Session, error)
	Release(s *browser.Session)
}

// Config holds the orchestrator settings.
type Config struct {
	BaseURL string // translate UI entry point, DefaultBaseURL when empty
	WorkDir string // temp images, downloads and diagnostic screenshots
	Delay   Delay  // natural pacing between UI actions
}

// Request is a single translation job.
type Request struct {
	// Exactly one of ImageBytes or ImageBase64 must be set.
	ImageBytes  []byte
	ImageBase64 string
	// Timeout bounds the UI interaction; DefaultTimeout when zero.
	Timeout time.Duration
	// OutputPath optionally persists the result, resolved against the
	// work dir unless absolute.
	OutputPath string
}

// Translator drives the remote image-translation UI for one job at a time
// per session.
type Translator struct {
	cfg  Config
	pool SessionSource
}

// New creates a Translator on top of a session source.
func New(cfg Config, pool SessionSource) *Translator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "works"
	}
	return &Translator{cfg: cfg, pool: pool}
}

// Translate runs the full job: normalize input, acquire a session, navigate
// and upload, wait for completion, extract the result. The temporary upload
// file and the session are released on every exit path.
func (t *Translator) Translate(ctx context.Context, req Request) ([]byte, error) {
	image, err := resolveInput(req.ImageBytes, req.ImageBase64)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tempPath, err := t.writeTempImage(image)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove temp image %s: %v", tempPath, err)
		}
	}()

	outputPath := ""
	if req.OutputPath != "" {
		outputPath = t.resolveWorkPath(req.OutputPath)
	}

	session, err := t.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer t.pool.Release(session)

	page := session.Page()
	pause := t.cfg.Delay

	if err := openImageTranslate(ctx, page, t.cfg.BaseURL, timeout, pause); err != nil {
		return nil, err
	}

	pause.Wait(ctx)
	if err := selectAndUpload(page, tempPath, timeout); err != nil {
		return nil, err
	}
	pause.Wait(ctx)

	// Give the upload round-trip a chance to settle; a busy page is
	// tolerated, the detector owns the real deadline.
	idle := 10 * time.Second
	if timeout < idle {
		idle = timeout
	}
	_ = page.WaitIdle(idle)
	pause.Wait(ctx)

	probe := newRodProbe(page, t.cfg.WorkDir)
	detector := &Detector{Probe: probe}
	sig := detector.Wait(ctx, timeout)

	switch sig.Kind {
	case SignalErrorDetected:
		return nil, &UIError{Message: sig.Message, ScreenshotPath: sig.ScreenshotPath}
	case SignalTimedOut:
		return nil, &TimeoutError{ScreenshotPath: sig.ScreenshotPath}
	}

	pause.Wait(ctx)

	ex := &extractor{
		page:    page,
		browser: session.Browser(),
		probe:   probe,
		workDir: t.cfg.WorkDir,
	}
	data, err := ex.extract(ctx, sig, timeout, outputPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errExtraction("translated image is empty")
	}
	return data, nil
}

// writeTempImage stores the upload payload in the work dir with an
// extension matching its sniffed format.
func (t *Translator) writeTempImage(image []byte) (string, error) {
	if err := os.MkdirAll(t.cfg.WorkDir, 0o755); err != nil {
		return "", errInput("failed to create work dir: %v", err)
	}

	f, err := os.CreateTemp(t.cfg.WorkDir, "gt_image_*"+media.Extension(image))
	if err != nil {
		return "", errInput("failed to create temp image: %v", err)
	}
	defer f.Close()

	if _, err := f.Write(image); err != nil {
		os.Remove(f.Name())
		return "", errInput("failed to write temp image: %v", err)
	}
	return f.Name(), nil
}

// resolveWorkPath resolves a requested output path against the work dir
// unless it is absolute.
func (t *Translator) resolveWorkPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.cfg.WorkDir, path)
}
