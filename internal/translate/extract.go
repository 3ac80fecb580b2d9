package translate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// blobToBase64JS fetches an in-memory blob inside the page context and
// returns it base64 encoded; blob URLs are unreachable from outside the
// page.
const blobToBase64JS = `async (blobUrl) => {
	const response = await fetch(blobUrl);
	const buffer = await response.arrayBuffer();
	let binary = '';
	const bytes = new Uint8Array(buffer);
	for (let i = 0; i < bytes.length; i++) {
		binary += String.fromCharCode(bytes[i]);
	}
	return btoa(binary);
}`

// extractor retrieves the translated image bytes via the best-available
// channel: native download, data URI, blob bridge, or an authenticated
// fetch through the browser context.
type extractor struct {
	page    *rod.Page
	browser *rod.Browser
	probe   *rodProbe
	workDir string
}

func (e *extractor) extract(ctx context.Context, sig Signal, timeout time.Duration, outputPath string) ([]byte, error) {
	// A native download is the most reliable channel. If it does not fire
	// within the timeout, fall back to resolving the image src.
	if data, ok := e.tryDownload(ctx, timeout); ok {
		return e.persist(data, outputPath)
	}

	src := sig.ImageSrc
	if src == "" {
		resolved, err := e.waitForImageSrc(ctx, timeout)
		if err != nil {
			return nil, err
		}
		src = resolved
	}

	data, err := e.fetchSrc(src, timeout)
	if err != nil {
		return nil, err
	}
	return e.persist(data, outputPath)
}

// tryDownload clicks a visible download affordance and waits for the
// browser download to complete, bounded by timeout.
func (e *extractor) tryDownload(ctx context.Context, timeout time.Duration) ([]byte, bool) {
	el := findVisible(e.page, downloadMatchers)
	if el == nil {
		return nil, false
	}

	if err := os.MkdirAll(e.workDir, 0o755); err != nil {
		return nil, false
	}
	dir, err := os.MkdirTemp(e.workDir, "gt_download_")
	if err != nil {
		return nil, false
	}
	defer os.RemoveAll(dir)

	// The event subscription lives on the pooled, long-lived browser, so it
	// must be bounded too: a cancelled clone releases the waiter instead of
	// parking its goroutine forever when the download never fires.
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wait := e.browser.Context(dctx).WaitDownload(dir)
	if err := el.Timeout(clickTimeout).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, false
	}

	info := awaitDownload(dctx, wait, timeout)
	if info == nil || info.GUID == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(dir, info.GUID))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// awaitDownload waits for the download-begin event until it fires, the
// timeout elapses, or ctx is cancelled.
func awaitDownload(ctx context.Context, wait func() *proto.PageDownloadWillBegin, timeout time.Duration) *proto.PageDownloadWillBegin {
	done := make(chan *proto.PageDownloadWillBegin, 1)
	go func() { done <- wait() }()

	select {
	case info := <-done:
		return info
	case <-ctx.Done():
		return nil
	case <-time.After(timeout):
		return nil
	}
}

// waitForImageSrc polls for a candidate translated-image src until the
// deadline.
func (e *extractor) waitForImageSrc(ctx context.Context, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if src, _ := e.probe.CandidateImage(); src != "" {
			return src, nil
		}
		select {
		case <-ctx.Done():
			return "", errExtraction("timed out waiting for translated image: %v", ctx.Err())
		case <-time.After(defaultPollInterval):
		}
	}
	return "", errExtraction("timed out waiting for translated image")
}

func (e *extractor) fetchSrc(src string, timeout time.Duration) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		idx := strings.Index(src, ",")
		if idx < 0 {
			return nil, errExtraction("malformed data URI in translated image")
		}
		data, err := NormalizeBase64(src[idx+1:])
		if err != nil {
			return nil, errExtraction("failed to decode data URI: %v", err)
		}
		return data, nil

	case strings.HasPrefix(src, "blob:"):
		res, err := e.page.Timeout(timeout).Eval(blobToBase64JS, src)
		if err != nil {
			return nil, errExtraction("failed to read blob from page: %v", err)
		}
		data, err := NormalizeBase64(res.Value.Str())
		if err != nil {
			return nil, errExtraction("failed to decode blob payload: %v", err)
		}
		return data, nil

	case strings.HasPrefix(src, "http"):
		// GetResource reuses the page's session, so authenticated image
		// URLs resolve the same way they do for the UI.
		data, err := e.page.Timeout(timeout).GetResource(src)
		if err != nil {
			return nil, errExtraction("failed to fetch translated image: %v", err)
		}
		return data, nil

	default:
		return nil, errExtraction("could not capture translated image output")
	}
}

// persist writes the bytes to the requested output path, creating parents.
func (e *extractor) persist(data []byte, outputPath string) ([]byte, error) {
	if outputPath == "" {
		return data, nil
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, errExtraction("failed to create output directory: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return nil, errExtraction("failed to write output file: %v", err)
	}
	return data, nil
}
