package translate

import (
	"context"
	"time"
)

// SignalKind is a terminal state of the completion detector.
type SignalKind string

const (
	// SignalDownloadReady means a download affordance is visible.
	SignalDownloadReady SignalKind = "download_ready"
	// SignalImageReady means a translated image element was identified.
	SignalImageReady SignalKind = "image_ready"
	// SignalErrorDetected means the UI reported a translation failure.
	SignalErrorDetected SignalKind = "error_detected"
	// SignalTimedOut means the deadline elapsed with no terminal signal.
	SignalTimedOut SignalKind = "timed_out"
)

// Signal is the tagged result of the polling loop. Exactly one Signal
// terminates each Wait call.
type Signal struct {
	Kind           SignalKind
	ImageSrc       string // set for ImageReady when a concrete src was observed
	Message        string // set for ErrorDetected
	ScreenshotPath string // best-effort diagnostic capture
}

// PageProbe abstracts the per-tick page observations so the detector state
// machine can be driven without a live browser.
type PageProbe interface {
	// DownloadVisible reports whether a download button or link is visible.
	DownloadVisible() bool
	// LabeledResultVisible reports whether an image explicitly labeled as
	// the translated result is visible.
	LabeledResultVisible() bool
	// ErrorText returns the failure phrase currently present in the page
	// text, or empty.
	ErrorText() string
	// CandidateImage returns the src of the best large rendered image and
	// whether it is explicitly flagged as a translation result. An empty
	// src means no candidate this tick.
	CandidateImage() (src string, labeled bool)
	// CaptureScreenshot writes a diagnostic screenshot and returns its
	// path, or empty on failure.
	CaptureScreenshot(label string) string
}

const (
	defaultPollInterval    = 500 * time.Millisecond
	defaultStabilityWindow = 1500 * time.Millisecond
)

// Detector polls the page until one terminal signal is produced.
//
// Priority per tick: an explicit download affordance or labeled result
// image pre-empts everything; failure phrases are remembered but never
// terminate early, since error text can appear transiently; an unlabeled
// candidate whose src stays unchanged for the stability window is assumed
// final.
type Detector struct {
	Probe     PageProbe
	Interval  time.Duration
	Stability time.Duration
}

// Wait runs the polling loop until a terminal state or the deadline derived
// from timeout.
func (d *Detector) Wait(ctx context.Context, timeout time.Duration) Signal {
	interval := d.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	stability := d.Stability
	if stability <= 0 {
		stability = defaultStabilityWindow
	}

	deadline := time.Now().Add(timeout)
	var (
		lastSrc       string
		stableSince   time.Time
		lastErrorText string
	)

	for time.Now().Before(deadline) {
		if d.Probe.DownloadVisible() {
			return Signal{Kind: SignalDownloadReady}
		}

		if d.Probe.LabeledResultVisible() {
			return Signal{Kind: SignalImageReady}
		}

		if text := d.Probe.ErrorText(); text != "" {
			lastErrorText = text
		}

		if src, labeled := d.Probe.CandidateImage(); src != "" {
			if labeled {
				return Signal{Kind: SignalImageReady, ImageSrc: src}
			}

			now := time.Now()
			if src == lastSrc {
				if stableSince.IsZero() {
					stableSince = now
				} else if now.Sub(stableSince) >= stability {
					return Signal{Kind: SignalImageReady, ImageSrc: src}
				}
			} else {
				lastSrc = src
				stableSince = time.Time{}
			}
		}

		select {
		case <-ctx.Done():
			return d.expire(lastErrorText)
		case <-time.After(interval):
		}
	}

	return d.expire(lastErrorText)
}

// expire produces the terminal state for a missed deadline: ErrorDetected
// if a failure phrase was ever observed, TimedOut otherwise.
func (d *Detector) expire(lastErrorText string) Signal {
	if lastErrorText != "" {
		return Signal{
			Kind:           SignalErrorDetected,
			Message:        lastErrorText,
			ScreenshotPath: d.Probe.CaptureScreenshot("detect_text"),
		}
	}
	return Signal{
		Kind:           SignalTimedOut,
		ScreenshotPath: d.Probe.CaptureScreenshot("timeout"),
	}
}
