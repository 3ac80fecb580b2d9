package translate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// tickState is one observation of the fake page; the last state repeats once
// the script runs out.
type tickState struct {
	download   bool
	labeled    bool
	errText    string
	src        string
	srcLabeled bool
}

type fakeProbe struct {
	ticks []tickState
	tick  int
	shots []string
}

func (p *fakeProbe) cur() tickState {
	idx := p.tick - 1
	if idx >= len(p.ticks) {
		idx = len(p.ticks) - 1
	}
	return p.ticks[idx]
}

// DownloadVisible is the first observation of every tick, so it advances the
// script.
func (p *fakeProbe) DownloadVisible() bool {
	p.tick++
	return p.cur().download
}

func (p *fakeProbe) LabeledResultVisible() bool { return p.cur().labeled }

func (p *fakeProbe) ErrorText() string { return p.cur().errText }

func (p *fakeProbe) CandidateImage() (string, bool) {
	s := p.cur()
	return s.src, s.srcLabeled
}

func (p *fakeProbe) CaptureScreenshot(label string) string {
	p.shots = append(p.shots, label)
	return "/tmp/translate_error_" + label + ".png"
}

func newDetector(probe *fakeProbe, stability time.Duration) *Detector {
	return &Detector{Probe: probe, Interval: time.Millisecond, Stability: stability}
}

func TestDetectorDownloadWins(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{
		{download: true, src: "blob:a", srcLabeled: true},
	}}

	sig := newDetector(probe, 5*time.Millisecond).Wait(context.Background(), time.Second)
	assert.Equal(t, SignalDownloadReady, sig.Kind)
}

func TestDetectorLabeledImage(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{
		{},
		{src: "blob:result", srcLabeled: true},
	}}

	sig := newDetector(probe, 5*time.Millisecond).Wait(context.Background(), time.Second)
	assert.Equal(t, SignalImageReady, sig.Kind)
	assert.Equal(t, "blob:result", sig.ImageSrc)
}

func TestDetectorStableCandidate(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{
		{src: "blob:a"},
	}}

	sig := newDetector(probe, 5*time.Millisecond).Wait(context.Background(), time.Second)
	assert.Equal(t, SignalImageReady, sig.Kind)
	assert.Equal(t, "blob:a", sig.ImageSrc)
	// Stability needs repeated observations of the same src.
	assert.GreaterOrEqual(t, probe.tick, 2)
}

func TestDetectorChangingCandidateNeverStabilizes(t *testing.T) {
	// The src alternates for four ticks, then settles on blob:c. Only the
	// settled src may satisfy the stability window.
	probe := &fakeProbe{ticks: []tickState{
		{src: "blob:a"},
		{src: "blob:b"},
		{src: "blob:a"},
		{src: "blob:b"},
		{src: "blob:c"},
	}}

	sig := newDetector(probe, 50*time.Millisecond).Wait(context.Background(), time.Second)
	assert.Equal(t, SignalImageReady, sig.Kind)
	assert.Equal(t, "blob:c", sig.ImageSrc)
}

func TestDetectorCandidateTooBriefTimesOut(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{
		{src: "blob:a"},
	}}

	d := &Detector{Probe: probe, Interval: 20 * time.Millisecond, Stability: time.Second}
	sig := d.Wait(context.Background(), 60*time.Millisecond)
	assert.Equal(t, SignalTimedOut, sig.Kind)
	assert.Contains(t, sig.ScreenshotPath, "timeout")
}

func TestDetectorErrorTextSticky(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{
		{errText: "Can't detect text in the image"},
		{}, // phrase disappears, but it still decides the terminal state
	}}

	sig := newDetector(probe, time.Second).Wait(context.Background(), 30*time.Millisecond)
	assert.Equal(t, SignalErrorDetected, sig.Kind)
	assert.Equal(t, "Can't detect text in the image", sig.Message)
	assert.Equal(t, []string{"detect_text"}, probe.shots)
}

func TestDetectorErrorDoesNotPreemptResult(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{
		{errText: "This language may not be supported"},
		{src: "blob:r", srcLabeled: true},
	}}

	sig := newDetector(probe, time.Second).Wait(context.Background(), time.Second)
	assert.Equal(t, SignalImageReady, sig.Kind)
}

func TestDetectorTimeout(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{{}}}

	sig := newDetector(probe, time.Second).Wait(context.Background(), 20*time.Millisecond)
	assert.Equal(t, SignalTimedOut, sig.Kind)
	assert.Equal(t, []string{"timeout"}, probe.shots)
}

func TestDetectorContextCancel(t *testing.T) {
	probe := &fakeProbe{ticks: []tickState{{}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	sig := newDetector(probe, time.Second).Wait(ctx, time.Minute)
	assert.Equal(t, SignalTimedOut, sig.Kind)
	assert.Less(t, time.Since(start), 5*time.Second)
}
