package browser

import (
	"fmt"
	"log"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// LaunchConfig holds the launch settings applied to every browser process.
type LaunchConfig struct {
	Headless bool
	Proxy    string // outbound proxy server, empty to disable
	Bin      string // Chromium binary path, empty to use rod's default lookup
}

// instance is one live browser process owned by the pool.
type instance struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Session is the per-job view of a browser: an isolated incognito context
// with a single page. It is owned exclusively by the job that acquired it.
type Session struct {
	inst    *instance
	context *rod.Browser
	page    *rod.Page
	dispose func() error
}

// Page returns the session's page.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Browser returns the session's isolated browsing context. Downloads and
// resource fetches issued through it share the page's cookies.
func (s *Session) Browser() *rod.Browser {
	return s.context
}

// launch starts a Chromium process with anti-automation flags and connects
// to it over CDP.
func launch(cfg LaunchConfig) (*instance, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("enable-webgl").
		Set("enable-gpu").
		Set("use-gl", "angle")

	if cfg.Bin != "" {
		l.Bin(cfg.Bin)
	}
	if cfg.Proxy != "" {
		l.Proxy(cfg.Proxy)
	}

	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &instance{launcher: l, browser: b}, nil
}

// close tears down the browser process.
func (i *instance) close() {
	if i.browser != nil {
		if err := i.browser.Close(); err != nil {
			log.Printf("Warning: failed to close browser: %v", err)
		}
	}
	if i.launcher != nil {
		i.launcher.Kill()
		i.launcher.Cleanup()
	}
}

// openSession creates a fresh incognito context and page on the instance.
func (i *instance) openSession() (*Session, error) {
	ctx, err := i.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}

	page, err := ctx.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = proto.TargetDisposeBrowserContext{BrowserContextID: ctx.BrowserContextID}.Call(i.browser)
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}

	s := &Session{inst: i, context: ctx, page: page}
	s.dispose = func() error {
		return proto.TargetDisposeBrowserContext{BrowserContextID: ctx.BrowserContextID}.Call(i.browser)
	}
	return s, nil
}

// closeSession releases the session's page and disposes its browsing context
// (cookies, storage, remaining targets), keeping the underlying browser
// process alive. Skipping disposal would leak one context per job on the
// pooled process.
func (s *Session) closeSession() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			log.Printf("Warning: failed to close page: %v", err)
		}
	}
	if s.dispose != nil {
		if err := s.dispose(); err != nil {
			log.Printf("Warning: failed to dispose browsing context: %v", err)
		}
	}
}
