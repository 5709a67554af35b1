// Package fetch - browser.go provides headless browser rendering for
// JavaScript-heavy investor relations sites.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider a plain
// HTTP fetch successful. Shorter content usually means a JavaScript-rendered
// page and a browser render is worth the cost.
const MinContentLength = 500

// consentButtonTexts are accept-button labels seen on cookie banners across
// the markets we scan.
var consentButtonTexts = []string{
	"Accept", "Accept all", "Accept All", "I agree", "OK", "Agree",
	"Alle akzeptieren", "Akzeptieren", "Zustimmen",
	"Tout accepter", "Accepter",
	"Αποδοχή", "Αποδοχή όλων", "Συμφωνώ",
}

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Session owns one headless browser process reused across page renders.
// A session is a scarce handle: renders are serialized internally, and Close
// must be called when scanning is done.
type Session struct {
	mu         sync.Mutex
	browserCtx context.Context
	cancels    []context.CancelFunc
	timeout    time.Duration
	verbose    bool
}

// NewSession starts a headless browser. Requires Chrome/Chromium on the
// system.
func NewSession(ctx context.Context, timeout time.Duration, verbose bool) (*Session, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Start the browser process eagerly so a missing Chrome fails here, not
	// in the middle of a scan.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start headless browser: %w", err)
	}

	return &Session{
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
		timeout:    timeout,
		verbose:    verbose,
	}, nil
}

// Close shuts the browser down. Safe to call once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// Render navigates to a URL, dismisses cookie banners and returns the fully
// rendered HTML. On timeout, whatever HTML has loaded so far is returned
// with wasFullyLoaded=false rather than failing the whole page.
func (s *Session) Render(ctx context.Context, url string) (html string, wasFullyLoaded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancels == nil {
		return "", false, fmt.Errorf("browser session is closed")
	}
	if s.verbose {
		log.Printf("[BROWSER] Rendering: %s", url)
	}

	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, s.timeout)
	defer cancelRun()

	err = chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment before reading the DOM.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(dismissCookieBanner),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err == nil {
		if s.verbose {
			log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
		}
		return html, true, nil
	}

	// Timeout: salvage the partial DOM with a short grace period on the tab.
	if runCtx.Err() == context.DeadlineExceeded {
		salvageCtx, cancelSalvage := context.WithTimeout(tabCtx, 3*time.Second)
		defer cancelSalvage()
		if salvageErr := chromedp.Run(salvageCtx, chromedp.OuterHTML("html", &html)); salvageErr == nil && html != "" {
			if s.verbose {
				log.Printf("[BROWSER] Timed out, keeping partial HTML: %d bytes", len(html))
			}
			return html, false, nil
		}
	}

	return "", false, fmt.Errorf("browser rendering failed: %w", err)
}

// dismissCookieBanner clicks the first visible consent button it can find.
// Failure to find one is not an error.
func dismissCookieBanner(ctx context.Context) error {
	_ = chromedp.Click(`button[id*="accept"], button[class*="accept"], a[id*="accept"]`, chromedp.NodeVisible).Do(ctx)

	// Text-based matching for banners without helpful attributes.
	for _, label := range consentButtonTexts {
		script := fmt.Sprintf(
			`(() => {
				const btns = [...document.querySelectorAll('button, a')];
				const btn = btns.find(b => b.innerText.trim() === %q);
				if (btn) { btn.click(); return true; }
				return false;
			})()`, label)
		var clicked bool
		if err := chromedp.Evaluate(script, &clicked).Do(ctx); err == nil && clicked {
			break
		}
	}
	return nil
}

// RenderSimple renders one URL in a throwaway session.
func RenderSimple(ctx context.Context, url string, verbose bool) (string, error) {
	session, err := NewSession(ctx, DefaultTimeout, verbose)
	if err != nil {
		return "", err
	}
	defer session.Close()

	html, _, err := session.Render(ctx, url)
	return html, err
}
