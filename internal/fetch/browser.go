// Package fetch - browser.go renders pages in a headless browser so that
// JavaScript-built contact sections are visible to extraction.
package fetch

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser fetches pages through headless Chrome. Concurrent page loads are
// bounded by a session gate because each render holds a browser process.
type Browser struct {
	gate    *Gate
	verbose bool
}

// NewBrowser creates a headless-browser fetcher. sessions bounds how many
// pages may render concurrently across all requests.
func NewBrowser(sessions int, verbose bool) *Browser {
	return &Browser{gate: NewGate(sessions), verbose: verbose}
}

// Fetch renders the page and returns its HTML and title. Returns
// ErrBrowserBusy without doing any work when no browser session is
// available.
func (b *Browser) Fetch(ctx context.Context, pageURL string, timeout time.Duration) (*Result, error) {
	if err := validateURL(pageURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	release, err := b.gate.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if b.verbose {
		log.Printf("[browser] rendering %s", pageURL)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html, title string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "browser rendering failed", Cause: err}
	}

	if b.verbose {
		log.Printf("[browser] rendered %s: %d bytes", pageURL, len(html))
	}

	return &Result{URL: pageURL, Title: title, HTML: html}, nil
}
