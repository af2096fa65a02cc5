// Package fetch retrieves candidate pages, either over plain HTTP or through
// a headless browser for JavaScript-rendered sites.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the default per-page fetch timeout.
const DefaultTimeout = 8 * time.Second

// DefaultUserAgent is presented to target sites on all requests.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.6167.85 Safari/537.36"

// Result holds the raw content fetched from one URL.
type Result struct {
	URL   string
	Title string
	HTML  string
}

// Error represents a failure fetching one URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PageFetcher retrieves the content of a single page. A failed fetch means
// the caller skips that candidate; it is never retried within a run.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string, timeout time.Duration) (*Result, error)
}

// Client fetches pages over plain HTTP. It is the fallback path when the
// headless browser is disabled or cannot be acquired.
type Client struct {
	rest *resty.Client
}

// NewClient creates an HTTP page fetcher.
func NewClient() *Client {
	rest := resty.New().
		SetHeader("User-Agent", DefaultUserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &Client{rest: rest}
}

// Fetch retrieves a page over HTTP.
func (c *Client) Fetch(ctx context.Context, pageURL string, timeout time.Duration) (*Result, error) {
	if err := validateURL(pageURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.rest.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "HTTP request failed", Cause: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &Error{URL: pageURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode())}
	}

	html := string(resp.Body())
	return &Result{URL: pageURL, Title: pageTitle(html), HTML: html}, nil
}

// validateURL checks that a URL has a scheme and host before any fetch work.
func validateURL(pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &Error{URL: pageURL, Message: "invalid URL", Cause: err}
	}
	return nil
}

// pageTitle extracts the <title> text from HTML, or "" if unavailable.
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
