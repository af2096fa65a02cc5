// Package search discovers candidate pages for a keyword through a web
// search engine.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/WinstonAC/winston-global-scraper/internal/fetch"
	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

// Searcher produces candidate links for a query in best-effort relevance
// order, bounded by limit.
type Searcher interface {
	Discover(ctx context.Context, query string, limit int) ([]leads.CandidateLink, error)
}

// Error represents a search discovery failure.
type Error struct {
	Query   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search error for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("search error for %q: %s", e.Query, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DuckDuckGo discovers candidates by loading a DuckDuckGo results page and
// parsing the result anchors.
type DuckDuckGo struct {
	fetcher fetch.PageFetcher
	timeout time.Duration
}

// NewDuckDuckGo creates a DuckDuckGo searcher backed by the given fetcher.
func NewDuckDuckGo(fetcher fetch.PageFetcher, timeout time.Duration) *DuckDuckGo {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DuckDuckGo{fetcher: fetcher, timeout: timeout}
}

// Discover loads the results page for query and returns up to limit links.
func (d *DuckDuckGo) Discover(ctx context.Context, query string, limit int) ([]leads.CandidateLink, error) {
	searchURL := "https://duckduckgo.com/html/?q=" + url.QueryEscape(query)
	page, err := d.fetcher.Fetch(ctx, searchURL, d.timeout)
	if err != nil {
		return nil, &Error{Query: query, Message: "failed to load search page", Cause: err}
	}

	links, err := ParseResults(page.HTML, limit)
	if err != nil {
		return nil, &Error{Query: query, Message: "failed to extract search results", Cause: err}
	}
	return links, nil
}

// ParseResults extracts result links from a DuckDuckGo results page. Both
// the rendered app markup and the static HTML endpoint are recognized.
func ParseResults(html string, limit int) ([]leads.CandidateLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	anchors := doc.Find(`a[data-testid="result-title-a"]`)
	if anchors.Length() == 0 {
		anchors = doc.Find("a.result__a")
	}

	seen := make(map[string]bool)
	links := make([]leads.CandidateLink, 0, limit)
	anchors.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		target := resolveRedirect(href)
		if target == "" || seen[target] {
			return true
		}
		seen[target] = true
		links = append(links, leads.CandidateLink{
			Title: strings.TrimSpace(s.Text()),
			URL:   target,
		})
		return len(links) < limit
	})

	return links, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect wrapper used by
// the static HTML endpoint. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") || (u.Host == "" && strings.HasPrefix(u.Path, "/l/")) {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
		return ""
	}
	if u.Scheme == "" {
		return ""
	}
	return href
}
