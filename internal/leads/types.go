// Package leads defines the core data model for the lead extraction pipeline:
// candidate links discovered via search, fetched page sources, and the
// contact records extracted from them.
package leads

import (
	"net/url"
	"strings"
)

// CandidateLink is a search result that has not been fetched yet.
type CandidateLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PageSource holds the raw fetched content for one candidate page. It is
// owned by the orchestrator for the duration of extraction and discarded
// afterwards.
type PageSource struct {
	URL   string
	Title string
	HTML  string
}

// ContactRecord is the structured output of extracting one page's
// contact-relevant data. Records are immutable after scoring; the aggregator
// only filters or drops them, never mutates them in place.
type ContactRecord struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Emails       []string `json:"emails"`
	Phones       []string `json:"phones"`
	SocialMedia  []string `json:"socialMedia"`
	Contact      string   `json:"contact"`
	JobTitle     string   `json:"jobTitle"`
	Tags         []string `json:"tags"`
	QualityScore int      `json:"qualityScore"`
	Keyword      string   `json:"keyword,omitempty"`
}

// PrimaryEmail returns the first extracted email, or "" if none were found.
func (r *ContactRecord) PrimaryEmail() string {
	if len(r.Emails) == 0 {
		return ""
	}
	return r.Emails[0]
}

// Hostname returns the record's source hostname with a leading "www."
// stripped. Returns "" if the URL cannot be parsed.
func (r *ContactRecord) Hostname() string {
	return HostnameOf(r.URL)
}

// HostnameOf extracts the hostname from a URL string, stripping "www.".
func HostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// ResultSet is the aggregated outcome of one pipeline run.
type ResultSet struct {
	Records           []ContactRecord
	TotalBeforeFilter int
}
