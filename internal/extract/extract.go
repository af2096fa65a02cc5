// Package extract pulls structured contact data (emails, phone numbers,
// social profiles, contact names, job titles) out of raw page HTML. Every
// sub-extractor returns an empty collection or string when nothing is found;
// extraction itself never fails once a page has been fetched.
package extract

import (
	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

// Limits bounds the output size of each sub-extractor. Historical variants of
// the scraper used different caps; these are knobs with documented defaults,
// not contracts.
type Limits struct {
	MaxEmails    int
	MaxPhones    int
	MaxSocial    int
	NameWindow   int // preceding text nodes scanned for name context
	MaxJobTitles int // title tokens joined for display
}

// DefaultLimits returns the default extraction caps.
func DefaultLimits() Limits {
	return Limits{
		MaxEmails:    20,
		MaxPhones:    5,
		MaxSocial:    5,
		NameWindow:   40,
		MaxJobTitles: 2,
	}
}

// Extractor runs the entity extraction sub-rules against fetched pages.
type Extractor struct {
	limits Limits
}

// New creates an extractor with the given limits. Zero-valued fields fall
// back to defaults.
func New(limits Limits) *Extractor {
	def := DefaultLimits()
	if limits.MaxEmails <= 0 {
		limits.MaxEmails = def.MaxEmails
	}
	if limits.MaxPhones <= 0 {
		limits.MaxPhones = def.MaxPhones
	}
	if limits.MaxSocial <= 0 {
		limits.MaxSocial = def.MaxSocial
	}
	if limits.NameWindow <= 0 {
		limits.NameWindow = def.NameWindow
	}
	if limits.MaxJobTitles <= 0 {
		limits.MaxJobTitles = def.MaxJobTitles
	}
	return &Extractor{limits: limits}
}

// Extract builds a ContactRecord from a fetched page. Tags and quality score
// are filled in later by the classifier and scorer. The returned record is
// never fully empty: title and URL fall back to hostname-derived values.
func (x *Extractor) Extract(page leads.PageSource) leads.ContactRecord {
	doc := parseDocument(page.HTML)

	emails := x.Emails(page.HTML)
	phones := x.Phones(page.HTML)
	social := x.Social(page.HTML)

	primary := ""
	if len(emails) > 0 {
		primary = emails[0]
	}
	name, jobTitle := x.ContactName(doc, primary, page.URL)
	if jobTitle == "" {
		jobTitle = x.JobTitles(page.HTML)
	}

	title := page.Title
	if title == "" && doc != nil {
		title = doc.pageTitle()
	}
	if title == "" {
		title = leads.HostnameOf(page.URL)
	}

	return leads.ContactRecord{
		Title:       title,
		URL:         page.URL,
		Emails:      emails,
		Phones:      phones,
		SocialMedia: social,
		Contact:     name,
		JobTitle:    jobTitle,
	}
}
