// Package score computes the 0-100 quality score used to rank and filter
// extracted contact records.
package score

import (
	"strings"

	"github.com/WinstonAC/winston-global-scraper/internal/extract"
	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

// highValueTags marks tag labels indicating a high-value role or category.
var highValueTags = []string{"Investor", "Founder", "CEO", "Partner", "Capital"}

// Record computes the additive quality rubric for a record:
//
//	+40  at least one email, +10 more for two or better
//	+30  contact name present and not hostname-derived (+15 if it is)
//	+20  at least one phone
//	+10  job title present
//	+10  any high-value tag
//
// The rubric overshoots 100 on paper; the result is capped. No single missing
// field zeroes the score.
func Record(r leads.ContactRecord) int {
	s := 0
	if len(r.Emails) >= 1 {
		s += 40
	}
	if len(r.Emails) >= 2 {
		s += 10
	}
	if r.Contact != "" {
		if hostnameDerived(r) {
			s += 15
		} else {
			s += 30
		}
	}
	if len(r.Phones) >= 1 {
		s += 20
	}
	if r.JobTitle != "" {
		s += 10
	}
	if hasHighValueTag(r.Tags) {
		s += 10
	}
	if s > 100 {
		s = 100
	}
	return s
}

// hostnameDerived reports whether the contact name looks like the hostname
// fallback rather than an extracted person name: either it still contains a
// literal dot, or it matches the label derived from the record's own URL.
func hostnameDerived(r leads.ContactRecord) bool {
	return strings.Contains(r.Contact, ".") || r.Contact == extract.HostnameLabel(r.URL)
}

func hasHighValueTag(tags []string) bool {
	for _, tag := range tags {
		for _, hv := range highValueTags {
			if strings.Contains(tag, hv) {
				return true
			}
		}
	}
	return false
}
