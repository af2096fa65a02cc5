package extract

import (
	"regexp"
	"strings"
)

var (
	// emailPattern finds local@domain.tld tokens anywhere in raw HTML.
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// emailStrict is the secondary validation pass applied to each token.
	emailStrict = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// Emails scans raw HTML for email addresses. Tokens are deduplicated
// case-insensitively with original casing preserved, re-validated against a
// stricter pattern, and capped at MaxEmails in first-seen order. The first
// element is the record's primary email.
func (x *Extractor) Emails(rawHTML string) []string {
	matches := emailPattern.FindAllString(rawHTML, -1)

	seen := make(map[string]bool)
	emails := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		if !emailStrict.MatchString(m) {
			continue
		}
		seen[key] = true
		emails = append(emails, m)
		if len(emails) >= x.limits.MaxEmails {
			break
		}
	}
	return emails
}
