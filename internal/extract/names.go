package extract

import (
	"regexp"
	"strings"

	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

const titleTokens = `CEO|CTO|CFO|COO|Chief Executive Officer|Co-Founder|Founder|Managing Partner|General Partner|Investment Partner|Partner|Director|Manager|Vice President|VP|President|Investor|Owner|Executive|Principal|Head of|Lead`

var (
	// contextNamePattern matches two-to-five consecutive capitalized words at
	// the end of the context window, optionally followed by a known title
	// token. Group 1 is the name, group 2 the title.
	contextNamePattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,4})(?:\s*,?\s*((?i:` + titleTokens + `)))?\s*$`)

	// bodyNamePatterns scan full visible text for <title> <name>,
	// <name> <title>, and Contact: <name> shapes. Group indices: name then
	// optional title token.
	titleThenName = regexp.MustCompile(`((?i:CEO|Founder|Co-Founder|Partner|Director|President|Principal|Investor))[\s:,-]+([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	nameThenTitle = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)[\s,-]+((?i:CEO|Founder|Co-Founder|Partner|Director|President|Principal|Investor))`)
	contactLabel  = regexp.MustCompile(`(?i:contact)[\s:]+([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	// headingNamePattern extracts two consecutive capitalized words from the
	// page title and first heading.
	headingNamePattern = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	// jobTitlePattern is the opportunistic title-token scan used when the
	// name chain did not surface a title.
	jobTitlePattern = regexp.MustCompile(`(?i)\b(` + titleTokens + `)\b`)
)

// ContactName resolves a best-effort contact name and job title through an
// ordered fallback chain. The first non-empty result wins:
//
//  1. text preceding the primary email in the document
//  2. title/name patterns in the visible body text
//  3. author meta tag
//  4. capitalized words in the page title and first heading
//  5. a human-readable label derived from the hostname
//
// Step 5 never fails, so the returned name is never empty. A hostname-derived
// name is semantically a company label, not a person, and scores lower
// downstream.
func (x *Extractor) ContactName(doc *document, primaryEmail, pageURL string) (name, jobTitle string) {
	if doc != nil {
		if primaryEmail != "" {
			context := doc.precedingText(primaryEmail, x.limits.NameWindow)
			if m := contextNamePattern.FindStringSubmatch(context); m != nil {
				return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			}
		}

		body := doc.bodyText()
		if m := titleThenName.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
		}
		if m := nameThenTitle.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}
		if m := contactLabel.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[1]), ""
		}

		if author := doc.metaAuthor(); author != "" {
			return author, ""
		}

		heading := doc.pageTitle() + " " + doc.firstHeading()
		if m := headingNamePattern.FindStringSubmatch(heading); m != nil {
			return strings.TrimSpace(m[1]), ""
		}
	}

	return HostnameLabel(pageURL), ""
}

// JobTitles scans raw HTML for known title tokens and joins the first few
// distinct hits for display. Returns "" when none are present.
func (x *Extractor) JobTitles(rawHTML string) string {
	matches := jobTitlePattern.FindAllString(rawHTML, -1)
	seen := make(map[string]bool)
	titles := make([]string, 0, x.limits.MaxJobTitles)
	for _, m := range matches {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		titles = append(titles, m)
		if len(titles) >= x.limits.MaxJobTitles {
			break
		}
	}
	return strings.Join(titles, ", ")
}

// HostnameLabel derives a human-readable label from a URL's hostname:
// "www." stripped, separators replaced with spaces, each word title-cased.
// "https://www.example-fund.com/team" becomes "Example Fund Com".
func HostnameLabel(rawURL string) string {
	host := leads.HostnameOf(rawURL)
	if host == "" {
		host = strings.TrimSpace(rawURL)
	}
	if host == "" {
		return "Unknown"
	}
	host = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(host)
	words := strings.Fields(host)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
