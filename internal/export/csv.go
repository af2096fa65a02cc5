// Package export renders aggregated lead records into downloadable artifacts
// (CSV and XLSX) and persists them for later retrieval.
package export

import (
	"strconv"
	"strings"

	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

// CSV renders rows into CSV text with a fixed column order. Every field is
// quote-wrapped with internal quotes doubled. The function is pure and
// deterministic for identical input. A "Search Keyword" column is included
// when any row carries one (batch mode).
func CSV(rows []leads.ContactRecord) string {
	withKeyword := false
	for _, r := range rows {
		if r.Keyword != "" {
			withKeyword = true
			break
		}
	}

	header := []string{
		"Contact Name", "Job Title", "Company/Title", "Website",
		"Primary Email", "All Emails", "Phone Numbers", "Social Media",
		"Tags",
	}
	if withKeyword {
		header = append(header, "Search Keyword")
	}
	header = append(header, "Quality Score", "Full URL")

	var b strings.Builder
	writeRow(&b, header)

	for _, r := range rows {
		company := r.Hostname()
		title := r.Title
		if title == "" {
			title = company
		}

		fields := []string{
			r.Contact,
			r.JobTitle,
			title,
			company,
			r.PrimaryEmail(),
			strings.Join(r.Emails, ", "),
			FormatPhones(r.Phones),
			strings.Join(r.SocialMedia, ", "),
			strings.Join(r.Tags, ", "),
		}
		if withKeyword {
			fields = append(fields, r.Keyword)
		}
		fields = append(fields, strconv.Itoa(r.QualityScore), r.URL)
		writeRow(&b, fields)
	}

	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// FormatPhones renders normalized digit strings for display, joined with
// ", ".
func FormatPhones(phones []string) string {
	formatted := make([]string, 0, len(phones))
	for _, p := range phones {
		formatted = append(formatted, FormatPhone(p))
	}
	return strings.Join(formatted, ", ")
}

// FormatPhone formats one normalized phone number by shape:
//
//	10 digits               -> +1 (xxx) xxx-xxxx
//	11 digits leading 1     -> +1 (xxx) xxx-xxxx
//	12 or more digits       -> +<digits>
//	other 10+ digit shapes  -> +cc (xxx) xxx-xxxx best-effort grouping
//
// Anything shorter is returned unchanged.
func FormatPhone(p string) string {
	digits := strings.TrimPrefix(p, "+")

	switch {
	case len(digits) == 10:
		return "+1 (" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+1 (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	case len(digits) > 11:
		return "+" + digits
	case len(digits) >= 10:
		return "+" + digits[0:2] + " (" + digits[2:5] + ") " + digits[5:8] + "-" + digits[8:]
	default:
		return p
	}
}
