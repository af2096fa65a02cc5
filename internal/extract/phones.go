package extract

import (
	"regexp"
	"strings"
)

// phonePatterns are the candidate shapes tried against raw HTML. Matches
// from all patterns are merged before normalization.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,4}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`), // international
	regexp.MustCompile(`\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}`),                         // (123) 456-7890
	regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),                             // 123-456-7890
	regexp.MustCompile(`\+\d{10,15}`),
}

// countryCodes is the allow-list of recognized country calling codes used to
// validate leading digits beyond a 10-digit national number.
var countryCodes = map[string]bool{
	"1": true, "7": true,
	"20": true, "27": true, "30": true, "31": true, "32": true, "33": true,
	"34": true, "36": true, "39": true, "40": true, "41": true, "43": true,
	"44": true, "45": true, "46": true, "47": true, "48": true, "49": true,
	"51": true, "52": true, "54": true, "55": true, "56": true, "57": true,
	"58": true, "60": true, "61": true, "62": true, "63": true, "64": true,
	"65": true, "66": true, "81": true, "82": true, "84": true, "86": true,
	"90": true, "91": true, "92": true, "93": true, "94": true, "95": true,
	"98": true,
	"212": true, "213": true, "216": true, "218": true, "234": true,
	"254": true, "255": true, "256": true, "260": true, "263": true,
	"852": true, "880": true, "886": true, "966": true, "971": true,
	"972": true,
}

// Phones scans raw HTML for phone numbers, normalizes them to digit strings,
// rejects timestamp-like and otherwise implausible candidates, and caps the
// result at MaxPhones in first-seen order.
func (x *Extractor) Phones(rawHTML string) []string {
	var raw []string
	for _, p := range phonePatterns {
		raw = append(raw, p.FindAllString(rawHTML, -1)...)
	}

	seen := make(map[string]bool)
	phones := make([]string, 0, len(raw))
	for _, r := range raw {
		n := NormalizePhone(r)
		if seen[n] {
			continue
		}
		if !ValidPhone(n) {
			continue
		}
		seen[n] = true
		phones = append(phones, n)
		if len(phones) >= x.limits.MaxPhones {
			break
		}
	}
	return phones
}

// NormalizePhone strips all non-digit characters, preserving one leading "+".
// It is idempotent: normalizing an already-normalized value is a no-op.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, c := range raw {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		} else if c == '+' && i == 0 {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ValidPhone reports whether a normalized candidate looks like a real phone
// number rather than a timestamp, date, or other digit-run artifact.
func ValidPhone(normalized string) bool {
	digits := strings.TrimPrefix(normalized, "+")
	n := len(digits)
	if n < 10 || n > 15 {
		return false
	}
	if allSameDigit(digits) {
		return false
	}
	if sequentialRun(digits) {
		return false
	}
	// 10-digit values starting 19/20 are usually Unix-epoch or date artifacts
	// (e.g. 2023122500), not dialable numbers.
	if n == 10 && (strings.HasPrefix(digits, "19") || strings.HasPrefix(digits, "20")) {
		return false
	}
	// Anything beyond a 10-digit national number must carry a recognized
	// country calling code.
	if n > 10 {
		if !countryCodes[digits[:n-10]] {
			return false
		}
	}
	return true
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// sequentialRun detects strictly ascending or descending digit runs such as
// "1234567890" or "9876543210", treating 9->0 and 0->9 as sequential.
func sequentialRun(digits string) bool {
	asc, desc := true, true
	for i := 1; i < len(digits); i++ {
		prev, cur := int(digits[i-1]-'0'), int(digits[i]-'0')
		if cur != (prev+1)%10 {
			asc = false
		}
		if cur != (prev+9)%10 {
			desc = false
		}
	}
	return asc || desc
}
