package extract

import "regexp"

var (
	linkedinPattern = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/(?:in|company)/[a-zA-Z0-9-]+`)
	twitterPattern  = regexp.MustCompile(`https?://(?:www\.)?(?:twitter\.com|x\.com)/[a-zA-Z0-9_]+`)
)

// Social extracts LinkedIn profile/company URLs and Twitter/X profile URLs
// from raw HTML, deduplicated and capped at MaxSocial in first-seen order.
func (x *Extractor) Social(rawHTML string) []string {
	var raw []string
	raw = append(raw, linkedinPattern.FindAllString(rawHTML, -1)...)
	raw = append(raw, twitterPattern.FindAllString(rawHTML, -1)...)

	seen := make(map[string]bool)
	social := make([]string, 0, len(raw))
	for _, u := range raw {
		if seen[u] {
			continue
		}
		seen[u] = true
		social = append(social, u)
		if len(social) >= x.limits.MaxSocial {
			break
		}
	}
	return social
}
