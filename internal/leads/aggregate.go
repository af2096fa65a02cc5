package leads

import (
	"sort"
	"strings"
)

// Quality tiers used for filtering result sets. Thresholds are monotonic:
// every record passing a stricter tier also passes the looser ones.
const (
	TierAll       = "all"
	TierGood      = "good"
	TierExcellent = "excellent"
)

// TierMinScore maps a quality tier name to its minimum score. Unknown tiers
// fall back to TierAll.
func TierMinScore(tier string) int {
	switch strings.ToLower(tier) {
	case TierExcellent:
		return 60
	case TierGood:
		return 40
	default:
		return 0
	}
}

// AggregateOptions controls deduplication and filtering behavior.
type AggregateOptions struct {
	// TrackContacts additionally deduplicates by contact identity (any shared
	// email or phone value) across the whole run. Used in batch mode where
	// the same contact may surface from multiple source pages.
	TrackContacts bool
	// MinScore drops records scoring below the threshold.
	MinScore int
}

// Aggregate merges per-candidate records into a unique, sorted ResultSet.
// URL duplicates are dropped first-occurrence-wins, the optional contact
// identity filter runs second, then the quality filter. The final sort is
// stable descending by quality score, so discovery order breaks ties and
// identical inputs always produce identical output.
func Aggregate(records []ContactRecord, opts AggregateOptions) ResultSet {
	seenURL := make(map[string]bool)
	seenEmail := make(map[string]bool)
	seenPhone := make(map[string]bool)

	unique := make([]ContactRecord, 0, len(records))
	for _, r := range records {
		if seenURL[r.URL] {
			continue
		}
		seenURL[r.URL] = true

		if opts.TrackContacts && isSeenContact(r, seenEmail, seenPhone) {
			continue
		}
		for _, e := range r.Emails {
			seenEmail[strings.ToLower(e)] = true
		}
		for _, p := range r.Phones {
			seenPhone[p] = true
		}

		unique = append(unique, r)
	}

	total := len(unique)

	filtered := unique
	if opts.MinScore > 0 {
		filtered = make([]ContactRecord, 0, len(unique))
		for _, r := range unique {
			if r.QualityScore >= opts.MinScore {
				filtered = append(filtered, r)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].QualityScore > filtered[j].QualityScore
	})

	return ResultSet{Records: filtered, TotalBeforeFilter: total}
}

// isSeenContact reports whether any of the record's emails or phones were
// already claimed by an earlier record.
func isSeenContact(r ContactRecord, seenEmail, seenPhone map[string]bool) bool {
	for _, e := range r.Emails {
		if seenEmail[strings.ToLower(e)] {
			return true
		}
	}
	for _, p := range r.Phones {
		if seenPhone[p] {
			return true
		}
	}
	return false
}
