package leads

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_URLDedupe(t *testing.T) {
	records := []ContactRecord{
		{URL: "https://a.com", Contact: "First Seen", QualityScore: 50},
		{URL: "https://a.com", Contact: "Second Seen", QualityScore: 90},
		{URL: "https://b.com", QualityScore: 40},
	}

	rs := Aggregate(records, AggregateOptions{})
	assert.Len(t, rs.Records, 2)
	assert.Equal(t, "First Seen", rs.Records[0].Contact)
	assert.Equal(t, 2, rs.TotalBeforeFilter)
}

func TestAggregate_ContactIdentityDedupe(t *testing.T) {
	records := []ContactRecord{
		{URL: "https://a.com/team", Emails: []string{"jane@fund.com"}, QualityScore: 70},
		{URL: "https://b.com/about", Emails: []string{"JANE@FUND.COM"}, QualityScore: 80},
		{URL: "https://c.com", Phones: []string{"4155552671"}, QualityScore: 60},
		{URL: "https://d.com", Phones: []string{"4155552671"}, QualityScore: 50},
	}

	rs := Aggregate(records, AggregateOptions{TrackContacts: true})
	assert.Len(t, rs.Records, 2)
	assert.Equal(t, 2, rs.TotalBeforeFilter)
}

func TestAggregate_ContactDedupeOffByDefault(t *testing.T) {
	records := []ContactRecord{
		{URL: "https://a.com", Emails: []string{"jane@fund.com"}},
		{URL: "https://b.com", Emails: []string{"jane@fund.com"}},
	}

	rs := Aggregate(records, AggregateOptions{})
	assert.Len(t, rs.Records, 2)
}

func TestAggregate_MinScoreFilter(t *testing.T) {
	records := []ContactRecord{
		{URL: "https://a.com", QualityScore: 70},
		{URL: "https://b.com", QualityScore: 40},
		{URL: "https://c.com", QualityScore: 10},
	}

	rs := Aggregate(records, AggregateOptions{MinScore: TierMinScore(TierGood)})
	assert.Len(t, rs.Records, 2)
	// TotalBeforeFilter counts unique records before the quality filter.
	assert.Equal(t, 3, rs.TotalBeforeFilter)
}

func TestAggregate_SortStableDescending(t *testing.T) {
	records := []ContactRecord{
		{URL: "https://low.com", QualityScore: 20},
		{URL: "https://tie1.com", QualityScore: 50},
		{URL: "https://high.com", QualityScore: 90},
		{URL: "https://tie2.com", QualityScore: 50},
	}

	rs := Aggregate(records, AggregateOptions{})
	scores := make([]int, 0, len(rs.Records))
	for _, r := range rs.Records {
		scores = append(scores, r.QualityScore)
	}
	assert.Equal(t, []int{90, 50, 50, 20}, scores)

	// Discovery order breaks the tie.
	assert.Equal(t, "https://tie1.com", rs.Records[1].URL)
	assert.Equal(t, "https://tie2.com", rs.Records[2].URL)
}

func TestAggregate_Deterministic(t *testing.T) {
	records := make([]ContactRecord, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, ContactRecord{
			URL:          fmt.Sprintf("https://site%d.com", i),
			QualityScore: (i * 7) % 100,
		})
	}

	first := Aggregate(records, AggregateOptions{MinScore: 40})
	second := Aggregate(records, AggregateOptions{MinScore: 40})
	assert.Equal(t, first, second)
}

func TestTierMinScore(t *testing.T) {
	assert.Equal(t, 0, TierMinScore(TierAll))
	assert.Equal(t, 40, TierMinScore(TierGood))
	assert.Equal(t, 60, TierMinScore(TierExcellent))
	assert.Equal(t, 60, TierMinScore("EXCELLENT"))
	assert.Equal(t, 0, TierMinScore("bogus"))
	assert.Equal(t, 0, TierMinScore(""))
}

func TestTierMinScore_Monotonic(t *testing.T) {
	assert.LessOrEqual(t, TierMinScore(TierAll), TierMinScore(TierGood))
	assert.LessOrEqual(t, TierMinScore(TierGood), TierMinScore(TierExcellent))
}
