package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

func sampleRecord() leads.ContactRecord {
	return leads.ContactRecord{
		Title:        "Example Fund | Team",
		URL:          "https://www.example-fund.com/team",
		Emails:       []string{"jane@example-fund.com", "press@example-fund.com"},
		Phones:       []string{"4155552671"},
		SocialMedia:  []string{"https://linkedin.com/in/jane-doe"},
		Contact:      "Jane Doe",
		JobTitle:     "Managing Partner",
		Tags:         []string{"Venture Capital", "San Francisco"},
		QualityScore: 100,
	}
}

func TestCSV_HeaderAndRow(t *testing.T) {
	out := CSV([]leads.ContactRecord{sampleRecord()})

	reader := csv.NewReader(strings.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Contact Name", "Job Title", "Company/Title", "Website",
		"Primary Email", "All Emails", "Phone Numbers", "Social Media",
		"Tags", "Quality Score", "Full URL",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, "Jane Doe", row[0])
	assert.Equal(t, "Managing Partner", row[1])
	assert.Equal(t, "Example Fund | Team", row[2])
	assert.Equal(t, "example-fund.com", row[3])
	assert.Equal(t, "jane@example-fund.com", row[4])
	assert.Equal(t, "jane@example-fund.com, press@example-fund.com", row[5])
	assert.Equal(t, "+1 (415) 555-2671", row[6])
	assert.Equal(t, "Venture Capital, San Francisco", row[8])
	assert.Equal(t, "100", row[9])
	assert.Equal(t, "https://www.example-fund.com/team", row[10])
}

func TestCSV_QuotingRoundTrip(t *testing.T) {
	r := sampleRecord()
	r.Contact = `Jane "JJ" Doe, CEO`
	r.Title = `Say "hello", world`

	out := CSV([]leads.ContactRecord{r})

	reader := csv.NewReader(strings.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Jane "JJ" Doe, CEO`, rows[1][0])
	assert.Equal(t, `Say "hello", world`, rows[1][2])
}

func TestCSV_EveryFieldQuoted(t *testing.T) {
	out := CSV([]leads.ContactRecord{sampleRecord()})

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, `"`))
		assert.True(t, strings.HasSuffix(line, `"`))
	}
}

func TestCSV_KeywordColumn(t *testing.T) {
	plain := CSV([]leads.ContactRecord{sampleRecord()})
	assert.NotContains(t, plain, "Search Keyword")

	r := sampleRecord()
	r.Keyword = "women in stem mentorship"
	batch := CSV([]leads.ContactRecord{r})
	assert.Contains(t, batch, `"Search Keyword"`)
	assert.Contains(t, batch, `"women in stem mentorship"`)
}

func TestCSV_EmptyRows(t *testing.T) {
	out := CSV(nil)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Contact Name")
}

func TestCSV_Deterministic(t *testing.T) {
	rows := []leads.ContactRecord{sampleRecord(), sampleRecord()}
	assert.Equal(t, CSV(rows), CSV(rows))
}

func TestCSV_TitleFallsBackToHostname(t *testing.T) {
	r := leads.ContactRecord{URL: "https://acme.io/contact"}
	out := CSV([]leads.ContactRecord{r})

	reader := csv.NewReader(strings.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "acme.io", rows[1][2])
	assert.Equal(t, "acme.io", rows[1][3])
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "+1 (415) 555-2671", FormatPhone("4155552671"))
	assert.Equal(t, "+1 (415) 555-2671", FormatPhone("14155552671"))
	assert.Equal(t, "+1 (415) 555-2671", FormatPhone("+14155552671"))
	assert.Equal(t, "+442071234567", FormatPhone("442071234567"))
	assert.Equal(t, "555-1234", FormatPhone("555-1234"))
}

func TestFormatPhones_Joined(t *testing.T) {
	out := FormatPhones([]string{"4155552671", "6465553782"})
	assert.Equal(t, "+1 (415) 555-2671, +1 (646) 555-3782", out)
}
