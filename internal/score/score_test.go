package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

func TestRecord_EmptyRecord(t *testing.T) {
	assert.Equal(t, 0, Record(leads.ContactRecord{}))
}

func TestRecord_EmailPoints(t *testing.T) {
	one := leads.ContactRecord{Emails: []string{"a@x.com"}}
	assert.Equal(t, 40, Record(one))

	two := leads.ContactRecord{Emails: []string{"a@x.com", "b@x.com"}}
	assert.Equal(t, 50, Record(two))
}

func TestRecord_NamePoints(t *testing.T) {
	person := leads.ContactRecord{Contact: "Jane Doe"}
	assert.Equal(t, 30, Record(person))

	// A name still containing a dot is hostname-derived.
	rawHost := leads.ContactRecord{Contact: "example.com"}
	assert.Equal(t, 15, Record(rawHost))

	// So is the title-cased label built from the record's own URL.
	label := leads.ContactRecord{Contact: "Example Fund Com", URL: "https://www.example-fund.com/team"}
	assert.Equal(t, 15, Record(label))
}

func TestRecord_PhoneTitleTagPoints(t *testing.T) {
	r := leads.ContactRecord{Phones: []string{"4155552671"}}
	assert.Equal(t, 20, Record(r))

	r = leads.ContactRecord{JobTitle: "CEO"}
	assert.Equal(t, 10, Record(r))

	r = leads.ContactRecord{Tags: []string{"Angel Investor"}}
	assert.Equal(t, 10, Record(r))

	r = leads.ContactRecord{Tags: []string{"University"}}
	assert.Equal(t, 0, Record(r))
}

func TestRecord_HighValueTagSubstrings(t *testing.T) {
	for _, tag := range []string{"Venture Capital", "Angel Investor", "Impact Investor", "Female Investor"} {
		r := leads.ContactRecord{Tags: []string{tag}}
		assert.Equal(t, 10, Record(r), "tag %q should be high-value", tag)
	}
}

func TestRecord_CappedAt100(t *testing.T) {
	r := leads.ContactRecord{
		Emails:   []string{"a@x.com", "b@x.com"},
		Contact:  "Jane Doe",
		Phones:   []string{"4155552671"},
		JobTitle: "Managing Partner",
		Tags:     []string{"Venture Capital"},
	}
	// 50+30+20+10+10 = 120 on paper.
	assert.Equal(t, 100, Record(r))
}

func TestRecord_NoSingleFieldZeroes(t *testing.T) {
	// Missing email still scores on the remaining fields.
	r := leads.ContactRecord{Contact: "Jane Doe", Phones: []string{"4155552671"}}
	assert.Equal(t, 50, Record(r))
}
