package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactName_EmailContext(t *testing.T) {
	x := New(DefaultLimits())
	doc := parseDocument(`<html><body>
		<p>Jane Doe, CEO</p>
		<p>Contact: jane@example.com</p>
	</body></html>`)

	name, title := x.ContactName(doc, "jane@example.com", "https://example.com")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "CEO", title)
}

func TestContactName_BodyTitleThenName(t *testing.T) {
	x := New(DefaultLimits())
	doc := parseDocument(`<html><body><p>Founder: John Smith leads the firm.</p></body></html>`)

	name, title := x.ContactName(doc, "", "https://example.com")
	assert.Equal(t, "John Smith", name)
	assert.Equal(t, "Founder", title)
}

func TestContactName_BodyNameThenTitle(t *testing.T) {
	x := New(DefaultLimits())
	doc := parseDocument(`<html><body><p>Alice Wong, Director of the program.</p></body></html>`)

	name, title := x.ContactName(doc, "", "https://example.com")
	assert.Equal(t, "Alice Wong", name)
	assert.Equal(t, "Director", title)
}

func TestContactName_ContactLabel(t *testing.T) {
	x := New(DefaultLimits())
	doc := parseDocument(`<html><body><p>contact: Maria Lopez</p></body></html>`)

	name, title := x.ContactName(doc, "", "https://example.com")
	assert.Equal(t, "Maria Lopez", name)
	assert.Empty(t, title)
}

func TestContactName_MetaAuthor(t *testing.T) {
	x := New(DefaultLimits())
	doc := parseDocument(`<html><head><meta name="author" content="Dana Li"></head>
		<body><p>no names in the visible copy</p></body></html>`)

	name, title := x.ContactName(doc, "", "https://example.com")
	assert.Equal(t, "Dana Li", name)
	assert.Empty(t, title)
}

func TestContactName_HostnameFallback(t *testing.T) {
	x := New(DefaultLimits())
	doc := parseDocument(`<html><body><p>no names here</p></body></html>`)

	name, title := x.ContactName(doc, "", "https://www.example-fund.com/team")
	assert.Equal(t, "Example Fund Com", name)
	assert.Empty(t, title)
}

func TestContactName_NilDocument(t *testing.T) {
	x := New(DefaultLimits())

	name, _ := x.ContactName(nil, "jane@example.com", "https://acme.io")
	assert.Equal(t, "Acme Io", name)
}

func TestJobTitles(t *testing.T) {
	x := New(DefaultLimits())

	assert.Equal(t, "CEO, Founder", x.JobTitles("Our CEO and Founder answer email, the CEO first."))
	assert.Empty(t, x.JobTitles("no role words at all"))
}

func TestJobTitles_Cap(t *testing.T) {
	x := New(Limits{MaxJobTitles: 1})

	assert.Equal(t, "CEO", x.JobTitles("CEO, CTO, CFO"))
}

func TestHostnameLabel(t *testing.T) {
	assert.Equal(t, "Example Fund Com", HostnameLabel("https://www.example-fund.com/team"))
	assert.Equal(t, "Acme Io", HostnameLabel("https://acme.io"))
	assert.Equal(t, "Unknown", HostnameLabel(""))
}
