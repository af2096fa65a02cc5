package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/WinstonAC/winston-global-scraper/internal/leads"
)

func TestXLSXFromCSV_RoundTrip(t *testing.T) {
	csvText := CSV([]leads.ContactRecord{sampleRecord()})

	data, err := XLSXFromCSV(csvText)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Winston Contacts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Contact Name", rows[0][0])
	assert.Equal(t, "Jane Doe", rows[1][0])
}

func TestXLSXFromCSV_BadInput(t *testing.T) {
	_, err := XLSXFromCSV("\"unterminated\n")
	assert.Error(t, err)
}
