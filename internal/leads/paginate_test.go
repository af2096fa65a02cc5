package leads

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeResultSet(n int) ResultSet {
	records := make([]ContactRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, ContactRecord{URL: fmt.Sprintf("https://site%d.com", i)})
	}
	return ResultSet{Records: records, TotalBeforeFilter: n}
}

func TestPaginate_FullPages(t *testing.T) {
	rs := makeResultSet(125)

	rows, meta := Paginate(rs, 1, 50)
	assert.Len(t, rows, 50)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 125, meta.TotalResults)
	assert.Equal(t, 50, meta.ResultsPerPage)
	assert.True(t, meta.HasMore)
	assert.Equal(t, "https://site0.com", rows[0].URL)
}

func TestPaginate_PartialLastPage(t *testing.T) {
	rs := makeResultSet(125)

	rows, meta := Paginate(rs, 3, 50)
	assert.Len(t, rows, 25)
	assert.False(t, meta.HasMore)
	assert.Equal(t, "https://site100.com", rows[0].URL)
}

func TestPaginate_OutOfRange(t *testing.T) {
	rs := makeResultSet(125)

	rows, meta := Paginate(rs, 4, 50)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.Equal(t, 4, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasMore)
}

func TestPaginate_ClampsInvalidInput(t *testing.T) {
	rs := makeResultSet(5)

	rows, meta := Paginate(rs, 0, -1)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 1, meta.ResultsPerPage)
	assert.Len(t, rows, 1)
}

func TestPaginate_EmptySet(t *testing.T) {
	rows, meta := Paginate(ResultSet{}, 1, 50)
	assert.Empty(t, rows)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, 0, meta.TotalResults)
	assert.False(t, meta.HasMore)
}
