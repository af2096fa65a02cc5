package leads

// Pagination describes one page of a result set.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalResults   int  `json:"totalResults"`
	ResultsPerPage int  `json:"resultsPerPage"`
	HasMore        bool `json:"hasMore"`
}

// Paginate slices a result set into the requested page. Pages are 1-based.
// Out-of-range pages return an empty slice, not an error. Invalid page or
// limit values are clamped to 1.
func Paginate(rs ResultSet, page, limit int) ([]ContactRecord, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(rs.Records)
	totalPages := (total + limit - 1) / limit

	meta := Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalResults:   total,
		ResultsPerPage: limit,
		HasMore:        page < totalPages,
	}

	start := (page - 1) * limit
	if start >= total {
		return []ContactRecord{}, meta
	}
	end := start + limit
	if end > total {
		end = total
	}
	return rs.Records[start:end], meta
}
