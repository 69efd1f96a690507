package data

// PageSize is the fixed number of search results per page.
const PageSize = 100

// Pagination describes the window of search results returned alongside the
// data list. PrevPage and NextPage are null at the edges.
type Pagination struct {
	Total       int  `json:"total"`
	LastPage    int  `json:"lastPage"`
	PrevPage    *int `json:"prevPage"`
	NextPage    *int `json:"nextPage"`
	PerPage     int  `json:"perPage"`
	CurrentPage int  `json:"currentPage"`
	From        int  `json:"from"`
	To          int  `json:"to"`
}

// calculatePagination derives the result window for a page of the given
// total. A page beyond the last page yields an empty window (to == from)
// rather than an error.
func calculatePagination(total, page int) Pagination {
	lastPage := (total + PageSize - 1) / PageSize

	currentPage := page
	if currentPage < 1 {
		currentPage = 1
	}

	from := (currentPage - 1) * PageSize
	to := from + PageSize
	if to > total {
		to = total
	}
	if currentPage > lastPage {
		to = from
	}

	p := Pagination{
		Total:       total,
		LastPage:    lastPage,
		PerPage:     PageSize,
		CurrentPage: currentPage,
		From:        from,
		To:          to,
	}

	if currentPage > 1 {
		prev := currentPage - 1
		p.PrevPage = &prev
	}
	if currentPage < lastPage {
		next := currentPage + 1
		p.NextPage = &next
	}

	return p
}
