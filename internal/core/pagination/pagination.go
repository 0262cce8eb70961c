package pagination

// Window describes one page of a paginated listing: the slice to fetch
// (Offset + PageSize) and the navigation metadata rendered around it.
type Window struct {
	Pages      []int `json:"pages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	LastPage   int   `json:"lastPage"`
	TotalCount int64 `json:"totalCount"`
	Offset     int64 `json:"offset"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

// Compute builds the page window for a listing of totalCount rows.
// The requested page is clamped into [1, lastPage], so the result never
// carries a negative offset and lastPage is at least 1 even for an empty
// listing. The page-number list is a contiguous run of at most windowSize
// numbers centered on the current page, clipped to [1, lastPage].
func Compute(totalCount int64, requestedPage, pageSize, windowSize int) Window {
	if pageSize <= 0 {
		pageSize = 1
	}
	if windowSize <= 0 {
		windowSize = 1
	}

	lastPage := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if lastPage < 1 {
		lastPage = 1
	}

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	first := page - windowSize/2
	if first < 1 {
		first = 1
	}
	last := first + windowSize - 1
	if last > lastPage {
		last = lastPage
		// Re-anchor near the upper boundary so the window keeps its length.
		if first = last - windowSize + 1; first < 1 {
			first = 1
		}
	}

	pages := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		pages = append(pages, p)
	}

	return Window{
		Page:       page,
		PageSize:   pageSize,
		LastPage:   lastPage,
		TotalCount: totalCount,
		Offset:     int64(page-1) * int64(pageSize),
		Pages:      pages,
		HasPrev:    page > 1,
		HasNext:    page < lastPage,
	}
}
