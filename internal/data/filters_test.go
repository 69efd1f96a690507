package data

import "testing"

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		page     int
		wantFrom int
		wantTo   int
		wantLast int
		wantCurr int
		wantPrev int // 0 means null
		wantNext int // 0 means null
	}{
		{name: "first of three pages", total: 250, page: 1, wantFrom: 0, wantTo: 100, wantLast: 3, wantCurr: 1, wantPrev: 0, wantNext: 2},
		{name: "middle page", total: 250, page: 2, wantFrom: 100, wantTo: 200, wantLast: 3, wantCurr: 2, wantPrev: 1, wantNext: 3},
		{name: "last partial page", total: 250, page: 3, wantFrom: 200, wantTo: 250, wantLast: 3, wantCurr: 3, wantPrev: 2, wantNext: 0},
		{name: "beyond last page is empty", total: 250, page: 4, wantFrom: 300, wantTo: 300, wantLast: 3, wantCurr: 4, wantPrev: 3, wantNext: 0},
		{name: "no results", total: 0, page: 1, wantFrom: 0, wantTo: 0, wantLast: 0, wantCurr: 1, wantPrev: 0, wantNext: 0},
		{name: "exact multiple of page size", total: 200, page: 2, wantFrom: 100, wantTo: 200, wantLast: 2, wantCurr: 2, wantPrev: 1, wantNext: 0},
		{name: "single result", total: 1, page: 1, wantFrom: 0, wantTo: 1, wantLast: 1, wantCurr: 1, wantPrev: 0, wantNext: 0},
		{name: "page clamps to one", total: 50, page: 0, wantFrom: 0, wantTo: 50, wantLast: 1, wantCurr: 1, wantPrev: 0, wantNext: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := calculatePagination(tt.total, tt.page)

			if p.Total != tt.total {
				t.Errorf("Total = %d; want %d", p.Total, tt.total)
			}
			if p.PerPage != PageSize {
				t.Errorf("PerPage = %d; want %d", p.PerPage, PageSize)
			}
			if p.From != tt.wantFrom {
				t.Errorf("From = %d; want %d", p.From, tt.wantFrom)
			}
			if p.To != tt.wantTo {
				t.Errorf("To = %d; want %d", p.To, tt.wantTo)
			}
			if p.LastPage != tt.wantLast {
				t.Errorf("LastPage = %d; want %d", p.LastPage, tt.wantLast)
			}
			if p.CurrentPage != tt.wantCurr {
				t.Errorf("CurrentPage = %d; want %d", p.CurrentPage, tt.wantCurr)
			}

			checkNullableInt(t, "PrevPage", p.PrevPage, tt.wantPrev)
			checkNullableInt(t, "NextPage", p.NextPage, tt.wantNext)
		})
	}
}

func checkNullableInt(t *testing.T, name string, got *int, want int) {
	t.Helper()

	if want == 0 {
		if got != nil {
			t.Errorf("%s = %d; want null", name, *got)
		}
		return
	}

	if got == nil {
		t.Errorf("%s = null; want %d", name, want)
	} else if *got != want {
		t.Errorf("%s = %d; want %d", name, *got, want)
	}
}
