package views

import (
	"fmt"
	"slices"
)

const DefaultPerPage = 12

// PerPageOptions are the page sizes offered by the page-size selector.
var PerPageOptions = []int{12, 24, 48}

type Pagination struct {
	Page       int
	PerPage    int
	TotalPages int
	Total      int
	Start      int // 1-based index of the first item shown; 0 when empty
	End        int
}

// Paginate clamps page into range and normalises perPage to one of
// PerPageOptions.
func Paginate(total, page, perPage int) Pagination {
	if !slices.Contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := Pagination{Page: page, PerPage: perPage, TotalPages: totalPages, Total: total}
	if total > 0 {
		p.Start = (page-1)*perPage + 1
		p.End = min(page*perPage, total)
	}
	return p
}

// Bounds returns the half-open slice range for the current page.
func (p Pagination) Bounds() (int, int) {
	if p.Total == 0 {
		return 0, 0
	}
	return p.Start - 1, p.End
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) PrevPage() int { return max(p.Page-1, 1) }
func (p Pagination) NextPage() int { return min(p.Page+1, p.TotalPages) }

// Pages lists every page number for the page buttons.
func (p Pagination) Pages() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func (p Pagination) Info() string {
	return fmt.Sprintf("Showing %d-%d of %d", p.Start, p.End, p.Total)
}
