package views

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                 string
		total, page, perPage int
		want                 Pagination
	}{
		{"empty", 0, 1, 12, Pagination{Page: 1, PerPage: 12, TotalPages: 1}},
		{"first page", 30, 1, 12, Pagination{Page: 1, PerPage: 12, TotalPages: 3, Total: 30, Start: 1, End: 12}},
		{"last partial page", 30, 3, 12, Pagination{Page: 3, PerPage: 12, TotalPages: 3, Total: 30, Start: 25, End: 30}},
		{"page past end clamps", 30, 9, 12, Pagination{Page: 3, PerPage: 12, TotalPages: 3, Total: 30, Start: 25, End: 30}},
		{"page zero clamps", 5, 0, 12, Pagination{Page: 1, PerPage: 12, TotalPages: 1, Total: 5, Start: 1, End: 5}},
		{"unsupported size falls back", 30, 1, 7, Pagination{Page: 1, PerPage: 12, TotalPages: 3, Total: 30, Start: 1, End: 12}},
		{"larger size", 30, 1, 24, Pagination{Page: 1, PerPage: 24, TotalPages: 2, Total: 30, Start: 1, End: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.total, tt.page, tt.perPage)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPagination_Helpers(t *testing.T) {
	p := Paginate(30, 2, 12)
	lo, hi := p.Bounds()
	if lo != 12 || hi != 24 {
		t.Errorf("unexpected bounds %d-%d", lo, hi)
	}
	if !p.HasPrev() || !p.HasNext() || p.PrevPage() != 1 || p.NextPage() != 3 {
		t.Errorf("unexpected navigation for %+v", p)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, p.Pages()); diff != "" {
		t.Errorf("pages mismatch:\n%s", diff)
	}
	if got := p.Info(); got != "Showing 13-24 of 30" {
		t.Errorf("unexpected info %q", got)
	}

	empty := Paginate(0, 1, 12)
	if lo, hi := empty.Bounds(); lo != 0 || hi != 0 {
		t.Errorf("expected empty bounds, got %d-%d", lo, hi)
	}
	if empty.HasPrev() || empty.HasNext() {
		t.Error("expected no navigation when empty")
	}
}
