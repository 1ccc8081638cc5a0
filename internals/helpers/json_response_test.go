// file: internals/helpers/json_response_test.go
package helper

import "testing"

func TestBuildPaginationFromOffset(t *testing.T) {
	pg := BuildPaginationFromOffset(45, 20, 20)
	if pg.Page != 2 || pg.PerPage != 20 || pg.TotalPages != 3 {
		t.Fatalf("pagination = %+v, mau page 2 dari 3", pg)
	}
	if !pg.HasNext || !pg.HasPrev {
		t.Fatalf("pagination = %+v, mau has_next dan has_prev true", pg)
	}
}

func TestBuildPaginationFromOffsetEmpty(t *testing.T) {
	pg := BuildPaginationFromOffset(0, 0, 20)
	if pg.Page != 1 || pg.TotalPages != 1 {
		t.Fatalf("pagination = %+v, mau satu halaman kosong", pg)
	}
	if pg.HasNext || pg.HasPrev {
		t.Fatalf("pagination = %+v, mau tanpa next/prev", pg)
	}
}

func TestBuildPaginationFromOffsetDefaultsPerPage(t *testing.T) {
	pg := BuildPaginationFromOffset(10, 0, 0)
	if pg.PerPage != 20 {
		t.Fatalf("per_page = %d, mau fallback 20", pg.PerPage)
	}
}
