package repository

import "testing"

func TestPageWindow(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  int
		wantOffset int
	}{
		{name: "first", page: 1, pageSize: 20, wantLimit: 20, wantOffset: 0},
		{name: "third", page: 3, pageSize: 10, wantLimit: 10, wantOffset: 20},
		{name: "zero page", page: 0, pageSize: 5, wantLimit: 5, wantOffset: 0},
		{name: "capped", page: 2, pageSize: 500, wantLimit: 100, wantOffset: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := pageWindow(tc.page, tc.pageSize)
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Fatalf("want (%d,%d) got (%d,%d)", tc.wantLimit, tc.wantOffset, limit, offset)
			}
		})
	}
}
