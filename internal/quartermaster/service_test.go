package quartermaster

import "testing"

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "zero limit uses default", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative limit uses default", limit: -5, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "within bounds unchanged", limit: 100, offset: 20, wantLimit: 100, wantOffset: 20},
		{name: "oversized limit capped", limit: 10000, offset: 0, wantLimit: 500, wantOffset: 0},
		{name: "negative offset zeroed", limit: 10, offset: -1, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := clampPage(tt.limit, tt.offset, 50, 500)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
