package paginate

import "testing"

func TestPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		perPage int
		want    int
	}{
		{"empty", 0, 6, 0},
		{"exact fit", 12, 6, 2},
		{"thirteen items page size six", 13, 6, 3},
		{"single page", 5, 6, 1},
		{"invalid per page", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pages(tt.total, tt.perPage); got != tt.want {
				t.Errorf("Pages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("last page holds the remainder", func(t *testing.T) {
		page := Slice(items, 3, 6)
		if len(page) != 1 {
			t.Fatalf("expected exactly 1 item on page 3, got %d", len(page))
		}
		if page[0] != 13 {
			t.Errorf("expected item 13, got %d", page[0])
		}
	})

	t.Run("first page is full", func(t *testing.T) {
		page := Slice(items, 1, 6)
		if len(page) != 6 {
			t.Fatalf("expected 6 items, got %d", len(page))
		}
		if page[0] != 1 || page[5] != 6 {
			t.Errorf("unexpected page contents %v", page)
		}
	})

	t.Run("page past the end clamps to the last page", func(t *testing.T) {
		page := Slice(items, 99, 6)
		if len(page) != 1 || page[0] != 13 {
			t.Errorf("expected clamped last page, got %v", page)
		}
	})
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name             string
		page, total, per int
		want             int
	}{
		{"in range", 2, 13, 6, 2},
		{"below range", 0, 13, 6, 1},
		{"above range", 5, 13, 6, 3},
		{"no items", 4, 0, 6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.page, tt.total, tt.per); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.page, tt.total, tt.per, got, tt.want)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	nums := Numbers(13, 6)
	if len(nums) != 3 {
		t.Fatalf("expected 3 page numbers, got %d", len(nums))
	}
	for i, n := range nums {
		if n != i+1 {
			t.Errorf("expected page %d at index %d, got %d", i+1, i, n)
		}
	}
}
