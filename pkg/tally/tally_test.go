package tally

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMostCommon(t *testing.T) {
	tl := New("cat", "dog", "cat", "fish", "dog", "cat", "bird")

	tests := []struct {
		name string
		n    int
		want []Item
	}{
		{"all", 0, []Item{{"cat", 3}, {"dog", 2}, {"fish", 1}, {"bird", 1}}},
		{"top two", 2, []Item{{"cat", 3}, {"dog", 2}}},
		{"more than len", 10, []Item{{"cat", 3}, {"dog", 2}, {"fish", 1}, {"bird", 1}}},
		{"negative", -1, []Item{{"cat", 3}, {"dog", 2}, {"fish", 1}, {"bird", 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tl.MostCommon(tt.n)); diff != "" {
				t.Errorf("MostCommon(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	var tl Tally
	if tl.Total() != 0 || tl.Percentage("x") != 0 || tl.Len() != 0 {
		t.Fatal("zero tally should be empty")
	}
	tl.Add("a", 3)
	tl.Add("b", 1)
	tl.Add("c", 0)
	tl.Add("a", -2)

	if got := tl.Count("a"); got != 3 {
		t.Errorf("Count(a) = %d, want 3", got)
	}
	if got := tl.Count("missing"); got != 0 {
		t.Errorf("Count(missing) = %d, want 0", got)
	}
	if got := tl.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
	if got := tl.Percentage("a"); got != 0.75 {
		t.Errorf("Percentage(a) = %v, want 0.75", got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tl.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
