package reflow

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/plotkit/pkg/errors"
)

func present[T any](v T) Cell[T] { return Cell[T]{Value: v, Present: true} }

func TestTranspose(t *testing.T) {
	missing := Cell[int]{}
	tests := []struct {
		name  string
		items []int
		ncol  int
		want  []Cell[int]
	}{
		{
			name:  "ragged tail",
			items: []int{1, 2, 3, 4, 5, 6, 7},
			ncol:  3,
			want: []Cell[int]{
				present(1), present(4), present(7),
				present(2), present(5), missing,
				present(3), present(6), missing,
			},
		},
		{
			name:  "even grid",
			items: []int{1, 2, 3, 4, 5, 6},
			ncol:  2,
			want:  []Cell[int]{present(1), present(3), present(5), present(2), present(4), present(6)},
		},
		{
			name:  "single column is identity",
			items: []int{4, 8, 15},
			ncol:  1,
			want:  []Cell[int]{present(4), present(8), present(15)},
		},
		{
			name:  "ncol equals length",
			items: []int{1, 2, 3},
			ncol:  3,
			want:  []Cell[int]{present(1), present(2), present(3)},
		},
		{
			name:  "ncol exceeds length",
			items: []int{1, 2},
			ncol:  4,
			want:  []Cell[int]{present(1), present(2)},
		},
		{
			name:  "huge ncol",
			items: []int{1, 2, 3},
			ncol:  math.MaxInt,
			want:  []Cell[int]{present(1), present(2), present(3)},
		},
		{
			name:  "empty",
			items: nil,
			ncol:  3,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Transpose(tt.items, tt.ncol)
			if err != nil {
				t.Fatalf("Transpose() error: %v", err)
			}
			got := Collect(seq)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Transpose(%v, %d) mismatch (-want +got):\n%s", tt.items, tt.ncol, diff)
			}
		})
	}
}

func TestTransposeSinglePass(t *testing.T) {
	seq, err := Transpose([]string{"a", "b", "c"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(Collect(seq)); n != 4 {
		t.Fatalf("first pass: got %d cells, want 4", n)
	}
	if n := len(Collect(seq)); n != 0 {
		t.Errorf("second pass: got %d cells, want 0", n)
	}
}

func TestTransposeEarlyStop(t *testing.T) {
	seq, err := Transpose([]int{1, 2, 3, 4, 5, 6, 7}, 3)
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for c := range seq {
		if !c.Present {
			break
		}
		got = append(got, c.Value)
	}
	if diff := cmp.Diff([]int{1, 4, 7, 2, 5}, got); diff != "" {
		t.Errorf("early stop mismatch (-want +got):\n%s", diff)
	}
}

func TestTransposeSeq(t *testing.T) {
	seq, err := TransposeSeq(slices.Values([]int{1, 2, 3, 4, 5, 6, 7}), 3)
	if err != nil {
		t.Fatal(err)
	}
	got := Values(Collect(seq))
	if diff := cmp.Diff([]int{1, 4, 7, 2, 5, 3, 6}, got); diff != "" {
		t.Errorf("TransposeSeq mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidColumns(t *testing.T) {
	for _, ncol := range []int{0, -1, -10} {
		if _, err := Transpose([]int{1, 2}, ncol); !errors.Is(err, errors.ErrCodeInvalidColumns) {
			t.Errorf("Transpose(ncol=%d) error = %v, want %s", ncol, err, errors.ErrCodeInvalidColumns)
		}
		if _, err := TransposeSeq(slices.Values([]int{1}), ncol); !errors.Is(err, errors.ErrCodeInvalidColumns) {
			t.Errorf("TransposeSeq(ncol=%d) error = %v, want %s", ncol, err, errors.ErrCodeInvalidColumns)
		}
		if _, _, err := Legend([]int{1}, []string{"a"}, ncol); !errors.Is(err, errors.ErrCodeInvalidColumns) {
			t.Errorf("Legend(ncol=%d) error = %v, want %s", ncol, err, errors.ErrCodeInvalidColumns)
		}
		if _, err := Chunks([]int{1}, ncol); !errors.Is(err, errors.ErrCodeInvalidColumns) {
			t.Errorf("Chunks(ncol=%d) error = %v, want %s", ncol, err, errors.ErrCodeInvalidColumns)
		}
	}
}

func TestChunks(t *testing.T) {
	got, err := Chunks([]int{1, 2, 3, 4, 5, 6, 7}, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{{1, 2, 3}, {4, 5, 6}, {7}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Chunks mismatch (-want +got):\n%s", diff)
	}
}

type handle struct{ id int }

func TestLegend(t *testing.T) {
	handles := make([]*handle, 7)
	for i := range handles {
		handles[i] = &handle{id: i + 1}
	}
	labels := []string{"a", "b", "c", "d", "e", "f", "g"}

	gotH, gotL, err := Legend(handles, labels, 3)
	if err != nil {
		t.Fatalf("Legend() error: %v", err)
	}

	ids := make([]int, len(gotH))
	for i, h := range gotH {
		ids[i] = h.id
	}
	if diff := cmp.Diff([]int{1, 4, 7, 2, 5, 3, 6}, ids); diff != "" {
		t.Errorf("handles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "d", "g", "b", "e", "c", "f"}, gotL); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	for i := range gotH {
		if want := string(rune('a' + gotH[i].id - 1)); gotL[i] != want {
			t.Errorf("position %d: handle %d paired with %q, want %q", i, gotH[i].id, gotL[i], want)
		}
	}
}

func TestLegendWideGrid(t *testing.T) {
	handles := []*handle{{id: 1}, {id: 2}, {id: 3}}
	labels := []string{"a", "b", "c"}

	for _, ncol := range []int{3, 5, math.MaxInt} {
		gotH, gotL, err := Legend(handles, labels, ncol)
		if err != nil {
			t.Fatalf("Legend(ncol=%d) error: %v", ncol, err)
		}
		if diff := cmp.Diff(handles, gotH, cmp.AllowUnexported(handle{})); diff != "" {
			t.Errorf("ncol=%d: handles mismatch (-want +got):\n%s", ncol, diff)
		}
		if diff := cmp.Diff(labels, gotL); diff != "" {
			t.Errorf("ncol=%d: labels mismatch (-want +got):\n%s", ncol, diff)
		}
	}
}

func TestLegendKeepsZeroValues(t *testing.T) {
	// Empty labels are real entries, not missing-markers.
	_, labels, err := Legend([]int{0, 0, 0}, []string{"", "x", ""}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"", "", "x"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLegendLengthMismatch(t *testing.T) {
	_, _, err := Legend([]int{1, 2, 3}, []string{"a", "b"}, 2)
	if !errors.Is(err, errors.ErrCodeLengthMismatch) {
		t.Fatalf("Legend() error = %v, want %s", err, errors.ErrCodeLengthMismatch)
	}
}

func TestLegendEmpty(t *testing.T) {
	h, l, err := Legend([]int{}, []string{}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 0 || len(l) != 0 {
		t.Errorf("Legend(empty) = %v, %v, want empty", h, l)
	}
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		n := rng.IntN(40)
		ncol := 1 + rng.IntN(10)
		items := make([]int, n)
		for i := range items {
			items[i] = rng.IntN(5)
		}

		seq, err := Transpose(items, ncol)
		if err != nil {
			t.Fatal(err)
		}
		cells := Collect(seq)
		rows := (n + ncol - 1) / ncol
		if want := rows * min(ncol, n); len(cells) != want {
			t.Fatalf("n=%d ncol=%d: got %d cells, want %d", n, ncol, len(cells), want)
		}
		if ncol >= n && !slices.Equal(Values(cells), items) {
			t.Fatalf("n=%d ncol=%d: wide grid should keep the input order, got %v", n, ncol, Values(cells))
		}

		got := Values(cells)
		gotSorted := slices.Clone(got)
		wantSorted := slices.Clone(items)
		sort.Ints(gotSorted)
		sort.Ints(wantSorted)
		if !slices.Equal(gotSorted, wantSorted) {
			t.Fatalf("n=%d ncol=%d: multiset changed: %v -> %v", n, ncol, items, got)
		}

		identity, _ := Transpose(items, 1)
		if !slices.Equal(Values(Collect(identity)), items) {
			t.Fatalf("ncol=1 is not the identity for %v", items)
		}

		labels := make([]string, n)
		hs, ls, err := Legend(items, labels, ncol)
		if err != nil {
			t.Fatal(err)
		}
		if len(hs) != n || len(ls) != n {
			t.Fatalf("n=%d ncol=%d: legend lengths %d/%d", n, ncol, len(hs), len(ls))
		}
	}
}
