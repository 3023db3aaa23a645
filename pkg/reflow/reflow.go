package reflow

import (
	"iter"
	"slices"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// Cell is one position of a reflowed sequence. Present is false for a
// missing-marker, in which case Value is the zero value.
type Cell[T any] struct {
	Value   T
	Present bool
}

// Chunks partitions items into consecutive runs of ncol elements. Only the
// last run may be shorter. The runs alias items.
func Chunks[T any](items []T, ncol int) ([][]T, error) {
	if err := errors.ValidateColumns(ncol); err != nil {
		return nil, err
	}
	return slices.Collect(slices.Chunk(items, ncol)), nil
}

// Transpose reads the ncol-wide chunk grid of items column by column.
// The grid is only as wide as its first chunk, so when ncol >= len(items)
// the items come back unchanged. The sequence holds
// min(ncol, len(items))*ceil(len(items)/ncol) cells and can be ranged over
// once; later ranges yield nothing. items is not modified, but it is read
// lazily, so the caller must not change it before iteration ends.
func Transpose[T any](items []T, ncol int) (iter.Seq[Cell[T]], error) {
	if err := errors.ValidateColumns(ncol); err != nil {
		return nil, err
	}
	cols := min(ncol, len(items))
	rows := 0
	if len(items) > 0 {
		rows = (len(items)-1)/ncol + 1
	}
	used := false
	return func(yield func(Cell[T]) bool) {
		if used {
			return
		}
		used = true
		for c := range cols {
			for r := range rows {
				i := r*ncol + c
				cell := Cell[T]{}
				if i < len(items) {
					cell = Cell[T]{Value: items[i], Present: true}
				}
				if !yield(cell) {
					return
				}
			}
		}
	}, nil
}

// TransposeSeq is Transpose for a lazy input. seq is drained into a buffer
// before the first cell is produced, so it must be finite.
func TransposeSeq[T any](seq iter.Seq[T], ncol int) (iter.Seq[Cell[T]], error) {
	if err := errors.ValidateColumns(ncol); err != nil {
		return nil, err
	}
	return Transpose(slices.Collect(seq), ncol)
}

// Collect drains a reflowed sequence into a slice.
func Collect[T any](seq iter.Seq[Cell[T]]) []Cell[T] {
	return slices.Collect(seq)
}

// Values returns the present values of cells in order.
func Values[T any](cells []Cell[T]) []T {
	out := make([]T, 0, len(cells))
	for _, c := range cells {
		if c.Present {
			out = append(out, c.Value)
		}
	}
	return out
}

// Legend reflows parallel handle and label sequences so that a legend
// filled column by column reads row by row in the original order.
// Missing-markers are dropped, so both results have the input length.
func Legend[H, L any](handles []H, labels []L, ncol int) ([]H, []L, error) {
	if err := errors.ValidateColumns(ncol); err != nil {
		return nil, nil, err
	}
	if err := errors.ValidateSameLength("handles", len(handles), "labels", len(labels)); err != nil {
		return nil, nil, err
	}

	hs, err := Transpose(handles, ncol)
	if err != nil {
		return nil, nil, err
	}
	ls, err := Transpose(labels, ncol)
	if err != nil {
		return nil, nil, err
	}
	// Both inputs are chunked identically, so the markers line up.
	return Values(Collect(hs)), Values(Collect(ls)), nil
}
