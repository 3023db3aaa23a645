package charts

import (
	"fmt"
	"strings"
)

// Markers selects which points of a line carry a marker.
type Markers interface {
	// Select returns the marked indices of a line with n points, in
	// increasing order.
	Select(n int) []int
	String() string
}

// All marks every point.
type All struct{}

func (All) Select(n int) []int { return stride(0, n, 1) }
func (All) String() string     { return "None" }

// Every marks every n-th point starting at the first.
type Every int

func (e Every) Select(n int) []int { return stride(0, n, int(e)) }
func (e Every) String() string     { return fmt.Sprint(int(e)) }

// EveryFrom marks every Step-th point starting at Start.
type EveryFrom struct{ Start, Step int }

func (e EveryFrom) Select(n int) []int { return stride(e.Start, n, e.Step) }
func (e EveryFrom) String() string     { return fmt.Sprintf("(%d, %d)", e.Start, e.Step) }

// Indices marks the listed points. Negative indices count from the end;
// out of range indices are skipped.
type Indices []int

func (ix Indices) Select(n int) []int {
	seen := make([]bool, n)
	for _, i := range ix {
		if i < 0 {
			i += n
		}
		if i >= 0 && i < n {
			seen[i] = true
		}
	}
	var out []int
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func (ix Indices) String() string {
	parts := make([]string, len(ix))
	for i, v := range ix {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Slice marks the points Start, Start+Step, ... below Stop.
type Slice struct{ Start, Stop, Step int }

func (s Slice) Select(n int) []int { return stride(s.Start, min(s.Stop, n), s.Step) }
func (s Slice) String() string {
	return fmt.Sprintf("slice(%d, %d, %d)", s.Start, s.Stop, s.Step)
}

func stride(start, stop, step int) []int {
	if step <= 0 || start < 0 {
		return nil
	}
	var out []int
	for i := start; i < stop; i += step {
		out = append(out, i)
	}
	return out
}
