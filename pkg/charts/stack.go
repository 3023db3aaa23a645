package charts

import (
	"fmt"
	"image/color"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
)

// Histogram counts data into the bins delimited by edges. Bins are half
// open except the last, which includes its right edge. Values outside the
// edges are ignored.
func Histogram(data, edges []float64) ([]float64, error) {
	if len(edges) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "need at least two bin edges, got %d", len(edges))
	}
	if !slices.IsSorted(edges) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bin edges must increase monotonically")
	}
	lo, hi := edges[0], edges[len(edges)-1]

	x := make([]float64, 0, len(data))
	var onEdge float64
	for _, v := range data {
		switch {
		case v == hi:
			onEdge++
		case v >= lo && v < hi:
			x = append(x, v)
		}
	}
	slices.Sort(x)

	counts := make([]float64, len(edges)-1)
	if len(x) > 0 {
		counts = stat.Histogram(counts, edges, x, nil)
	}
	counts[len(counts)-1] += onEdge
	return counts, nil
}

// HistFunc bins a data set, returning the counts and the bin edges.
type HistFunc func(data []float64) (counts, edges []float64, err error)

// FixedBins returns a HistFunc using the given edges.
func FixedBins(edges []float64) HistFunc {
	edges = slices.Clone(edges)
	return func(data []float64) ([]float64, []float64, error) {
		counts, err := Histogram(data, edges)
		return counts, edges, err
	}
}

// AutoBins returns a HistFunc with n equal bins spanning the data.
func AutoBins(n int) HistFunc {
	return func(data []float64) ([]float64, []float64, error) {
		if n <= 0 {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "bin count must be positive, got %d", n)
		}
		lo, hi := 0.0, 1.0
		if len(data) > 0 {
			lo, hi = floats.Min(data), floats.Max(data)
		}
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
		edges := floats.Span(make([]float64, n+1), lo, hi)
		counts, err := Histogram(data, edges)
		return counts, edges, err
	}
}

// StackSource is the data for StackHist: either Labeled or Unlabeled.
type StackSource interface {
	sets(labels []string) ([]dataSet, error)
}

type dataSet struct {
	label string
	data  []float64
}

// Labeled data sets are looked up by name. Names gives the stacking order.
type Labeled struct {
	Names []string
	Data  map[string][]float64
}

func (l Labeled) sets(labels []string) ([]dataSet, error) {
	names := l.Names
	if labels != nil {
		names = labels
	}
	out := make([]dataSet, len(names))
	for i, n := range names {
		d, ok := l.Data[n]
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no data set named %q", n)
		}
		out[i] = dataSet{label: n, data: d}
	}
	return out, nil
}

// Unlabeled data sets are stacked in order.
type Unlabeled [][]float64

func (u Unlabeled) sets(labels []string) ([]dataSet, error) {
	out := make([]dataSet, len(u))
	for i, d := range u {
		out[i] = dataSet{data: d}
		if i < len(labels) {
			out[i].label = labels[i]
		}
	}
	return out, nil
}

// Style is the look of one stacked layer. Empty fields use defaults.
type Style struct {
	Label     string
	FillColor color.Color
	Hatch     string
	LineStyle draw.LineStyle
}

// StackOptions configures StackHist.
type StackOptions struct {
	// Hist bins each data set. Defaults to AutoBins(10).
	Hist HistFunc
	// Bottoms is the base of the first layer, see NewFilledStep.
	Bottoms []float64
	// Labels overrides the data set names.
	Labels      []string
	Orientation Orientation
}

// StackHist draws one FilledStep per data set, each stacked on the ones
// before it, and adds the axes legend. Styles are cycled. A layer's label
// is its style label, else its data set name, else "dflt set <j>". The
// plotters are returned by label.
func StackHist(ax *figure.Axes, src StackSource, styles []Style, opts StackOptions) (map[string]*FilledStep, error) {
	hist := opts.Hist
	if hist == nil {
		hist = AutoBins(10)
	}
	sets, err := src.sets(opts.Labels)
	if err != nil {
		return nil, err
	}

	arts := make(map[string]*FilledStep, len(sets))
	bottoms := opts.Bottoms
	for j, set := range sets {
		var sty Style
		if len(styles) > 0 {
			sty = styles[j%len(styles)]
		}
		label := set.label
		if label == "" {
			label = fmt.Sprintf("dflt set %d", j)
		}
		if sty.Label != "" {
			label = sty.Label
		}

		vals, edges, err := hist(set.data)
		if err != nil {
			return nil, fmt.Errorf("bin %s: %w", label, err)
		}
		base, err := broadcast(bottoms, len(vals))
		if err != nil {
			return nil, err
		}
		top := make([]float64, len(vals))
		floats.AddTo(top, base, vals)

		fs, err := NewFilledStep(edges, top, base, opts.Orientation)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", label, err)
		}
		if err := ValidateHatch(sty.Hatch); err != nil {
			return nil, err
		}
		fs.FillColor = sty.FillColor
		if fs.FillColor == nil {
			fs.FillColor = plotutil.Color(j)
		}
		fs.Hatch = sty.Hatch
		fs.HatchStyle.Color = darken(fs.FillColor, 0.5)
		fs.LineStyle = sty.LineStyle

		ax.Add(label, fs)
		arts[label] = fs
		bottoms = top
	}
	ax.Legend()
	return arts, nil
}
