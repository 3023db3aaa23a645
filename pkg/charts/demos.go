package charts

import (
	"fmt"
	"image/color"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/legend"
	"github.com/matzehuels/plotkit/pkg/tally"
)

// HistogramSeed is the random seed of the histogram demo.
const HistogramSeed = 19680801

// HatchFilledHistograms stacks hatched histograms of four sets of normally
// distributed samples drawn from seed.
func HatchFilledHistograms(seed uint64) (*figure.Figure, *figure.Axes, error) {
	rng := rand.New(rand.NewPCG(seed, seed))
	data := make(Unlabeled, 4)
	for i := range data {
		data[i] = make([]float64, 12250)
		for j := range data[i] {
			data[i][j] = rng.NormFloat64()
		}
	}

	hatches := []string{"/", "*", "+", "|"}
	styles := make([]Style, len(data))
	for n := range styles {
		styles[n] = Style{
			Label:     fmt.Sprintf("set %d", n),
			FillColor: plotutil.Color(n),
			Hatch:     hatches[n],
		}
	}

	fig, ax, err := figure.Create(figure.Inches(9, 4.5), figure.Margins{Left: 0.09, Bottom: 0.12, Right: 0.02, Top: 0.04})
	if err != nil {
		return nil, nil, err
	}
	edges := floats.Span(make([]float64, 20), -3, 3)
	if _, err := StackHist(ax, data, styles, StackOptions{Hist: FixedBins(edges)}); err != nil {
		return nil, nil, err
	}
	ax.YLabel("counts")
	ax.XLabel("x")
	return fig, ax, nil
}

// SurveyResult is the number of answers per category to one question.
type SurveyResult struct {
	Question string
	Counts   []float64
}

// SurveyCategories are the answer categories of the survey demo.
var SurveyCategories = []string{"Strongly disagree", "Disagree", "Neither agree nor disagree", "Agree", "Strongly agree"}

// SurveyResults are the answers of the survey demo.
var SurveyResults = []SurveyResult{
	{"Question 1", []float64{10, 15, 17, 32, 26}},
	{"Question 2", []float64{26, 22, 29, 10, 13}},
	{"Question 3", []float64{35, 37, 7, 2, 19}},
	{"Question 4", []float64{32, 11, 9, 15, 33}},
	{"Question 5", []float64{21, 29, 5, 5, 40}},
	{"Question 6", []float64{8, 19, 5, 30, 38}},
}

var darkGrey = color.RGBA{R: 169, G: 169, B: 169, A: 255}

// Survey draws each question as a horizontal bar split into its answer
// categories, first question on top. A legend with one column per
// category sits on top of the axes.
func Survey(results []SurveyResult, categories []string) (*figure.Figure, *figure.Axes, error) {
	if len(results) == 0 || len(categories) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "survey needs at least one question and one category")
	}
	for _, r := range results {
		if err := errors.ValidateSameLength(r.Question+" counts", len(r.Counts), "categories", len(categories)); err != nil {
			return nil, nil, err
		}
	}

	fig, ax, err := figure.Create(figure.Inches(9.2, 5), figure.Margins{Left: 0.14, Bottom: 0.04, Right: 0.03, Top: 0.12})
	if err != nil {
		return nil, nil, err
	}
	colors, err := categoryColors(len(categories))
	if err != nil {
		return nil, nil, err
	}

	// Bars are placed bottom up, so the questions are reversed.
	nq := len(results)
	names := make([]string, nq)
	for q := range nq {
		names[q] = results[nq-1-q].Question
	}

	starts := make([]float64, nq)
	var prev *plotter.BarChart
	for i, cat := range categories {
		widths := make(plotter.Values, nq)
		for q := range nq {
			widths[q] = results[nq-1-q].Counts[i]
		}
		bars, err := plotter.NewBarChart(widths, vg.Points(22))
		if err != nil {
			return nil, nil, fmt.Errorf("bars for %s: %w", cat, err)
		}
		bars.Horizontal = true
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		ax.Add(cat, bars)
		prev = bars

		textColor := color.Color(darkGrey)
		if c, ok := colorful.MakeColor(colors[i]); ok && c.R*c.G*c.B < 0.5 {
			textColor = color.White
		}
		xys := make(plotter.XYs, nq)
		texts := make([]string, nq)
		for q, w := range widths {
			xys[q] = plotter.XY{X: starts[q] + w/2, Y: float64(q)}
			texts[q] = fmt.Sprint(int(w))
			starts[q] += w
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, nil, fmt.Errorf("labels for %s: %w", cat, err)
		}
		for j := range labels.TextStyle {
			labels.TextStyle[j].Color = textColor
			labels.TextStyle[j].XAlign = draw.XCenter
			labels.TextStyle[j].YAlign = draw.YCenter
		}
		ax.Plot.Add(labels)
	}

	ax.Plot.NominalY(names...)
	ax.Plot.HideX()
	ax.Plot.X.Min = 0
	ax.Plot.X.Max = floats.Max(starts)

	if _, err := legend.Horizontal(fig, nil, nil,
		legend.WithColumns(len(categories)),
		legend.WithLoc(legend.LowerLeft),
		legend.WithAnchor(ax.Rect.Left, ax.Rect.Top()),
		legend.WithFontSize(8),
		legend.WithFrame(false),
	); err != nil {
		return nil, nil, err
	}
	return fig, ax, nil
}

// categoryColors samples n colors from the middle of the RdYlGn palette.
func categoryColors(n int) ([]color.Color, error) {
	pal, err := brewer.GetPalette(brewer.TypeDiverging, "RdYlGn", 11)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load palette")
	}
	all := pal.Colors()
	pos := []float64{0.5}
	if n > 1 {
		pos = floats.Span(make([]float64, n), 0.15, 0.85)
	}
	out := make([]color.Color, n)
	for i, f := range pos {
		out[i] = all[int(math.Round(f*float64(len(all)-1)))]
	}
	return out, nil
}

// kochSnowflake returns the vertices of a Koch snowflake of the given
// order as complex numbers.
func kochSnowflake(order int) []complex128 {
	if order == 0 {
		pts := make([]complex128, 3)
		for i, deg := range []float64{90, 210, 330} {
			pts[i] = complex(10/math.Sqrt(3), 0) * cmplx.Exp(complex(0, deg*math.Pi/180))
		}
		return pts
	}
	zr := complex(0.5, -0.5*math.Sqrt(3)/3)
	p1 := kochSnowflake(order - 1)
	out := make([]complex128, 0, 4*len(p1))
	for i, a := range p1 {
		dp := p1[(i+1)%len(p1)] - a
		out = append(out, a, a+dp/3, a+dp*zr, a+dp*2/3)
	}
	return out
}

// KochSnowflake fills a Koch snowflake of the given order on equal axes.
func KochSnowflake(order int) (*figure.Figure, *figure.Axes, error) {
	if order < 0 || order > 8 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "snowflake order must be between 0 and 8, got %d", order)
	}
	pts := kochSnowflake(order)
	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i] = plotter.XY{X: real(p), Y: imag(p)}
	}

	fig, ax, err := figure.Create(figure.Inches(8, 8), figure.DefaultMargins)
	if err != nil {
		return nil, nil, err
	}
	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return nil, nil, fmt.Errorf("snowflake polygon: %w", err)
	}
	poly.Color = plotutil.Color(0)
	poly.LineStyle.Width = 0
	ax.Add("Koch Snowflake", poly)
	ax.Equal = true
	return fig, ax, nil
}

// MarkEveryCases are the marker selections shown by MarkEvery.
var MarkEveryCases = []Markers{
	All{},
	Every(8),
	EveryFrom{Start: 30, Step: 8},
	Indices{16, 24, 30},
	Indices{0, -1},
	Slice{Start: 100, Stop: 200, Step: 3},
}

// MarkEvery draws the same sine curve once per marker selection on a grid
// of subplots with three columns. Unused grid cells are removed.
func MarkEvery() (*figure.Figure, []*figure.Axes, error) {
	const cols = 3
	rows := len(MarkEveryCases)/cols + 1

	fig := figure.New(figure.Inches(10, 8))
	axs, err := fig.Subplots(rows, cols, 0.06)
	if err != nil {
		return nil, nil, err
	}
	fig.TrimAxes(len(MarkEveryCases))
	axs = axs[:len(MarkEveryCases)]

	const delta = 0.11
	x := floats.Span(make([]float64, 200), 0, 10-2*delta)
	xys := make(plotter.XYs, len(x))
	for i, v := range x {
		v += delta
		xys[i] = plotter.XY{X: v, Y: math.Sin(v) + 1 + delta}
	}

	for i, ax := range axs {
		m := MarkEveryCases[i]
		label := "markevery=" + m.String()
		ax.Title(label)

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, nil, err
		}
		line.Color = plotutil.Color(i)

		idx := m.Select(len(xys))
		marked := make(plotter.XYs, len(idx))
		for j, k := range idx {
			marked[j] = xys[k]
		}
		ax.Plot.Add(line)
		handles := []plot.Thumbnailer{line}
		if len(marked) > 0 {
			sc, err := plotter.NewScatter(marked)
			if err != nil {
				return nil, nil, err
			}
			sc.GlyphStyle = draw.GlyphStyle{Color: line.Color, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
			ax.Plot.Add(sc)
			handles = append(handles, sc)
		}
		ax.AddHandle(label, handles...)
	}
	return fig, axs, nil
}

// PetWords are the words tallied by the pie demo.
var PetWords = strings.Fields("cat dog dog cat rabbit dog dog cat snake gerbil")

// TallyPie draws a pie of the word counts in t on a square figure. When
// explodeTop is set the most common word is pulled out.
func TallyPie(t *tally.Tally, explodeTop bool, opts PieOptions) (*figure.Figure, *figure.Axes, *Pie, error) {
	fig, ax, err := figure.Create(figure.Inches(8, 8), figure.Margins{Left: 0.05, Bottom: 0.05, Right: 0.05, Top: 0.05})
	if err != nil {
		return nil, nil, nil, err
	}
	var explode []string
	if top := t.MostCommon(1); explodeTop && len(top) > 0 {
		explode = []string{top[0].Key}
	}
	pie, err := PieFromTally(ax, t, explode, opts)
	if err != nil {
		return nil, nil, nil, err
	}
	return fig, ax, pie, nil
}
