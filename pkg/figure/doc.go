// Package figure arranges gonum plots on a page.
//
// A [Figure] is a page of a given [PageSize] holding any number of [Axes].
// Each Axes wraps a *plot.Plot and occupies a [Rect] given in figure
// fractions, so margins are expressed independently of the page size:
//
//	fig, ax, err := figure.Create(figure.A4.Landscape(), figure.DefaultMargins)
//	ax.Add("samples", scatter)
//
// Figure-level decorations such as multi-column legends implement [Artist]
// and are drawn above the axes in the order they were added.
//
// Axes record the legend handle of every labeled plotter added through
// [Axes.Add]. [Axes.HandlesLabels] and [Figure.HandlesLabels] return them as
// parallel slices for building legends.
//
// Drawing is delegated to gonum: [Figure.Draw] takes any draw.Canvas, so the
// same figure can be written as SVG, PNG, PDF or EPS by the sink package.
package figure
