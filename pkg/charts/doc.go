// Package charts provides plotters and demo figures built on gonum/plot.
//
// The plotters cover chart types gonum does not ship: a pie (Pie), a
// stepped filled histogram with optional hatching (FilledStep) and stacked
// histograms (StackHist). The demo functions build complete figures used by
// the command line tool, the HTTP server and the tests:
//
//   - HatchFilledHistograms: four stacked hatched histograms
//   - Survey: stacked horizontal bars with a horizontal figure legend
//   - KochSnowflake: a filled fractal polygon on equal axes
//   - MarkEvery: a grid of line plots with marker subsets
//   - PieFromTally: a pie of word frequencies
//
// Demos lists the registered demo names and Build constructs one by name.
package charts
