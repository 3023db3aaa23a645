// Package pkg provides the core libraries for plotkit.
//
// # Overview
//
// Plotkit builds chart figures on gonum/plot and fills in what a figure
// library needs around it: legends whose columns read row by row, clean
// vector output and a small set of reference charts. The pkg directory is
// organized into three areas:
//
//  1. Layout - [reflow], [figure], [legend]
//  2. Charts and output - [charts], [tally], [sink]
//  3. Infrastructure - [config], [cache], [pipeline], [observability], [errors]
//
// # Architecture
//
// The typical data flow through plotkit:
//
//	[charts] demo or user plotters
//	         ↓
//	    [figure] (page size, axes rectangles, artists)
//	         ↓
//	    [legend] (row-major reflow via [reflow])
//	         ↓
//	    [sink] (SVG, PNG, JPEG, TIFF, PDF, EPS)
//
// [pipeline] wraps this flow with [config] style files and a [cache] for the
// CLI and the HTTP server.
//
// # Quick Start
//
// Build a figure and save it with a three-column legend:
//
//	fig, err := charts.Build("markevery")
//	if err != nil {
//	    return err
//	}
//	handles, labels := pipeline.AllHandles(fig)
//	if _, err := legend.Horizontal(fig, handles, labels, legend.WithColumns(3)); err != nil {
//	    return err
//	}
//	return sink.SaveSVGFile(fig, "markevery.svg")
//
// Reflow any sequence directly:
//
//	seq, _ := reflow.Transpose([]string{"a", "b", "c", "d", "e"}, 2)
//	for cell := range seq {
//	    // a c e b d, then a missing cell
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/reflow/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
package pkg
