// Package sink writes figures to image files.
//
// # Overview
//
// A "sink" turns a [figure.Figure] into bytes in a final output format.
// Drawing is done by gonum's vg backends:
//
//   - SVG: vgsvg, followed by whitespace cleanup
//   - PNG, JPEG, TIFF: vgimg at the requested DPI
//   - PDF: vgpdf
//   - EPS: vgeps, optionally rotated to landscape
//
// # SVG Output
//
// [SaveSVG] renders into memory first and then writes the document through
// [CleanWriter], which strips trailing whitespace from every line and ends
// the file with exactly one newline. This keeps generated SVGs stable
// under version control:
//
//	err := sink.SaveSVGFile(fig, "plot.svg", sink.WithTransparent(true))
//
// # Options
//
//   - [WithFormat]: Output format, otherwise inferred from the file name
//   - [WithDPI]: Raster resolution; zero uses the figure's DPI
//   - [WithFaceColor], [WithEdgeColor]: Page colors for this save only
//   - [WithTransparent]: Transparent page and axes backgrounds
//   - [WithOrientation]: Landscape EPS pages
//
// Colors changed for a save are restored on the figure before the call
// returns. Errors raised by the backends are wrapped with
// [errors.ErrCodeRender] or [errors.ErrCodeIO] and otherwise passed through.
//
// [figure.Figure]: github.com/matzehuels/plotkit/pkg/figure.Figure
// [errors.ErrCodeRender]: github.com/matzehuels/plotkit/pkg/errors.ErrCodeRender
// [errors.ErrCodeIO]: github.com/matzehuels/plotkit/pkg/errors.ErrCodeIO
package sink
