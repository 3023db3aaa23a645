package sink

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
)

func testFigure(t *testing.T) *figure.Figure {
	t.Helper()
	fig, ax, err := figure.Create(figure.Inches(4, 3), figure.DefaultMargins)
	if err != nil {
		t.Fatal(err)
	}
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	ax.Add("line", line)
	ax.Title("test")
	return fig
}

func TestCleanWriter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing spaces", "a  \nb\t\n", "a\nb\n"},
		{"missing final newline", "a\nb", "a\nb\n"},
		{"trailing blank lines", "a\n\n  \n\n", "a\n"},
		{"inner blank lines kept", "a\n\nb\n", "a\n\nb\n"},
		{"crlf", "a \r\nb\r\n", "a\nb\n"},
		{"leading whitespace kept", "  <g>\n", "  <g>\n"},
		{"empty", "", ""},
		{"only blanks", " \n\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := CleanWriter(&buf, tt.in); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("CleanWriter(%q) = %q, want %q", tt.in, buf.String(), tt.want)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("disk full") }

func TestCleanWriterError(t *testing.T) {
	err := CleanWriter(failWriter{}, "x")
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeIO)
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{".PNG", FormatPNG, false},
		{"jpeg", FormatJPEG, false},
		{"tif", FormatTIFF, false},
		{"pdf", FormatPDF, false},
		{"eps", FormatEPS, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("NormalizeFormat(%q) code = %s", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("NormalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := FormatFromPath("plot"); err == nil {
		t.Error("FormatFromPath without extension should fail")
	}
	if f, err := FormatFromPath("out/plot.svg"); err != nil || f != FormatSVG {
		t.Errorf("FormatFromPath(plot.svg) = %q, %v", f, err)
	}
}

func TestParseOrientation(t *testing.T) {
	if o, err := ParseOrientation("Landscape"); err != nil || o != Landscape {
		t.Errorf("ParseOrientation(Landscape) = %v, %v", o, err)
	}
	if o, err := ParseOrientation(""); err != nil || o != Portrait {
		t.Errorf("ParseOrientation(\"\") = %v, %v", o, err)
	}
	if _, err := ParseOrientation("sideways"); !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("ParseOrientation(sideways) error = %v", err)
	}
}

func TestSaveSVGHasNoTrailingWhitespace(t *testing.T) {
	fig := testFigure(t)
	var buf bytes.Buffer
	if err := SaveSVG(fig, &buf); err != nil {
		t.Fatalf("SaveSVG() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output is not SVG: %.80q", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("output should end with exactly one newline")
	}
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if strings.TrimRight(line, " \t") != line {
			t.Fatalf("line %d has trailing whitespace: %q", n, line)
		}
	}
}

func TestRenderFormats(t *testing.T) {
	fig := testFigure(t)
	tests := []struct {
		format string
		magic  string
	}{
		{FormatPNG, "\x89PNG"},
		{FormatJPEG, "\xff\xd8"},
		{FormatTIFF, ""},
		{FormatPDF, "%PDF"},
		{FormatEPS, "%!PS"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Render(fig, tt.format, WithDPI(50))
			if err != nil {
				t.Fatalf("Render(%s) error: %v", tt.format, err)
			}
			if len(data) == 0 {
				t.Fatal("empty output")
			}
			if !bytes.HasPrefix(data, []byte(tt.magic)) {
				t.Errorf("Render(%s) starts with %q, want %q", tt.format, data[:min(8, len(data))], tt.magic)
			}
		})
	}

	if _, err := Render(fig, "bmp"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(bmp) error = %v", err)
	}
}

func TestRenderLandscapeEPS(t *testing.T) {
	data, err := Render(testFigure(t), FormatEPS, WithOrientation(Landscape))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%!PS")) {
		t.Errorf("not EPS output")
	}
}

func TestTransparentRestoresColors(t *testing.T) {
	fig := testFigure(t)
	ax := fig.Axes()[0]
	bg := ax.Plot.BackgroundColor
	face := fig.FaceColor

	restore := applyColors(fig, saveConfig{transparent: true})
	if fig.FaceColor != color.Transparent || ax.Plot.BackgroundColor != color.Transparent {
		t.Errorf("transparent save should clear face and axes backgrounds")
	}
	restore()
	if fig.FaceColor != face || ax.Plot.BackgroundColor != bg {
		t.Errorf("colors not restored: face %v, background %v", fig.FaceColor, ax.Plot.BackgroundColor)
	}

	red := color.RGBA{R: 255, A: 255}
	restore = applyColors(fig, saveConfig{transparent: true, face: red})
	if fig.FaceColor != red {
		t.Errorf("explicit face color should win over transparency, got %v", fig.FaceColor)
	}
	restore()

	if _, err := Render(fig, FormatPNG, WithTransparent(true)); err != nil {
		t.Fatal(err)
	}
	if fig.FaceColor != face {
		t.Errorf("Render should restore the face color")
	}
}

func TestSaveFile(t *testing.T) {
	fig := testFigure(t)
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "plot.svg")
	if err := SaveFile(fig, svgPath); err != nil {
		t.Fatalf("SaveFile(svg) error: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("plot.svg is not an SVG document")
	}

	// Name used verbatim, format forced.
	odd := filepath.Join(dir, "plot.dat")
	if err := SaveSVGFile(fig, odd); err != nil {
		t.Fatalf("SaveSVGFile(.dat) error: %v", err)
	}
	if _, err := os.Stat(odd); err != nil {
		t.Errorf("plot.dat not written: %v", err)
	}

	if err := SaveFile(fig, filepath.Join(dir, "plot.gif")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("SaveFile(gif) error = %v", err)
	}
	if err := SaveFile(fig, filepath.Join(dir, "missing", "plot.png")); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("SaveFile(missing dir) error = %v", err)
	}
	if err := Save(fig, failWriter{}, FormatSVG); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Save(failWriter) error = %v", err)
	}
}
