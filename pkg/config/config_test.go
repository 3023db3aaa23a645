package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/legend"
)

const fullDoc = `
[figure]
page = "a4"
orientation = "landscape"
dpi = 150
facecolor = "#ffeecc"
edgecolor = "none"

[figure.margins]
left = 0.1
bottom = 0.1
right = 0.05
top = 0.2

[legend]
ncol = 3
loc = "lower-left"
anchor = [0.0, 1.0]
fontsize = 8
frame = false
title = "Pets"

[save]
format = "PNG"
dpi = 200
transparent = true
orientation = "portrait"
`

func TestDecodeFull(t *testing.T) {
	cfg, err := Decode(fullDoc)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	size, err := cfg.PageSize()
	if err != nil {
		t.Fatal(err)
	}
	if size != figure.A4.Landscape() {
		t.Errorf("PageSize() = %+v, want A4 landscape", size)
	}
	m, err := cfg.Margins()
	if err != nil {
		t.Fatal(err)
	}
	if m != (figure.Margins{Left: 0.1, Bottom: 0.1, Right: 0.05, Top: 0.2}) {
		t.Errorf("Margins() = %+v", m)
	}

	fig := figure.New(figure.Inches(1, 1))
	if err := cfg.ApplyFigure(fig); err != nil {
		t.Fatal(err)
	}
	if fig.DPI != 150 {
		t.Errorf("DPI = %v, want 150", fig.DPI)
	}
	if fig.FaceColor != (color.NRGBA{R: 0xff, G: 0xee, B: 0xcc, A: 0xff}) {
		t.Errorf("FaceColor = %v", fig.FaceColor)
	}
	if fig.EdgeColor != color.Transparent {
		t.Errorf("EdgeColor = %v, want transparent", fig.EdgeColor)
	}
	if fig.Width != figure.A4.Height {
		t.Errorf("Width = %v, want A4 height", fig.Width)
	}

	lopts, err := cfg.LegendOptions()
	if err != nil {
		t.Fatal(err)
	}
	o := legend.DefaultOptions()
	for _, opt := range lopts {
		opt(&o)
	}
	if o.Columns != 3 || o.Loc != legend.LowerLeft || o.Frame || o.Title != "Pets" || o.FontSize != vg.Points(8) {
		t.Errorf("legend options = %+v", o)
	}
	if o.Anchor == nil || *o.Anchor != (legend.Anchor{X: 0, Y: 1}) {
		t.Errorf("anchor = %v", o.Anchor)
	}

	sopts, err := cfg.SaveOptions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sopts) != 4 {
		t.Errorf("got %d save options, want 4", len(sopts))
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Decode("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Legend.NCol != 1 || cfg.Save.Format != "svg" {
		t.Errorf("defaults = %+v", cfg)
	}
	size, _ := cfg.PageSize()
	if size != DefaultPageSize {
		t.Errorf("PageSize() = %+v, want default", size)
	}
	if cfg.HasPageSize() {
		t.Error("default config should not set a page size")
	}
	fig := figure.New(figure.Inches(2, 3))
	if err := cfg.ApplyFigure(fig); err != nil {
		t.Fatal(err)
	}
	if fig.Width != 2*vg.Inch || fig.FaceColor != color.White {
		t.Error("default config should leave the figure alone")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "[figure", "parse config"},
		{"unknown key", "[legend]\nncols = 2", "legend.ncols"},
		{"unknown table", "[axes]\ngrid = true", "axes"},
		{"zero columns", "[legend]\nncol = 0", "column count"},
		{"bad loc", "[legend]\nloc = \"middle\"", "middle"},
		{"bad anchor", "[legend]\nanchor = [1.0]", "anchor"},
		{"bad format", "[save]\nformat = \"gif\"", "gif"},
		{"bad orientation", "[figure]\norientation = \"diagonal\"", "diagonal"},
		{"bad page", "[figure]\npage = \"b7\"", "b7"},
		{"half size", "[figure]\nwidth = 4.0", "width and height"},
		{"bad color", "[figure]\nfacecolor = \"#12\"", "#12"},
		{"negative figure dpi", "[figure]\ndpi = -1.0", "figure dpi"},
		{"huge save dpi", "[save]\ndpi = 5000.0", "save dpi"},
		{"nan save dpi", "[save]\ndpi = nan", "save dpi"},
		{"bad margins", "[figure.margins]\nleft = 0.6\nright = 0.6", "margins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.doc)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG (%v)", errors.GetCode(err), err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte("[legend]\nncol = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Legend.NCol != 2 {
		t.Errorf("NCol = %d, want 2", cfg.Legend.NCol)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
		err  bool
	}{
		{"", nil, false},
		{"none", color.Transparent, false},
		{"White", color.White, false},
		{"#ff0000", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}, false},
		{"#0000ff80", color.NRGBA{B: 0xff, A: 0x80}, false},
		{"#0000ffzz", nil, true},
		{"#12345", nil, true},
		{"chartreuse", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := Decode("[legend]\nncol = 2")
	b, _ := Decode("[legend]\nncol = 2\n")
	c, _ := Decode("[legend]\nncol = 3")
	if a.Fingerprint() == "" || a.Fingerprint() != b.Fingerprint() {
		t.Error("equal configs should share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different configs should differ")
	}
}
