package pipeline

import (
	"bytes"
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotkit/pkg/cache"
	"github.com/matzehuels/plotkit/pkg/config"
	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/legend"
	"github.com/matzehuels/plotkit/pkg/observability"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Save.Format = "PNG"
	cfg.Legend.NCol = 4

	tests := []struct {
		name        string
		opts        Options
		wantFormats []string
		wantColumns int
		wantCode    errors.Code
	}{
		{name: "defaults", opts: Options{Demo: "pie"}, wantFormats: []string{"svg"}},
		{name: "normalized and deduplicated", opts: Options{Demo: "pie", Formats: []string{"SVG", "jpeg", "svg", "jpg"}}, wantFormats: []string{"svg", "jpg"}},
		{name: "config format", opts: Options{Demo: "pie", Config: cfg}, wantFormats: []string{"png"}},
		{name: "legend default columns", opts: Options{Demo: "pie", Legend: true}, wantFormats: []string{"svg"}, wantColumns: 1},
		{name: "legend config columns", opts: Options{Demo: "pie", Legend: true, Config: cfg}, wantFormats: []string{"png"}, wantColumns: 4},
		{name: "missing demo", opts: Options{}, wantCode: errors.ErrCodeInvalidInput},
		{name: "bad format", opts: Options{Demo: "pie", Formats: []string{"bmp"}}, wantCode: errors.ErrCodeInvalidFormat},
		{name: "negative dpi", opts: Options{Demo: "pie", DPI: -1}, wantCode: errors.ErrCodeInvalidInput},
		{name: "oversized dpi", opts: Options{Demo: "pie", DPI: 1e6}, wantCode: errors.ErrCodeInvalidInput},
		{name: "nan dpi", opts: Options{Demo: "pie", DPI: math.NaN()}, wantCode: errors.ErrCodeInvalidInput},
		{name: "bad columns", opts: Options{Demo: "pie", Legend: true, Columns: -2}, wantCode: errors.ErrCodeInvalidColumns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantFormats, opts.Formats); diff != "" {
				t.Errorf("formats mismatch (-want +got):\n%s", diff)
			}
			if opts.Columns != tt.wantColumns {
				t.Errorf("Columns = %d, want %d", opts.Columns, tt.wantColumns)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	plain := Options{Demo: "pie"}
	withCfg := Options{Demo: "pie", Config: config.Default()}
	k1 := cache.ArtifactKey("pie", plain.ArtifactKeyOpts("svg"))
	k2 := cache.ArtifactKey("pie", withCfg.ArtifactKeyOpts("svg"))
	if k1 == k2 {
		t.Error("config should change the artifact key")
	}

	// Columns only matter when a legend is drawn.
	a := Options{Demo: "pie", Columns: 3}
	if cache.ArtifactKey("pie", a.ArtifactKeyOpts("svg")) != k1 {
		t.Error("columns without legend should not change the artifact key")
	}
}

func TestExecuteCaches(t *testing.T) {
	stats := observability.NewCounters()
	observability.SetRenderHooks(stats)
	observability.SetCacheHooks(stats)
	t.Cleanup(observability.Reset)

	mem := cache.NewMemoryCache()
	r := NewRunner(mem, quietLogger())
	ctx := context.Background()
	opts := Options{Demo: "koch-snowflake", Formats: []string{"svg", "png"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first render should miss the cache")
	}
	if !bytes.HasPrefix(first.Artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact has no PNG header")
	}
	if mem.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", mem.Len())
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second render should hit the cache")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}

	s := stats.Snapshot()
	if s.Renders != 2 || s.CacheHits != 2 || s.CacheMisses != 1 {
		t.Errorf("renders=%d hits=%d misses=%d, want 2, 2, 1", s.Renders, s.CacheHits, s.CacheMisses)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	_, err := r.Execute(context.Background(), Options{Demo: "nope"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown demo: error = %v, want NOT_FOUND", err)
	}

	cfg := config.Default()
	cfg.Legend.Loc = "somewhere"
	_, err = r.Execute(context.Background(), Options{Demo: "pie", Config: cfg})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config: error = %v, want INVALID_CONFIG", err)
	}
}

func TestFigureLegend(t *testing.T) {
	r := NewRunner(nil, quietLogger())

	t.Run("gathers all axes", func(t *testing.T) {
		opts := Options{Demo: "markevery", Legend: true, Columns: 3}
		fig, err := r.Figure(opts)
		if err != nil {
			t.Fatal(err)
		}
		var lg *legend.Legend
		for _, a := range fig.Artists() {
			if l, ok := a.(*legend.Legend); ok {
				lg = l
			}
		}
		if lg == nil {
			t.Fatal("no legend on figure")
		}
		_, labels := AllHandles(fig)
		if len(labels) != len(fig.Axes()) {
			t.Fatalf("got %d labels for %d axes", len(labels), len(fig.Axes()))
		}
		if diff := cmp.Diff(labels, lg.ReadingOrder()); diff != "" {
			t.Errorf("reading order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps existing legend", func(t *testing.T) {
		fig, err := r.Figure(Options{Demo: "survey", Legend: true, Columns: 2})
		if err != nil {
			t.Fatal(err)
		}
		n := 0
		for _, a := range fig.Artists() {
			if _, ok := a.(*legend.Legend); ok {
				n++
			}
		}
		if n != 1 {
			t.Errorf("figure has %d legends, want 1", n)
		}
	})

	t.Run("applies config page", func(t *testing.T) {
		cfg := config.Default()
		cfg.Figure.Width, cfg.Figure.Height = 3, 2
		fig, err := r.Figure(Options{Demo: "pie", Config: cfg})
		if err != nil {
			t.Fatal(err)
		}
		if fig.Width != 3*vg.Inch || fig.Height != 2*vg.Inch {
			t.Errorf("page = %vx%v, want 3inx2in", fig.Width, fig.Height)
		}
	})
}
