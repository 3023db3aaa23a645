package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot"

	"github.com/matzehuels/plotkit/pkg/cache"
	"github.com/matzehuels/plotkit/pkg/charts"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/legend"
	"github.com/matzehuels/plotkit/pkg/observability"
	"github.com/matzehuels/plotkit/pkg/sink"
)

const artifactKeyType = "artifact"

// Runner renders demo figures with caching.
//
// The Runner holds no per-request state, so multiple goroutines can share
// one Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute renders opts.Demo in every requested format. When all formats are
// cached the figure is not built at all.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	if artifacts, ok := r.cached(ctx, opts); ok {
		r.Logger.Debug("served from cache", "demo", opts.Demo, "formats", opts.Formats)
		return &Result{Artifacts: artifacts, CacheHit: true, Duration: time.Since(start)}, nil
	}

	fig, err := r.Figure(opts)
	if err != nil {
		return nil, err
	}

	saveOpts, err := opts.saveOptions()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.render(ctx, fig, opts.Demo, format, saveOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		key := cache.ArtifactKey(opts.Demo, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "demo", opts.Demo, "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
	}

	res := &Result{Artifacts: artifacts, Duration: time.Since(start)}
	r.Logger.Info("rendered outputs",
		"demo", opts.Demo,
		"formats", opts.Formats,
		"duration", res.Duration)
	return res, nil
}

// Figure builds the demo figure and applies the configured figure settings
// and the optional horizontal legend.
func (r *Runner) Figure(opts Options) (*figure.Figure, error) {
	fig, err := charts.Build(opts.Demo)
	if err != nil {
		return nil, err
	}
	if opts.Config != nil {
		if err := opts.Config.ApplyFigure(fig); err != nil {
			return nil, err
		}
	}
	if !opts.Legend {
		return fig, nil
	}
	if hasLegend(fig) {
		r.Logger.Debug("figure already has a legend", "demo", opts.Demo)
		return fig, nil
	}

	var lopts []legend.Option
	if opts.Config != nil {
		if lopts, err = opts.Config.LegendOptions(); err != nil {
			return nil, err
		}
	}
	lopts = append(lopts, legend.WithColumns(opts.Columns))

	handles, labels := AllHandles(fig)
	if _, err := legend.Horizontal(fig, handles, labels, lopts...); err != nil {
		return nil, err
	}
	return fig, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cached(ctx context.Context, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(opts.Demo, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, artifactKeyType)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, artifactKeyType)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) render(ctx context.Context, fig *figure.Figure, demo, format string, opts []sink.SaveOption) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, demo, format)
	data, err := sink.Render(fig, format, opts...)
	observability.Render().OnRenderComplete(ctx, demo, format, len(data), time.Since(start), err)
	return data, err
}

func (o *Options) saveOptions() ([]sink.SaveOption, error) {
	var opts []sink.SaveOption
	if o.Config != nil {
		var err error
		if opts, err = o.Config.SaveOptions(); err != nil {
			return nil, err
		}
	}
	if o.DPI > 0 {
		opts = append(opts, sink.WithDPI(o.DPI))
	}
	if o.Transparent {
		opts = append(opts, sink.WithTransparent(true))
	}
	return opts, nil
}

// AllHandles returns the legend handles and labels of every axes in fig,
// in axes order.
func AllHandles(fig *figure.Figure) ([]plot.Thumbnailer, []string) {
	var handles []plot.Thumbnailer
	var labels []string
	for _, ax := range fig.Axes() {
		h, l := ax.HandlesLabels()
		handles = append(handles, h...)
		labels = append(labels, l...)
	}
	return handles, labels
}

func hasLegend(fig *figure.Figure) bool {
	for _, a := range fig.Artists() {
		if _, ok := a.(*legend.Legend); ok {
			return true
		}
	}
	return false
}
