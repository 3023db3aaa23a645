// Package pipeline builds, renders and caches plotkit figures.
//
// The CLI and the HTTP server share one Runner so that both entry points
// apply configuration, legends and caching the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Demo:    "markevery",
//	    Formats: []string{"svg", "png"},
//	    Legend:  true,
//	    Columns: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/plotkit/pkg/cache"
	"github.com/matzehuels/plotkit/pkg/config"
	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/sink"
)

// DefaultFormat is used when neither the options nor the config name one.
const DefaultFormat = sink.FormatSVG

// Options describes one render request.
type Options struct {
	Demo    string
	Formats []string

	// DPI overrides the figure resolution for raster formats when nonzero.
	// It must lie in (0, errors.MaxDPI].
	DPI         float64
	Transparent bool

	// Legend adds a horizontal legend built from the handles of every axes.
	Legend  bool
	Columns int

	// Config supplies figure, legend and save settings. May be nil.
	Config *config.Config
}

// Result holds the encoded figure per format.
type Result struct {
	Artifacts map[string][]byte
	CacheHit  bool
	Duration  time.Duration
}

// ValidateAndSetDefaults normalizes formats and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Demo == "" {
		return errors.New(errors.ErrCodeInvalidInput, "demo name is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{o.defaultFormat()}
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := o.Formats[:0:0]
	for _, f := range o.Formats {
		nf, err := sink.NormalizeFormat(f)
		if err != nil {
			return err
		}
		if !seen[nf] {
			seen[nf] = true
			formats = append(formats, nf)
		}
	}
	o.Formats = formats

	if o.DPI != 0 {
		if err := errors.ValidateDPI(o.DPI); err != nil {
			return err
		}
	}
	if o.Legend {
		if o.Columns == 0 {
			o.Columns = o.configColumns()
		}
		if err := errors.ValidateColumns(o.Columns); err != nil {
			return err
		}
	}
	if o.Config != nil {
		if err := o.Config.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) defaultFormat() string {
	if o.Config != nil && o.Config.Save.Format != "" {
		return o.Config.Save.Format
	}
	return DefaultFormat
}

func (o *Options) configColumns() int {
	if o.Config != nil && o.Config.Legend.NCol > 0 {
		return o.Config.Legend.NCol
	}
	return 1
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		DPI:         o.DPI,
		Transparent: o.Transparent,
		Legend:      o.Legend,
	}
	if o.Legend {
		k.Columns = o.Columns
	}
	if o.Config != nil {
		k.Config = o.Config.Fingerprint()
	}
	return k
}
