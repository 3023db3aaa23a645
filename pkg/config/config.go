// Package config loads plotkit style files.
//
// A style file is TOML with three optional tables:
//
//	[figure]
//	page = "a4"              # or width/height in inches
//	orientation = "landscape"
//	dpi = 150
//	facecolor = "#ffffff"
//	edgecolor = "none"
//
//	[figure.margins]
//	left = 0.1
//
//	[legend]
//	ncol = 3
//	loc = "lower left"
//	anchor = [0.0, 1.0]
//	fontsize = 8
//	frame = false
//
//	[save]
//	format = "png"
//	transparent = true
//
// Unknown keys are rejected so that typos do not pass silently.
package config

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/plotkit/pkg/cache"
	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/sink"
)

// Config is a parsed style file.
type Config struct {
	Figure FigureConfig `toml:"figure"`
	Legend LegendConfig `toml:"legend"`
	Save   SaveConfig   `toml:"save"`
}

// FigureConfig is the [figure] table.
type FigureConfig struct {
	Page        string         `toml:"page"`
	Orientation string         `toml:"orientation"`
	Width       float64        `toml:"width"`
	Height      float64        `toml:"height"`
	DPI         float64        `toml:"dpi"`
	FaceColor   string         `toml:"facecolor"`
	EdgeColor   string         `toml:"edgecolor"`
	Margins     *MarginsConfig `toml:"margins"`
}

// MarginsConfig is the [figure.margins] table, in figure fractions.
type MarginsConfig struct {
	Left   float64 `toml:"left"`
	Bottom float64 `toml:"bottom"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`
}

// LegendConfig is the [legend] table.
type LegendConfig struct {
	NCol     int       `toml:"ncol"`
	Loc      string    `toml:"loc"`
	Anchor   []float64 `toml:"anchor"`
	FontSize float64   `toml:"fontsize"`
	Frame    *bool     `toml:"frame"`
	Title    string    `toml:"title"`
}

// SaveConfig is the [save] table.
type SaveConfig struct {
	Format      string  `toml:"format"`
	DPI         float64 `toml:"dpi"`
	Transparent bool    `toml:"transparent"`
	Orientation string  `toml:"orientation"`
}

// Default returns the built-in style.
func Default() *Config {
	return &Config{
		Legend: LegendConfig{NCol: 1, Loc: "upper right"},
		Save:   SaveConfig{Format: sink.FormatSVG},
	}
}

// Load reads and validates the style file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	return Decode(string(data))
}

// Decode parses and validates a style document. Keys left unset keep
// their default values.
func Decode(doc string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value of the config.
func (c *Config) Validate() error {
	checks := []func() error{
		func() error { _, err := c.PageSize(); return err },
		func() error { _, err := c.Margins(); return err },
		func() error { _, err := c.FigureOptions(); return err },
		func() error { _, err := c.LegendOptions(); return err },
		func() error { _, err := c.SaveOptions(); return err },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			if errors.IsInvalid(err) && errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config: %s", errors.UserMessage(err))
			}
			return err
		}
	}
	return nil
}

// Fingerprint returns a stable hash of the effective settings, used to
// key cached renders.
func (c *Config) Fingerprint() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}
