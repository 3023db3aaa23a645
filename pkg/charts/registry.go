package charts

import (
	"slices"

	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/tally"
)

// Demo is a named figure builder.
type Demo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	build       func() (*figure.Figure, error)
}

var demos = []Demo{
	{
		Name:        "hatch-histograms",
		Description: "Stacked hatched histograms of four normal samples",
		build: func() (*figure.Figure, error) {
			fig, _, err := HatchFilledHistograms(HistogramSeed)
			return fig, err
		},
	},
	{
		Name:        "survey",
		Description: "Survey answers as stacked horizontal bars with a horizontal legend",
		build: func() (*figure.Figure, error) {
			fig, _, err := Survey(SurveyResults, SurveyCategories)
			return fig, err
		},
	},
	{
		Name:        "koch-snowflake",
		Description: "Filled Koch snowflake of order 5",
		build: func() (*figure.Figure, error) {
			fig, _, err := KochSnowflake(5)
			return fig, err
		},
	},
	{
		Name:        "markevery",
		Description: "Line plots with different marker selections",
		build: func() (*figure.Figure, error) {
			fig, _, err := MarkEvery()
			return fig, err
		},
	},
	{
		Name:        "pie",
		Description: "Pie chart of pet counts with the most common pet exploded",
		build: func() (*figure.Figure, error) {
			fig, _, _, err := TallyPie(tally.New(PetWords...), true, PieOptions{AutoPct: "%1.1f%%", StartAngle: 90})
			return fig, err
		},
	},
}

// Demos returns the names of the registered demos.
func Demos() []string {
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.Name
	}
	return names
}

// Catalog returns the registered demos with their descriptions.
func Catalog() []Demo { return slices.Clone(demos) }

// Build constructs the demo figure called name.
func Build(name string) (*figure.Figure, error) {
	i := slices.IndexFunc(demos, func(d Demo) bool { return d.Name == name })
	if i < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown demo %q", name)
	}
	return demos[i].build()
}
