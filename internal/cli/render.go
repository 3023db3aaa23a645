package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotkit/pkg/charts"
	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path (or base path for multiple formats)
	formats     string  // comma-separated output formats
	legend      bool    // add a horizontal legend from all axes
	ncol        int     // legend columns
	dpi         float64 // raster resolution
	transparent bool    // clear figure and axes backgrounds
	configPath  string  // TOML style file
	noCache     bool    // bypass the artifact cache
}

// renderCommand creates the render command for saving demo figures.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:       "render <demo>",
		Short:     "Render a demo figure to SVG, PNG, JPEG, TIFF, PDF or EPS",
		Args:      cobra.ExactArgs(1),
		ValidArgs: charts.Demos(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, jpg, tiff, pdf, eps (comma-separated)")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "add a horizontal legend built from every axes")
	cmd.Flags().IntVar(&opts.ncol, "ncol", 0, "legend columns (implies --legend)")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "raster resolution in dots per inch")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "render with transparent backgrounds")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML style file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, demo string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	if !slices.Contains(charts.Demos(), demo) {
		return errors.New(errors.ErrCodeNotFound, "unknown demo %q (run %s list)", demo, appName)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Demo:        demo,
		Formats:     parseFormats(opts.formats),
		DPI:         opts.dpi,
		Transparent: opts.transparent,
		Legend:      opts.legend || opts.ncol != 0,
		Columns:     opts.ncol,
		Config:      cfg,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+demo)
	spin.Start()
	res, err := runner.Execute(ctx, popts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("Rendered " + demo)

	out := cmd.OutOrStdout()
	paths := outputPaths(opts.output, demo, popts.Formats)
	total := 0
	printSuccess(out, "Rendered %s", demo)
	for _, format := range popts.Formats {
		data := res.Artifacts[format]
		if err := os.WriteFile(paths[format], data, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", paths[format])
		}
		logger.Debugf("Wrote %s: %d bytes", paths[format], len(data))
		total += len(data)
		printFile(out, paths[format])
	}
	printRenderStats(out, popts.Formats, total, res.CacheHit)
	return nil
}

// listCommand prints the registered demos.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demo figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render("Demos"))
			for _, d := range charts.Catalog() {
				printKeyValue(out, d.Name, d.Description)
			}
			return nil
		},
	}
}
