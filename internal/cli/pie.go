package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotkit/pkg/charts"
	"github.com/matzehuels/plotkit/pkg/config"
	"github.com/matzehuels/plotkit/pkg/errors"
	"github.com/matzehuels/plotkit/pkg/figure"
	"github.com/matzehuels/plotkit/pkg/legend"
	"github.com/matzehuels/plotkit/pkg/pipeline"
	"github.com/matzehuels/plotkit/pkg/sink"
	"github.com/matzehuels/plotkit/pkg/tally"
)

type pieOpts struct {
	output      string
	explodeTop  bool
	reverse     bool
	startAngle  float64
	autoPct     string
	ncol        int
	dpi         float64
	transparent bool
	configPath  string
}

// pieCommand creates the pie command, which charts word counts.
func (c *CLI) pieCommand() *cobra.Command {
	opts := pieOpts{
		output:     "pie.svg",
		startAngle: 90,
		autoPct:    "%1.1f%%",
	}

	cmd := &cobra.Command{
		Use:   "pie [file]",
		Short: "Draw a pie chart of the words in a file or stdin",
		Long: `Draw a pie chart of the whitespace-separated words in a file, or in
standard input when no file is given. Each distinct word becomes one wedge.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(errors.ErrCodeIO, err, "open %s", args[0])
				}
				defer f.Close()
				in = f
			}
			return c.runPie(cmd, in, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file; the extension selects the format")
	cmd.Flags().BoolVar(&opts.explodeTop, "explode-top", false, "offset the most common wedge")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "lay out wedges least common first")
	cmd.Flags().Float64Var(&opts.startAngle, "start-angle", opts.startAngle, "angle of the first wedge edge in degrees")
	cmd.Flags().StringVar(&opts.autoPct, "autopct", opts.autoPct, "printf format for wedge percentages (empty to hide)")
	cmd.Flags().IntVar(&opts.ncol, "ncol", 0, "add a horizontal legend with this many columns")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "raster resolution in dots per inch")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "render with transparent backgrounds")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML style file")

	return cmd
}

// readTally counts the whitespace-separated words read from r.
func readTally(r io.Reader) (*tally.Tally, error) {
	t := tally.New()
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		t.Add(sc.Text(), 1)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read words")
	}
	return t, nil
}

func (c *CLI) runPie(cmd *cobra.Command, in io.Reader, opts pieOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	t, err := readTally(in)
	if err != nil {
		return err
	}
	if t.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no words to count")
	}
	logger.Debugf("Counted %d words, %d distinct", t.Total(), t.Len())

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	fig, _, _, err := charts.TallyPie(t, opts.explodeTop, charts.PieOptions{
		AutoPct:    opts.autoPct,
		StartAngle: opts.startAngle,
		Reverse:    opts.reverse,
	})
	if err != nil {
		return err
	}

	var saveOpts []sink.SaveOption
	if cfg != nil {
		if err := cfg.ApplyFigure(fig); err != nil {
			return err
		}
		if saveOpts, err = cfg.SaveOptions(); err != nil {
			return err
		}
	}
	if opts.ncol != 0 {
		if err := addLegend(fig, cfg, opts.ncol); err != nil {
			return err
		}
	}
	if opts.dpi != 0 {
		if err := errors.ValidateDPI(opts.dpi); err != nil {
			return err
		}
		saveOpts = append(saveOpts, sink.WithDPI(opts.dpi))
	}
	if opts.transparent {
		saveOpts = append(saveOpts, sink.WithTransparent(true))
	}

	if err := sink.SaveFile(fig, opts.output, saveOpts...); err != nil {
		return err
	}
	prog.done("Drew pie chart")

	out := cmd.OutOrStdout()
	printSuccess(out, "Drew %d wedges from %d words", t.Len(), t.Total())
	printFile(out, opts.output)
	return nil
}

// addLegend places a horizontal legend gathered from every axes of fig.
func addLegend(fig *figure.Figure, cfg *config.Config, ncol int) error {
	var lopts []legend.Option
	if cfg != nil {
		var err error
		if lopts, err = cfg.LegendOptions(); err != nil {
			return err
		}
	}
	handles, labels := pipeline.AllHandles(fig)
	_, err := legend.Horizontal(fig, handles, labels, append(lopts, legend.WithColumns(ncol))...)
	return err
}
