package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotkit/pkg/reflow"
)

// reflowCommand prints the column-major order that makes a multi-column
// legend read row by row.
func (c *CLI) reflowCommand() *cobra.Command {
	var (
		ncol  int
		strip bool
		grid  bool
	)

	cmd := &cobra.Command{
		Use:   "reflow --ncol N items...",
		Short: "Print the column-major order of items for an N-column legend",
		Long: `Print the order in which items must be handed to a legend that fills
columns top to bottom so that it reads left to right, row by row.

Missing cells of the last row are shown as "_" unless --strip is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReflow(cmd, args, ncol, strip, grid)
		},
	}

	cmd.Flags().IntVarP(&ncol, "ncol", "n", 1, "number of legend columns")
	cmd.Flags().BoolVar(&strip, "strip", false, "drop missing cells (legend order)")
	cmd.Flags().BoolVar(&grid, "grid", true, "print the row-major layout as a table")

	return cmd
}

func runReflow(cmd *cobra.Command, items []string, ncol int, strip, grid bool) error {
	out := cmd.OutOrStdout()

	var order []string
	if strip {
		_, labels, err := reflow.Legend(items, items, ncol)
		if err != nil {
			return err
		}
		order = labels
	} else {
		seq, err := reflow.Transpose(items, ncol)
		if err != nil {
			return err
		}
		for cell := range seq {
			if cell.Present {
				order = append(order, cell.Value)
			} else {
				order = append(order, iconMissing)
			}
		}
	}
	fmt.Fprintln(out, strings.Join(order, " "))

	if !grid {
		return nil
	}
	rows, err := reflow.Chunks(items, ncol)
	if err != nil {
		return err
	}
	width := min(ncol, len(items))
	headers := make([]string, width)
	for j := range headers {
		headers[j] = fmt.Sprintf("col %d", j+1)
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, width)
		for j := range width {
			cells[i][j] = iconMissing
			if j < len(row) {
				cells[i][j] = row[j]
			}
		}
	}
	fmt.Fprintln(out, renderGrid(headers, cells))
	return nil
}
