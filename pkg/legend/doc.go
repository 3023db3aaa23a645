// Package legend draws multi-column legends on a figure.
//
// gonum's own legend stacks entries in a single column. [Legend] lays
// entries out on a grid of [Options.Columns] columns, filling each column
// top to bottom before moving right. The first n%ncol columns hold one
// entry more than the rest.
//
// Column-major filling makes a legend read down the columns. [Horizontal]
// reflows handles and labels first so that the same legend reads across
// the rows in the original order:
//
//	fig, ax, _ := figure.Create(figure.A4.Landscape(), figure.DefaultMargins)
//	ax.Add("first", line1)
//	ax.Add("second", line2)
//	ax.Add("third", line3)
//	lg, err := legend.Horizontal(fig, nil, nil, legend.WithColumns(2))
//
// With nil handles and labels, [Horizontal] takes them from the figure's
// first axes.
package legend
