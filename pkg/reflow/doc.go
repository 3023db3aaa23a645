// Package reflow reorders flat sequences between column-major and row-major
// reading order.
//
// # Overview
//
// A multi-column legend is filled top-to-bottom within each column. Reading
// such a legend left-to-right therefore jumps around in the original item
// order. Reflowing the items before handing them to the legend makes the
// rows read in the original order instead:
//
//	items:  1 2 3 4 5 6 7    (ncol = 3)
//	chunks: [1 2 3] [4 5 6] [7]
//	output: 1 4 7 2 5 _ 3 6 _
//
// The output is the chunk grid read column by column. Positions that fall
// past the end of the short last chunk are missing-markers.
//
// # Variants
//
// [Transpose] keeps the missing-markers so the result stays position-aligned
// with any other sequence reflowed with the same column count. It returns a
// lazy, single-pass [iter.Seq].
//
// [Legend] reflows a handle sequence and a label sequence in lockstep and
// strips the missing-markers from both. Because both are chunked the same
// way the markers coincide, so handle i still belongs to label i.
//
// # Errors
//
// A column count below one returns an error with code
// [errors.ErrCodeInvalidColumns]. [Legend] additionally rejects handle and
// label sequences of different lengths with [errors.ErrCodeLengthMismatch].
// Nothing is produced when an error is returned.
//
// [errors.ErrCodeInvalidColumns]: github.com/matzehuels/plotkit/pkg/errors.ErrCodeInvalidColumns
// [errors.ErrCodeLengthMismatch]: github.com/matzehuels/plotkit/pkg/errors.ErrCodeLengthMismatch
package reflow
