package sink

import (
	"io"
	"strings"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// CleanWriter writes s to w with trailing whitespace removed from every
// line and trailing blank lines dropped. Non-empty output always ends with
// a single newline; output that is blank in its entirety writes nothing.
func CleanWriter(w io.Writer, s string) error {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r\f\v")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write cleaned output")
	}
	return nil
}
