package datatable

import (
	"fmt"
	"io"
	"strings"
)

var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", "")

func writeTSV(w io.Writer, g Grid) error {
	width := g.Width()
	for _, r := range g.Rows {
		fields := expandRow(r, width)
		for i, f := range fields {
			fields[i] = tsvEscaper.Replace(f)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}
