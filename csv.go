package datatable

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, g Grid) error {
	width := g.Width()
	cw := csv.NewWriter(w)
	for _, r := range g.Rows {
		if err := cw.Write(expandRow(r, width)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
