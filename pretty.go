package datatable

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// writePretty renders g with tablewriter. A leading header row becomes the
// table header. Spanned cells are followed by empty ones.
func writePretty(w io.Writer, g Grid) error {
	numCols := g.Width()
	if numCols == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	rows := g.Rows
	if headerRow(rows[0]) {
		table.SetHeader(expandRow(rows[0], numCols))
		rows = rows[1:]
	}
	for _, r := range rows {
		table.Append(expandRow(r, numCols))
	}
	table.Render()
	return nil
}
