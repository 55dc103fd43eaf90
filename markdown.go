package datatable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// writeMarkdown renders a GitHub-flavored table. Markdown has no column
// spans, so the first row becomes the header and spanned cells are followed
// by empty ones.
func writeMarkdown(w io.Writer, g Grid) error {
	numCols := g.Width()
	if numCols == 0 {
		return nil
	}

	rows := make([][]string, len(g.Rows))
	for i, r := range g.Rows {
		rows[i] = expandRow(r, numCols)
		for j, cell := range rows[i] {
			rows[i][j] = markdownEscaper.Replace(cell)
		}
	}

	// Calculate column widths (minimum 3 for the separator).
	widths := make([]int, numCols)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	if err := writeMarkdownRow(w, rows[0], widths); err != nil {
		return err
	}
	sep := make([]string, numCols)
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows[1:] {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, AlignLeft)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
