package datatable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle controls the border characters of the text table.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a border style name: rounded, none, ascii, heavy or
// double.
func ParseBorder(s string) (BorderStyle, error) {
	if b, ok := borderNames[s]; ok {
		return b, nil
	}
	return BorderRounded, fmt.Errorf("%w: border %q", ErrUnsupportedFormat, s)
}

// TextOptions tunes [WriteText].
type TextOptions struct {
	Border BorderStyle

	// MaxWidth truncates cells wider than this with "...". Zero means no
	// limit.
	MaxWidth int
}

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// textCell is a cell placed on the text grid.
type textCell struct {
	text   string
	start  int
	span   int
	header bool
}

type textRow struct {
	cells  []textCell
	header bool
}

func writeTable(w io.Writer, g Grid) error {
	return WriteText(w, g, TextOptions{})
}

// WriteText renders g as a text table.
//
// The table is as wide as the row with the most cells. Spans running past
// the last column are cut short, and cells pushed past it are dropped. A
// separator line follows every header row.
func WriteText(w io.Writer, g Grid, opts TextOptions) error {
	numCols := g.Width()
	if numCols == 0 {
		return nil
	}
	rows := layoutRows(g, numCols, opts.MaxWidth)
	if opts.Border == BorderNone {
		return renderPlainTable(w, rows, computeWidths(numCols, rows, plainGap))
	}
	bc, ok := borderSets[opts.Border]
	if !ok {
		return fmt.Errorf("%w: border style %d", ErrUnsupportedFormat, opts.Border)
	}
	return renderBorderedTable(w, rows, computeWidths(numCols, rows, borderGap), bc)
}

func layoutRows(g Grid, numCols, maxWidth int) []textRow {
	rows := make([]textRow, len(g.Rows))
	for i, r := range g.Rows {
		tr := textRow{header: headerRow(r)}
		pos := 0
		for _, c := range r.Cells {
			if pos >= numCols {
				break
			}
			span := min(max(c.Span, 1), numCols-pos)
			tr.cells = append(tr.cells, textCell{
				text:   cellText(c.Content, maxWidth),
				start:  pos,
				span:   span,
				header: c.Header,
			})
			pos += span
		}
		for ; pos < numCols; pos++ {
			tr.cells = append(tr.cells, textCell{start: pos, span: 1})
		}
		rows[i] = tr
	}
	return rows
}

var lineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func cellText(content any, maxWidth int) string {
	s := lineFlattener.Replace(String(content))
	if maxWidth > 0 && runewidth.StringWidth(s) > maxWidth {
		if maxWidth <= 3 {
			return runewidth.Truncate(s, maxWidth, "")
		}
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return s
}

// Space between two column contents: " │ " when bordered, two blanks when
// plain.
const (
	borderGap = 3
	plainGap  = 2
)

// computeWidths sizes columns from single-column cells first, then widens
// the last column under any spanned cell that still does not fit.
func computeWidths(numCols int, rows []textRow, gap int) []int {
	widths := make([]int, numCols)
	for _, r := range rows {
		for _, c := range r.cells {
			if c.span == 1 {
				widths[c.start] = max(widths[c.start], runewidth.StringWidth(c.text))
			}
		}
	}
	for _, r := range rows {
		for _, c := range r.cells {
			if c.span == 1 {
				continue
			}
			have := spannedWidth(widths[c.start:c.start+c.span], gap)
			if need := runewidth.StringWidth(c.text); need > have {
				widths[c.start+c.span-1] += need - have
			}
		}
	}
	return widths
}

// spannedWidth is the room a cell covering widths has, counting the gap
// between columns it swallows.
func spannedWidth(widths []int, gap int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n + gap*(len(widths)-1)
}

func alignFor(c textCell) Alignment {
	if c.header && c.span > 1 {
		return AlignCenter
	}
	return AlignLeft
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, rows []textRow, widths []int) error {
	for _, r := range rows {
		parts := make([]string, len(r.cells))
		for i, c := range r.cells {
			parts[i] = alignCell(c.text, spannedWidth(widths[c.start:c.start+c.span], plainGap), alignFor(c))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
			return err
		}
		if r.header {
			if err := writePlainSep(w, widths); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, rows []textRow, widths []int, bc borderChars) error {
	var above []textCell
	for i, r := range rows {
		if i == 0 {
			if err := drawHLine(w, widths, above, r.cells, bc); err != nil {
				return err
			}
		}
		if err := drawBorderedRow(w, r, widths, bc.vertical); err != nil {
			return err
		}
		if r.header && i < len(rows)-1 {
			if err := drawHLine(w, widths, r.cells, rows[i+1].cells, bc); err != nil {
				return err
			}
		}
		above = r.cells
	}
	return drawHLine(w, widths, above, nil, bc)
}

// boundaries marks the column indexes where a cell starts, excluding the
// first column.
func boundaries(cells []textCell, numCols int) []bool {
	b := make([]bool, numCols)
	for _, c := range cells {
		if c.start > 0 {
			b[c.start] = true
		}
	}
	return b
}

// drawHLine draws a horizontal rule between the rows holding above and
// below. Either may be nil at the table's edges; junctions follow the column
// boundaries on each side.
func drawHLine(w io.Writer, widths []int, above, below []textCell, bc borderChars) error {
	up := boundaries(above, len(widths))
	down := boundaries(below, len(widths))

	left, right := bc.leftTee, bc.rightTee
	switch {
	case above == nil:
		left, right = bc.topLeft, bc.topRight
	case below == nil:
		left, right = bc.bottomLeft, bc.bottomRight
	}

	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		if i > 0 {
			switch {
			case up[i] && down[i]:
				sb.WriteString(bc.cross)
			case down[i]:
				sb.WriteString(bc.topTee)
			case up[i]:
				sb.WriteString(bc.bottomTee)
			default:
				sb.WriteString(bc.horizontal)
			}
		}
		sb.WriteString(strings.Repeat(bc.horizontal, width+2))
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, r textRow, widths []int, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for _, c := range r.cells {
		sb.WriteString(" ")
		sb.WriteString(alignCell(c.text, spannedWidth(widths[c.start:c.start+c.span], borderGap), alignFor(c)))
		sb.WriteString(" ")
		sb.WriteString(vert)
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// Alignment controls cell text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
