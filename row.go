package datatable

import "fmt"

// NormalizedRow is a row reduced to its cells and style.
type NormalizedRow struct {
	Cells []Cell
	CSS   string
	Style Style
}

// NormalizeRow reduces r to one shape. Plain [Cells] take defaultCSS; a
// [RowContent] keeps its own CSS when it has one.
func NormalizeRow(r Row, defaultCSS string) (NormalizedRow, error) {
	switch r := r.(type) {
	case Cells:
		return NormalizedRow{Cells: r, CSS: defaultCSS}, nil
	case RowContent:
		return normalizeRowContent(r, defaultCSS), nil
	case *RowContent:
		if r != nil {
			return normalizeRowContent(*r, defaultCSS), nil
		}
	}
	return NormalizedRow{}, fmt.Errorf("%w: %T is neither a cell list nor row content", ErrInvalidRow, r)
}

func normalizeRowContent(r RowContent, defaultCSS string) NormalizedRow {
	css := r.CSS
	if css == "" {
		css = defaultCSS
	}
	return NormalizedRow{Cells: r.Cells, CSS: css, Style: r.Style}
}

// rowWidth is the number of cells in r.
func rowWidth(r Row) (int, error) {
	n, err := NormalizeRow(r, "")
	if err != nil {
		return 0, err
	}
	return len(n.Cells), nil
}
