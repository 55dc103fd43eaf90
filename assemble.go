package datatable

import (
	"fmt"
	"strconv"
)

// Resolve turns t into a [Grid].
//
// Rows and cells keep their input order. The column index handed to a
// [Renderer] counts cells seen in the row, not grid columns covered, so a
// renderer in the third cell always gets 2.
//
// A [FullWidth] span becomes the cell count of the widest row. That width is
// measured once per call, the first time a cell asks for it.
//
// Any error, including one returned by a Renderer, aborts the call.
func Resolve(t Table) (Grid, error) {
	grid := Grid{CSS: t.TableCSS, Rows: make([]ResolvedRow, 0, len(t.Rows))}
	for row, err := range Rows(t) {
		if err != nil {
			return Grid{}, err
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

// MaxWidth returns the cell count of the widest row in t.
func MaxWidth(t Table) (int, error) {
	n := 0
	for i, r := range t.Rows {
		w, err := rowWidth(r)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		n = max(n, w)
	}
	return n, nil
}

// assembly is the state of one Resolve call.
type assembly struct {
	table *Table

	maxWidth int
	measured bool
}

func (a *assembly) fullWidth() (int, error) {
	if !a.measured {
		w, err := MaxWidth(*a.table)
		if err != nil {
			return 0, err
		}
		a.maxWidth, a.measured = w, true
	}
	return a.maxWidth, nil
}

func (a *assembly) key(i int) string {
	if len(a.table.RowKeys) > 0 {
		return a.table.RowKeys[i]
	}
	return strconv.Itoa(i)
}

func (a *assembly) row(i int, r Row) (ResolvedRow, error) {
	n, err := NormalizeRow(r, a.table.RowCSS)
	if err != nil {
		return ResolvedRow{}, fmt.Errorf("row %d: %w", i, err)
	}

	out := ResolvedRow{
		Key:   a.key(i),
		Index: i,
		CSS:   n.CSS,
		Style: n.Style,
		Cells: make([]ResolvedCell, 0, len(n.Cells)),
	}
	for col, c := range n.Cells {
		rc, err := ResolveCell(c, i, col)
		if err != nil {
			return ResolvedRow{}, err
		}
		if rc.Span == int(FullWidth) {
			if rc.Span, err = a.fullWidth(); err != nil {
				return ResolvedRow{}, err
			}
		}
		out.Cells = append(out.Cells, rc)
	}
	return out, nil
}
