package datatable

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Rows resolves t one row at a time. Resolution stops at the first error,
// which is yielded with a zero row. Breaking out of the loop early is fine.
//
// Each range over the sequence measures full width on its own.
func Rows(t Table) iter.Seq2[ResolvedRow, error] {
	return func(yield func(ResolvedRow, error) bool) {
		if len(t.RowKeys) != 0 && len(t.RowKeys) != len(t.Rows) {
			yield(ResolvedRow{}, fmt.Errorf("%w: %d keys for %d rows", ErrRowKeys, len(t.RowKeys), len(t.Rows)))
			return
		}
		a := assembly{table: &t}
		for i, r := range t.Rows {
			row, err := a.row(i, r)
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// WriteRows renders rows as they arrive. JSONL, CSV and TSV are written
// row by row; CSV and TSV rows are laid out over their own spans rather than
// a common width. Other formats collect every row first and behave like
// [Write], except that the table CSS is not known here.
func WriteRows(w io.Writer, f Format, seq iter.Seq2[ResolvedRow, error]) error {
	switch f {
	case JSONL:
		enc := json.NewEncoder(w)
		return streamRows(seq, func(r ResolvedRow) error { return enc.Encode(r) })
	case CSV:
		cw := csv.NewWriter(w)
		return streamRows(seq, func(r ResolvedRow) error {
			if err := cw.Write(expandRow(r, spanWidth(r))); err != nil {
				return err
			}
			cw.Flush()
			return cw.Error()
		})
	case TSV:
		return streamRows(seq, func(r ResolvedRow) error {
			fields := expandRow(r, spanWidth(r))
			for i, field := range fields {
				fields[i] = tsvEscaper.Replace(field)
			}
			_, err := fmt.Fprintln(w, strings.Join(fields, "\t"))
			return err
		})
	default:
		var g Grid
		if err := streamRows(seq, func(r ResolvedRow) error {
			g.Rows = append(g.Rows, r)
			return nil
		}); err != nil {
			return err
		}
		return Write(w, f, g)
	}
}

func streamRows(seq iter.Seq2[ResolvedRow, error], fn func(ResolvedRow) error) error {
	for r, err := range seq {
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// spanWidth is the number of columns r covers.
func spanWidth(r ResolvedRow) int {
	n := 0
	for _, c := range r.Cells {
		n += max(c.Span, 1)
	}
	return n
}
