package datatable

import "fmt"

// ResolveCell resolves c, sitting at row and col, into a [ResolvedCell].
//
// A [FullWidth] request is passed through as a Span of -1; [Resolve]
// replaces it with the table's maximum row width.
func ResolveCell(c Cell, row, col int) (ResolvedCell, error) {
	out := ResolvedCell{Row: row, Col: col}
	switch c := c.(type) {
	case nil:
	case Scalar:
		out.Content = c.Value
	case *Scalar:
		if c != nil {
			out.Content = c.Value
		}
	case Descriptor:
		return resolveDescriptor(c, row, col)
	case *Descriptor:
		if c != nil {
			return resolveDescriptor(*c, row, col)
		}
	default:
		return out, fmt.Errorf("%w: unexpected %T at row %d, column %d", ErrInvalidCell, c, row, col)
	}
	out.Span = 1
	return out, nil
}

func resolveDescriptor(d Descriptor, row, col int) (ResolvedCell, error) {
	out := ResolvedCell{
		Header: d.Header != nil,
		Span:   requestedSpan(d.ColSpan, d.MergeSpan),
		Row:    row,
		Col:    col,
		CSS:    d.CSS,
		Style:  d.Style,
	}

	target := d.Content
	if d.Header != nil {
		target = d.Header
	}

	switch t := target.(type) {
	case nil:
		// Neither content nor header: an empty data cell.
	case Scalar:
		out.Content = t.Value
	case Renderer:
		if t == nil {
			break
		}
		v, err := t(col, row, d.Value, d.Meta)
		if err != nil {
			return out, fmt.Errorf("%w: row %d, column %d: %w", ErrRender, row, col, err)
		}
		if _, nested := v.(Cell); nested {
			return out, fmt.Errorf("%w: renderer at row %d, column %d returned a %T", ErrInvalidCell, row, col, v)
		}
		out.Content = v
	default:
		return out, fmt.Errorf("%w: unexpected content %T at row %d, column %d", ErrInvalidCell, t, row, col)
	}
	return out, nil
}

// requestedSpan turns a descriptor's span fields into a width, leaving
// FullWidth for the assembler.
func requestedSpan(span Span, merge int) int {
	switch {
	case span == FullWidth:
		return int(FullWidth)
	case span > 0:
		return int(span)
	case span == 0 && merge > 0:
		return merge
	default:
		return 1
	}
}
