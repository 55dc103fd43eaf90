package datatable

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeTable reads a table document in YAML or JSON from r.
//
// The document has the same shape as a [Table]:
//
//	rows:
//	  - [1, 2, {content: 3, css: bold}]
//	  - rowContent: [{header: Total, colSpan: 0}]
//	    css: total-row
//	rowKeys: [first, total]
//	rowCss: row
//	tableCss: table
//
// A cell is null, a scalar, or a mapping with content or header, value,
// meta, colSpan (0 for full width), colMergeSpan, css and style. Content
// given as {markup: "..."} becomes [Markup].
func DecodeTable(r io.Reader) (Table, error) {
	var t Table
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return Table{}, err
	}
	return t, nil
}

type tableDoc struct {
	Rows     []yaml.Node `yaml:"rows"`
	RowKeys  []string    `yaml:"rowKeys,omitempty"`
	RowCSS   string      `yaml:"rowCss,omitempty"`
	TableCSS string      `yaml:"tableCss,omitempty"`
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	var doc tableDoc
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	rows := make([]Row, len(doc.Rows))
	for i := range doc.Rows {
		r, err := decodeRow(&doc.Rows[i])
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = r
	}
	*t = Table{Rows: rows, RowKeys: doc.RowKeys, RowCSS: doc.RowCSS, TableCSS: doc.TableCSS}
	return nil
}

func decodeRow(n *yaml.Node) (Row, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		return decodeCells(n)
	case yaml.MappingNode:
		var doc struct {
			RowContent yaml.Node `yaml:"rowContent"`
			CSS        string    `yaml:"css"`
			Style      Style     `yaml:"style"`
		}
		if err := n.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, n.Line, err)
		}
		if doc.RowContent.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: line %d: rowContent must be a list", ErrInvalidRow, n.Line)
		}
		cells, err := decodeCells(&doc.RowContent)
		if err != nil {
			return nil, err
		}
		return RowContent{Cells: cells, CSS: doc.CSS, Style: doc.Style}, nil
	default:
		return nil, fmt.Errorf("%w: line %d: expected a list or a mapping with rowContent", ErrInvalidRow, n.Line)
	}
}

func decodeCells(n *yaml.Node) (Cells, error) {
	cells := make(Cells, len(n.Content))
	for i, cn := range n.Content {
		c, err := decodeCell(cn)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i] = c
	}
	return cells, nil
}

type cellDoc struct {
	Content      yaml.Node `yaml:"content"`
	Header       yaml.Node `yaml:"header"`
	Value        any       `yaml:"value"`
	Meta         any       `yaml:"meta"`
	ColSpan      *int      `yaml:"colSpan"`
	ColMergeSpan int       `yaml:"colMergeSpan"`
	CSS          string    `yaml:"css"`
	Style        Style     `yaml:"style"`
}

func decodeCell(n *yaml.Node) (Cell, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		v, err := scalarValue(n)
		if err != nil {
			return nil, err
		}
		return V(v), nil
	case yaml.MappingNode:
		var doc cellDoc
		if err := n.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCell, n.Line, err)
		}
		d := Descriptor{
			Value:     doc.Value,
			Meta:      doc.Meta,
			MergeSpan: doc.ColMergeSpan,
			CSS:       doc.CSS,
			Style:     doc.Style,
		}
		if doc.ColSpan != nil {
			switch span := *doc.ColSpan; {
			case span < 0:
				return nil, fmt.Errorf("%w: line %d: colSpan must not be negative, got %d", ErrInvalidCell, n.Line, span)
			case span == 0:
				d.ColSpan = FullWidth
			default:
				d.ColSpan = Span(span)
			}
		}
		var err error
		if d.Content, err = decodeContent(&doc.Content); err != nil {
			return nil, err
		}
		if d.Header, err = decodeContent(&doc.Header); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: line %d: expected a scalar or a mapping", ErrInvalidCell, n.Line)
	}
}

// decodeContent reads a content or header field. A field that is absent or
// null yields no content.
func decodeContent(n *yaml.Node) (Content, error) {
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return nil, nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := scalarValue(n)
		if err != nil {
			return nil, err
		}
		return V(v), nil
	case yaml.MappingNode:
		var doc struct {
			Markup *string `yaml:"markup"`
		}
		if err := n.Decode(&doc); err != nil || doc.Markup == nil {
			return nil, fmt.Errorf("%w: line %d: content may not be a nested cell", ErrInvalidCell, n.Line)
		}
		return V(Markup(*doc.Markup)), nil
	default:
		return nil, fmt.Errorf("%w: line %d: content must be a scalar", ErrInvalidCell, n.Line)
	}
}

func scalarValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCell, n.Line, err)
	}
	return v, nil
}

// --- Encoding ---

// MarshalYAML implements [yaml.Marshaler]. Tables holding a [Renderer]
// cannot be encoded and fail with [ErrNotSerializable].
func (t Table) MarshalYAML() (any, error) {
	doc := struct {
		Rows     []any    `yaml:"rows"`
		RowKeys  []string `yaml:"rowKeys,omitempty"`
		RowCSS   string   `yaml:"rowCss,omitempty"`
		TableCSS string   `yaml:"tableCss,omitempty"`
	}{
		Rows:     make([]any, len(t.Rows)),
		RowKeys:  t.RowKeys,
		RowCSS:   t.RowCSS,
		TableCSS: t.TableCSS,
	}
	for i, r := range t.Rows {
		n, err := NormalizeRow(r, "")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		cells := make([]any, len(n.Cells))
		for j, c := range n.Cells {
			if cells[j], err = encodeCell(c); err != nil {
				return nil, fmt.Errorf("row %d, cell %d: %w", i, j, err)
			}
		}
		if _, plain := r.(Cells); plain {
			doc.Rows[i] = cells
			continue
		}
		doc.Rows[i] = struct {
			RowContent []any  `yaml:"rowContent"`
			CSS        string `yaml:"css,omitempty"`
			Style      Style  `yaml:"style,omitempty"`
		}{cells, n.CSS, n.Style}
	}
	return doc, nil
}

type cellOut struct {
	Content      any    `yaml:"content,omitempty"`
	Header       any    `yaml:"header,omitempty"`
	Value        any    `yaml:"value,omitempty"`
	Meta         any    `yaml:"meta,omitempty"`
	ColSpan      *int   `yaml:"colSpan,omitempty"`
	ColMergeSpan int    `yaml:"colMergeSpan,omitempty"`
	CSS          string `yaml:"css,omitempty"`
	Style        Style  `yaml:"style,omitempty"`
}

func encodeCell(c Cell) (any, error) {
	switch c := c.(type) {
	case nil:
		return nil, nil
	case Scalar:
		return encodeScalar(c.Value), nil
	case *Scalar:
		if c == nil {
			return nil, nil
		}
		return encodeScalar(c.Value), nil
	case *Descriptor:
		if c == nil {
			return nil, nil
		}
		return encodeDescriptor(*c)
	case Descriptor:
		return encodeDescriptor(c)
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotSerializable, c)
	}
}

func encodeDescriptor(d Descriptor) (any, error) {
	out := cellOut{
		Value:        d.Value,
		Meta:         d.Meta,
		ColMergeSpan: d.MergeSpan,
		CSS:          d.CSS,
		Style:        d.Style,
	}
	switch {
	case d.ColSpan == FullWidth:
		out.ColSpan = new(int)
	case d.ColSpan > 0:
		n := int(d.ColSpan)
		out.ColSpan = &n
	}
	var err error
	if out.Content, err = encodeContent(d.Content); err != nil {
		return nil, err
	}
	if out.Header, err = encodeContent(d.Header); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeContent(c Content) (any, error) {
	switch c := c.(type) {
	case nil:
		return nil, nil
	case Scalar:
		return encodeScalar(c.Value), nil
	default:
		return nil, fmt.Errorf("%w: %T content", ErrNotSerializable, c)
	}
}

func encodeScalar(v any) any {
	if m, ok := v.(Markup); ok {
		return map[string]string{"markup": string(m)}
	}
	return v
}
