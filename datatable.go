package datatable

import (
	"errors"
	"iter"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidRow        = errors.New("invalid row")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrRowKeys           = errors.New("row keys do not match rows")
	ErrRender            = errors.New("cell renderer failed")
	ErrMissingField      = errors.New("missing aggregation field")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNotSerializable   = errors.New("value is not serializable")
)

// --- Cell specifications ---

// Cell is one author-facing cell specification. It is either nil (an empty
// data cell), a [Scalar], or a [Descriptor].
type Cell interface {
	isCell()
}

// Content is what a [Descriptor] displays: a [Scalar] or a [Renderer].
type Content interface {
	isContent()
}

// Scalar is a leaf value rendered as-is. Value may be a string, a number, a
// [Markup] fragment or anything printable.
type Scalar struct {
	Value any
}

func (Scalar) isCell()    {}
func (Scalar) isContent() {}

// Renderer produces a cell's content on demand. It is called with the cell's
// column and row index and the descriptor's Value and Meta. The result is
// plain content; returning a [Cell] is an error.
type Renderer func(col, row int, value, meta any) (any, error)

func (Renderer) isContent() {}

// Markup is a pre-rendered HTML fragment. The HTML format writes it without
// escaping; text formats print it verbatim.
type Markup string

// Style holds inline style declarations, property to value. The package
// passes it through untouched.
type Style map[string]string

// Span is a requested column span.
//
// The zero value means no span was requested. [FullWidth] asks for the
// table's maximum row width.
type Span int

// FullWidth is the span sentinel. Loose documents spell it colSpan: 0.
const FullWidth Span = -1

// CategoryMergeSpan is the MergeSpan [Flatten] puts on category header rows.
const CategoryMergeSpan = 100

// Descriptor is a cell with options. Exactly one of Content or Header is
// normally set; Header wins when both are.
type Descriptor struct {
	Content Content
	Header  Content

	// Value and Meta are passed to a Renderer and otherwise ignored.
	Value any
	Meta  any

	ColSpan Span

	// MergeSpan is the colMergeSpan hint emitted by [Flatten]. It is only
	// used when ColSpan is absent.
	MergeSpan int

	CSS   string
	Style Style
}

func (Descriptor) isCell() {}

// V wraps a value as a [Scalar] cell.
func V(v any) Scalar { return Scalar{Value: v} }

// H returns a header cell showing v.
func H(v any) Descriptor { return Descriptor{Header: contentOf(v)} }

// C returns a data cell showing v.
func C(v any) Descriptor { return Descriptor{Content: contentOf(v)} }

func contentOf(v any) Content {
	switch c := v.(type) {
	case Content:
		return c
	case func(col, row int, value, meta any) (any, error):
		return Renderer(c)
	default:
		return Scalar{Value: v}
	}
}

// --- Rows and tables ---

// Row is one row specification: [Cells] or [RowContent].
type Row interface {
	isRow()
}

// Cells is a plain row. Its style falls back to the table default.
type Cells []Cell

func (Cells) isRow() {}

// RowContent is a row with its own style. A non-empty CSS overrides the
// table default.
type RowContent struct {
	Cells []Cell
	CSS   string
	Style Style
}

func (RowContent) isRow() {}

// Table is a complete table description.
type Table struct {
	Rows []Row

	// RowKeys, when set, holds one unique identity per row. Otherwise a row
	// is identified by its index.
	RowKeys []string

	RowCSS   string
	TableCSS string
}

// WithRows returns a copy of t showing rows instead. Row keys are dropped
// since they described the old rows.
func (t Table) WithRows(rows []Row) Table {
	t.Rows = rows
	t.RowKeys = nil
	return t
}

// --- Resolved output ---

// ResolvedCell is a cell ready for a rendering backend.
type ResolvedCell struct {
	Content any    `json:"content" yaml:"content"`
	Header  bool   `json:"header,omitempty" yaml:"header,omitempty"`
	Span    int    `json:"span" yaml:"span"`
	Row     int    `json:"row" yaml:"row"`
	Col     int    `json:"col" yaml:"col"`
	CSS     string `json:"css,omitempty" yaml:"css,omitempty"`
	Style   Style  `json:"style,omitempty" yaml:"style,omitempty"`
}

// ResolvedRow is one row of a [Grid].
type ResolvedRow struct {
	Key   string         `json:"key" yaml:"key"`
	Index int            `json:"index" yaml:"index"`
	CSS   string         `json:"css,omitempty" yaml:"css,omitempty"`
	Style Style          `json:"style,omitempty" yaml:"style,omitempty"`
	Cells []ResolvedCell `json:"cells" yaml:"cells"`
}

// Grid is a resolved table. It is owned by the caller that asked for it.
type Grid struct {
	CSS  string        `json:"css,omitempty" yaml:"css,omitempty"`
	Rows []ResolvedRow `json:"rows" yaml:"rows"`
}

// All iterates over the grid's rows in order.
func (g Grid) All() iter.Seq2[int, ResolvedRow] {
	return func(yield func(int, ResolvedRow) bool) {
		for i, r := range g.Rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Width returns the number of cells in the widest row.
func (g Grid) Width() int {
	n := 0
	for _, r := range g.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}
