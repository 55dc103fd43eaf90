// Package datatable resolves loosely specified tables into grids of
// positioned, spanned cells, and flattens bucketed aggregation results into
// such tables.
//
// # Tables
//
// A [Table] is a list of rows. A row is either a plain [Cells] list or a
// [RowContent] carrying its own CSS class and style. A cell is one of:
//
//   - nil: an empty data cell
//   - [Scalar]: a value rendered as-is (see [V])
//   - [Descriptor]: content or header, span and style options (see [C] and [H])
//
// A descriptor's Content or Header is a [Scalar] or a [Renderer], a function
// called with the cell's column and row index:
//
//	t := datatable.Table{Rows: []datatable.Row{
//		datatable.Cells{datatable.V(1), datatable.V(2), datatable.H("three")},
//		datatable.Cells{datatable.Descriptor{Content: datatable.V("wide"), ColSpan: datatable.FullWidth}},
//	}}
//	g, err := datatable.Resolve(t)
//
// # Spans
//
// ColSpan requests a column span. [FullWidth] asks for the cell count of
// the table's widest row, measured once per [Resolve] call. MergeSpan is the
// separately named hint [Flatten] puts on category rows; it applies only
// when ColSpan is unset.
//
// # Aggregations
//
// [Flatten] reads a two-level aggregation matrix, with field names taken
// from its group_by entries, and returns rows for a [Table]:
//
//	rows, err := datatable.Flatten(data)
//	g, err := datatable.Resolve(base.WithRows(rows))
//
// # Documents
//
// [DecodeTable] reads a table from YAML or JSON and [WriteTable] writes one
// back. Renderers cannot be expressed in a document.
//
// # Output
//
// [Write] renders a [Grid] in one of the [Format] constants: HTML, Text,
// Pretty, Markdown, CSV, TSV, JSON, JSONL and YAML. Use [ParseFormat] to
// turn a flag value into a Format. [Rows] and [WriteRows] resolve and write
// a row at a time.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidRow]: a row that is neither Cells nor RowContent
//   - [ErrInvalidCell]: a cell or content of an unknown kind
//   - [ErrRowKeys]: row keys that do not match the rows
//   - [ErrRender]: a Renderer returned an error
//   - [ErrMissingField]: an aggregation field is absent
//   - [ErrInvalidDocument]: a document could not be parsed
//   - [ErrUnsupportedFormat]: unknown format or border name
//   - [ErrNotSerializable]: a table holds a Renderer
package datatable
