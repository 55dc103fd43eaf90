package datatable_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/datatable"
)

const tableDoc = `
rows:
  - [1, 2, {content: 3, style: {font-weight: 100}}, 4, {content: {markup: "<b>5</b>"}}, 6]
  - [{content: 7, css: cell-override}, 8, {content: Special case, colSpan: 3}, {header: H, content: C}]
  - rowContent: [13, null, {value: 16}]
    css: row-class
    style: {color: red}
  - [{content: Full Width, colSpan: 0}]
  - [{header: Cat, colMergeSpan: 100}]
rowKeys: [one, two, three, four, five]
rowCss: overall-row
tableCss: overall-table
`

func TestDecodeTable(t *testing.T) {
	t.Parallel()
	got, err := datatable.DecodeTable(strings.NewReader(tableDoc))
	require.NoError(t, err)

	want := datatable.Table{
		Rows: []datatable.Row{
			datatable.Cells{
				datatable.V(1), datatable.V(2),
				datatable.Descriptor{Content: datatable.V(3), Style: datatable.Style{"font-weight": "100"}},
				datatable.V(4),
				datatable.Descriptor{Content: datatable.V(datatable.Markup("<b>5</b>"))},
				datatable.V(6),
			},
			datatable.Cells{
				datatable.Descriptor{Content: datatable.V(7), CSS: "cell-override"},
				datatable.V(8),
				datatable.Descriptor{Content: datatable.V("Special case"), ColSpan: 3},
				datatable.Descriptor{Header: datatable.V("H"), Content: datatable.V("C")},
			},
			datatable.RowContent{
				Cells: []datatable.Cell{datatable.V(13), nil, datatable.Descriptor{Value: 16}},
				CSS:   "row-class",
				Style: datatable.Style{"color": "red"},
			},
			datatable.Cells{datatable.Descriptor{Content: datatable.V("Full Width"), ColSpan: datatable.FullWidth}},
			datatable.Cells{datatable.Descriptor{Header: datatable.V("Cat"), MergeSpan: 100}},
		},
		RowKeys:  []string{"one", "two", "three", "four", "five"},
		RowCSS:   "overall-row",
		TableCSS: "overall-table",
	}
	assert.Equal(t, want, got)
}

func TestDecodeTableJSON(t *testing.T) {
	t.Parallel()
	doc := `{"rows": [[1, 2, 3], {"rowContent": [{"content": "X", "colSpan": 0}]}]}`
	got, err := datatable.DecodeTable(strings.NewReader(doc))
	require.NoError(t, err)

	g, err := datatable.Resolve(got)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows[1].Cells[0].Span)
	assert.Equal(t, "X", g.Rows[1].Cells[0].Content)
}

func TestDecodeTableCells(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc  string
		want datatable.Row
	}{
		"content": {
			doc:  "rows: [[{content: a}]]",
			want: datatable.Cells{datatable.Descriptor{Content: datatable.V("a")}},
		},
		"header with span": {
			doc:  "rows: [[{header: b, colSpan: 2}]]",
			want: datatable.Cells{datatable.Descriptor{Header: datatable.V("b"), ColSpan: 2}},
		},
		"null content": {
			doc:  "rows: [[{content: null, css: gap}]]",
			want: datatable.Cells{datatable.Descriptor{CSS: "gap"}},
		},
		"markup": {
			doc:  `rows: [[{content: {markup: "<i>x</i>"}}]]`,
			want: datatable.Cells{datatable.Descriptor{Content: datatable.V(datatable.Markup("<i>x</i>"))}},
		},
		"row content": {
			doc: "rows: [{rowContent: [{content: 1}, 2], css: r}]",
			want: datatable.RowContent{
				Cells: []datatable.Cell{datatable.Descriptor{Content: datatable.V(1)}, datatable.V(2)},
				CSS:   "r",
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := datatable.DecodeTable(strings.NewReader(tt.doc))
			require.NoError(t, err)
			require.Len(t, got.Rows, 1)
			assert.Equal(t, tt.want, got.Rows[0])
		})
	}
}

func TestDecodeTableEmpty(t *testing.T) {
	t.Parallel()
	got, err := datatable.DecodeTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
}

func TestDecodeTableErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc  string
		want error
	}{
		"row is a scalar": {
			doc:  "rows: [5]",
			want: datatable.ErrInvalidRow,
		},
		"row mapping without rowContent": {
			doc:  "rows: [{css: x}]",
			want: datatable.ErrInvalidRow,
		},
		"rowContent not a list": {
			doc:  "rows: [{rowContent: 5}]",
			want: datatable.ErrInvalidRow,
		},
		"nested descriptor": {
			doc:  "rows: [[{content: {content: 1}}]]",
			want: datatable.ErrInvalidCell,
		},
		"cell is a list": {
			doc:  "rows: [[[1, 2]]]",
			want: datatable.ErrInvalidCell,
		},
		"content is a list": {
			doc:  "rows: [[{header: [1]}]]",
			want: datatable.ErrInvalidCell,
		},
		"bad colSpan": {
			doc:  "rows: [[{content: 1, colSpan: wide}]]",
			want: datatable.ErrInvalidCell,
		},
		"negative colSpan": {
			doc:  "rows: [[{content: a, colSpan: -1}, 1, 2]]",
			want: datatable.ErrInvalidCell,
		},
		"colSpan below full width": {
			doc:  "rows: [[{content: a, colSpan: -2}]]",
			want: datatable.ErrInvalidCell,
		},
		"rows not a list": {
			doc:  "rows: 5",
			want: datatable.ErrInvalidDocument,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := datatable.DecodeTable(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	t.Parallel()
	orig, err := datatable.DecodeTable(strings.NewReader(tableDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, datatable.WriteTable(&buf, orig))

	got, err := datatable.DecodeTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestWriteTableFlattened(t *testing.T) {
	t.Parallel()
	rows, err := datatable.Flatten([]byte(matrixDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, datatable.WriteTable(&buf, datatable.Table{}.WithRows(rows)))
	assert.Equal(t, `rows:
  - - ' '
    - header: A
    - header: B
  - - header: Cat1
      colMergeSpan: 100
  - - header: Sub1
    - 10
    - 20
`, buf.String())
}

func TestWriteTableRenderer(t *testing.T) {
	t.Parallel()
	table := datatable.Table{Rows: []datatable.Row{
		datatable.Cells{datatable.C(describe)},
	}}
	err := datatable.WriteTable(&bytes.Buffer{}, table)
	assert.ErrorIs(t, err, datatable.ErrNotSerializable)
}
