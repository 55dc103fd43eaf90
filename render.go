package datatable

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format names a rendering backend for a [Grid].
type Format string

const (
	HTML     Format = "html"
	Text     Format = "table"
	Pretty   Format = "pretty"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
)

var formats = []Format{HTML, Text, Pretty, Markdown, CSV, TSV, JSON, JSONL, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Write renders g in format f to w.
func Write(w io.Writer, f Format, g Grid) error {
	switch f {
	case HTML:
		return writeHTML(w, g)
	case Text:
		return writeTable(w, g)
	case Pretty:
		return writePretty(w, g)
	case Markdown:
		return writeMarkdown(w, g)
	case CSV:
		return writeCSV(w, g)
	case TSV:
		return writeTSV(w, g)
	case JSON:
		return writeJSON(w, g)
	case JSONL:
		return writeJSONL(w, g)
	case YAML:
		return writeYAML(w, g)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders g in format f and returns the bytes.
func Marshal(f Format, g Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the text form of resolved content. Nil is empty and
// [Markup] is returned verbatim.
func String(content any) string {
	switch v := content.(type) {
	case nil:
		return ""
	case string:
		return v
	case Markup:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// expandRow lays out a row's text over width columns. A spanned cell is
// followed by empty strings for the columns it covers; spans are cut off at
// the last column.
func expandRow(r ResolvedRow, width int) []string {
	out := make([]string, 0, width)
	for _, c := range r.Cells {
		if len(out) >= width {
			break
		}
		out = append(out, String(c.Content))
		for i := 1; i < c.Span && len(out) < width; i++ {
			out = append(out, "")
		}
	}
	for len(out) < width {
		out = append(out, "")
	}
	return out
}

// headerRow reports whether r is a header row: at least one header cell,
// preceded only by blank data cells such as the corner of a flattened
// matrix.
func headerRow(r ResolvedRow) bool {
	cells := r.Cells
	for len(cells) > 0 && !cells[0].Header && strings.TrimSpace(String(cells[0].Content)) == "" {
		cells = cells[1:]
	}
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !c.Header {
			return false
		}
	}
	return true
}
