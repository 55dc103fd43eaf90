package datatable

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func writeHTML(w io.Writer, g Grid) error {
	table, err := HTMLNode(g)
	if err != nil {
		return err
	}
	if err := html.Render(w, table); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// HTMLNode builds g as a <table> element. Header cells become <th>, data
// cells <td>; colspan is set only on cells spanning more than one column.
// [Markup] content is parsed and inserted as child nodes, anything else as
// text.
func HTMLNode(g Grid) (*html.Node, error) {
	table := element(atom.Table, g.CSS, nil)
	body := element(atom.Tbody, "", nil)
	table.AppendChild(body)

	for _, r := range g.Rows {
		tr := element(atom.Tr, r.CSS, r.Style)
		body.AppendChild(tr)
		for _, c := range r.Cells {
			a := atom.Td
			if c.Header {
				a = atom.Th
			}
			cell := element(a, c.CSS, c.Style)
			if c.Span > 1 {
				cell.Attr = append(cell.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(c.Span)})
			}
			if err := appendContent(cell, c.Content); err != nil {
				return nil, err
			}
			tr.AppendChild(cell)
		}
	}
	return table, nil
}

func element(a atom.Atom, class string, style Style) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	if len(style) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: inlineStyle(style)})
	}
	return n
}

// inlineStyle writes style declarations sorted by property.
func inlineStyle(s Style) string {
	var sb strings.Builder
	for i, k := range slices.Sorted(maps.Keys(s)) {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s[k])
		sb.WriteString(";")
	}
	return sb.String()
}

func appendContent(parent *html.Node, content any) error {
	if content == nil {
		return nil
	}
	m, ok := content.(Markup)
	if !ok {
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: String(content)})
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(string(m)), parent)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}
