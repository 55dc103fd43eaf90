package datatable

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, g Grid) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTable writes t as a YAML table document, the form [DecodeTable]
// reads.
func WriteTable(w io.Writer, t Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}
