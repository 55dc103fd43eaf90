package datatable

import (
	"encoding/json"
	"io"
)

// writeJSONL writes one resolved row per line.
func writeJSONL(w io.Writer, g Grid) error {
	enc := json.NewEncoder(w)
	for _, r := range g.All() {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
