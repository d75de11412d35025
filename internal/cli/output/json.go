package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes the object behind a view as indented JSON. Raw
// daemon fields such as rules pass through unchanged, and characters like
// < and & in network names are not escaped.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Unwrap(data)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
