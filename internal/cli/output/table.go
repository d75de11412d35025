package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Plain is implemented by values with a line-oriented human rendering.
type Plain interface {
	WritePlain(w io.Writer) error
}

// Tabular is implemented by values that render as a table.
type Tabular interface {
	Table(wide bool) *Table
}

// Wrapper is implemented by human views that wrap a daemon object.
// The json and yaml formatters print the wrapped object instead.
type Wrapper interface {
	Unwrap() any
}

// Unwrap returns the object wrapped by a view, or data itself.
func Unwrap(data any) any {
	if v, ok := data.(Wrapper); ok {
		return v.Unwrap()
	}
	return data
}

// TableFormatter renders human output.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format renders Plain values as lines and Tabular values as aligned
// columns. Anything else falls back to indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case Plain:
		return v.WritePlain(w)
	case Tabular:
		return v.Table(f.Wide).RenderWithOptions(w, f.NoHeaders)
	case *Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(Unwrap(data))
	}
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table. Empty cells are shown as "-".
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(cells))
	for i, c := range cells {
		if c == "" {
			c = "-"
		}
		row[i] = c
	}
	t.Rows = append(t.Rows, row)
}
