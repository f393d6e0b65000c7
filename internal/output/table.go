package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a simple styled table renderer.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow adds a row of values to the table. Missing cells render empty.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// WriteTo renders the table to w.
func (t *Table) WriteTo(w io.Writer) error {
	if len(t.headers) == 0 {
		return nil
	}

	cells := make([]string, len(t.headers))
	for i, h := range t.headers {
		cells[i] = StyleHeader.Render(pad(h, t.widths[i]))
	}
	if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
		return err
	}

	for i, width := range t.widths {
		cells[i] = StyleMuted.Render(strings.Repeat("─", width))
	}
	if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
		return err
	}

	for _, row := range t.rows {
		for i, cell := range row {
			cells[i] = pad(cell, t.widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the table to stdout.
func (t *Table) Print() {
	_ = t.WriteTo(os.Stdout)
}

// pad right-pads a string to the given width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
