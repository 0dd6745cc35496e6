// Package visualization renders experiment results for the terminal.
package visualization

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table is a model for tabular data.
type Table struct {
	headers []string
	data    [][]string
}

// NewTable creates a new model of data representation.
func NewTable(headers []string, data [][]string) *Table {
	return &Table{
		headers,
		data,
	}
}

// Headers returns the column headers.
func (t *Table) Headers() []string {
	return t.headers
}

// Rows returns the data rows.
func (t *Table) Rows() [][]string {
	return t.data
}

// DrawTable draws the headers and data rows to the given writer.
func DrawTable(w io.Writer, table *Table) error {
	output := tablewriter.NewWriter(w)
	output.SetHeader(table.headers)
	for _, v := range table.data {
		output.Append(v)
	}
	output.Render()
	return nil
}
