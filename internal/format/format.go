// Package format renders tables for terminal and markdown output.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Table builds one table and renders it in the Mode set at creation.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns an empty table for the given Mode.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

// Header sets the column headers.
func (t *Table) Header(cols ...string) *Table {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
	return t
}

// Row appends a data row.
func (t *Table) Row(vals ...any) *Table {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendRow(row)
	return t
}

// Footer appends a footer row.
func (t *Table) Footer(vals ...any) *Table {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendFooter(row)
	return t
}

// WidthMax wraps the given 1-based column beyond width characters.
func (t *Table) WidthMax(column, width int) *Table {
	t.writer.SetColumnConfigs([]table.ColumnConfig{{Number: column, WidthMax: width}})
	return t
}

// AlignRight right-aligns the given 1-based columns.
func (t *Table) AlignRight(columns ...int) *Table {
	cfgs := make([]table.ColumnConfig, len(columns))
	for i, n := range columns {
		cfgs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	t.writer.SetColumnConfigs(cfgs)
	return t
}

// String renders the table.
func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

// KeyValue renders a two-column table from label/value pairs, the
// shape used for run summaries.
func KeyValue(m Mode, pairs ...[2]string) string {
	t := NewTable(m)
	for _, p := range pairs {
		t.Row(p[0], p[1])
	}
	return t.String()
}
