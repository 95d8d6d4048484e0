package main

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable formats rows as a rounded table for terminals, or as
// tab-separated lines when the output is piped.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment, pretty bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}
	if !pretty {
		return renderPlain(headers, rows, columns)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderPlain(headers []string, rows [][]string, columns int) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, "\t"))
	for _, row := range rows {
		b.WriteByte('\n')
		cells := make([]string, columns)
		copy(cells, row)
		b.WriteString(strings.Join(cells, "\t"))
	}
	return b.String()
}
