package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// textColumnWidth caps the caption-text column so chunk and page rows stay
// readable; timing and count columns are narrow and never capped.
const textColumnWidth = 60

// renderTable lays out chunk, page, drift, and history rows. Numeric columns
// are right-aligned by the caller; the trailing "Text" column wraps at
// textColumnWidth instead of stretching the table to the longest caption.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(rowOf(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(rowOf(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i, header := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
		if header == "Text" {
			configs[i].WidthMax = textColumnWidth
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// rowOf pads or truncates cells to the table's column count.
func rowOf(cells []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
