package ui

// columns.go provides column width calculation for bubbles/table.

import (
	"github.com/charmbracelet/bubbles/table"
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// cellPadding is the horizontal padding bubbles/table adds to every cell
const cellPadding = 2

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are
// allocated; any rounding remainder goes to the first flexible column.
//
// Example:
//
//	columns := CalculateColumns([]ColumnSpec{
//	    {Title: "Name", FlexRatio: 60, MinWidth: 20},
//	    {Title: "Rocket", FlexRatio: 40, MinWidth: 10},
//	    {Title: "Flight", FixedWidth: 6},
//	}, layout.InnerWidth)
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	// Cell padding is drawn outside the column width
	totalWidth -= cellPadding * len(specs)
	if totalWidth < 40 {
		totalWidth = 40
	}

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	firstFlex := -1
	used := 0
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
			if firstFlex == -1 {
				firstFlex = i
			}
		}

		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}

		columns[i] = table.Column{Title: s.Title, Width: width}
		used += width
	}

	if firstFlex >= 0 && used < totalWidth {
		columns[firstFlex].Width += totalWidth - used
	}

	return columns
}

// LaunchColumns returns column specs for the launch catalog table.
func LaunchColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "★", FixedWidth: 1},
		{Title: "Flight", FixedWidth: 6},
		{Title: "Mission", FlexRatio: 60, MinWidth: 20},
		{Title: "Date (UTC)", FixedWidth: 10},
		{Title: "Rocket", FlexRatio: 40, MinWidth: 12},
		{Title: "Status", FixedWidth: 10},
	}
}
