package ui

// view_helpers.go provides common View() rendering helpers.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// RenderTableWithSelection renders a bubbles table with full-width selection highlight.
// The table's Selected style should use a neutral background,
// and this function applies the visible selection styling.
//
// bubbles/table View() output: line 0 is the header row, lines 1+ are the
// visible data rows. A divider is added under the header here.
func RenderTableWithSelection(t table.Model, layout Layout) string {
	lines := strings.Split(t.View(), "\n")
	var result []string

	cursor := t.Cursor()

	// Scroll offset, matching the bubbles table viewport
	height := t.Height()
	totalRows := len(t.Rows())
	start := 0
	if totalRows > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		maxStart := totalRows - height
		if start > maxStart {
			start = maxStart
		}
	}
	visibleCursorIndex := cursor - start

	for i, line := range lines {
		if i == 0 {
			result = append(result, NormalStyle.Render(line))
			result = append(result, strings.Repeat("─", layout.InnerWidth))
			continue
		}

		dataRowIndex := i - 1

		// Strip escape codes first so embedded resets don't kill the background
		if dataRowIndex == visibleCursorIndex && totalRows > 0 {
			cleanLine := stripEscapeCodes(line)
			if w := StringWidth(cleanLine); w < layout.InnerWidth {
				cleanLine += strings.Repeat(" ", layout.InnerWidth-w)
			} else if w > layout.InnerWidth {
				cleanLine = truncateToWidth(cleanLine, layout.InnerWidth)
			}
			result = append(result, SelectedStyle.Render(cleanLine))
			continue
		}

		result = append(result, NormalStyle.Render(line))
	}

	return strings.Join(result, "\n")
}

// ViewHeaderWithSubtitle renders title + subtitle on one line, then a divider.
// The subtitle is right-aligned.
func ViewHeaderWithSubtitle(title, subtitle string, innerWidth int) string {
	var b strings.Builder
	left := RenderTitle(" " + title)
	if subtitle != "" {
		right := RenderDim(subtitle + " ")
		gap := innerWidth - StringWidth(left) - StringWidth(right)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(left + strings.Repeat(" ", gap) + right)
	} else {
		b.WriteString(left)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", innerWidth))
	b.WriteString("\n")
	return b.String()
}

// CenterText centers text within given width.
func CenterText(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	padding := (width - textW) / 2
	return strings.Repeat(" ", padding) + text
}

// wrapURL wraps a URL to width, preferring to break after / ? & = - _
func wrapURL(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	remaining := text

	for len(remaining) > 0 {
		if len(remaining) <= width {
			result.WriteString(remaining)
			break
		}

		breakPoint := width
		for i := width; i > width/2; i-- {
			c := remaining[i-1]
			if c == '/' || c == '?' || c == '&' || c == '=' || c == '-' || c == '_' {
				breakPoint = i
				break
			}
		}

		result.WriteString(remaining[:breakPoint])
		result.WriteString("\n")
		remaining = remaining[breakPoint:]
	}

	return result.String()
}

// wrapWords word-wraps prose to width
func wrapWords(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// indent prefixes every line of s
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
