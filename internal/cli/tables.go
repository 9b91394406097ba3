package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple aligned table. The first column is left-aligned, the
// rest right-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row of cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// String renders the table with styled headers and labels.
func (t *Table) String() string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(cells []string) {
		for i, c := range cells {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}

	var sb strings.Builder
	line := func(cells []string, style func(col int) lipgloss.Style) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				cell += pad
			} else {
				cell = pad + cell
				sb.WriteString("  ")
			}
			sb.WriteString(style(i).Render(cell))
		}
		sb.WriteString("\n")
	}

	if len(t.Headers) > 0 {
		line(t.Headers, func(int) lipgloss.Style { return HeaderStyle })
	}
	for _, r := range t.Rows {
		line(r, func(col int) lipgloss.Style {
			if col == 0 {
				return KeyStyle
			}
			return ValueStyle
		})
	}
	return sb.String()
}

// KeyValues renders "key: value" lines with the keys aligned.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var sb strings.Builder
	for _, p := range pairs {
		key := fmt.Sprintf("%-*s", width+1, p[0]+":")
		fmt.Fprintf(&sb, "%s %s\n", KeyStyle.Render(key), ValueStyle.Render(p[1]))
	}
	return sb.String()
}
