package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	ellipsis         = "..."
	defaultTermWidth = 100
	depthIndent      = "  "
)

// Column describes one table column.
type Column struct {
	Title string

	// Min is the narrowest the column is ever rendered.
	Min int

	// Flex marks the column that shrinks when the table is wider than the terminal.
	Flex bool
}

// BlockRow is one block in a walk or selection listing. Start and End are
// empty when the block range leaves them unset.
type BlockRow struct {
	ID      string
	Flavour string
	Depth   int
	Start   string
	End     string
	Text    string
}

// TableFormatter formats block listings as styled tables.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

//nolint:gochecknoglobals // Read-only column layout.
var orderColumns = []Column{
	{Title: "#", Min: 3},
	{Title: "BLOCK", Min: 8},
	{Title: "FLAVOUR", Min: 9},
	{Title: "TEXT", Min: 20, Flex: true},
}

//nolint:gochecknoglobals // Read-only column layout.
var rangeColumns = []Column{
	{Title: "BLOCK", Min: 8},
	{Title: "FLAVOUR", Min: 9},
	{Title: "START", Min: 5},
	{Title: "END", Min: 5},
	{Title: "TEXT", Min: 20, Flex: true},
}

// FormatOrder formats blocks in reading order, indenting text by depth.
func (t *TableFormatter) FormatOrder(rows []BlockRow) string {
	if len(rows) == 0 {
		return ""
	}

	cells := make([][]string, 0, len(rows))
	for i, row := range rows {
		cells = append(cells, []string{
			strconv.Itoa(i + 1),
			row.ID,
			row.Flavour,
			strings.Repeat(depthIndent, row.Depth) + row.Text,
		})
	}

	return t.format(orderColumns, cells, []func(...string) string{
		t.styles.Dim.Render,
		t.styles.BlockID.Render,
		t.styles.Flavour.Render,
		t.styles.Text.Render,
	})
}

// FormatRanges formats resolved block ranges.
func (t *TableFormatter) FormatRanges(rows []BlockRow) string {
	if len(rows) == 0 {
		return ""
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.ID,
			row.Flavour,
			orDash(row.Start),
			orDash(row.End),
			row.Text,
		})
	}

	return t.format(rangeColumns, cells, []func(...string) string{
		t.styles.BlockID.Render,
		t.styles.Flavour.Render,
		t.styles.Offset.Render,
		t.styles.Offset.Render,
		t.styles.Text.Render,
	})
}

func (t *TableFormatter) format(columns []Column, cells [][]string, render []func(...string) string) string {
	widths := t.columnWidths(columns, cells)

	var builder strings.Builder

	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.Title
	}
	builder.WriteString(t.styles.TableHeader.Render(joinRow(titles, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths))
	builder.WriteString("\n")

	for _, row := range cells {
		styled := make([]string, len(row))
		for i, cell := range row {
			cell = pad(truncate(cell, widths[i]), widths[i])
			styled[i] = render[i](cell)
		}
		builder.WriteString(" " + strings.Join(styled, strings.Repeat(" ", tablePadding)))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// columnWidths sizes each column to its content, then shrinks the flex
// column until the table fits the terminal.
func (t *TableFormatter) columnWidths(columns []Column, cells [][]string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(col.Min, lipgloss.Width(col.Title))
	}
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	if excess := totalWidth(widths) - t.termWidth; excess > 0 {
		for i, col := range columns {
			if col.Flex {
				widths[i] = max(col.Min, widths[i]-excess)
			}
		}
	}

	return widths
}

func (t *TableFormatter) separator(widths []int) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth(widths)))
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w
	}
	return total + tablePadding*(len(widths)-1)
}

func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = pad(cell, widths[i])
	}
	return " " + strings.Join(padded, strings.Repeat(" ", tablePadding))
}

// pad right-pads s with spaces to the display width w.
func pad(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate shortens s to at most maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
