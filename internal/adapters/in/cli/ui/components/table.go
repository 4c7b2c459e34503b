// Package components provides rendered building blocks for CLI output.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bnema/keyflush/internal/adapters/in/cli/ui/styles"
)

// TableColumn defines a table column. A zero Width lets the column grow.
type TableColumn struct {
	Title string
	Width int
}

// TableModel is a styled table.
type TableModel struct {
	columns     []TableColumn
	rows        [][]string
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// TableOption configures a TableModel.
type TableOption func(*TableModel)

// NewTable creates a new styled table.
func NewTable(opts ...TableOption) *TableModel {
	t := &TableModel{
		border:      lipgloss.RoundedBorder(),
		borderStyle: lipgloss.NewStyle().Foreground(styles.ColorBorder),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorPrimary).
			Padding(0, 1),
		cellStyle: lipgloss.NewStyle().
			Foreground(styles.ColorText).
			Padding(0, 1),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithColumns sets the table columns.
func WithColumns(cols []TableColumn) TableOption {
	return func(t *TableModel) {
		t.columns = cols
	}
}

// WithRows sets the table rows.
func WithRows(rows [][]string) TableOption {
	return func(t *TableModel) {
		t.rows = rows
	}
}

// WithHeaderStyle sets the header style.
func WithHeaderStyle(s lipgloss.Style) TableOption {
	return func(t *TableModel) {
		t.headerStyle = s
	}
}

// WithCellStyle sets the cell style.
func WithCellStyle(s lipgloss.Style) TableOption {
	return func(t *TableModel) {
		t.cellStyle = s
	}
}

// AddRow adds a row to the table.
func (t *TableModel) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

// Render renders the table as a string.
func (t *TableModel) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = truncateCell(col.Title, col.Width)
	}

	rows := make([][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		rows[rowIdx] = make([]string, len(row))
		for colIdx, cell := range row {
			rows[rowIdx][colIdx] = truncateCell(cell, t.width(colIdx))
		}
	}

	tbl := table.New().
		Border(t.border).
		BorderStyle(t.borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.cellStyle
			if row == table.HeaderRow {
				s = t.headerStyle
			}
			if width := t.width(col); width > 0 {
				return s.Width(width).MaxWidth(width)
			}
			return s
		})

	return tbl.String()
}

func (t *TableModel) width(col int) int {
	if col < 0 || col >= len(t.columns) {
		return 0
	}
	return t.columns[col].Width
}

// truncateCell shortens value to maxWidth display cells, ending with "...".
// Styled values pass through unchanged.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}

	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	targetWidth := maxWidth - 3
	b := strings.Builder{}
	currentWidth := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		grapheme := g.Str()
		graphemeWidth := runewidth.StringWidth(grapheme)
		if currentWidth+graphemeWidth > targetWidth {
			break
		}
		b.WriteString(grapheme)
		currentWidth += graphemeWidth
	}

	if b.Len() == 0 {
		return strings.Repeat(".", maxWidth)
	}

	return b.String() + "..."
}

// SimpleTable renders headers and rows with default styles.
func SimpleTable(headers []string, rows [][]string) string {
	cols := make([]TableColumn, len(headers))
	for i, h := range headers {
		cols[i] = TableColumn{Title: h}
	}
	return NewTable(WithColumns(cols), WithRows(rows)).Render()
}
