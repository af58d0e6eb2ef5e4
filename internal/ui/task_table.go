package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// column is one column of a task listing. Fixed columns have a zero share
// and take their minimum width; the rest split the remaining width by share.
type column struct {
	share    float64
	min, max int
	align    lipgloss.Position
	style    *lipgloss.Style
}

const (
	colNum = iota
	colStatus
	colContent
	colMeta
	colFile
)

const (
	columnGap   = 2
	tableIndent = 2
)

// taskColumns is the layout of task listings: num, status, content, meta, file.
func taskColumns() []column {
	return []column{
		colNum:     {min: 4, max: 6, align: lipgloss.Right, style: &Muted},
		colStatus:  {min: 1, max: 1, align: lipgloss.Center, style: &Accent},
		colContent: {share: 0.50, min: 24, max: 90, align: lipgloss.Left},
		colMeta:    {share: 0.30, min: 15, max: 50, align: lipgloss.Left, style: &Muted},
		colFile:    {share: 0.20, min: 10, max: 40, align: lipgloss.Left, style: &Muted},
	}
}

// taskTable renders task rows in a borderless table sized to the terminal.
type taskTable struct {
	columns []column
	widths  []int
	rows    [][]string
}

func newTaskTable(d *DisplayContext) *taskTable {
	cols := taskColumns()
	return &taskTable{columns: cols, widths: columnWidths(cols, d.TermWidth)}
}

func columnWidths(cols []column, termWidth int) []int {
	widths := make([]int, len(cols))
	fixed, shares := 0, 0.0
	for i, c := range cols {
		if c.share == 0 {
			widths[i] = c.min
			fixed += c.min
			continue
		}
		shares += c.share
	}

	free := termWidth - fixed - (len(cols)-1)*columnGap - tableIndent
	if free < 0 {
		free = 0
	}
	for i, c := range cols {
		if c.share == 0 {
			continue
		}
		w := int(float64(free) * c.share / shares)
		if w < c.min {
			w = c.min
		}
		if c.max > 0 && w > c.max {
			w = c.max
		}
		widths[i] = w
	}
	return widths
}

func (t *taskTable) width(col int) int {
	return t.widths[col]
}

func (t *taskTable) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *taskTable) render() string {
	if len(t.rows) == 0 {
		return ""
	}
	return table.New().
		Border(lipgloss.Border{Top: "─", Bottom: "─", Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(true).
		BorderStyle(Muted).
		StyleFunc(t.cellStyle).
		Rows(t.rows...).
		Render()
}

func (t *taskTable) cellStyle(_, col int) lipgloss.Style {
	if col >= len(t.columns) {
		return lipgloss.NewStyle()
	}
	c := t.columns[col]
	style := lipgloss.NewStyle()
	if c.style != nil {
		style = *c.style
	}
	style = style.Width(t.widths[col]).Align(c.align)
	if col < len(t.columns)-1 {
		style = style.PaddingRight(columnGap)
	}
	return style
}

// TruncateWithEllipsis shortens s to at most maxLen runes, preferring to cut
// at a space in the second half.
func TruncateWithEllipsis(s string, maxLen int) string {
	runes := []rune(s)
	switch {
	case len(runes) <= maxLen:
		return s
	case maxLen <= 0:
		return ""
	case maxLen <= 3:
		return string(runes[:maxLen])
	}

	cut := string(runes[:maxLen-3])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

// rowNumber right-aligns n to the width of the largest row number.
func rowNumber(n, total int) string {
	width := len(strconv.Itoa(total))
	if width < 2 {
		width = 2
	}
	s := strconv.Itoa(n)
	return strings.Repeat(" ", width-len(s)) + s
}
