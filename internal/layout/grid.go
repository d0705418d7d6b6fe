package layout

import (
	"fmt"
	"math"
	"strings"
)

// Breakpoint is a named width bucket.
type Breakpoint string

const (
	BreakpointNone Breakpoint = ""
	BreakpointXS   Breakpoint = "xs"
	BreakpointSM   Breakpoint = "sm"
	BreakpointMD   Breakpoint = "md"
	BreakpointLG   Breakpoint = "lg"
	BreakpointXL   Breakpoint = "xl"
)

// Breakpoints in ascending order.
var Breakpoints = []Breakpoint{BreakpointXS, BreakpointSM, BreakpointMD, BreakpointLG, BreakpointXL}

var breakpointColumns = map[Breakpoint]int{
	BreakpointXS: 1,
	BreakpointSM: 2,
	BreakpointMD: 3,
	BreakpointLG: 4,
	BreakpointXL: 6,
}

// Rank orders breakpoints xs=0 .. xl=4. Unnamed breakpoints rank -1.
func (b Breakpoint) Rank() int {
	for i, bp := range Breakpoints {
		if bp == b {
			return i
		}
	}
	return -1
}

// Columns returns the column count for a named breakpoint.
func (b Breakpoint) Columns() (int, bool) {
	n, ok := breakpointColumns[b]
	return n, ok
}

func (b Breakpoint) String() string {
	if b == BreakpointNone {
		return "none"
	}
	return string(b)
}

// ParseBreakpoint accepts xs..xl, or "" / "none" for no breakpoint.
func ParseBreakpoint(s string) (Breakpoint, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return BreakpointNone, nil
	}
	bp := Breakpoint(s)
	if bp.Rank() < 0 {
		return BreakpointNone, fmt.Errorf("unknown breakpoint %q", s)
	}
	return bp, nil
}

// BreakpointTable holds the minimum width of each bucket above xs.
// The zero table disables named breakpoints entirely.
type BreakpointTable struct {
	SM float64
	MD float64
	LG float64
	XL float64
}

// DefaultBreakpointTable returns the stock thresholds in layout points.
func DefaultBreakpointTable() BreakpointTable {
	return BreakpointTable{SM: 576, MD: 768, LG: 992, XL: 1200}
}

// Enabled reports whether any threshold is set.
func (t BreakpointTable) Enabled() bool {
	return t != BreakpointTable{}
}

// Classify buckets width. It returns BreakpointNone when the table is
// disabled or the width is unknown.
func (t BreakpointTable) Classify(width float64) Breakpoint {
	if !t.Enabled() || width <= 0 {
		return BreakpointNone
	}
	switch {
	case t.XL > 0 && width >= t.XL:
		return BreakpointXL
	case t.LG > 0 && width >= t.LG:
		return BreakpointLG
	case t.MD > 0 && width >= t.MD:
		return BreakpointMD
	case t.SM > 0 && width >= t.SM:
		return BreakpointSM
	default:
		return BreakpointXS
	}
}

// GridColumns picks the column count for bp, falling back to how many
// minChildWidth-wide children fit in width.
func GridColumns(bp Breakpoint, width, minChildWidth float64) int {
	if n, ok := bp.Columns(); ok {
		return n
	}
	if minChildWidth <= 0 {
		return 1
	}
	n := int(math.Floor(width / minChildWidth))
	if n < 1 {
		return 1
	}
	return n
}

// Grid is a resolved responsive grid.
type Grid struct {
	Columns          int
	ItemWidthPercent float64
	ItemPadding      float64
}

// NewGrid resolves a grid for bp at width.
func NewGrid(bp Breakpoint, width, minChildWidth, spacing float64) Grid {
	cols := GridColumns(bp, width, minChildWidth)
	return Grid{
		Columns:          cols,
		ItemWidthPercent: 100 / float64(cols),
		ItemPadding:      spacing / 2,
	}
}

// ItemWidth returns the width of one cell when total space is available,
// with the remainder dropped.
func (g Grid) ItemWidth(total int) int {
	if g.Columns <= 1 {
		return total
	}
	return total / g.Columns
}

// Rows splits n items into row-major index groups of at most Columns.
func (g Grid) Rows(n int) [][]int {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	var rows [][]int
	for start := 0; start < n; start += cols {
		end := min(start+cols, n)
		row := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, i)
		}
		rows = append(rows, row)
	}
	return rows
}
