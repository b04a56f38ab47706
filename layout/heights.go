package layout

import "github.com/aerissecure/gridimage/grid"

const (
	DefaultCellWidth = 100
	DefaultMinHeight = 30
	DefaultPadding   = 10
)

// Config holds the pixel geometry of a layout pass.
type Config struct {
	CellWidth int // width of every column
	MinHeight int // floor for every row
	Padding   int // added to each cell's text height
}

// DefaultConfig returns 100px columns, 30px minimum rows and 10px padding.
func DefaultConfig() Config {
	return Config{
		CellWidth: DefaultCellWidth,
		MinHeight: DefaultMinHeight,
		Padding:   DefaultPadding,
	}
}

// CellHeight returns the height text needs when wrapped to width.
func CellHeight(text string, width int, m Measurer, padding int) int {
	return len(Wrap(text, width, m))*m.LineHeight() + padding
}

// RowHeights returns one height per row of g: the tallest of its cells'
// wrapped text, but at least cfg.MinHeight.
//
// Every existing cell is measured on its own row, merge members included.
// A merge anchor therefore gets no extra room from the rows below it, and
// tall anchor text can overflow its region.
func RowHeights(g *grid.Grid, m Measurer, cfg Config) []int {
	heights := make([]int, g.NumRows())
	for i := range heights {
		h := cfg.MinHeight
		for _, text := range g.Row(i) {
			h = max(h, CellHeight(text, cfg.CellWidth, m, cfg.Padding))
		}
		heights[i] = h
	}
	return heights
}

// Total returns the sum of heights[first..last].
func Total(heights []int, first, last int) int {
	sum := 0
	for _, h := range heights[first : last+1] {
		sum += h
	}
	return sum
}
