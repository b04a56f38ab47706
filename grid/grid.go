// Package grid holds the row/column model of cell strings that gets rendered
// to a workbook and to an image, together with its merge regions.
package grid

import "fmt"

// Grid is an append-only table of string cells. Rows may have different
// lengths; positions beyond a row's populated length have no cell and render
// as empty.
type Grid struct {
	rows    [][]string
	regions []Region
	columns int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{}
}

// AppendRow adds a row at the end of the grid. The cells are copied.
func (g *Grid) AppendRow(cells ...string) {
	row := make([]string, len(cells))
	copy(row, cells)
	g.rows = append(g.rows, row)
	if len(row) > g.columns {
		g.columns = len(row)
	}
}

// AddMerge records a region spanning rows firstRow..lastRow of one column.
//
// Malformed regions and regions overlapping an already recorded one are
// rejected. The region is not checked against the current grid size since
// rows may still be appended; Validate does that before rendering.
func (g *Grid) AddMerge(firstRow, lastRow, column int) error {
	r := Region{FirstRow: firstRow, LastRow: lastRow, Column: column}
	switch {
	case firstRow < 0 || column < 0:
		return &LayoutError{Op: "merge", Region: r, Reason: "negative index"}
	case firstRow > lastRow:
		return &LayoutError{Op: "merge", Region: r, Reason: "first row after last row"}
	}
	for _, other := range g.regions {
		if other.Overlaps(r) {
			return &LayoutError{Op: "merge", Region: r, Reason: fmt.Sprintf("overlaps %s", other)}
		}
	}
	g.regions = append(g.regions, r)
	return nil
}

// NumRows returns the number of rows.
func (g *Grid) NumRows() int { return len(g.rows) }

// NumColumns returns the length of the longest row.
func (g *Grid) NumColumns() int { return g.columns }

// Row returns the populated cells of row i. The slice must not be modified.
func (g *Grid) Row(i int) []string { return g.rows[i] }

// Cell returns the value at (row, column) and whether a cell exists there.
func (g *Grid) Cell(row, column int) (string, bool) {
	if row < 0 || row >= len(g.rows) || column < 0 || column >= len(g.rows[row]) {
		return "", false
	}
	return g.rows[row][column], true
}

// Text returns the value at (row, column), or "" if there is no cell.
func (g *Grid) Text(row, column int) string {
	s, _ := g.Cell(row, column)
	return s
}

// Regions returns the recorded merge regions in insertion order.
func (g *Grid) Regions() []Region {
	out := make([]Region, len(g.regions))
	copy(out, g.regions)
	return out
}

// Validate reports a *LayoutError if the grid cannot be laid out: it has no
// rows or no columns, or a merge region points outside of it.
func (g *Grid) Validate() error {
	if len(g.rows) == 0 || g.columns == 0 {
		return &LayoutError{Op: "validate", Reason: "grid is empty"}
	}
	for _, r := range g.regions {
		if r.LastRow >= len(g.rows) {
			return &LayoutError{Op: "validate", Region: r,
				Reason: fmt.Sprintf("row %d out of range (%d rows)", r.LastRow, len(g.rows))}
		}
		if r.Column >= g.columns {
			return &LayoutError{Op: "validate", Region: r,
				Reason: fmt.Sprintf("column %d out of range (%d columns)", r.Column, g.columns)}
		}
	}
	return nil
}
