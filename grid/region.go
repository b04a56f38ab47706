package grid

import "fmt"

// Region is a vertical merge: rows FirstRow..LastRow (inclusive) of a single
// column, drawn as one bordered area with the anchor cell's text.
type Region struct {
	FirstRow int
	LastRow  int
	Column   int
}

func (r Region) String() string {
	return fmt.Sprintf("rows %d-%d col %d", r.FirstRow, r.LastRow, r.Column)
}

// Contains reports whether (row, column) lies inside the region.
func (r Region) Contains(row, column int) bool {
	return column == r.Column && row >= r.FirstRow && row <= r.LastRow
}

// IsAnchor reports whether (row, column) is the region's top cell, the only
// one whose text is rendered.
func (r Region) IsAnchor(row, column int) bool {
	return row == r.FirstRow && column == r.Column
}

// Span returns the number of rows covered.
func (r Region) Span() int { return r.LastRow - r.FirstRow + 1 }

// Overlaps reports whether the two regions share a cell.
func (r Region) Overlaps(o Region) bool {
	return r.Column == o.Column && r.FirstRow <= o.LastRow && o.FirstRow <= r.LastRow
}

// LayoutError reports a grid whose geometry cannot be resolved: a malformed
// or overlapping merge region, or a region outside the grid.
type LayoutError struct {
	Op     string
	Region Region
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Region == (Region{}) {
		return fmt.Sprintf("layout %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("layout %s: region %s: %s", e.Op, e.Region, e.Reason)
}
