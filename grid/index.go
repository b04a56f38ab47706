package grid

// Index answers "which merge region covers this cell" in constant time. It is
// built once per render from the grid's regions, keyed by [row, column].
type Index struct {
	regions []Region
	cells   map[[2]int]int
}

// NewIndex precomputes the lookup for g's current regions.
func NewIndex(g *Grid) *Index {
	idx := &Index{
		regions: g.Regions(),
		cells:   make(map[[2]int]int),
	}
	for i, r := range idx.regions {
		for row := r.FirstRow; row <= r.LastRow; row++ {
			idx.cells[[2]int{row, r.Column}] = i
		}
	}
	return idx
}

// RegionAt returns the region containing (row, column), if any.
func (idx *Index) RegionAt(row, column int) (Region, bool) {
	i, ok := idx.cells[[2]int{row, column}]
	if !ok {
		return Region{}, false
	}
	return idx.regions[i], true
}

// Len returns the number of indexed regions.
func (idx *Index) Len() int { return len(idx.regions) }
