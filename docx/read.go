package docx

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"github.com/olekukonko/errors"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/aerissecure/gridimage/grid"
)

// Read loads the first table of the document in r into a grid. Cells are
// taken by position; vertically merged cells become merge regions.
func Read(r io.ReaderAt, size int64) (*grid.Grid, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return nil, errors.New("read document").Wrap(err)
	}
	return firstTable(doc)
}

// Open is Read from the file at path.
func Open(path string) (*grid.Grid, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, errors.Newf("open document %s", path).Wrap(err)
	}
	return firstTable(doc)
}

func firstTable(doc *document.Document) (*grid.Grid, error) {
	tables := doc.Tables()
	if len(tables) == 0 {
		return nil, &grid.LayoutError{Op: "read docx", Reason: "document has no table"}
	}
	return fromTable(tables[0])
}

// span is an open vertical merge.
type span struct{ first, last int }

func fromTable(table document.Table) (*grid.Grid, error) {
	g := grid.New()
	open := make(map[int]*span)
	var regions []grid.Region

	closeSpan := func(col int) {
		if s, ok := open[col]; ok && s.last > s.first {
			regions = append(regions, grid.Region{FirstRow: s.first, LastRow: s.last, Column: col})
		}
		delete(open, col)
	}

	for r, row := range table.Rows() {
		var cells []string
		for c, cell := range row.Cells() {
			cells = append(cells, cellText(cell))

			switch mergeOf(cell) {
			case wml.ST_MergeContinue:
				if s, ok := open[c]; ok {
					s.last = r
					continue
				}
				closeSpan(c)
			case wml.ST_MergeRestart:
				closeSpan(c)
				open[c] = &span{first: r, last: r}
			default:
				closeSpan(c)
			}
		}
		for col := range open {
			// a row too short to reach the column ends its merge
			if col >= len(cells) {
				closeSpan(col)
			}
		}
		g.AppendRow(cells...)
	}
	for col := range open {
		closeSpan(col)
	}

	slices.SortFunc(regions, func(a, b grid.Region) int {
		if c := cmp.Compare(a.FirstRow, b.FirstRow); c != 0 {
			return c
		}
		return cmp.Compare(a.Column, b.Column)
	})
	for _, region := range regions {
		if err := g.AddMerge(region.FirstRow, region.LastRow, region.Column); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// mergeOf reports the vertical merge state of a cell. A bare <w:vMerge/>
// continues the merge above.
func mergeOf(cell document.Cell) wml.ST_Merge {
	pr := cell.X().TcPr
	if pr == nil || pr.VMerge == nil {
		return wml.ST_MergeUnset
	}
	if pr.VMerge.ValAttr == wml.ST_MergeRestart {
		return wml.ST_MergeRestart
	}
	return wml.ST_MergeContinue
}

func cellText(cell document.Cell) string {
	var paras []string
	for _, p := range cell.Paragraphs() {
		var sb strings.Builder
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		paras = append(paras, sb.String())
	}
	return strings.Join(paras, "\n")
}
