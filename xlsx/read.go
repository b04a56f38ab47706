package xlsx

import (
	"io"

	"github.com/olekukonko/errors"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/gridimage/grid"
)

// Read loads the first sheet of the workbook in r into a grid. Cell values
// come back formatted, missing cells and rows as empty text. Merged ranges
// must cover a single column.
func Read(r io.ReaderAt, size int64) (*grid.Grid, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, errors.New("read workbook").Wrap(err)
	}
	return fromWorkbook(wb)
}

// Open is Read from the file at path.
func Open(path string) (*grid.Grid, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return nil, errors.Newf("open workbook %s", path).Wrap(err)
	}
	return fromWorkbook(wb)
}

func fromWorkbook(wb *spreadsheet.Workbook) (*grid.Grid, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, &grid.LayoutError{Op: "read xlsx", Reason: "workbook has no sheets"}
	}
	sheet := sheets[0]

	var rows [][]string
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		for len(rows) <= rowIdx {
			// sparse rows
			rows = append(rows, nil)
		}
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			for len(rows[rowIdx]) <= colIdx {
				rows[rowIdx] = append(rows[rowIdx], "")
			}
			rows[rowIdx][colIdx] = cell.GetFormattedValue()
		}
	}

	g := grid.New()
	for _, cells := range rows {
		g.AppendRow(cells...)
	}

	if sheet.X().MergeCells == nil {
		return g, nil
	}
	for _, mc := range sheet.X().MergeCells.MergeCell {
		from, to, err := reference.ParseRangeReference(mc.RefAttr)
		if err != nil {
			return nil, errors.Newf("merge range %q", mc.RefAttr).Wrap(err)
		}
		if from.ColumnIdx != to.ColumnIdx {
			return nil, &grid.LayoutError{Op: "read xlsx", Reason: "merge " + mc.RefAttr + " spans columns"}
		}
		if err := g.AddMerge(int(from.RowIdx)-1, int(to.RowIdx)-1, int(from.ColumnIdx)); err != nil {
			return nil, err
		}
	}
	return g, nil
}
