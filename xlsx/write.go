// Package xlsx moves a grid in and out of Excel workbooks and renders an
// HTML preview of it.
package xlsx

import (
	"fmt"
	"io"

	"github.com/olekukonko/errors"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/gridimage/grid"
)

const (
	DefaultSheetName = "Table"

	pxPerChar = 8.3  // column width unit
	ptPerPx   = 0.75 // row height unit
)

// WriteOptions sizes the sheet to match a rendered image. Zero values keep
// Excel's defaults.
type WriteOptions struct {
	SheetName    string
	CellWidthPx  int
	RowHeightsPx []int // one per grid row, ignored otherwise
}

// Write stores g as a single-sheet workbook. Every cell is centered and
// wrapped; each merge region becomes a merged range.
func Write(w io.Writer, g *grid.Grid, opts WriteOptions) error {
	wb, err := build(g, opts)
	if err != nil {
		return err
	}
	if err := wb.Save(w); err != nil {
		return errors.New("save workbook").Wrap(err)
	}
	return nil
}

// Save is Write to a file at path.
func Save(path string, g *grid.Grid, opts WriteOptions) error {
	wb, err := build(g, opts)
	if err != nil {
		return err
	}
	if err := wb.SaveToFile(path); err != nil {
		return errors.Newf("save workbook %s", path).Wrap(err)
	}
	return nil
}

func build(g *grid.Grid, opts WriteOptions) (*spreadsheet.Workbook, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	name := opts.SheetName
	if name == "" {
		name = DefaultSheetName
	}

	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(name)

	style := wb.StyleSheet.AddCellStyle()
	style.SetHorizontalAlignment(sml.ST_HorizontalAlignmentCenter)
	style.SetVerticalAlignment(sml.ST_VerticalAlignmentCenter)
	style.SetWrapped(true)

	heights := opts.RowHeightsPx
	if len(heights) != g.NumRows() {
		heights = nil
	}
	for r := 0; r < g.NumRows(); r++ {
		row := sheet.AddRow()
		if heights != nil {
			row.X().HtAttr = unioffice.Float64(float64(heights[r]) * ptPerPx)
			row.X().CustomHeightAttr = unioffice.Bool(true)
		}
		for _, text := range g.Row(r) {
			cell := row.AddCell()
			cell.SetString(text)
			cell.SetStyle(style)
		}
	}

	if opts.CellWidthPx > 0 {
		for c := 0; c < g.NumColumns(); c++ {
			col := sheet.Column(uint32(c + 1))
			col.X().WidthAttr = unioffice.Float64(float64(opts.CellWidthPx) / pxPerChar)
			col.X().CustomWidthAttr = unioffice.Bool(true)
		}
	}

	for _, region := range g.Regions() {
		sheet.AddMergedCells(cellRef(region.FirstRow, region.Column), cellRef(region.LastRow, region.Column))
	}
	return wb, nil
}

// cellRef returns the A1 reference of a zero-based cell.
func cellRef(row, column int) string {
	return fmt.Sprintf("%s%d", reference.IndexToColumn(uint32(column)), row+1)
}
