// Package gridimage renders a table of text cells, with optional vertical
// merges inside a column, to an image. Every column has the same width;
// rows grow to fit their wrapped text. The same table can be written as an
// Excel workbook, a Word document or an HTML preview.
package gridimage

import (
	"image"
	"io"

	"github.com/olekukonko/ll"

	"github.com/aerissecure/gridimage/docx"
	"github.com/aerissecure/gridimage/fonts"
	"github.com/aerissecure/gridimage/grid"
	"github.com/aerissecure/gridimage/layout"
	"github.com/aerissecure/gridimage/raster"
	"github.com/aerissecure/gridimage/xlsx"
)

// Format is an image encoding accepted by WriteImage.
type Format = raster.Format

const (
	PNG  = raster.PNG
	BMP  = raster.BMP
	TIFF = raster.TIFF
)

// Table collects rows and merges and renders them on demand. It is not safe
// for concurrent mutation; separate renders of a finished table may run
// concurrently.
type Table struct {
	grid   *grid.Grid
	cfg    config
	logger *ll.Logger
}

// New returns an empty table.
func New(opts ...Option) *Table {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = defaultLogger()
	}
	return &Table{grid: grid.New(), cfg: cfg, logger: logger}
}

// AddRow appends a row. Rows may have different lengths; the widest row
// decides the column count.
func (t *Table) AddRow(cells ...string) {
	t.grid.AppendRow(cells...)
}

// MergeRows merges rows firstRow..lastRow of column into one cell showing
// the text of firstRow. It fails on a malformed region or one that overlaps
// an earlier merge; a region beyond the table fails when rendering.
func (t *Table) MergeRows(firstRow, lastRow, column int) error {
	return t.grid.AddMerge(firstRow, lastRow, column)
}

// Grid returns the underlying grid.
func (t *Table) Grid() *grid.Grid { return t.grid }

// Layout is the resolved geometry of one render.
type Layout struct {
	Grid       *grid.Grid
	Index      *grid.Index
	Face       *fonts.Face
	CellWidth  int
	RowHeights []int
}

// Width returns the canvas width in pixels.
func (l *Layout) Width() int { return l.Grid.NumColumns() * l.CellWidth }

// Height returns the canvas height in pixels.
func (l *Layout) Height() int { return layout.Total(l.RowHeights, 0, len(l.RowHeights)-1) }

// Layout validates the table, resolves the font and measures every row.
// Nothing is cached; each call measures afresh.
func (t *Table) Layout() (*Layout, error) {
	if err := t.grid.Validate(); err != nil {
		return nil, err
	}
	face := t.face()
	heights := layout.RowHeights(t.grid, face, t.cfg.layout)
	l := &Layout{
		Grid:       t.grid,
		Index:      grid.NewIndex(t.grid),
		Face:       face,
		CellWidth:  t.cfg.layout.CellWidth,
		RowHeights: heights,
	}
	t.logger.Debugf("layout: %d rows x %d columns, %d merges, canvas %dx%d",
		t.grid.NumRows(), t.grid.NumColumns(), l.Index.Len(), l.Width(), l.Height())
	return l, nil
}

func (t *Table) face() *fonts.Face {
	if t.cfg.face != nil {
		return t.cfg.face
	}
	return fonts.Resolve(t.cfg.fontPath, fonts.Options{Size: t.cfg.fontSize}, t.logger)
}

// RenderImage draws the table.
func (t *Table) RenderImage() (image.Image, error) {
	l, err := t.Layout()
	if err != nil {
		return nil, err
	}
	return raster.Render(l.Grid, l.Index, l.RowHeights, l.Face, raster.Config{CellWidth: l.CellWidth})
}

// WriteImage draws the table and encodes it to w.
func (t *Table) WriteImage(w io.Writer, format Format) error {
	img, err := t.RenderImage()
	if err != nil {
		return err
	}
	return raster.Encode(w, img, format)
}

// GenerateImage draws the table into the file at path. The format follows
// the extension: .bmp, .tif/.tiff, anything else PNG.
func (t *Table) GenerateImage(path string) error {
	img, err := t.RenderImage()
	if err != nil {
		return err
	}
	if err := raster.WriteFile(path, img, raster.FormatFromPath(path)); err != nil {
		t.logger.Errorf("writing image: %v", err)
		return err
	}
	t.logger.Infof("image written to %s", path)
	return nil
}

func (t *Table) sheetOptions() (xlsx.WriteOptions, error) {
	l, err := t.Layout()
	if err != nil {
		return xlsx.WriteOptions{}, err
	}
	return xlsx.WriteOptions{
		SheetName:    t.cfg.sheetName,
		CellWidthPx:  l.CellWidth,
		RowHeightsPx: l.RowHeights,
	}, nil
}

// SaveAsExcel writes the table as a workbook sized like the image.
func (t *Table) SaveAsExcel(path string) error {
	opts, err := t.sheetOptions()
	if err != nil {
		return err
	}
	if err := xlsx.Save(path, t.grid, opts); err != nil {
		t.logger.Errorf("writing workbook: %v", err)
		return err
	}
	t.logger.Infof("workbook written to %s", path)
	return nil
}

// WriteExcel is SaveAsExcel to w.
func (t *Table) WriteExcel(w io.Writer) error {
	opts, err := t.sheetOptions()
	if err != nil {
		return err
	}
	return xlsx.Write(w, t.grid, opts)
}

// SaveAsDocx writes the table as a Word document.
func (t *Table) SaveAsDocx(path string) error {
	if err := docx.Save(path, t.grid, docx.Options{CellWidthPx: t.cfg.layout.CellWidth}); err != nil {
		t.logger.Errorf("writing document: %v", err)
		return err
	}
	t.logger.Infof("document written to %s", path)
	return nil
}

// WriteDocx is SaveAsDocx to w.
func (t *Table) WriteDocx(w io.Writer) error {
	return docx.Write(w, t.grid, docx.Options{CellWidthPx: t.cfg.layout.CellWidth})
}

// HTML returns an HTML table preview sized like the image.
func (t *Table) HTML() (string, error) {
	l, err := t.Layout()
	if err != nil {
		return "", err
	}
	return xlsx.RenderHTML(t.grid, xlsx.HTMLOptions{CellWidthPx: l.CellWidth, RowHeightsPx: l.RowHeights})
}
