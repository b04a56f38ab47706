package gridimage

import (
	"os"

	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
	"github.com/olekukonko/ll/lx"

	"github.com/aerissecure/gridimage/fonts"
	"github.com/aerissecure/gridimage/layout"
)

type config struct {
	layout    layout.Config
	fontPath  string
	fontSize  float64
	face      *fonts.Face
	logger    *ll.Logger
	sheetName string
}

func defaultConfig() config {
	return config{
		layout:   layout.DefaultConfig(),
		fontSize: fonts.DefaultSize,
	}
}

// Option configures a Table.
type Option func(*config)

// WithCellWidth sets the pixel width of every column.
func WithCellWidth(px int) Option {
	return func(c *config) { c.layout.CellWidth = px }
}

// WithMinRowHeight sets the smallest row height in pixels.
func WithMinRowHeight(px int) Option {
	return func(c *config) { c.layout.MinHeight = px }
}

// WithPadding sets the vertical padding added to each cell's text height.
func WithPadding(px int) Option {
	return func(c *config) { c.layout.Padding = px }
}

// WithFontPath selects a TrueType/OpenType file. If it cannot be loaded the
// built-in font is used and the failure is logged.
func WithFontPath(path string) Option {
	return func(c *config) { c.fontPath = path }
}

// WithFontSize sets the font size in points.
func WithFontSize(pt float64) Option {
	return func(c *config) { c.fontSize = pt }
}

// WithFace uses face directly and skips font loading. A face shared between
// tables must not be used by concurrent renders.
func WithFace(face *fonts.Face) Option {
	return func(c *config) { c.face = face }
}

// WithLogger replaces the default stderr logger.
func WithLogger(logger *ll.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithSheetName names the worksheet written by SaveAsExcel.
func WithSheetName(name string) Option {
	return func(c *config) { c.sheetName = name }
}

// defaultLogger reports to stderr and drops debug output. lx orders
// LevelDebug after LevelError, so LevelError admits info, warn and error.
func defaultLogger() *ll.Logger {
	return ll.New("gridimage").Handler(lh.NewTextHandler(os.Stderr)).Enable().Level(lx.LevelError)
}
