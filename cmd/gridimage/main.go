package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/errors"
	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
	"github.com/olekukonko/ll/lx"

	"github.com/aerissecure/gridimage"
	"github.com/aerissecure/gridimage/fonts"
	"github.com/aerissecure/gridimage/layout"
)

const (
	defaultImage    = "table_merged.png"
	defaultWorkbook = "table_merged.xlsx"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gridimage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in      = fs.String("in", "", "Input table: .json, .xlsx or .docx")
		demo    = fs.Bool("demo", false, "Use the built-in department table as input")
		imgOut  = fs.String("png", "", "Image output path; .bmp and .tif/.tiff select those formats")
		xlsxOut = fs.String("xlsx", "", "Excel workbook output path")
		htmlOut = fs.String("html", "", "HTML preview output path")
		docxOut = fs.String("docx", "", "Word document output path")

		fontPath  = fs.String("font", "", "TrueType/OpenType font or collection (default: Go Regular, no CJK glyphs)")
		fontSize  = fs.Float64("font-size", fonts.DefaultSize, "Font size in points")
		cellWidth = fs.Int("cell-width", layout.DefaultCellWidth, "Column width in pixels")
		minHeight = fs.Int("min-height", layout.DefaultMinHeight, "Minimum row height in pixels")
		verbose   = fs.Bool("v", false, "Log layout details")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gridimage (-in table.json | -demo) [options]\n\n")
		fmt.Fprintf(stderr, "Renders a table with vertically merged cells to an image.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nWithout any output flag, %s and %s are written.\n", defaultImage, defaultWorkbook)
		fmt.Fprintf(stderr, "\nJSON input:\n")
		fmt.Fprintf(stderr, "  {\"rows\": [[\"Dept\", \"Name\"], [\"R&D\", \"Li\"]], \"merges\": [{\"first_row\": 1, \"last_row\": 3, \"column\": 0}]}\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*in == "") == !*demo {
		fs.Usage()
		return errors.New("exactly one of -in or -demo is required")
	}
	if *imgOut == "" && *xlsxOut == "" && *htmlOut == "" && *docxOut == "" {
		*imgOut, *xlsxOut = defaultImage, defaultWorkbook
	}

	logger := ll.New("gridimage").Handler(lh.NewTextHandler(stderr)).Enable()
	if !*verbose {
		// everything but debug
		logger = logger.Level(lx.LevelError)
	}

	table := gridimage.New(
		gridimage.WithLogger(logger),
		gridimage.WithFontPath(*fontPath),
		gridimage.WithFontSize(*fontSize),
		gridimage.WithCellWidth(*cellWidth),
		gridimage.WithMinRowHeight(*minHeight),
	)

	var err error
	if *demo {
		err = loadDemo(table)
	} else {
		err = load(table, *in)
	}
	if err != nil {
		return err
	}

	if *xlsxOut != "" {
		if err := table.SaveAsExcel(*xlsxOut); err != nil {
			return err
		}
	}
	if *docxOut != "" {
		if err := table.SaveAsDocx(*docxOut); err != nil {
			return err
		}
	}
	if *htmlOut != "" {
		page, err := table.HTML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*htmlOut, []byte(page), 0o644); err != nil {
			return errors.Newf("write %s", *htmlOut).Wrap(err)
		}
		logger.Infof("preview written to %s", *htmlOut)
	}
	if *imgOut != "" {
		if err := table.GenerateImage(*imgOut); err != nil {
			return err
		}
	}
	return nil
}
