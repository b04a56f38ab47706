// Package docx writes a grid as a Word table, vertical merges included, and
// reads such tables back.
package docx

import (
	"io"
	"strings"

	"github.com/olekukonko/errors"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/aerissecure/gridimage/grid"
)

// Options controls the table geometry.
type Options struct {
	CellWidthPx int // 0 stretches the table to the page width
}

// Write stores g as the only table of a new document.
func Write(w io.Writer, g *grid.Grid, opts Options) error {
	doc, err := build(g, opts)
	if err != nil {
		return err
	}
	if err := doc.Save(w); err != nil {
		return errors.New("save document").Wrap(err)
	}
	return nil
}

// Save is Write to a file at path.
func Save(path string, g *grid.Grid, opts Options) error {
	doc, err := build(g, opts)
	if err != nil {
		return err
	}
	if err := doc.SaveToFile(path); err != nil {
		return errors.Newf("save document %s", path).Wrap(err)
	}
	return nil
}

func build(g *grid.Grid, opts Options) (*document.Document, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	idx := grid.NewIndex(g)

	doc := document.New()
	table := doc.AddTable()
	if opts.CellWidthPx <= 0 {
		table.Properties().SetWidthPercent(100)
	}
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Auto, measurement.Point)

	for r := 0; r < g.NumRows(); r++ {
		row := table.AddRow()
		for c := 0; c < g.NumColumns(); c++ {
			cell := row.AddCell()
			props := cell.Properties()
			props.SetVerticalAlignment(wml.ST_VerticalJcCenter)
			if opts.CellWidthPx > 0 {
				props.SetWidth(measurement.Distance(opts.CellWidthPx) * 0.75 * measurement.Point)
			}

			text := g.Text(r, c)
			if region, ok := idx.RegionAt(r, c); ok {
				if region.IsAnchor(r, c) {
					props.SetVerticalMerge(wml.ST_MergeRestart)
				} else {
					props.SetVerticalMerge(wml.ST_MergeContinue)
					text = ""
				}
			}

			para := cell.AddParagraph()
			para.Properties().SetAlignment(wml.ST_JcCenter)
			addText(para, text)
		}
	}
	return doc, nil
}

func addText(para document.Paragraph, text string) {
	if text == "" {
		return
	}
	run := para.AddRun()
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			run.AddBreak()
		}
		run.AddText(line)
	}
}
