package xlsx

import (
	"fmt"
	"html"
	"strings"

	"github.com/aerissecure/gridimage/grid"
)

// HTMLOptions sizes the preview table. Zero values leave sizing to the
// browser.
type HTMLOptions struct {
	CellWidthPx  int
	RowHeightsPx []int
}

// RenderHTML converts g into an HTML table with the same merges and
// centered, wrapped cells the image has.
func RenderHTML(g *grid.Grid, opts HTMLOptions) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	idx := grid.NewIndex(g)
	heights := opts.RowHeightsPx
	if len(heights) != g.NumRows() {
		heights = nil
	}

	var builder strings.Builder
	builder.WriteString("<style>\n")
	builder.WriteString(".table { border-collapse: collapse; table-layout: fixed; }\n")
	builder.WriteString(".table td { padding: 0; border:1px solid #000; text-align:center; vertical-align:middle; white-space:normal; overflow-wrap:anywhere; }\n")
	builder.WriteString("</style>\n")

	if opts.CellWidthPx > 0 {
		builder.WriteString(fmt.Sprintf("<table class=\"table\" style=\"width:%dpx;\">\n", opts.CellWidthPx*g.NumColumns()))
		builder.WriteString("  <colgroup>\n")
		for c := 0; c < g.NumColumns(); c++ {
			builder.WriteString(fmt.Sprintf("    <col style=\"width:%dpx;\">\n", opts.CellWidthPx))
		}
		builder.WriteString("  </colgroup>\n")
	} else {
		builder.WriteString("<table class=\"table\">\n")
	}

	for r := 0; r < g.NumRows(); r++ {
		if heights != nil {
			builder.WriteString(fmt.Sprintf("  <tr style=\"height:%dpx;\">\n", heights[r]))
		} else {
			builder.WriteString("  <tr>\n")
		}
		for c := 0; c < g.NumColumns(); c++ {
			spanAttr := ""
			if region, ok := idx.RegionAt(r, c); ok {
				if !region.IsAnchor(r, c) {
					continue
				}
				spanAttr = fmt.Sprintf(" rowspan=\"%d\"", region.Span())
			}
			escaped := html.EscapeString(g.Text(r, c))
			// explicit line breaks survive as <br>
			escaped = strings.ReplaceAll(escaped, "\n", "<br>")
			builder.WriteString(fmt.Sprintf("    <td data-cell=\"%s\"%s>%s</td>\n", cellRef(r, c), spanAttr, escaped))
		}
		builder.WriteString("  </tr>\n")
	}
	builder.WriteString("</table>\n")
	return builder.String(), nil
}
