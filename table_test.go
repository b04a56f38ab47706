package gridimage

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font/basicfont"

	"github.com/aerissecure/gridimage/docx"
	"github.com/aerissecure/gridimage/fonts"
	"github.com/aerissecure/gridimage/grid"
	"github.com/aerissecure/gridimage/xlsx"
)

func quiet() Option {
	return WithLogger(ll.New("test").Handler(lh.NewTextHandler(io.Discard)))
}

func bitmap() Option {
	return WithFace(fonts.New(basicfont.Face7x13))
}

func departments(t *testing.T, opts ...Option) *Table {
	t.Helper()
	table := New(append([]Option{quiet(), bitmap()}, opts...)...)
	table.AddRow("Dept", "Name", "Age", "Role")
	table.AddRow("Engineering", "Zhang San", "25", "Engineer")
	table.AddRow("", "Li Si", "30", "Designer")
	table.AddRow("", "Wang Wu", "28", "Product Manager")
	table.AddRow("Marketing", "Zhao Liu", "35", "Marketing Manager")
	table.AddRow("", "Qian Qi", "40", "Sales")
	if err := table.MergeRows(1, 3, 0); err != nil {
		t.Fatal(err)
	}
	if err := table.MergeRows(4, 5, 0); err != nil {
		t.Fatal(err)
	}
	return table
}

func TestRenderImageSize(t *testing.T) {
	table := departments(t)
	l, err := table.Layout()
	if err != nil {
		t.Fatal(err)
	}
	// "Product Manager" and "Marketing Manager" exceed 100px at 7px per
	// rune and wrap to two 13px lines.
	want := []int{30, 30, 30, 36, 36, 30}
	for i, h := range l.RowHeights {
		if h != want[i] {
			t.Errorf("row %d height = %d, want %d", i, h, want[i])
		}
	}

	img, err := table.RenderImage()
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(400, 192) {
		t.Errorf("size = %v, want 400x192", got)
	}
	if got := img.Bounds().Size(); got != image.Pt(l.Width(), l.Height()) {
		t.Errorf("image %v does not match layout %dx%d", got, l.Width(), l.Height())
	}
}

func TestOptions(t *testing.T) {
	table := New(quiet(), bitmap(), WithCellWidth(50), WithMinRowHeight(40), WithPadding(0))
	table.AddRow("A", "B", "C")
	img, err := table.RenderImage()
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(150, 40) {
		t.Errorf("size = %v, want 150x40", got)
	}
}

func TestMergeRowsRejectsOverlap(t *testing.T) {
	table := departments(t)
	var le *grid.LayoutError
	if err := table.MergeRows(2, 4, 0); !errors.As(err, &le) {
		t.Errorf("overlap: got %v", err)
	}
	if err := table.MergeRows(3, 1, 1); !errors.As(err, &le) {
		t.Errorf("reversed: got %v", err)
	}
	if err := table.MergeRows(1, 2, 1); err != nil {
		t.Errorf("separate column: %v", err)
	}
}

func TestInvalidTableProducesNoOutput(t *testing.T) {
	table := New(quiet(), bitmap())
	table.AddRow("a", "b")
	if err := table.MergeRows(0, 4, 0); err != nil {
		t.Fatal(err)
	}

	var le *grid.LayoutError
	if _, err := table.RenderImage(); !errors.As(err, &le) {
		t.Errorf("RenderImage: got %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := table.GenerateImage(path); !errors.As(err, &le) {
		t.Errorf("GenerateImage: got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("image file created for an invalid table")
	}
	if err := table.SaveAsExcel(filepath.Join(t.TempDir(), "out.xlsx")); !errors.As(err, &le) {
		t.Errorf("SaveAsExcel: got %v", err)
	}

	if _, err := New(quiet()).RenderImage(); !errors.As(err, &le) {
		t.Errorf("empty table: got %v", err)
	}
}

func TestGenerateImage(t *testing.T) {
	table := departments(t)
	dir := t.TempDir()

	tests := []struct {
		name   string
		decode func(io.Reader) (image.Image, error)
	}{
		{"table.png", png.Decode},
		{"table.bmp", bmp.Decode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := table.GenerateImage(path); err != nil {
				t.Fatal(err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := tc.decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Bounds().Size(); got != image.Pt(400, 192) {
				t.Errorf("size = %v", got)
			}
		})
	}
}

func TestWriteImageDeterministic(t *testing.T) {
	table := departments(t)
	var first, second bytes.Buffer
	if err := table.WriteImage(&first, PNG); err != nil {
		t.Fatal(err)
	}
	if err := table.WriteImage(&second, PNG); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("repeated renders differ")
	}
}

func TestConcurrentRenders(t *testing.T) {
	// Default font: every render parses its own face.
	table := New(quiet())
	table.AddRow("部门", "姓名")
	table.AddRow("技术部", "张三")

	var want bytes.Buffer
	if err := table.WriteImage(&want, PNG); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			errs[i] = table.WriteImage(&buf, PNG)
			results[i] = buf.Bytes()
		}(i)
	}
	wg.Wait()
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("render %d: %v", i, errs[i])
		}
		if !bytes.Equal(results[i], want.Bytes()) {
			t.Errorf("render %d differs", i)
		}
	}
}

func TestFontFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := ll.New("test").Handler(lh.NewTextHandler(&buf))
	logger.Enable()

	table := New(WithLogger(logger), WithFontPath(filepath.Join(t.TempDir(), "missing.ttf")))
	table.AddRow("A", "B")
	img, err := table.RenderImage()
	if err != nil {
		t.Fatalf("missing font should fall back: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
	if buf.Len() == 0 {
		t.Error("font failure not logged")
	}
}

func TestSaveAsExcel(t *testing.T) {
	table := departments(t, WithSheetName("Staff"))
	path := filepath.Join(t.TempDir(), "table.xlsx")
	if err := table.SaveAsExcel(path); err != nil {
		t.Fatal(err)
	}
	g, err := xlsx.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumRows() != 6 || g.Text(1, 0) != "Engineering" {
		t.Errorf("read back %d rows, A2 %q", g.NumRows(), g.Text(1, 0))
	}
	if len(g.Regions()) != 2 {
		t.Errorf("regions = %v", g.Regions())
	}

	var buf bytes.Buffer
	if err := table.WriteExcel(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("empty workbook")
	}
}

func TestWriteDocx(t *testing.T) {
	table := departments(t)
	var buf bytes.Buffer
	if err := table.WriteDocx(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := docx.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Regions(); len(got) != 2 || got[0] != (grid.Region{FirstRow: 1, LastRow: 3, Column: 0}) {
		t.Errorf("regions = %v", got)
	}

	path := filepath.Join(t.TempDir(), "table.docx")
	if err := table.SaveAsDocx(path); err != nil {
		t.Fatal(err)
	}
}

func TestHTML(t *testing.T) {
	out, err := departments(t).HTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `rowspan="3">Engineering</td>`) {
		t.Error("missing merged anchor")
	}
	if !strings.Contains(out, `<tr style="height:36px;">`) {
		t.Error("row heights not carried into the preview")
	}
}
